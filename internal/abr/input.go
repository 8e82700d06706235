package abr

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies the elementary stream type of an input.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
	KindText  Kind = "text"
)

var kindPrefixes = map[string]Kind{
	"a": KindAudio,
	"v": KindVideo,
	"t": KindText,
}

// Input describes one elementary stream to feed into the packager.
type Input struct {
	Kind     Kind
	Key      string
	Filename string
	Label    string
}

// ParseInput parses the [a|v|t]:<key>=<filename>[:label] input syntax.
//
// The label suffix is only recognized when the text after the final colon
// contains no slash, so URLs with schemes or port numbers parse as plain
// filenames.
func ParseInput(spec string) (Input, error) {
	spec = strings.TrimSpace(spec)
	prefix, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return Input{}, fmt.Errorf("input %q: expected [a|v|t]:<key>=<filename>[:label]", spec)
	}
	kind, ok := kindPrefixes[prefix]
	if !ok {
		return Input{}, fmt.Errorf("input %q: unknown stream type %q (expected a, v, or t)", spec, prefix)
	}
	key, remainder, ok := strings.Cut(rest, "=")
	if !ok {
		return Input{}, fmt.Errorf("input %q: missing '=' between key and filename", spec)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Input{}, fmt.Errorf("input %q: empty key", spec)
	}

	filename := remainder
	label := ""
	if idx := strings.LastIndex(remainder, ":"); idx >= 0 {
		candidate := remainder[idx+1:]
		if candidate != "" && !strings.Contains(candidate, "/") {
			filename = remainder[:idx]
			label = candidate
		}
	}
	if strings.TrimSpace(filename) == "" {
		return Input{}, fmt.Errorf("input %q: empty filename", spec)
	}

	return Input{Kind: kind, Key: key, Filename: filename, Label: strings.TrimSpace(label)}, nil
}

// ParseInputs parses every spec and validates the resulting set.
func ParseInputs(specs []string) ([]Input, error) {
	inputs := make([]Input, 0, len(specs))
	for _, spec := range specs {
		input, err := ParseInput(spec)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	if err := ValidateInputs(inputs); err != nil {
		return nil, err
	}
	return inputs, nil
}

// ValidateInputs enforces the structural rules for one packaging run: at
// least one audio or video stream, and keys unique per kind so output
// filenames cannot collide.
func ValidateInputs(inputs []Input) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs provided")
	}
	seen := make(map[Kind]map[string]struct{}, 3)
	hasMedia := false
	for _, input := range inputs {
		if input.Kind == KindAudio || input.Kind == KindVideo {
			hasMedia = true
		}
		keys := seen[input.Kind]
		if keys == nil {
			keys = make(map[string]struct{})
			seen[input.Kind] = keys
		}
		if _, dup := keys[input.Key]; dup {
			return fmt.Errorf("duplicate %s key %q", input.Kind, input.Key)
		}
		keys[input.Key] = struct{}{}
	}
	if !hasMedia {
		return fmt.Errorf("at least one audio or video input is required")
	}
	return nil
}

// ByKind returns the inputs of the given kind, preserving order.
func ByKind(inputs []Input, kind Kind) []Input {
	matched := make([]Input, 0, len(inputs))
	for _, input := range inputs {
		if input.Kind == kind {
			matched = append(matched, input)
		}
	}
	return matched
}

var labelCaser = cases.Title(language.English)

// DisplayLabel returns the HLS display name for an input: the explicit label
// when present, otherwise the key title-cased.
func (i Input) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return labelCaser.String(i.Key)
}
