package transfer

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Scheme classifies a resolved location.
type Scheme string

const (
	SchemeLocal Scheme = "local"
	SchemeS3    Scheme = "s3"
	SchemeHTTP  Scheme = "http"
)

// SchemeOf classifies a location string. Locations without a scheme and
// file:// locations are local; anything outside s3/http(s) is an error.
func SchemeOf(location string) (Scheme, error) {
	parsed, err := url.Parse(location)
	if err != nil || parsed.Scheme == "" {
		return SchemeLocal, nil
	}
	switch parsed.Scheme {
	case "file":
		return SchemeLocal, nil
	case "s3":
		return SchemeS3, nil
	case "http", "https":
		return SchemeHTTP, nil
	default:
		return "", fmt.Errorf("unsupported scheme %q in %q", parsed.Scheme, location)
	}
}

// Resolve combines an input filename with the optional source root. A
// filename that is already fully qualified takes precedence over the root.
func Resolve(filename, sourceRoot string) string {
	if hasScheme(filename) || sourceRoot == "" {
		return filename
	}
	if hasScheme(sourceRoot) {
		return strings.TrimRight(sourceRoot, "/") + "/" + filename
	}
	return filepath.Join(sourceRoot, filename)
}

// LocalPath strips an optional file:// prefix and makes the path absolute.
func LocalPath(location string) (string, error) {
	trimmed := strings.TrimPrefix(location, "file://")
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", trimmed, err)
	}
	return abs, nil
}

// baseName extracts the final path element of a URL or local path.
func baseName(location string) string {
	if parsed, err := url.Parse(location); err == nil && parsed.Scheme != "" {
		return path.Base(parsed.Path)
	}
	return filepath.Base(location)
}

func hasScheme(location string) bool {
	parsed, err := url.Parse(location)
	return err == nil && parsed.Scheme != ""
}
