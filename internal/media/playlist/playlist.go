// Package playlist inspects the HLS master playlist the packager emits so a
// run can report what the package actually contains.
package playlist

import (
	"fmt"
	"os"

	"github.com/grafov/m3u8"
)

// Summary describes a parsed master playlist.
type Summary struct {
	Variants     int
	Alternatives int
}

// InspectMaster parses the master playlist at path and counts its variant
// streams and alternative renditions (audio/subtitle groups).
func InspectMaster(path string) (Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open master playlist: %w", err)
	}
	defer file.Close()

	parsed, listType, err := m3u8.DecodeFrom(file, true)
	if err != nil {
		return Summary{}, fmt.Errorf("parse master playlist: %w", err)
	}
	if listType != m3u8.MASTER {
		return Summary{}, fmt.Errorf("%q is not a master playlist", path)
	}
	master, ok := parsed.(*m3u8.MasterPlaylist)
	if !ok {
		return Summary{}, fmt.Errorf("%q is not a master playlist", path)
	}

	summary := Summary{Variants: len(master.Variants)}
	seen := make(map[string]struct{})
	for _, variant := range master.Variants {
		if variant == nil {
			continue
		}
		for _, alt := range variant.Alternatives {
			if alt == nil {
				continue
			}
			id := alt.GroupId + "/" + alt.Name
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			summary.Alternatives++
		}
	}
	return summary, nil
}
