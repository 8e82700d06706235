// Package deps reports the availability of the external tools and
// directories a packaging run depends on.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Requirement defines an external dependency abrpack relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckStagingRoot verifies the staging root is a writable directory and
// reports its free space.
func CheckStagingRoot(path string) Status {
	// Runs create the staging root on demand, so a missing directory is
	// reported but does not count as a hard failure.
	status := Status{Name: "Staging root", Command: path, Description: "Working space for packaging runs", Optional: true}
	info, err := os.Stat(path)
	if err != nil {
		status.Detail = fmt.Sprintf("%s (error: %v)", path, err)
		return status
	}
	if !info.IsDir() {
		status.Detail = fmt.Sprintf("%s (error: is not a directory)", path)
		return status
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)
		return status
	}

	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		status.Detail = fmt.Sprintf("%s (error: statfs: %v)", path, err)
		return status
	}
	freeGiB := float64(fs.Bavail) * float64(fs.Bsize) / (1 << 30)
	status.Available = true
	status.Detail = fmt.Sprintf("%s (%.1f GiB free)", path, freeGiB)
	return status
}
