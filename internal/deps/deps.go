// Package deps verifies the external tools the pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"shortwave/internal/config"
)

// Requirement defines an external dependency Shortwave relies on.
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

// Required returns the tool requirements for the configured binaries.
func Required(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "eSpeak", Command: cfg.Audio.EspeakBinary, Description: "Speech synthesis for broadcast voice tracks"},
		{Name: "SoX", Command: cfg.Audio.SoxBinary, Description: "Tone generation for Morse transmissions"},
		{Name: "FFmpeg", Command: cfg.Audio.FFmpegBinary, Description: "Static mixing and spectrogram rendering"},
		{Name: "FFprobe", Command: cfg.Audio.FFprobeBinary, Description: "Audio duration measurement"},
	}
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
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
