package domain

import "time"

// BuildInfo records the last successful build of a bundle output.
type BuildInfo struct {
	Output      string    `json:"output,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	Inputs      []string  `json:"inputs,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
