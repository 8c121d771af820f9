package domain

import "time"

// BuildInfo records the result of one task execution for caching.
type BuildInfo struct {
	TaskName   string    `json:"task_name,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Status     string    `json:"status,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
