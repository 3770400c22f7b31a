package runs

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a run.
type Status string

// Run statuses.
const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Source identifies what started a run.
type Source string

// Run sources.
const (
	SourceBatch Source = "batch"
	SourceAPI   Source = "api"
	SourceMQTT  Source = "mqtt"
)

// Run is one sizing of one building.
type Run struct {
	ID           string          `json:"id"`
	Building     string          `json:"building"`
	BuildingType string          `json:"building_type,omitempty"`
	Source       Source          `json:"source"`
	Status       Status          `json:"status"`
	Error        string          `json:"error,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// Filter controls which runs List returns.
type Filter struct {
	Building string // optional: exact building name
	Status   Status // optional
	Limit    int    // default 50, max 200
	Offset   int    // pagination offset
}

// ListResult contains a page of runs.
type ListResult struct {
	Runs   []Run `json:"runs"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
