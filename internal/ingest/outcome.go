package ingest

import (
	"time"

	id "kinlead/pkg/domain"
)

// Status is the lifecycle state of a batch.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Outcome reports what a batch did. On failure the counters cover the
// records committed before the failing one. Merged counts every merge,
// Reviewed the subset that was flagged. Skipped counts items that produced no
// records.
type Outcome struct {
	BatchID          id.BatchID `json:"batch_id"`
	Status           Status     `json:"status"`
	TotalItems       int        `json:"total_items"`
	RecordsProcessed int        `json:"records_processed"`
	Created          int        `json:"created"`
	Merged           int        `json:"merged"`
	Reviewed         int        `json:"reviewed"`
	AddressesLinked  int        `json:"addresses_linked"`
	Skipped          int        `json:"skipped"`
	Error            string     `json:"error,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func (o *Outcome) finish(status Status, at time.Time) {
	o.Status = status
	o.CompletedAt = &at
}

// Duration is the wall time of a finished batch, or zero while it runs.
func (o *Outcome) Duration() time.Duration {
	if o.CompletedAt == nil {
		return 0
	}
	return o.CompletedAt.Sub(o.StartedAt)
}
