package models

import (
	"time"

	id "kinlead/pkg/domain"
	dErrors "kinlead/pkg/domain-errors"
)

// CandidateStatus is the review state of a MatchCandidate.
type CandidateStatus string

const (
	CandidatePending   CandidateStatus = "pending"
	CandidateConfirmed CandidateStatus = "confirmed"
	CandidateRejected  CandidateStatus = "rejected"
)

// ScoreBreakdown holds the per-signal similarity scores, each in [0, 1].
type ScoreBreakdown struct {
	Name    float64 `json:"name"`
	Date    float64 `json:"date"`
	Place   float64 `json:"place"`
	Country float64 `json:"country"`
}

// MatchCandidate records a provisional merge that landed in the review band.
// PersonA is the entity the record was merged into; PersonB is the entity
// that now represents the incoming record, which after the provisional merge
// is the same person. RecordID points at the raw record a reviewer would split
// back out on rejection.
//
// Invariants:
//   - A candidate starts pending.
//   - Only pending candidates may be confirmed or rejected.
type MatchCandidate struct {
	ID         id.CandidateID  `json:"id"`
	PersonA    id.PersonID     `json:"person_a"`
	PersonB    id.PersonID     `json:"person_b"`
	RecordID   id.RawRecordID  `json:"record_id"`
	Score      float64         `json:"score"`
	Breakdown  ScoreBreakdown  `json:"breakdown"`
	Status     CandidateStatus `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	ReviewedAt *time.Time      `json:"reviewed_at,omitempty"`
}

// NewMatchCandidate builds a pending candidate for a provisional merge.
func NewMatchCandidate(personID id.PersonID, recordID id.RawRecordID, score float64, breakdown ScoreBreakdown, now time.Time) *MatchCandidate {
	return &MatchCandidate{
		ID:        id.NewCandidateID(),
		PersonA:   personID,
		PersonB:   personID,
		RecordID:  recordID,
		Score:     score,
		Breakdown: breakdown,
		Status:    CandidatePending,
		CreatedAt: now,
	}
}

func (c *MatchCandidate) IsPending() bool {
	return c.Status == CandidatePending
}

// Confirm marks the provisional merge as correct.
func (c *MatchCandidate) Confirm(now time.Time) error {
	return c.review(CandidateConfirmed, now)
}

// Reject marks the provisional merge as wrong. Splitting the record back out
// is an administrative action outside the pipeline.
func (c *MatchCandidate) Reject(now time.Time) error {
	return c.review(CandidateRejected, now)
}

func (c *MatchCandidate) review(to CandidateStatus, now time.Time) error {
	if !c.IsPending() {
		return dErrors.New(dErrors.CodeInvariantViolation, "candidate already reviewed: "+string(c.Status))
	}
	c.Status = to
	c.ReviewedAt = &now
	return nil
}
