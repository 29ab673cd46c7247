package models

import (
	"encoding/json"
	"time"

	id "kinlead/pkg/domain"
)

// RawRecord archives one source payload together with the normalized view
// that was matched and the person it resolved to. Census payloads produce one
// RawRecord per household member, all sharing Payload.
type RawRecord struct {
	ID         id.RawRecordID   `json:"id"`
	BatchID    id.BatchID       `json:"batch_id"`
	SourceType id.SourceType    `json:"source_type"`
	PersonID   id.PersonID      `json:"person_id"`
	Payload    json.RawMessage  `json:"payload"`
	Normalized NormalizedRecord `json:"normalized"`
	CreatedAt  time.Time        `json:"created_at"`
}
