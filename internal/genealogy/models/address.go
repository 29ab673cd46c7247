package models

import (
	"strings"
	"time"

	id "kinlead/pkg/domain"
	pstrings "kinlead/pkg/platform/strings"
)

// Address is a residence known for a person, taken from the residence fields
// of the contributing raw records.
type Address struct {
	ID          id.AddressID   `json:"id"`
	PersonID    id.PersonID    `json:"person_id"`
	RecordID    id.RawRecordID `json:"record_id"`
	Street      string         `json:"street,omitempty"`
	City        string         `json:"city,omitempty"`
	State       string         `json:"state,omitempty"`
	Country     string         `json:"country,omitempty"`
	PostalCode  string         `json:"postal_code,omitempty"`
	FullAddress string         `json:"full_address"`
	FromDate    Date           `json:"from_date,omitzero"`
	ToDate      Date           `json:"to_date,omitzero"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ParseAddress splits a free-text residence into street, city and state by
// comma position. Missing parts stay empty. A blank input yields ok=false.
func ParseAddress(full string) (Address, bool) {
	full = strings.TrimSpace(full)
	if full == "" {
		return Address{}, false
	}
	parts := strings.Split(full, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	addr := Address{FullAddress: full}
	if len(parts) > 0 {
		addr.Street = parts[0]
	}
	if len(parts) > 1 {
		addr.City = parts[1]
	}
	if len(parts) > 2 {
		addr.State = parts[2]
	}
	return addr, true
}

// Key identifies the address within one person's history. Two residences that
// differ only by case or spacing share a key.
func (a Address) Key() string {
	return pstrings.Fold(a.FullAddress)
}
