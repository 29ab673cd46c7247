package domain

import (
	"github.com/google/uuid"

	dErrors "kinlead/pkg/domain-errors"
)

// Typed identifiers. Each aggregate gets its own type so a PersonID can never
// be passed where a RawRecordID is expected.
type (
	PersonID    uuid.UUID
	RawRecordID uuid.UUID
	BatchID     uuid.UUID
	CandidateID uuid.UUID
	AddressID   uuid.UUID
)

func NewPersonID() PersonID       { return PersonID(uuid.New()) }
func NewRawRecordID() RawRecordID { return RawRecordID(uuid.New()) }
func NewBatchID() BatchID         { return BatchID(uuid.New()) }
func NewCandidateID() CandidateID { return CandidateID(uuid.New()) }
func NewAddressID() AddressID     { return AddressID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs are valid, non-nil UUIDs.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

func ParsePersonID(s string) (PersonID, error) {
	u, err := parseUUID(s, "person id")
	return PersonID(u), err
}

func ParseRawRecordID(s string) (RawRecordID, error) {
	u, err := parseUUID(s, "raw record id")
	return RawRecordID(u), err
}

func ParseBatchID(s string) (BatchID, error) {
	u, err := parseUUID(s, "batch id")
	return BatchID(u), err
}

func ParseCandidateID(s string) (CandidateID, error) {
	u, err := parseUUID(s, "candidate id")
	return CandidateID(u), err
}

func ParseAddressID(s string) (AddressID, error) {
	u, err := parseUUID(s, "address id")
	return AddressID(u), err
}

func (id PersonID) String() string    { return uuid.UUID(id).String() }
func (id RawRecordID) String() string { return uuid.UUID(id).String() }
func (id BatchID) String() string     { return uuid.UUID(id).String() }
func (id CandidateID) String() string { return uuid.UUID(id).String() }
func (id AddressID) String() string   { return uuid.UUID(id).String() }

func (id PersonID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id RawRecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BatchID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id CandidateID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id AddressID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets PersonID appear as a plain string in JSON payloads.
func (id PersonID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *PersonID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id BatchID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *BatchID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id CandidateID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *CandidateID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id RawRecordID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *RawRecordID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id AddressID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *AddressID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
