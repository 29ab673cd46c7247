package models

import (
	id "kinlead/pkg/domain"
)

// RelationshipType names how RelatedPersonID relates to PersonID.
type RelationshipType string

const (
	RelationshipParent  RelationshipType = "parent"
	RelationshipChild   RelationshipType = "child"
	RelationshipSpouse  RelationshipType = "spouse"
	RelationshipSibling RelationshipType = "sibling"
)

func (t RelationshipType) IsValid() bool {
	switch t {
	case RelationshipParent, RelationshipChild, RelationshipSpouse, RelationshipSibling:
		return true
	}
	return false
}

// RelationshipEdge is a directed edge. For a parent edge, RelatedPersonID is
// the parent of PersonID.
type RelationshipEdge struct {
	PersonID        id.PersonID      `json:"person_id"`
	RelatedPersonID id.PersonID      `json:"related_person_id"`
	Type            RelationshipType `json:"type"`
	Confidence      float64          `json:"confidence"`
}
