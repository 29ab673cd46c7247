package relationship

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/platform/graph"
	id "kinlead/pkg/domain"
)

// GraphStore keeps edges as RELATED relationships between Person nodes. Nodes
// carry only the person id; attributes stay in the relational person store.
type GraphStore struct {
	driver graph.Driver
}

func NewGraph(driver graph.Driver) *GraphStore {
	return &GraphStore{driver: driver}
}

const (
	addEdgeQuery = `MERGE (a:Person {id: $person_id})
MERGE (b:Person {id: $related_id})
MERGE (a)-[r:RELATED {type: $type}]->(b)
ON CREATE SET r.confidence = $confidence`

	edgesFromQuery = `MATCH (:Person {id: $person_id})-[r:RELATED {type: $type}]->(b:Person)
RETURN b.id AS related_id, r.confidence AS confidence
ORDER BY related_id`

	countTouchingQuery = `MATCH (:Person {id: $person_id})-[r:RELATED]-()
RETURN count(DISTINCT r) AS n`

	countQuery = `MATCH ()-[r:RELATED]->() RETURN count(r) AS n`
)

func (s *GraphStore) Add(ctx context.Context, e models.RelationshipEdge) (bool, error) {
	if err := validateEdge(e); err != nil {
		return false, err
	}
	res, err := s.driver.ExecuteQuery(ctx, addEdgeQuery, map[string]any{
		"person_id":  e.PersonID.String(),
		"related_id": e.RelatedPersonID.String(),
		"type":       string(e.Type),
		"confidence": e.Confidence,
	})
	if err != nil {
		return false, fmt.Errorf("add relationship: %w", err)
	}
	if res.Summary == nil {
		return true, nil
	}
	return res.Summary.Counters().RelationshipsCreated() > 0, nil
}

func (s *GraphStore) EdgesFrom(ctx context.Context, personID id.PersonID, relType models.RelationshipType) ([]models.RelationshipEdge, error) {
	res, err := s.driver.ExecuteQuery(ctx, edgesFromQuery, map[string]any{
		"person_id": personID.String(),
		"type":      string(relType),
	})
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	out := make([]models.RelationshipEdge, 0, len(res.Records))
	for _, rec := range res.Records {
		related, _, err := neo4j.GetRecordValue[string](rec, "related_id")
		if err != nil {
			return nil, fmt.Errorf("read related_id: %w", err)
		}
		relatedID, err := id.ParsePersonID(related)
		if err != nil {
			return nil, fmt.Errorf("read related_id: %w", err)
		}
		confidence, _, err := neo4j.GetRecordValue[float64](rec, "confidence")
		if err != nil {
			return nil, fmt.Errorf("read confidence: %w", err)
		}
		out = append(out, models.RelationshipEdge{
			PersonID:        personID,
			RelatedPersonID: relatedID,
			Type:            relType,
			Confidence:      confidence,
		})
	}
	return out, nil
}

func (s *GraphStore) CountTouching(ctx context.Context, personID id.PersonID) (int, error) {
	return s.count(ctx, countTouchingQuery, map[string]any{"person_id": personID.String()})
}

func (s *GraphStore) Count(ctx context.Context) (int, error) {
	return s.count(ctx, countQuery, nil)
}

func (s *GraphStore) count(ctx context.Context, query string, params map[string]any) (int, error) {
	res, err := s.driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	n, _, err := neo4j.GetRecordValue[int64](res.Records[0], "n")
	if err != nil {
		return 0, fmt.Errorf("read count: %w", err)
	}
	return int(n), nil
}
