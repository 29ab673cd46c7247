package relationship

import (
	"context"
	"fmt"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/platform/sqldb"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/tx"
)

type SQLStore struct {
	db *sqldb.DB
}

func NewSQL(db *sqldb.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Add(ctx context.Context, e models.RelationshipEdge) (bool, error) {
	if err := validateEdge(e); err != nil {
		return false, err
	}
	query := s.db.Rebind(`INSERT INTO relationships (person_id, related_person_id, relationship_type, confidence)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		e.PersonID.String(), e.RelatedPersonID.String(), string(e.Type), e.Confidence)
	if err != nil {
		return false, fmt.Errorf("add relationship: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add relationship: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLStore) EdgesFrom(ctx context.Context, personID id.PersonID, relType models.RelationshipType) ([]models.RelationshipEdge, error) {
	query := s.db.Rebind(`SELECT related_person_id, confidence FROM relationships
		WHERE person_id = ? AND relationship_type = ?
		ORDER BY related_person_id`)
	rows, err := tx.ExecerFrom(ctx, s.db.DB).QueryContext(ctx, query, personID.String(), string(relType))
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var out []models.RelationshipEdge
	for rows.Next() {
		var (
			related    string
			confidence float64
		)
		if err := rows.Scan(&related, &confidence); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		relatedID, err := id.ParsePersonID(related)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		out = append(out, models.RelationshipEdge{
			PersonID:        personID,
			RelatedPersonID: relatedID,
			Type:            relType,
			Confidence:      confidence,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return out, nil
}

func (s *SQLStore) CountTouching(ctx context.Context, personID id.PersonID) (int, error) {
	query := s.db.Rebind(`SELECT COUNT(1) FROM relationships WHERE person_id = ? OR related_person_id = ?`)
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, query, personID.String(), personID.String()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM relationships").Scan(&n); err != nil {
		return 0, fmt.Errorf("count relationships: %w", err)
	}
	return n, nil
}
