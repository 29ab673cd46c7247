package candidate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/platform/sqldb"
	id "kinlead/pkg/domain"
	"kinlead/pkg/platform/sentinel"
	"kinlead/pkg/platform/tx"
)

type SQLStore struct {
	db *sqldb.DB
}

func NewSQL(db *sqldb.DB) *SQLStore {
	return &SQLStore{db: db}
}

const candidateColumns = `id, person_a, person_b, record_id, score, breakdown, status, created_at, reviewed_at`

func (s *SQLStore) Append(ctx context.Context, c *models.MatchCandidate) error {
	breakdown, err := json.Marshal(c.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal score breakdown: %w", err)
	}
	query := s.db.Rebind(`INSERT INTO match_candidates (` + candidateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		c.ID.String(),
		c.PersonA.String(),
		c.PersonB.String(),
		c.RecordID.String(),
		c.Score,
		string(breakdown),
		string(c.Status),
		sqldb.FormatTime(c.CreatedAt),
		reviewedAt(c),
	)
	if err != nil {
		return fmt.Errorf("append match candidate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append match candidate: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("append match candidate: %w", sentinel.ErrAlreadyUsed)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, candidateID id.CandidateID) (*models.MatchCandidate, error) {
	query := s.db.Rebind(`SELECT ` + candidateColumns + ` FROM match_candidates WHERE id = ?`)
	c, err := scanCandidate(tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, query, candidateID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find match candidate: %w", err)
	}
	return c, nil
}

func (s *SQLStore) ListByStatus(ctx context.Context, status models.CandidateStatus) ([]*models.MatchCandidate, error) {
	query := s.db.Rebind(`SELECT ` + candidateColumns + ` FROM match_candidates WHERE status = ? ORDER BY created_at, id`)
	rows, err := tx.ExecerFrom(ctx, s.db.DB).QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list match candidates: %w", err)
	}
	defer rows.Close()

	var out []*models.MatchCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list match candidates: %w", err)
	}
	return out, nil
}

func (s *SQLStore) CountByStatus(ctx context.Context, status models.CandidateStatus) (int, error) {
	query := s.db.Rebind(`SELECT COUNT(1) FROM match_candidates WHERE status = ?`)
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, query, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count match candidates: %w", err)
	}
	return n, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, c *models.MatchCandidate) error {
	query := s.db.Rebind(`UPDATE match_candidates SET status = ?, reviewed_at = ? WHERE id = ?`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query, string(c.Status), reviewedAt(c), c.ID.String())
	if err != nil {
		return fmt.Errorf("update match candidate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match candidate: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func reviewedAt(c *models.MatchCandidate) sql.NullString {
	if c.ReviewedAt == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: sqldb.FormatTime(*c.ReviewedAt), Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (*models.MatchCandidate, error) {
	var (
		c                              models.MatchCandidate
		rawID, personA, personB, recID string
		breakdown, status, createdAt   string
		reviewed                       sql.NullString
	)
	err := row.Scan(&rawID, &personA, &personB, &recID, &c.Score, &breakdown, &status, &createdAt, &reviewed)
	if err != nil {
		return nil, err
	}
	if c.ID, err = id.ParseCandidateID(rawID); err != nil {
		return nil, err
	}
	if c.PersonA, err = id.ParsePersonID(personA); err != nil {
		return nil, err
	}
	if c.PersonB, err = id.ParsePersonID(personB); err != nil {
		return nil, err
	}
	if c.RecordID, err = id.ParseRawRecordID(recID); err != nil {
		return nil, err
	}
	if err = json.Unmarshal([]byte(breakdown), &c.Breakdown); err != nil {
		return nil, err
	}
	c.Status = models.CandidateStatus(status)
	if c.CreatedAt, err = sqldb.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if reviewed.Valid {
		t, err := sqldb.ParseTime(reviewed.String)
		if err != nil {
			return nil, err
		}
		c.ReviewedAt = &t
	}
	return &c, nil
}
