package record

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

// SQLStore keeps payloads and normalized snapshots as JSON text.
type SQLStore struct {
	db *sqldb.DB
}

func NewSQL(db *sqldb.DB) *SQLStore {
	return &SQLStore{db: db}
}

const recordColumns = `id, batch_id, source_type, person_id, payload, normalized, created_at`

func (s *SQLStore) Save(ctx context.Context, r *models.RawRecord) error {
	normalized, err := json.Marshal(r.Normalized)
	if err != nil {
		return fmt.Errorf("marshal normalized record: %w", err)
	}
	payload := string(r.Payload)
	if payload == "" {
		payload = "null"
	}
	query := s.db.Rebind(`INSERT INTO raw_records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err = tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		r.ID.String(),
		r.BatchID.String(),
		string(r.SourceType),
		r.PersonID.String(),
		payload,
		string(normalized),
		sqldb.FormatTime(r.CreatedAt),
	)
	if err != nil {
		if sqldb.IsUniqueViolation(err) {
			return fmt.Errorf("save raw record: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("save raw record: %w", err)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, recordID id.RawRecordID) (*models.RawRecord, error) {
	row := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx,
		s.db.Rebind(`SELECT `+recordColumns+` FROM raw_records WHERE id = ?`), recordID.String())
	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find raw record: %w", err)
	}
	return r, nil
}

func (s *SQLStore) ListByPerson(ctx context.Context, personID id.PersonID) ([]*models.RawRecord, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM raw_records WHERE person_id = ? ORDER BY created_at, id`, personID.String())
}

func (s *SQLStore) ListByBatch(ctx context.Context, batchID id.BatchID) ([]*models.RawRecord, error) {
	return s.query(ctx, `SELECT `+recordColumns+` FROM raw_records WHERE batch_id = ? ORDER BY created_at, id`, batchID.String())
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM raw_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count raw records: %w", err)
	}
	return n, nil
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]*models.RawRecord, error) {
	rows, err := tx.ExecerFrom(ctx, s.db.DB).QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list raw records: %w", err)
	}
	defer rows.Close()

	var out []*models.RawRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list raw records: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.RawRecord, error) {
	var (
		r                                    models.RawRecord
		rawID, batchID, sourceType, personID string
		payload, normalized, createdAt       string
	)
	if err := row.Scan(&rawID, &batchID, &sourceType, &personID, &payload, &normalized, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if r.ID, err = id.ParseRawRecordID(rawID); err != nil {
		return nil, err
	}
	if r.BatchID, err = id.ParseBatchID(batchID); err != nil {
		return nil, err
	}
	if r.PersonID, err = id.ParsePersonID(personID); err != nil {
		return nil, err
	}
	r.SourceType = id.SourceType(sourceType)
	r.Payload = json.RawMessage(payload)
	if err := json.Unmarshal([]byte(normalized), &r.Normalized); err != nil {
		return nil, fmt.Errorf("unmarshal normalized record: %w", err)
	}
	if r.CreatedAt, err = sqldb.ParseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}
