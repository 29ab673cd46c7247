package person

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

// SQLStore persists persons in PostgreSQL or SQLite. The identity key column
// is written once on insert; its unique index makes concurrent creation of the
// same identity fail for all but one writer.
type SQLStore struct {
	db *sqldb.DB
}

func NewSQL(db *sqldb.DB) *SQLStore {
	return &SQLStore{db: db}
}

const personColumns = `id, first_name, middle_name, last_name, birth_date, birth_place, birth_city,
	birth_state, birth_country, death_date, death_place, sex, confidence_score, source_record_ids,
	created_at, updated_at`

func (s *SQLStore) CreateIfIdentityAvailable(ctx context.Context, p *models.Person) error {
	return s.insert(ctx, p, p.IdentityKey())
}

// CreateUnkeyed inserts p with a NULL identity key, so it never blocks or
// matches a later identity lookup.
func (s *SQLStore) CreateUnkeyed(ctx context.Context, p *models.Person) error {
	return s.insert(ctx, p, "")
}

func (s *SQLStore) insert(ctx context.Context, p *models.Person, identityKey string) error {
	sources, err := json.Marshal(sourceIDs(p))
	if err != nil {
		return fmt.Errorf("marshal source record ids: %w", err)
	}
	query := s.db.Rebind(`INSERT INTO persons (identity_key, ` + personColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		sqldb.NullString(identityKey),
		p.ID.String(),
		p.FirstName,
		p.MiddleName,
		p.LastName,
		sqldb.NullString(p.BirthDate.String()),
		p.BirthPlace,
		p.BirthCity,
		p.BirthState,
		p.BirthCountry,
		sqldb.NullString(p.DeathDate.String()),
		p.DeathPlace,
		p.Sex,
		p.ConfidenceScore,
		string(sources),
		sqldb.FormatTime(p.CreatedAt),
		sqldb.FormatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("create person: %w", sentinel.ErrAlreadyUsed)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, p *models.Person) error {
	sources, err := json.Marshal(sourceIDs(p))
	if err != nil {
		return fmt.Errorf("marshal source record ids: %w", err)
	}
	query := s.db.Rebind(`UPDATE persons SET
		first_name = ?, middle_name = ?, last_name = ?, birth_date = ?, birth_place = ?,
		birth_city = ?, birth_state = ?, birth_country = ?, death_date = ?, death_place = ?,
		sex = ?, confidence_score = ?, source_record_ids = ?, updated_at = ?
		WHERE id = ?`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		p.FirstName,
		p.MiddleName,
		p.LastName,
		sqldb.NullString(p.BirthDate.String()),
		p.BirthPlace,
		p.BirthCity,
		p.BirthState,
		p.BirthCountry,
		sqldb.NullString(p.DeathDate.String()),
		p.DeathPlace,
		p.Sex,
		p.ConfidenceScore,
		string(sources),
		sqldb.FormatTime(p.UpdatedAt),
		p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error) {
	query := s.db.Rebind(`SELECT ` + personColumns + ` FROM persons WHERE id = ?`)
	row := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, query, personID.String())
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person by id: %w", err)
	}
	return p, nil
}

func (s *SQLStore) FindByIdentityKey(ctx context.Context, key string) (*models.Person, error) {
	if key == "" {
		return nil, sentinel.ErrNotFound
	}
	query := s.db.Rebind(`SELECT ` + personColumns + ` FROM persons WHERE identity_key = ?`)
	row := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, query, key)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find person by identity key: %w", err)
	}
	return p, nil
}

// ListAll returns every person, oldest first.
func (s *SQLStore) ListAll(ctx context.Context) ([]*models.Person, error) {
	return s.query(ctx, `SELECT `+personColumns+` FROM persons ORDER BY created_at, id`)
}

// ListBornBetween compares ISO date text, which sorts chronologically.
func (s *SQLStore) ListBornBetween(ctx context.Context, from, to models.Date) ([]*models.Person, error) {
	return s.query(ctx, `SELECT `+personColumns+` FROM persons
		WHERE birth_date IS NULL OR (birth_date >= ? AND birth_date <= ?)
		ORDER BY created_at, id`, from.String(), to.String())
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM persons").Scan(&n); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]*models.Person, error) {
	rows, err := tx.ExecerFrom(ctx, s.db.DB).QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPerson(row scanner) (*models.Person, error) {
	var (
		p                    models.Person
		rawID, sources       string
		birthDate, deathDate sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(
		&rawID,
		&p.FirstName,
		&p.MiddleName,
		&p.LastName,
		&birthDate,
		&p.BirthPlace,
		&p.BirthCity,
		&p.BirthState,
		&p.BirthCountry,
		&deathDate,
		&p.DeathPlace,
		&p.Sex,
		&p.ConfidenceScore,
		&sources,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.ID, err = id.ParsePersonID(rawID); err != nil {
		return nil, err
	}
	p.BirthDate, _ = models.ParseISODate(birthDate.String)
	p.DeathDate, _ = models.ParseISODate(deathDate.String)
	if err := json.Unmarshal([]byte(sources), &p.SourceRecordIDs); err != nil {
		return nil, fmt.Errorf("unmarshal source record ids: %w", err)
	}
	if p.CreatedAt, err = sqldb.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = sqldb.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// sourceIDs never returns nil so the column always holds a JSON array.
func sourceIDs(p *models.Person) []id.RawRecordID {
	if p.SourceRecordIDs == nil {
		return []id.RawRecordID{}
	}
	return p.SourceRecordIDs
}
