package address

import (
	"context"
	"database/sql"
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

const addressColumns = `id, person_id, record_id, street, city, state, country, postal_code,
	full_address, from_date, to_date, created_at`

// Link relies on the (person_id, address_key) unique constraint; a repeated
// address is skipped without aborting an enclosing transaction.
func (s *SQLStore) Link(ctx context.Context, addr models.Address) (bool, error) {
	query := s.db.Rebind(`INSERT INTO addresses (address_key, ` + addressColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	res, err := tx.ExecerFrom(ctx, s.db.DB).ExecContext(ctx, query,
		addr.Key(),
		addr.ID.String(),
		addr.PersonID.String(),
		addr.RecordID.String(),
		addr.Street,
		addr.City,
		addr.State,
		addr.Country,
		addr.PostalCode,
		addr.FullAddress,
		sqldb.NullString(addr.FromDate.String()),
		sqldb.NullString(addr.ToDate.String()),
		sqldb.FormatTime(addr.CreatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("link address: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link address: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLStore) ListByPerson(ctx context.Context, personID id.PersonID) ([]models.Address, error) {
	query := s.db.Rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE person_id = ? ORDER BY created_at, id`)
	rows, err := tx.ExecerFrom(ctx, s.db.DB).QueryContext(ctx, query, personID.String())
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var out []models.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.ExecerFrom(ctx, s.db.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM addresses").Scan(&n); err != nil {
		return 0, fmt.Errorf("count addresses: %w", err)
	}
	return n, nil
}

func scanAddress(rows *sql.Rows) (models.Address, error) {
	var (
		a                         models.Address
		rawID, personID, recordID string
		fromDate, toDate          sql.NullString
		createdAt                 string
	)
	err := rows.Scan(
		&rawID,
		&personID,
		&recordID,
		&a.Street,
		&a.City,
		&a.State,
		&a.Country,
		&a.PostalCode,
		&a.FullAddress,
		&fromDate,
		&toDate,
		&createdAt,
	)
	if err != nil {
		return a, err
	}
	if a.ID, err = id.ParseAddressID(rawID); err != nil {
		return a, err
	}
	if a.PersonID, err = id.ParsePersonID(personID); err != nil {
		return a, err
	}
	if a.RecordID, err = id.ParseRawRecordID(recordID); err != nil {
		return a, err
	}
	a.FromDate, _ = models.ParseISODate(fromDate.String)
	a.ToDate, _ = models.ParseISODate(toDate.String)
	if a.CreatedAt, err = sqldb.ParseTime(createdAt); err != nil {
		return a, err
	}
	return a, nil
}
