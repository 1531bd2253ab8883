package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lzradio/lzradio-backend/internal/model"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactRepository handles logbook contact data access.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `id, base_callsign, prefix, suffix, date, time, frequency, mode,
	 power, rst_sent, rst_received, qsl_sent, qsl_received, remarks, created_at, updated_at`

func scanContact(row pgx.Row) (*model.Contact, error) {
	c := &model.Contact{}
	err := row.Scan(&c.ID, &c.BaseCallsign, &c.Prefix, &c.Suffix, &c.Date, &c.Time,
		&c.Frequency, &c.Mode, &c.Power, &c.RSTSent, &c.RSTReceived,
		&c.QSLSent, &c.QSLReceived, &c.Remarks, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a contact by ID.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
}

// List retrieves all contacts, most recent QSO first.
func (r *ContactRepository) List(ctx context.Context) ([]model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY date DESC, time DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

// SearchByCallsign retrieves contacts whose base callsign contains the
// given fragment, case-insensitively, most recent first.
func (r *ContactRepository) SearchByCallsign(ctx context.Context, fragment string) ([]model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE base_callsign ILIKE '%' || $1 || '%'
		 ORDER BY date DESC, time DESC, id DESC`, fragment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

func collectContacts(rows pgx.Rows) ([]model.Contact, error) {
	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.BaseCallsign, &c.Prefix, &c.Suffix, &c.Date, &c.Time,
			&c.Frequency, &c.Mode, &c.Power, &c.RSTSent, &c.RSTReceived,
			&c.QSLSent, &c.QSLReceived, &c.Remarks, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Count returns the total number of logged contacts.
func (r *ContactRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total)
	return total, err
}

// Create inserts a new contact and fills in its ID and timestamps.
func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (base_callsign, prefix, suffix, date, time, frequency, mode,
		                       power, rst_sent, rst_received, qsl_sent, qsl_received, remarks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		c.BaseCallsign, c.Prefix, c.Suffix, c.Date, c.Time, c.Frequency, c.Mode,
		c.Power, c.RSTSent, c.RSTReceived, c.QSLSent, c.QSLReceived, c.Remarks,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// BulkCreate inserts many contacts in one round trip. Used by import.
func (r *ContactRepository) BulkCreate(ctx context.Context, contacts []model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	baseCallsigns := make([]string, len(contacts))
	prefixes := make([]*string, len(contacts))
	suffixes := make([]*string, len(contacts))
	dates := make([]string, len(contacts))
	times := make([]string, len(contacts))
	frequencies := make([]float64, len(contacts))
	modes := make([]string, len(contacts))
	powers := make([]*float64, len(contacts))
	rstSent := make([]*string, len(contacts))
	rstReceived := make([]*string, len(contacts))
	qslSent := make([]bool, len(contacts))
	qslReceived := make([]bool, len(contacts))
	remarks := make([]string, len(contacts))

	for i, c := range contacts {
		baseCallsigns[i] = c.BaseCallsign
		prefixes[i] = c.Prefix
		suffixes[i] = c.Suffix
		dates[i] = c.Date
		times[i] = c.Time
		frequencies[i] = c.Frequency
		modes[i] = c.Mode
		powers[i] = c.Power
		rstSent[i] = c.RSTSent
		rstReceived[i] = c.RSTReceived
		qslSent[i] = c.QSLSent
		qslReceived[i] = c.QSLReceived
		remarks[i] = c.Remarks
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO contacts (base_callsign, prefix, suffix, date, time, frequency, mode,
		                       power, rst_sent, rst_received, qsl_sent, qsl_received, remarks)
		 SELECT * FROM UNNEST(
			$1::text[], $2::text[], $3::text[], $4::text[], $5::text[],
			$6::float8[], $7::text[], $8::float8[], $9::text[], $10::text[],
			$11::bool[], $12::bool[], $13::text[])`,
		baseCallsigns, prefixes, suffixes, dates, times, frequencies, modes,
		powers, rstSent, rstReceived, qslSent, qslReceived, remarks)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Update applies the non-nil fields of req to the contact and returns
// the updated row.
func (r *ContactRepository) Update(ctx context.Context, id int64, req *model.UpdateContactRequest) (*model.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx,
		`UPDATE contacts SET
			base_callsign = COALESCE($2, base_callsign),
			prefix        = COALESCE($3, prefix),
			suffix        = COALESCE($4, suffix),
			date          = COALESCE($5, date),
			time          = COALESCE($6, time),
			frequency     = COALESCE($7, frequency),
			mode          = COALESCE($8, mode),
			power         = COALESCE($9, power),
			rst_sent      = COALESCE($10, rst_sent),
			rst_received  = COALESCE($11, rst_received),
			qsl_sent      = COALESCE($12, qsl_sent),
			qsl_received  = COALESCE($13, qsl_received),
			remarks       = COALESCE($14, remarks),
			updated_at    = NOW()
		 WHERE id = $1
		 RETURNING `+contactColumns,
		id, req.BaseCallsign, req.Prefix, req.Suffix, req.Date, req.Time,
		req.Frequency, req.Mode, req.Power, req.RSTSent, req.RSTReceived,
		req.QSLSent, req.QSLReceived, req.Remarks))
}

// Delete removes a contact by ID.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}
