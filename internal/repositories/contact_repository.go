package repositories

import (
	"context"
	"errors"
	"strings"

	"contacts-api/internal/interfaces"
	"contacts-api/internal/schemas"

	"github.com/jackc/pgx/v5"
)

const contactColumns = "id, first_name, last_name, email, phone_number, birthday_date, info, user_id, created_at, updated_at"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContactRepository is the contact store. Every query is scoped to the owning user.
type ContactRepository struct {
	db interfaces.DBTX
}

func NewContactRepository(db interfaces.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns the contacts of owner whose names and email contain the filter substrings.
func (r *ContactRepository) List(ctx context.Context, owner int64, filter schemas.ContactFilter) ([]*schemas.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE user_id = $1
		AND first_name LIKE $2 ESCAPE '\'
		AND last_name LIKE $3 ESCAPE '\'
		AND email LIKE $4 ESCAPE '\'
		ORDER BY id
		OFFSET $5 LIMIT $6`

	rows, err := r.db.Query(ctx, query, owner,
		containsPattern(filter.FirstName), containsPattern(filter.LastName), containsPattern(filter.Email),
		filter.Skip, filter.Limit)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// ListByOwner returns every contact of owner.
func (r *ContactRepository) ListByOwner(ctx context.Context, owner int64) ([]*schemas.Contact, error) {
	rows, err := r.db.Query(ctx, "SELECT "+contactColumns+" FROM contacts WHERE user_id = $1 ORDER BY id", owner)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// Get returns nil, nil when owner has no contact with that id.
func (r *ContactRepository) Get(ctx context.Context, owner, id int64) (*schemas.Contact, error) {
	query := "SELECT " + contactColumns + " FROM contacts WHERE id = $1 AND user_id = $2"
	return findContact(r.db.QueryRow(ctx, query, id, owner))
}

// ExistsByEmailOrPhone reports whether any contact, of any owner, already uses the email or the phone number.
func (r *ContactRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM contacts WHERE email = $1 OR phone_number = $2)", email, phone).Scan(&exists)
	return exists, err
}

// Create inserts a contact for owner.
func (r *ContactRepository) Create(ctx context.Context, owner int64, c schemas.NewContact) (*schemas.Contact, error) {
	query := `INSERT INTO contacts (first_name, last_name, email, phone_number, birthday_date, info, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + contactColumns

	contact, err := scanContact(r.db.QueryRow(ctx, query,
		c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.BirthdayDate, c.Info, owner))
	if err != nil {
		return nil, translateError(err)
	}
	return contact, nil
}

// Update applies the non-nil fields of patch and refreshes updated_at.
// It returns nil, nil when owner has no contact with that id.
func (r *ContactRepository) Update(ctx context.Context, owner, id int64, patch schemas.ContactPatch) (*schemas.Contact, error) {
	query := `UPDATE contacts SET
		first_name = COALESCE($1, first_name),
		last_name = COALESCE($2, last_name),
		email = COALESCE($3, email),
		phone_number = COALESCE($4, phone_number),
		birthday_date = COALESCE($5, birthday_date),
		info = COALESCE($6, info),
		updated_at = now()
		WHERE id = $7 AND user_id = $8
		RETURNING ` + contactColumns

	contact, err := findContact(r.db.QueryRow(ctx, query,
		patch.FirstName, patch.LastName, patch.Email, patch.PhoneNumber, patch.BirthdayDate, patch.Info, id, owner))
	if err != nil {
		return nil, translateError(err)
	}
	return contact, nil
}

// Delete removes the contact and returns it, or nil, nil when owner has no contact with that id.
func (r *ContactRepository) Delete(ctx context.Context, owner, id int64) (*schemas.Contact, error) {
	query := "DELETE FROM contacts WHERE id = $1 AND user_id = $2 RETURNING " + contactColumns
	return findContact(r.db.QueryRow(ctx, query, id, owner))
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func findContact(row pgx.Row) (*schemas.Contact, error) {
	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func collectContacts(rows pgx.Rows) ([]*schemas.Contact, error) {
	defer rows.Close()

	contacts := make([]*schemas.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func scanContact(row pgx.Row) (*schemas.Contact, error) {
	c := &schemas.Contact{}
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.BirthdayDate,
		&c.Info, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
