package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"contacts-api/internal/interfaces"
	"contacts-api/internal/repositories"
	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5"
)

// ContactService manages the contacts of one owner per call.
type ContactService struct {
	pool interfaces.PgxPoolIface
	now  func() time.Time
}

func NewContactService(pool interfaces.PgxPoolIface) *ContactService {
	return &ContactService{pool: pool, now: time.Now}
}

// WithClock replaces the clock used by UpcomingBirthdays.
func (s *ContactService) WithClock(now func() time.Time) *ContactService {
	s.now = now
	return s
}

func (s *ContactService) List(ctx context.Context, owner int64, filter schemas.ContactFilter) ([]*schemas.Contact, error) {
	var contacts []*schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		contacts, err = repositories.NewContactRepository(tx).List(ctx, owner, filter)
		return err
	})
	return contacts, err
}

func (s *ContactService) Get(ctx context.Context, owner, id int64) (*schemas.Contact, error) {
	var contact *schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		contact, err = repositories.NewContactRepository(tx).Get(ctx, owner, id)
		if err == nil && contact == nil {
			return schemas.ContactNotFound
		}
		return err
	})
	return contact, err
}

// Create rejects contacts whose email or phone number is already used by any contact.
func (s *ContactService) Create(ctx context.Context, owner int64, c schemas.NewContact) (*schemas.Contact, error) {
	var contact *schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		contacts := repositories.NewContactRepository(tx)

		exists, err := contacts.ExistsByEmailOrPhone(ctx, c.Email, c.PhoneNumber)
		if err != nil {
			return err
		}
		if exists {
			return schemas.ContactExists
		}

		contact, err = contacts.Create(ctx, owner, c)
		return contactConflict(err)
	})
	if err != nil {
		return nil, err
	}

	utils.LogMessageWithFields(ctx, "info", "Contact created")
	return contact, nil
}

// Update applies a partial update.
func (s *ContactService) Update(ctx context.Context, owner, id int64, patch schemas.ContactPatch) (*schemas.Contact, error) {
	var contact *schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		contact, err = repositories.NewContactRepository(tx).Update(ctx, owner, id, patch)
		if err != nil {
			return contactConflict(err)
		}
		if contact == nil {
			return schemas.ContactNotFound
		}
		return nil
	})
	return contact, err
}

// Delete removes the contact and returns it.
func (s *ContactService) Delete(ctx context.Context, owner, id int64) (*schemas.Contact, error) {
	var contact *schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		contact, err = repositories.NewContactRepository(tx).Delete(ctx, owner, id)
		if err == nil && contact == nil {
			return schemas.ContactNotFound
		}
		return err
	})
	return contact, err
}

// UpcomingBirthdays returns the contacts whose next birthday is at most days away,
// ordered by month and day.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, owner int64, days int) ([]*schemas.Contact, error) {
	var all []*schemas.Contact
	err := inTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		all, err = repositories.NewContactRepository(tx).ListByOwner(ctx, owner)
		return err
	})
	if err != nil {
		return nil, err
	}

	today := s.now()
	upcoming := make([]*schemas.Contact, 0)
	for _, c := range all {
		if utils.BirthdayWithin(c.BirthdayDate, today, days) {
			upcoming = append(upcoming, c)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		oi, oj := utils.BirthdayOrdinal(upcoming[i].BirthdayDate), utils.BirthdayOrdinal(upcoming[j].BirthdayDate)
		if oi != oj {
			return oi < oj
		}
		return upcoming[i].ID < upcoming[j].ID
	})
	return upcoming, nil
}

func contactConflict(err error) error {
	if errors.Is(err, repositories.ErrUniqueViolation) {
		return schemas.ContactExists
	}
	return err
}
