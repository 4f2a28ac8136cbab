package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CompanyRepository persists companies and their current QR token.
type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	// ReplaceToken overwrites the current token in a single write.
	// Concurrent reissues resolve last-write-wins.
	ReplaceToken(ctx context.Context, companyID uuid.UUID, token QRToken) error
}

// UserRepository persists admin and employee accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimeRecordRepository persists shift records.
type TimeRecordRepository interface {
	// Create inserts the record. When the employee already has an active
	// record the insert fails atomically with ErrShiftAlreadyOpen.
	Create(ctx context.Context, r *TimeRecord) error
	Update(ctx context.Context, r *TimeRecord) error

	// FindActive returns the employee's open record regardless of its date,
	// or ErrRecordNotFound.
	FindActive(ctx context.Context, employeeID uuid.UUID) (*TimeRecord, error)
	// FindActiveForDay returns the open record dated within
	// [dayStart, dayStart+24h), or ErrRecordNotFound.
	FindActiveForDay(ctx context.Context, employeeID uuid.UUID, dayStart time.Time) (*TimeRecord, error)

	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]TimeRecord, error)
	ListByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]TimeRecord, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]TimeRecord, error)
	ListAll(ctx context.Context) ([]TimeRecord, error)
	ListCompleted(ctx context.Context) ([]TimeRecord, error)
	ListCompletedByEmployee(ctx context.Context, employeeID uuid.UUID) ([]TimeRecord, error)
}

// BonusRepository persists the bonus/penalty ledger.
type BonusRepository interface {
	Create(ctx context.Context, b *Bonus) error
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Bonus, error)
}
