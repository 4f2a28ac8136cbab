package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/logger"
)

// Mailer sends a notification email. Implementations must be safe for
// concurrent use; delivery is best-effort.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// BonusService maintains the bonus/penalty ledger. Entries sit next to the
// computed payroll figures but never feed into them.
type BonusService struct {
	users   domain.UserRepository
	bonuses domain.BonusRepository
	mailer  Mailer
	now     func() time.Time
}

// NewBonusService wires the ledger. mailer may be nil to disable emails.
func NewBonusService(users domain.UserRepository, bonuses domain.BonusRepository, mailer Mailer) *BonusService {
	return &BonusService{users: users, bonuses: bonuses, mailer: mailer, now: time.Now}
}

// BonusInput is a new ledger entry.
type BonusInput struct {
	EmployeeID uuid.UUID
	Type       domain.BonusType
	Amount     float64
	Reason     string
}

// Create validates and stores the entry, then emails the employee in the
// background. A failed email never aborts the write.
func (s *BonusService) Create(ctx context.Context, creatorID uuid.UUID, in BonusInput) (*domain.Bonus, error) {
	if in.Type != domain.BonusTypeBonus && in.Type != domain.BonusTypePenalty {
		return nil, domain.Validationf("unknown bonus type %q", in.Type)
	}
	if in.Amount <= 0 {
		return nil, domain.Validationf("amount must be positive")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.Validationf("reason is required")
	}

	employee, err := s.users.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	bonus := &domain.Bonus{
		ID:         uuid.New(),
		EmployeeID: employee.ID,
		Type:       in.Type,
		Amount:     in.Amount,
		Reason:     in.Reason,
		CreatedBy:  creatorID,
		Date:       s.now(),
	}
	if err := s.bonuses.Create(ctx, bonus); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go s.notify(employee, bonus)
	}
	return bonus, nil
}

func (s *BonusService) notify(employee *domain.User, bonus *domain.Bonus) {
	kind, title := "bonus", "Bonus"
	if bonus.Type == domain.BonusTypePenalty {
		kind, title = "penalty", "Penalty"
	}
	subject := fmt.Sprintf("Workly: a %s has been recorded", kind)
	body := fmt.Sprintf(
		"<h2>%s notification</h2>"+
			"<p>Dear %s,</p>"+
			"<p>A %s of %.2f has been recorded on your account.</p>"+
			"<p><strong>Reason:</strong> %s</p>"+
			"<br><p>Workly Administration</p>",
		title, employee.Name, kind, bonus.Amount, bonus.Reason)

	if err := s.mailer.Send(employee.Email, subject, body); err != nil {
		logger.Error(context.Background(), "failed to send bonus notification", err)
	}
}

// ListByEmployee returns the employee's ledger, newest first.
func (s *BonusService) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Bonus, error) {
	return s.bonuses.ListByEmployee(ctx, employeeID)
}
