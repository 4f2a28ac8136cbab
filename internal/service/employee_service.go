package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
)

// EmployeeService covers onboarding and profile management for a company's
// employees.
type EmployeeService struct {
	users domain.UserRepository
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(users domain.UserRepository) *EmployeeService {
	return &EmployeeService{users: users}
}

// OnboardInput attaches an already-registered user to the admin's company.
type OnboardInput struct {
	Email      string
	Position   string
	HourlyRate float64
	Status     domain.EmployeeStatus
	JoinDate   *time.Time
}

// Onboard attaches the user with the given email to the admin's company.
// Affiliation is set exactly once; a user already attached anywhere is
// rejected with ErrAlreadyAffiliated.
func (s *EmployeeService) Onboard(ctx context.Context, adminID uuid.UUID, in OnboardInput) (*domain.User, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CompanyID == nil {
		return nil, domain.ErrCompanyNotFound
	}

	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return nil, domain.Validationf("email is required")
	}
	if in.HourlyRate < 0 {
		return nil, domain.Validationf("hourly rate must not be negative")
	}
	if in.Status == "" {
		in.Status = domain.EmployeeInactive
	}
	if in.Status != domain.EmployeeActive && in.Status != domain.EmployeeInactive {
		return nil, domain.Validationf("unknown employee status %q", in.Status)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != nil {
		return nil, domain.ErrAlreadyAffiliated
	}

	user.CompanyID = admin.CompanyID
	user.Role = domain.RoleEmployee
	user.Position = in.Position
	user.HourlyRate = in.HourlyRate
	user.Status = in.Status
	user.JoinDate = in.JoinDate

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns the admin's company roster.
func (s *EmployeeService) List(ctx context.Context, adminID uuid.UUID) ([]domain.User, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CompanyID == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return s.users.ListByCompany(ctx, *admin.CompanyID)
}

// Get returns one employee profile.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateInput carries the editable profile fields; nil means leave as is.
// Company affiliation is deliberately not editable here.
type UpdateInput struct {
	Name       *string
	Position   *string
	HourlyRate *float64
	Status     *domain.EmployeeStatus
	JoinDate   *time.Time
}

// Update applies the provided fields to the employee. A rate change never
// touches pay already frozen on completed records.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Position != nil {
		user.Position = *in.Position
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return nil, domain.Validationf("hourly rate must not be negative")
		}
		user.HourlyRate = *in.HourlyRate
	}
	if in.Status != nil {
		if *in.Status != domain.EmployeeActive && *in.Status != domain.EmployeeInactive {
			return nil, domain.Validationf("unknown employee status %q", *in.Status)
		}
		user.Status = *in.Status
	}
	if in.JoinDate != nil {
		user.JoinDate = in.JoinDate
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the employee account.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
