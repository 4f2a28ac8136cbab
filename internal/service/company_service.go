package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
)

// CompanyService issues and validates the rotating QR token.
type CompanyService struct {
	users     domain.UserRepository
	companies domain.CompanyRepository
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewCompanyService creates a CompanyService. A zero tokenTTL falls back to
// the 24h default.
func NewCompanyService(users domain.UserRepository, companies domain.CompanyRepository, tokenTTL time.Duration) *CompanyService {
	if tokenTTL <= 0 {
		tokenTTL = domain.DefaultTokenTTL
	}
	return &CompanyService{
		users:     users,
		companies: companies,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// IssueQRCode generates a fresh token for the admin's company and overwrites
// the previous one in a single write. Whichever concurrent reissue lands last
// wins; there is never more than one current token.
func (s *CompanyService) IssueQRCode(ctx context.Context, adminID uuid.UUID) (*domain.QRToken, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CompanyID == nil {
		return nil, domain.ErrCompanyNotFound
	}

	company, err := s.companies.GetByID(ctx, *admin.CompanyID)
	if err != nil {
		return nil, err
	}

	token, err := domain.NewQRToken(s.now(), s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue qr code: %w", err)
	}
	if err := s.companies.ReplaceToken(ctx, company.ID, token); err != nil {
		return nil, err
	}
	return &token, nil
}

// GetCompany returns the admin's company.
func (s *CompanyService) GetCompany(ctx context.Context, adminID uuid.UUID) (*domain.Company, error) {
	admin, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin.CompanyID == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return s.companies.GetByID(ctx, *admin.CompanyID)
}
