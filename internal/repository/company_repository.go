package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/repository/builder"
)

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a Postgres-backed company repository.
func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	var code sql.NullString
	var expiry sql.NullTime
	if c.Token != nil {
		code = sql.NullString{String: c.Token.Code, Valid: true}
		expiry = sql.NullTime{Time: c.Token.ExpiresAt, Valid: true}
	}

	query, args := builder.New().
		Insert("companies", "id", "name", "owner_id", "qr_code", "qr_code_expiry").
		Values(c.ID, c.Name, c.OwnerID, code, expiry).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query, args := builder.New().
		Select("id", "name", "owner_id", "qr_code", "qr_code_expiry", "created_at", "updated_at").
		From("companies").
		Where("id = ?", id).
		Build()

	var c domain.Company
	var code sql.NullString
	var expiry sql.NullTime
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&c.ID, &c.Name, &c.OwnerID, &code, &expiry, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if code.Valid && expiry.Valid {
		c.Token = &domain.QRToken{Code: code.String, ExpiresAt: expiry.Time}
	}
	return &c, nil
}

func (r *companyRepository) ReplaceToken(ctx context.Context, companyID uuid.UUID, token domain.QRToken) error {
	query, args := builder.New().
		Update("companies").
		Set("qr_code", token.Code).
		Set("qr_code_expiry", token.ExpiresAt).
		Where("id = ?", companyID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to replace qr token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to replace qr token: %w", err)
	}
	if affected == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}
