package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/repository/builder"
)

const userColumns = "id, name, email, password_hash, role, company_id, position, hourly_rate, status, join_date, created_at, updated_at"

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a Postgres-backed user repository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var u domain.User
	var companyID uuid.NullUUID
	var joinDate sql.NullTime
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &companyID,
		&u.Position, &u.HourlyRate, &u.Status, &joinDate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if companyID.Valid {
		id := companyID.UUID
		u.CompanyID = &id
	}
	if joinDate.Valid {
		t := joinDate.Time
		u.JoinDate = &t
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query, args := builder.New().
		Insert("users", "id", "name", "email", "password_hash", "role", "company_id",
			"position", "hourly_rate", "status", "join_date").
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, uuidOrNil(u.CompanyID),
			u.Position, u.HourlyRate, u.Status, timeOrNil(u.JoinDate)).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args := builder.New().
		Select(userColumns).
		From("users").
		Where("id = ?", id).
		Build()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args := builder.New().
		Select(userColumns).
		From("users").
		Where("email = ?", email).
		Build()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("SELECT %s FROM users WHERE id IN (%s)",
		userColumns, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.User, error) {
	query, args := builder.New().
		Select(userColumns).
		From("users").
		Where("company_id = ?", companyID).
		OrderBy("name ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by company: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query, args := builder.New().
		Update("users").
		Set("name", u.Name).
		Set("role", u.Role).
		Set("company_id", uuidOrNil(u.CompanyID)).
		Set("position", u.Position).
		Set("hourly_rate", u.HourlyRate).
		Set("status", u.Status).
		Set("join_date", timeOrNil(u.JoinDate)).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", u.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args := builder.New().
		Delete("users").
		Where("id = ?", id).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user query error: %w", err)
	}
	return users, nil
}

func uuidOrNil(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
