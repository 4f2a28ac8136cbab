package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/repository/builder"
)

type bonusRepository struct {
	db *sql.DB
}

// NewBonusRepository creates a Postgres-backed bonus ledger repository.
func NewBonusRepository(db *sql.DB) domain.BonusRepository {
	return &bonusRepository{db: db}
}

func (r *bonusRepository) Create(ctx context.Context, b *domain.Bonus) error {
	query, args := builder.New().
		Insert("bonuses", "id", "employee_id", "type", "amount", "reason", "created_by", "date").
		Values(b.ID, b.EmployeeID, b.Type, b.Amount, b.Reason, b.CreatedBy, b.Date).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create bonus: %w", err)
	}
	return nil
}

func (r *bonusRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.Bonus, error) {
	query, args := builder.New().
		Select("id", "employee_id", "type", "amount", "reason", "created_by", "date").
		From("bonuses").
		Where("employee_id = ?", employeeID).
		OrderBy("date DESC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	bonuses := []domain.Bonus{}
	for rows.Next() {
		var b domain.Bonus
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Type, &b.Amount, &b.Reason, &b.CreatedBy, &b.Date); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bonus query error: %w", err)
	}
	return bonuses, nil
}
