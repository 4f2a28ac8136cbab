package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/repository/builder"
)

// uniqueViolation is the Postgres error code raised when an insert hits a
// unique index, including the partial one guarding a single active record.
const uniqueViolation = "23505"

const recordColumns = "id, employee_id, company_id, date, clock_in, clock_out, total_hours, calculated_pay, status, created_at, updated_at"

type timeRecordRepository struct {
	db *sql.DB
}

// NewTimeRecordRepository creates a Postgres-backed time record repository.
func NewTimeRecordRepository(db *sql.DB) domain.TimeRecordRepository {
	return &timeRecordRepository{db: db}
}

func scanRecord(row interface{ Scan(...interface{}) error }) (*domain.TimeRecord, error) {
	var rec domain.TimeRecord
	var clockOut sql.NullTime
	var hours, pay sql.NullFloat64
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date, &rec.ClockIn,
		&clockOut, &hours, &pay, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t := clockOut.Time
		rec.ClockOut = &t
	}
	if hours.Valid {
		h := hours.Float64
		rec.TotalHours = &h
	}
	if pay.Valid {
		p := pay.Float64
		rec.CalculatedPay = &p
	}
	return &rec, nil
}

// Create inserts the record. The partial unique index on
// (employee_id) WHERE status = 'active' makes the no-open-record
// precondition atomic; a violation surfaces as ErrShiftAlreadyOpen.
func (r *timeRecordRepository) Create(ctx context.Context, rec *domain.TimeRecord) error {
	query, args := builder.New().
		Insert("time_records", "id", "employee_id", "company_id", "date", "clock_in", "status").
		Values(rec.ID, rec.EmployeeID, rec.CompanyID, rec.Date, rec.ClockIn, rec.Status).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrShiftAlreadyOpen
		}
		return fmt.Errorf("failed to create time record: %w", err)
	}
	return nil
}

func (r *timeRecordRepository) Update(ctx context.Context, rec *domain.TimeRecord) error {
	var clockOut, hours, pay interface{}
	if rec.ClockOut != nil {
		clockOut = *rec.ClockOut
	}
	if rec.TotalHours != nil {
		hours = *rec.TotalHours
	}
	if rec.CalculatedPay != nil {
		pay = *rec.CalculatedPay
	}

	query, args := builder.New().
		Update("time_records").
		Set("clock_out", clockOut).
		Set("total_hours", hours).
		Set("calculated_pay", pay).
		Set("status", rec.Status).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", rec.ID).
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update time record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update time record: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *timeRecordRepository) FindActive(ctx context.Context, employeeID uuid.UUID) (*domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("employee_id = ?", employeeID).
		Where("status = ?", domain.RecordActive).
		Limit(1).
		Build()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find active record: %w", err)
	}
	return rec, nil
}

func (r *timeRecordRepository) FindActiveForDay(ctx context.Context, employeeID uuid.UUID, dayStart time.Time) (*domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("employee_id = ?", employeeID).
		Where("status = ?", domain.RecordActive).
		Where("date >= ? AND date < ?", dayStart, dayStart.Add(24*time.Hour)).
		Limit(1).
		Build()

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find active record for day: %w", err)
	}
	return rec, nil
}

func (r *timeRecordRepository) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("employee_id = ?", employeeID).
		OrderBy("date DESC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) ListByEmployeeBetween(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", start, end).
		OrderBy("date ASC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("date >= ? AND date <= ?", start, end).
		OrderBy("date ASC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) ListAll(ctx context.Context) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		OrderBy("date DESC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) ListCompleted(ctx context.Context) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("status = ?", domain.RecordCompleted).
		OrderBy("date DESC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) ListCompletedByEmployee(ctx context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	query, args := builder.New().
		Select(recordColumns).
		From("time_records").
		Where("employee_id = ?", employeeID).
		Where("status = ?", domain.RecordCompleted).
		OrderBy("date DESC").
		Build()
	return r.list(ctx, query, args)
}

func (r *timeRecordRepository) list(ctx context.Context, query string, args []interface{}) ([]domain.TimeRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	records := []domain.TimeRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("time record query error: %w", err)
	}
	return records, nil
}
