package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/logger"
	"github.com/worklyapp/workly-backend/internal/report"
)

// ShiftIndexer mirrors completed shifts into a secondary search store.
// Implementations are best-effort; failures never affect the primary write.
type ShiftIndexer interface {
	IndexShift(ctx context.Context, rec domain.TimeRecord) error
}

// AttendanceService is the state machine over a worker's open/closed record.
type AttendanceService struct {
	users     domain.UserRepository
	companies domain.CompanyRepository
	records   domain.TimeRecordRepository
	indexer   ShiftIndexer
	now       func() time.Time
}

// NewAttendanceService wires the state machine. indexer may be nil.
func NewAttendanceService(
	users domain.UserRepository,
	companies domain.CompanyRepository,
	records domain.TimeRecordRepository,
	indexer ShiftIndexer,
) *AttendanceService {
	return &AttendanceService{
		users:     users,
		companies: companies,
		records:   records,
		indexer:   indexer,
		now:       time.Now,
	}
}

// resolveEmployee loads the employee and the company whose token gates the
// transition. Both absences map to the NotFound side of the taxonomy.
func (s *AttendanceService) resolveEmployee(ctx context.Context, employeeID uuid.UUID) (*domain.User, *domain.Company, error) {
	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrEmployeeNotFound
		}
		return nil, nil, err
	}
	if employee.CompanyID == nil {
		return nil, nil, domain.ErrCompanyNotFound
	}
	company, err := s.companies.GetByID(ctx, *employee.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return employee, company, nil
}

// ClockIn opens a record for the employee after validating the presented QR
// code. The no-open-record precondition is checked here and enforced
// atomically by the storage layer, so two racing check-ins cannot both win.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID uuid.UUID, code string) (*domain.TimeRecord, error) {
	employee, company, err := s.resolveEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !company.Token.IsValid(now) || !company.Token.Matches(code) {
		return nil, domain.ErrInvalidToken
	}

	if _, err := s.records.FindActive(ctx, employee.ID); err == nil {
		return nil, domain.ErrShiftAlreadyOpen
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	rec := domain.NewTimeRecord(employee.ID, company.ID, now)
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee %s clocked in at %s", employee.ID, now.Format(time.RFC3339))
	return rec, nil
}

// ClockOut completes today's open record, freezing hours and pay using the
// employee's hourly rate as of this moment. The lookup window is the current
// calendar day, matching the check-in/check-out cycle the QR flow assumes.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID uuid.UUID, code string) (*domain.TimeRecord, error) {
	employee, company, err := s.resolveEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !company.Token.IsValid(now) || !company.Token.Matches(code) {
		return nil, domain.ErrInvalidToken
	}

	dayStart, _ := report.DayWindow(now)
	rec, err := s.records.FindActiveForDay(ctx, employee.ID, dayStart)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveRecord
		}
		return nil, err
	}

	if err := rec.Close(now, employee.HourlyRate); err != nil {
		return nil, err
	}
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info(ctx, "employee %s clocked out: %.4f hours", employee.ID, rec.HoursOrZero())

	if s.indexer != nil {
		go s.indexCompleted(*rec)
	}
	return rec, nil
}

// indexCompleted mirrors the shift into the search index off the request path.
func (s *AttendanceService) indexCompleted(rec domain.TimeRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.indexer.IndexShift(ctx, rec); err != nil {
		logger.Error(ctx, "failed to index completed shift", err)
	}
}
