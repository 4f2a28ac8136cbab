package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/report"
)

// ReportService is the read-only query boundary parametrizing the report
// package. It fetches record sets and hands them to the pure aggregators;
// no matching records is a valid empty result, never an error.
type ReportService struct {
	users   domain.UserRepository
	records domain.TimeRecordRepository
	now     func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(users domain.UserRepository, records domain.TimeRecordRepository) *ReportService {
	return &ReportService{users: users, records: records, now: time.Now}
}

// EmployeeMonthly is one employee's month: profile, listed records, and the
// completed-only totals.
type EmployeeMonthly struct {
	Employee domain.User         `json:"employee"`
	Records  []domain.TimeRecord `json:"records"`
	report.Totals
}

// MonthlySummary is the employee self-service variant with a work-day count.
type MonthlySummary struct {
	Employee domain.User         `json:"employee"`
	Records  []domain.TimeRecord `json:"records"`
	Summary  struct {
		TotalHours float64 `json:"totalHours"`
		TotalPay   float64 `json:"totalPay"`
		WorkDays   int     `json:"workDays"`
	} `json:"summary"`
}

func validateMonth(year, month int) (time.Month, error) {
	if month < 1 || month > 12 {
		return 0, domain.Validationf("month %d out of range", month)
	}
	if year < 1 {
		return 0, domain.Validationf("year %d out of range", year)
	}
	return time.Month(month), nil
}

// MonthlyRecords groups the month's records per employee, sums included.
func (s *ReportService) MonthlyRecords(ctx context.Context, year, month int) ([]report.EmployeeGroup, error) {
	m, err := validateMonth(year, month)
	if err != nil {
		return nil, err
	}
	start, end := report.MonthWindow(year, m)

	records, err := s.records.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeesOf(ctx, records)
	if err != nil {
		return nil, err
	}
	return report.GroupByEmployee(records, employees), nil
}

// employeesOf loads the distinct employees appearing in the record set.
func (s *ReportService) employeesOf(ctx context.Context, records []domain.TimeRecord) (map[uuid.UUID]domain.User, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range records {
		if _, ok := seen[records[i].EmployeeID]; !ok {
			seen[records[i].EmployeeID] = struct{}{}
			ids = append(ids, records[i].EmployeeID)
		}
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = users[i]
	}
	return byID, nil
}

// ArchiveMonths rolls up all completed records company-wide, newest first.
func (s *ReportService) ArchiveMonths(ctx context.Context) ([]report.ArchiveMonth, error) {
	records, err := s.records.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return report.ArchiveMonths(records), nil
}

// Monthly returns one employee's month. Profile and records are fetched
// concurrently; either failure fails the call.
func (s *ReportService) Monthly(ctx context.Context, employeeID uuid.UUID, year, month int) (*EmployeeMonthly, error) {
	m, err := validateMonth(year, month)
	if err != nil {
		return nil, err
	}
	start, end := report.MonthWindow(year, m)

	type userResult struct {
		user *domain.User
		err  error
	}
	userCh := make(chan userResult, 1)
	go func() {
		u, err := s.users.GetByID(ctx, employeeID)
		userCh <- userResult{user: u, err: err}
	}()

	records, err := s.records.ListByEmployeeBetween(ctx, employeeID, start, end)
	ur := <-userCh
	if ur.err != nil {
		return nil, ur.err
	}
	if err != nil {
		return nil, err
	}

	return &EmployeeMonthly{
		Employee: *ur.user,
		Records:  records,
		Totals:   report.Sum(records),
	}, nil
}

// MonthlySelf is the employee's own month view with a work-day count.
func (s *ReportService) MonthlySelf(ctx context.Context, employeeID uuid.UUID, year, month int) (*MonthlySummary, error) {
	monthly, err := s.Monthly(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	out := &MonthlySummary{Employee: monthly.Employee, Records: monthly.Records}
	out.Summary.TotalHours = monthly.TotalHours
	out.Summary.TotalPay = monthly.TotalPay
	out.Summary.WorkDays = report.WorkDays(monthly.Records)
	return out, nil
}

// Archive returns the employee's per-month history, newest first.
func (s *ReportService) Archive(ctx context.Context, employeeID uuid.UUID) ([]report.EmployeeArchiveMonth, error) {
	records, err := s.records.ListCompletedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return report.EmployeeArchiveMonths(records), nil
}

// Stats returns the employee's dashboard summary.
func (s *ReportService) Stats(ctx context.Context, employeeID uuid.UUID) (report.Stats, error) {
	records, err := s.records.ListCompletedByEmployee(ctx, employeeID)
	if err != nil {
		return report.Stats{}, err
	}
	return report.EmployeeStats(records, s.now()), nil
}

// Records lists one employee's full record history, newest first.
func (s *ReportService) Records(ctx context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	return s.records.ListByEmployee(ctx, employeeID)
}

// AllRecords lists every record, newest first, for the admin timesheet.
func (s *ReportService) AllRecords(ctx context.Context) ([]domain.TimeRecord, error) {
	return s.records.ListAll(ctx)
}
