package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklyapp/workly-backend/internal/domain"
)

func attendanceFixture(t *testing.T, now time.Time) (*AttendanceService, *domain.User, *fakeRecordRepo) {
	t.Helper()

	companyID := uuid.New()
	employee := &domain.User{
		ID:         uuid.New(),
		Name:       "Jordan",
		Email:      "jordan@example.com",
		Role:       domain.RoleEmployee,
		CompanyID:  &companyID,
		HourlyRate: 2000,
		Status:     domain.EmployeeActive,
	}
	company := &domain.Company{
		ID:   companyID,
		Name: "Acme",
		Token: &domain.QRToken{
			Code:      "valid-code",
			ExpiresAt: now.Add(time.Hour),
		},
	}

	records := newFakeRecordRepo()
	svc := NewAttendanceService(newFakeUserRepo(employee), newFakeCompanyRepo(company), records, nil)
	svc.now = func() time.Time { return now }
	return svc, employee, records
}

func TestClockInOpensRecord(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	rec, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	assert.Equal(t, employee.ID, rec.EmployeeID)
	assert.Equal(t, domain.RecordActive, rec.Status)
	assert.Equal(t, now, rec.ClockIn)
	assert.Nil(t, rec.ClockOut)
	assert.Nil(t, rec.TotalHours)
	assert.Nil(t, rec.CalculatedPay)
}

func TestClockInRejectsWrongCode(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	_, err := svc.ClockIn(context.Background(), employee.ID, "some-other-code")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestClockInRejectsExpiredToken(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	// Valid code, but presented after expiry.
	svc.now = func() time.Time { return now.Add(2 * time.Hour) }

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestClockInRejectsSecondOpenShift(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), employee.ID, "valid-code")
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
}

func TestClockInUnknownEmployee(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, _, _ := attendanceFixture(t, now)

	_, err := svc.ClockIn(context.Background(), uuid.New(), "valid-code")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestClockOutFreezesHoursAndPay(t *testing.T) {
	clockIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, records := attendanceFixture(t, clockIn)

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	// Reissue so the evening token is still valid at 17:30.
	clockOut := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return clockOut }
	svc.companies.(*fakeCompanyRepo).companies[*employee.CompanyID].Token.ExpiresAt = clockOut.Add(time.Hour)

	rec, err := svc.ClockOut(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	assert.Equal(t, domain.RecordCompleted, rec.Status)
	require.NotNil(t, rec.TotalHours)
	require.NotNil(t, rec.CalculatedPay)
	assert.InDelta(t, 8.5, *rec.TotalHours, 1e-9)
	assert.InDelta(t, 17000, *rec.CalculatedPay, 1e-9)

	stored, err := records.FindActive(context.Background(), employee.ID)
	assert.Nil(t, stored)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestClockOutUsesRateAtClose(t *testing.T) {
	clockIn := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, clockIn)

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	// Rate changes mid-shift; the close must use the new rate.
	users := svc.users.(*fakeUserRepo)
	users.users[employee.ID].HourlyRate = 3000

	clockOut := clockIn.Add(2 * time.Hour)
	svc.now = func() time.Time { return clockOut }
	svc.companies.(*fakeCompanyRepo).companies[*employee.CompanyID].Token.ExpiresAt = clockOut.Add(time.Hour)

	rec, err := svc.ClockOut(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)
	assert.InDelta(t, 6000, *rec.CalculatedPay, 1e-9)
}

func TestClockOutWithoutOpenShift(t *testing.T) {
	now := time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	_, err := svc.ClockOut(context.Background(), employee.ID, "valid-code")
	assert.ErrorIs(t, err, domain.ErrNoActiveRecord)
}

func TestClockOutMissesShiftOpenedYesterday(t *testing.T) {
	clockIn := time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, clockIn)

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	// The next morning the lookup window has moved to the new day, so the
	// overnight record is not eligible for checkout.
	nextMorning := time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return nextMorning }
	svc.companies.(*fakeCompanyRepo).companies[*employee.CompanyID].Token.ExpiresAt = nextMorning.Add(time.Hour)

	_, err = svc.ClockOut(context.Background(), employee.ID, "valid-code")
	assert.ErrorIs(t, err, domain.ErrNoActiveRecord)
}

func TestClockOutRejectsInvalidToken(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc, employee, _ := attendanceFixture(t, now)

	_, err := svc.ClockIn(context.Background(), employee.ID, "valid-code")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(time.Minute) }
	_, err = svc.ClockOut(context.Background(), employee.ID, "stale-code")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestClockInEmployeeWithoutCompany(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	lone := &domain.User{ID: uuid.New(), Email: "lone@example.com", Role: domain.RoleEmployee}
	svc := NewAttendanceService(newFakeUserRepo(lone), newFakeCompanyRepo(), newFakeRecordRepo(), nil)
	svc.now = func() time.Time { return now }

	_, err := svc.ClockIn(context.Background(), lone.ID, "any")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}
