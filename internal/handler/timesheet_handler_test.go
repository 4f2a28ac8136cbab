package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/service"
)

// Minimal in-memory repositories for driving the handlers end to end.

type memUsers struct{ users map[uuid.UUID]*domain.User }

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUsers) ListByCompany(_ context.Context, _ uuid.UUID) ([]domain.User, error) {
	return nil, nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type memCompanies struct{ companies map[uuid.UUID]*domain.Company }

func (r *memCompanies) Create(_ context.Context, c *domain.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanies) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (r *memCompanies) ReplaceToken(_ context.Context, id uuid.UUID, token domain.QRToken) error {
	c, ok := r.companies[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.Token = &token
	return nil
}

type memRecords struct{ records map[uuid.UUID]*domain.TimeRecord }

func (r *memRecords) Create(_ context.Context, rec *domain.TimeRecord) error {
	for _, existing := range r.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Status == domain.RecordActive {
			return domain.ErrShiftAlreadyOpen
		}
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *memRecords) Update(_ context.Context, rec *domain.TimeRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memRecords) FindActive(_ context.Context, employeeID uuid.UUID) (*domain.TimeRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordActive {
			return rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memRecords) FindActiveForDay(_ context.Context, employeeID uuid.UUID, dayStart time.Time) (*domain.TimeRecord, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordActive &&
			!rec.Date.Before(dayStart) && rec.Date.Before(dayEnd) {
			return rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memRecords) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecords) ListByEmployeeBetween(_ context.Context, employeeID uuid.UUID, start, end time.Time) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecords) ListBetween(_ context.Context, start, end time.Time) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecords) ListAll(_ context.Context) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *memRecords) ListCompleted(_ context.Context) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.Status == domain.RecordCompleted {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *memRecords) ListCompletedByEmployee(_ context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordCompleted {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type timesheetEnv struct {
	handler  *TimesheetHandler
	employee *domain.User
	code     string
}

func newTimesheetEnv(t *testing.T) *timesheetEnv {
	t.Helper()

	companyID := uuid.New()
	employee := &domain.User{
		ID:         uuid.New(),
		Name:       "Sam",
		Email:      "sam@example.com",
		Role:       domain.RoleEmployee,
		CompanyID:  &companyID,
		HourlyRate: 2000,
		Status:     domain.EmployeeActive,
	}
	token := &domain.QRToken{Code: "current-code", ExpiresAt: time.Now().Add(time.Hour)}
	company := &domain.Company{ID: companyID, Name: "Acme", Token: token}

	users := &memUsers{users: map[uuid.UUID]*domain.User{employee.ID: employee}}
	companies := &memCompanies{companies: map[uuid.UUID]*domain.Company{companyID: company}}
	records := &memRecords{records: make(map[uuid.UUID]*domain.TimeRecord)}

	attendance := service.NewAttendanceService(users, companies, records, nil)
	reports := service.NewReportService(users, records)
	return &timesheetEnv{
		handler:  NewTimesheetHandler(attendance, reports),
		employee: employee,
		code:     token.Code,
	}
}

func (env *timesheetEnv) request(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserID, env.employee.ID)
	c.Set(middleware.ContextRole, env.employee.Role)
	return c, rec
}

func TestClockInHandler(t *testing.T) {
	env := newTimesheetEnv(t)

	c, rec := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockInHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got domain.TimeRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, env.employee.ID, got.EmployeeID)
	assert.Equal(t, domain.RecordActive, got.Status)
}

func TestClockInHandlerInvalidCode(t *testing.T) {
	env := newTimesheetEnv(t)

	c, rec := env.request(t, `{"qrCode":"wrong"}`)
	require.NoError(t, env.handler.ClockInHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClockInHandlerConflict(t *testing.T) {
	env := newTimesheetEnv(t)

	c, _ := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockInHandler(c))

	c, rec := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockInHandler(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestClockOutHandler(t *testing.T) {
	env := newTimesheetEnv(t)

	c, _ := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockInHandler(c))

	time.Sleep(5 * time.Millisecond)

	c, rec := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockOutHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.TimeRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.RecordCompleted, got.Status)
	require.NotNil(t, got.TotalHours)
	assert.Greater(t, *got.TotalHours, 0.0)
}

func TestClockOutHandlerNothingOpen(t *testing.T) {
	env := newTimesheetEnv(t)

	c, rec := env.request(t, `{"qrCode":"current-code"}`)
	require.NoError(t, env.handler.ClockOutHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrNoActiveRecord.Error(), body.Message)
}
