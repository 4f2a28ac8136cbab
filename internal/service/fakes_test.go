package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/worklyapp/workly-backend/internal/domain"
)

// In-memory repositories backing the service tests. They mirror the storage
// contracts, including the single-active-record guarantee on insert.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]domain.User, error) {
	out := make([]domain.User, 0)
	for _, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*domain.Company
}

func newFakeCompanyRepo(companies ...*domain.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[uuid.UUID]*domain.Company)}
	for _, c := range companies {
		cp := *c
		r.companies[c.ID] = &cp
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, c *domain.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) ReplaceToken(_ context.Context, companyID uuid.UUID, token domain.QRToken) error {
	c, ok := r.companies[companyID]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	c.Token = &token
	return nil
}

type fakeRecordRepo struct {
	records map[uuid.UUID]*domain.TimeRecord
}

func newFakeRecordRepo(records ...*domain.TimeRecord) *fakeRecordRepo {
	r := &fakeRecordRepo{records: make(map[uuid.UUID]*domain.TimeRecord)}
	for _, rec := range records {
		cp := *rec
		r.records[rec.ID] = &cp
	}
	return r
}

func (r *fakeRecordRepo) Create(_ context.Context, rec *domain.TimeRecord) error {
	for _, existing := range r.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Status == domain.RecordActive {
			return domain.ErrShiftAlreadyOpen
		}
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) Update(_ context.Context, rec *domain.TimeRecord) error {
	if _, ok := r.records[rec.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	cp := *rec
	r.records[rec.ID] = &cp
	return nil
}

func (r *fakeRecordRepo) FindActive(_ context.Context, employeeID uuid.UUID) (*domain.TimeRecord, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordActive {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindActiveForDay(_ context.Context, employeeID uuid.UUID, dayStart time.Time) (*domain.TimeRecord, error) {
	dayEnd := dayStart.Add(24 * time.Hour)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordActive &&
			!rec.Date.Before(dayStart) && rec.Date.Before(dayEnd) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *fakeRecordRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListByEmployeeBetween(_ context.Context, employeeID uuid.UUID, start, end time.Time) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListBetween(_ context.Context, start, end time.Time) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if !rec.Date.Before(start) && !rec.Date.After(end) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListAll(_ context.Context) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) ListCompleted(_ context.Context) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.Status == domain.RecordCompleted {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) ListCompletedByEmployee(_ context.Context, employeeID uuid.UUID) ([]domain.TimeRecord, error) {
	out := make([]domain.TimeRecord, 0)
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Status == domain.RecordCompleted {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeBonusRepo struct {
	bonuses []domain.Bonus
}

func (r *fakeBonusRepo) Create(_ context.Context, b *domain.Bonus) error {
	r.bonuses = append(r.bonuses, *b)
	return nil
}

func (r *fakeBonusRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID) ([]domain.Bonus, error) {
	out := make([]domain.Bonus, 0)
	for _, b := range r.bonuses {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return out, nil
}
