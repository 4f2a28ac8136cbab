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

func authFixture() (*AuthService, *fakeUserRepo, *fakeCompanyRepo) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	svc := NewAuthService(users, companies, "test-secret", time.Hour)
	return svc, users, companies
}

func TestRegisterAdminCreatesCompany(t *testing.T) {
	svc, _, companies := authFixture()

	admin, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Alex",
		Email:    "Alex@Example.com",
		Password: "secret1",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.Equal(t, "alex@example.com", admin.Email)
	require.NotNil(t, admin.CompanyID)

	company, err := companies.GetByID(context.Background(), *admin.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, company.OwnerID)
	assert.Equal(t, "Company of Alex", company.Name)
	assert.Nil(t, company.Token)
}

func TestRegisterEmployeeStartsUnaffiliated(t *testing.T) {
	svc, _, _ := authFixture()

	employee, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret1",
		Role:     domain.RoleEmployee,
	})
	require.NoError(t, err)
	assert.Nil(t, employee.CompanyID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := authFixture()

	cases := []RegisterInput{
		{Name: "", Email: "a@b.c", Password: "secret1", Role: domain.RoleEmployee},
		{Name: "A", Email: "not-an-email", Password: "secret1", Role: domain.RoleEmployee},
		{Name: "A", Email: "a@b.c", Password: "short", Role: domain.RoleEmployee},
		{Name: "A", Email: "a@b.c", Password: "secret1", Role: "manager"},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := authFixture()

	in := RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1", Role: domain.RoleEmployee}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _ := authFixture()

	registered, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret1",
		Role:     domain.RoleEmployee,
	})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "sam@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)

	id, role, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
	assert.Equal(t, domain.RoleEmployee, role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := authFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "secret1",
		Role:     domain.RoleEmployee,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "sam@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenExpired(t *testing.T) {
	svc, _, _ := authFixture()

	issued := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	user := &domain.User{ID: uuid.New(), Role: domain.RoleEmployee}
	token, err := svc.issueToken(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, _, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc, _, _ := authFixture()

	_, _, err := svc.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
