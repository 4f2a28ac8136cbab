package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/logger"
)

// AuthService handles account registration, login, and JWT verification.
type AuthService struct {
	users     domain.UserRepository
	companies domain.CompanyRepository
	jwtSecret []byte
	jwtTTL    time.Duration
	now       func() time.Time
}

// NewAuthService creates an AuthService signing tokens with secret for ttl.
func NewAuthService(users domain.UserRepository, companies domain.CompanyRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		jwtSecret: []byte(secret),
		jwtTTL:    ttl,
		now:       time.Now,
	}
}

// RegisterInput is a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates the account. An admin registration also creates the
// company the admin will own; employees start unaffiliated until onboarded.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, domain.Validationf("a valid email is required")
	}
	if len(in.Password) < 6 {
		return nil, domain.Validationf("password must be at least 6 characters")
	}
	if in.Role != domain.RoleAdmin && in.Role != domain.RoleEmployee {
		return nil, domain.Validationf("unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       domain.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.Role == domain.RoleAdmin {
		company := &domain.Company{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Company of %s", in.Name),
			OwnerID:   user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		user.CompanyID = &company.ID
		// The company row goes in first; users.company_id references it.
		if err := s.companies.Create(ctx, company); err != nil {
			return nil, err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	logger.Info(ctx, "registered %s account %s", user.Role, user.ID)
	return user, nil
}

// Login verifies the credentials and returns the user with a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := authClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer token, returning the subject and
// role it carries.
func (s *AuthService) VerifyToken(token string) (uuid.UUID, domain.Role, error) {
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", domain.ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", domain.ErrInvalidCredentials
	}
	return id, domain.Role(claims.Role), nil
}
