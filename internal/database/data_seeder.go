package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/logger"
)

// SeedFixture is the YAML shape consumed by the seeder. See
// cmd/seeder/fixtures/demo.yaml for a full example.
type SeedFixture struct {
	Company struct {
		Name string `yaml:"name"`
	} `yaml:"company"`
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Employees []struct {
		Name       string  `yaml:"name"`
		Email      string  `yaml:"email"`
		Password   string  `yaml:"password"`
		Position   string  `yaml:"position"`
		HourlyRate float64 `yaml:"hourlyRate"`
	} `yaml:"employees"`
	History struct {
		Months      int `yaml:"months"`
		DaysPerWeek int `yaml:"daysPerWeek"`
	} `yaml:"history"`
}

// LoadSeedFixture reads and parses a fixture file.
func LoadSeedFixture(path string) (*SeedFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var fixture SeedFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &fixture, nil
}

// DataSeeder populates a development database with a company, its staff, and
// months of completed shift history.
type DataSeeder struct {
	db      *sql.DB
	users   domain.UserRepository
	company domain.CompanyRepository
	records domain.TimeRecordRepository
	indexer *ShiftIndexer
	rng     *rand.Rand
}

// NewDataSeeder creates a seeder. indexer may be nil to skip search mirroring.
func NewDataSeeder(
	db *sql.DB,
	users domain.UserRepository,
	company domain.CompanyRepository,
	records domain.TimeRecordRepository,
	indexer *ShiftIndexer,
) *DataSeeder {
	return &DataSeeder{
		db:      db,
		users:   users,
		company: company,
		records: records,
		indexer: indexer,
		// Fixed seed so repeated runs produce the same history.
		rng: rand.New(rand.NewSource(42)),
	}
}

// Seed creates everything described by the fixture.
func (s *DataSeeder) Seed(ctx context.Context, fixture *SeedFixture) error {
	now := time.Now().UTC()

	admin, err := s.seedUser(ctx, fixture.Admin.Name, fixture.Admin.Email, fixture.Admin.Password, domain.RoleAdmin, now)
	if err != nil {
		return err
	}

	company := &domain.Company{
		ID:        uuid.New(),
		Name:      fixture.Company.Name,
		OwnerID:   admin.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if company.Name == "" {
		company.Name = fmt.Sprintf("Company of %s", admin.Name)
	}
	if err := s.company.Create(ctx, company); err != nil {
		return fmt.Errorf("failed to seed company: %w", err)
	}
	admin.CompanyID = &company.ID
	if err := s.users.Update(ctx, admin); err != nil {
		return err
	}

	months := fixture.History.Months
	if months <= 0 {
		months = 3
	}
	daysPerWeek := fixture.History.DaysPerWeek
	if daysPerWeek <= 0 || daysPerWeek > 7 {
		daysPerWeek = 5
	}

	var history []domain.TimeRecord
	for _, e := range fixture.Employees {
		employee, err := s.seedUser(ctx, e.Name, e.Email, e.Password, domain.RoleEmployee, now)
		if err != nil {
			return err
		}
		employee.CompanyID = &company.ID
		employee.Position = e.Position
		employee.HourlyRate = e.HourlyRate
		employee.Status = domain.EmployeeActive
		join := now.AddDate(0, -months, 0)
		employee.JoinDate = &join
		if err := s.users.Update(ctx, employee); err != nil {
			return err
		}

		records, err := s.seedHistory(ctx, employee, company.ID, now, months, daysPerWeek)
		if err != nil {
			return err
		}
		history = append(history, records...)
	}

	if s.indexer != nil && len(history) > 0 {
		if err := s.indexer.BulkIndexShifts(ctx, history); err != nil {
			logger.Warn(ctx, "failed to mirror seeded shifts into the search index: %v", err)
		}
	}

	logger.Info(ctx, "seeded company %s with %d employees and %d records",
		company.Name, len(fixture.Employees), len(history))
	return nil
}

func (s *DataSeeder) seedUser(ctx context.Context, name, email, password string, role domain.Role, now time.Time) (*domain.User, error) {
	if password == "" {
		password = "password123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.EmployeeActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", email, err)
	}
	return user, nil
}

// seedHistory writes completed shifts for the past months, skipping enough
// weekdays to hit roughly daysPerWeek worked days per week.
func (s *DataSeeder) seedHistory(ctx context.Context, employee *domain.User, companyID uuid.UUID, now time.Time, months, daysPerWeek int) ([]domain.TimeRecord, error) {
	var out []domain.TimeRecord

	day := now.AddDate(0, -months, 0)
	for ; day.Before(now.AddDate(0, 0, -1)); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if s.rng.Intn(5) >= daysPerWeek {
			continue
		}

		clockIn := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC).
			Add(time.Duration(s.rng.Intn(45)) * time.Minute)
		shift := time.Duration(7*60+s.rng.Intn(150)) * time.Minute

		rec := domain.NewTimeRecord(employee.ID, companyID, clockIn)
		if err := s.records.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to seed record: %w", err)
		}
		if err := rec.Close(clockIn.Add(shift), employee.HourlyRate); err != nil {
			return nil, err
		}
		if err := s.records.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to complete seeded record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, nil
}

// Clear wipes all seeded rows. Order respects the foreign keys.
func (s *DataSeeder) Clear(ctx context.Context) error {
	for _, table := range []string{"bonuses", "time_records", "users", "companies"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	logger.Info(ctx, "cleared seeded data")
	return nil
}
