package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Role string

type EmployeeStatus string

type RecordStatus string

type BonusType string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"

	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"

	RecordActive    RecordStatus = "active"
	RecordCompleted RecordStatus = "completed"

	BonusTypeBonus   BonusType = "bonus"
	BonusTypePenalty BonusType = "penalty"
)

// DefaultTokenTTL is how long a freshly issued QR code stays valid.
const DefaultTokenTTL = 24 * time.Hour

// QRToken is the company's current check-in code together with its expiry.
// A reissue replaces the whole value; there is never more than one current token.
type QRToken struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewQRToken generates a random token valid for ttl from now.
// 32 random bytes hex-encoded, well above the 128-bit minimum.
func NewQRToken(now time.Time, ttl time.Duration) (QRToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return QRToken{}, fmt.Errorf("failed to generate qr token: %w", err)
	}
	return QRToken{
		Code:      hex.EncodeToString(buf),
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsValid reports whether the token exists and has not expired.
// A nil receiver means the company has no current token.
func (t *QRToken) IsValid(now time.Time) bool {
	if t == nil || t.Code == "" {
		return false
	}
	return now.Before(t.ExpiresAt)
}

// Matches reports whether the presented code equals the stored one exactly.
func (t *QRToken) Matches(code string) bool {
	return t != nil && t.Code != "" && t.Code == code
}

// Company owns the current QR token and is the scope employees check in against.
type Company struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner" db:"owner_id"`
	Token     *QRToken  `json:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// User is an account in either the admin or employee role. Employees carry the
// payroll attributes; CompanyID is set once at onboarding and never reassigned.
type User struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Role         Role           `json:"role" db:"role"`
	CompanyID    *uuid.UUID     `json:"companyId,omitempty" db:"company_id"`
	Position     string         `json:"position" db:"position"`
	HourlyRate   float64        `json:"hourlyRate" db:"hourly_rate"`
	Status       EmployeeStatus `json:"status" db:"status"`
	JoinDate     *time.Time     `json:"joinDate,omitempty" db:"join_date"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// TimeRecord is one clock-in-to-clock-out interval for an employee.
// TotalHours and CalculatedPay are derived exactly once, at the
// active -> completed transition, and are never recalculated afterwards
// even if the employee's hourly rate changes.
type TimeRecord struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	EmployeeID    uuid.UUID    `json:"employee" db:"employee_id"`
	CompanyID     uuid.UUID    `json:"company" db:"company_id"`
	Date          time.Time    `json:"date" db:"date"`
	ClockIn       time.Time    `json:"clockIn" db:"clock_in"`
	ClockOut      *time.Time   `json:"clockOut,omitempty" db:"clock_out"`
	TotalHours    *float64     `json:"totalHours,omitempty" db:"total_hours"`
	CalculatedPay *float64     `json:"calculatedPay,omitempty" db:"calculated_pay"`
	Status        RecordStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// NewTimeRecord opens a shift for the employee at now.
func NewTimeRecord(employeeID, companyID uuid.UUID, now time.Time) *TimeRecord {
	return &TimeRecord{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       now,
		ClockIn:    now,
		Status:     RecordActive,
	}
}

// Close completes the shift at now using the employee's hourly rate as it is
// at this moment. Hours keep full float precision; display rounding is the
// caller's concern and must never feed back into the stored pay.
func (r *TimeRecord) Close(now time.Time, hourlyRate float64) error {
	if r.Status != RecordActive {
		return ErrNoActiveRecord
	}
	if !now.After(r.ClockIn) {
		return ErrShiftEndsBeforeStart
	}
	hours := now.Sub(r.ClockIn).Hours()
	pay := hours * hourlyRate

	out := now
	r.ClockOut = &out
	r.TotalHours = &hours
	r.CalculatedPay = &pay
	r.Status = RecordCompleted
	return nil
}

// HoursOrZero returns the stored hours, treating a still-open record as zero.
func (r *TimeRecord) HoursOrZero() float64 {
	if r.TotalHours == nil {
		return 0
	}
	return *r.TotalHours
}

// PayOrZero returns the stored pay, treating a still-open record as zero.
func (r *TimeRecord) PayOrZero() float64 {
	if r.CalculatedPay == nil {
		return 0
	}
	return *r.CalculatedPay
}

// Bonus is a manual ledger entry next to the computed payroll figures.
// It never participates in hours or pay derivation.
type Bonus struct {
	ID         uuid.UUID `json:"id" db:"id"`
	EmployeeID uuid.UUID `json:"employee" db:"employee_id"`
	Type       BonusType `json:"type" db:"type"`
	Amount     float64   `json:"amount" db:"amount"`
	Reason     string    `json:"reason" db:"reason"`
	CreatedBy  uuid.UUID `json:"createdBy" db:"created_by"`
	Date       time.Time `json:"date" db:"date"`
}
