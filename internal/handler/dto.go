package handler

import (
	"time"

	"github.com/worklyapp/workly-backend/internal/domain"
)

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type clockRequest struct {
	QRCode string `json:"qrCode"`
}

type qrCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type onboardRequest struct {
	Email      string                `json:"email"`
	Position   string                `json:"position"`
	HourlyRate float64               `json:"hourlyRate"`
	Status     domain.EmployeeStatus `json:"status"`
	JoinDate   *time.Time            `json:"joinDate"`
}

type updateEmployeeRequest struct {
	Name       *string                `json:"name"`
	Position   *string                `json:"position"`
	HourlyRate *float64               `json:"hourlyRate"`
	Status     *domain.EmployeeStatus `json:"status"`
	JoinDate   *time.Time             `json:"joinDate"`
}

type bonusRequest struct {
	EmployeeID string           `json:"employeeId"`
	Type       domain.BonusType `json:"type"`
	Amount     float64          `json:"amount"`
	Reason     string           `json:"reason"`
}
