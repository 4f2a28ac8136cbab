package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/service"
)

type CompanyHandler struct {
	svc *service.CompanyService
}

func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// IssueQRCodeHandler rotates the company's check-in code. The previous code
// stops working the moment this returns.
func (h *CompanyHandler) IssueQRCodeHandler(c echo.Context) error {
	token, err := h.svc.IssueQRCode(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, qrCodeResponse{Code: token.Code, ExpiresAt: token.ExpiresAt})
}

func (h *CompanyHandler) GetCompanyHandler(c echo.Context) error {
	company, err := h.svc.GetCompany(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}
