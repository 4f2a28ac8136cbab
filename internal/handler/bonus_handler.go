package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/service"
)

type BonusHandler struct {
	svc *service.BonusService
}

func NewBonusHandler(svc *service.BonusService) *BonusHandler {
	return &BonusHandler{svc: svc}
}

func (h *BonusHandler) CreateHandler(c echo.Context) error {
	var req bonusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid employee id"})
	}

	bonus, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), service.BonusInput{
		EmployeeID: employeeID,
		Type:       req.Type,
		Amount:     req.Amount,
		Reason:     req.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, bonus)
}

func (h *BonusHandler) ListByEmployeeHandler(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	bonuses, err := h.svc.ListByEmployee(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bonuses)
}
