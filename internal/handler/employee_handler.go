package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/service"
)

type EmployeeHandler struct {
	employees *service.EmployeeService
	reports   *service.ReportService
}

func NewEmployeeHandler(employees *service.EmployeeService, reports *service.ReportService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, reports: reports}
}

func employeeID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}
	return id, nil
}

func (h *EmployeeHandler) OnboardHandler(c echo.Context) error {
	var req onboardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}

	employee, err := h.employees.Onboard(c.Request().Context(), middleware.UserID(c), service.OnboardInput{
		Email:      req.Email,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) ListHandler(c echo.Context) error {
	employees, err := h.employees.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) GetHandler(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.employees.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) UpdateHandler(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}

	employee, err := h.employees.Update(c.Request().Context(), id, service.UpdateInput{
		Name:       req.Name,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) DeleteHandler(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	if err := h.employees.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MonthlyHandler is the admin view of one employee's month.
func (h *EmployeeHandler) MonthlyHandler(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return err
	}

	year, month, err := yearMonth(c)
	if err != nil {
		return respondError(c, err)
	}

	monthly, err := h.reports.Monthly(c.Request().Context(), id, year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, monthly)
}
