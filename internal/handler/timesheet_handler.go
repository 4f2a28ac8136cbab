package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/worklyapp/workly-backend/internal/domain"
	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/service"
)

type TimesheetHandler struct {
	attendance *service.AttendanceService
	reports    *service.ReportService
}

func NewTimesheetHandler(attendance *service.AttendanceService, reports *service.ReportService) *TimesheetHandler {
	return &TimesheetHandler{attendance: attendance, reports: reports}
}

func (h *TimesheetHandler) ClockInHandler(c echo.Context) error {
	var req clockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}

	rec, err := h.attendance.ClockIn(c.Request().Context(), middleware.UserID(c), req.QRCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *TimesheetHandler) ClockOutHandler(c echo.Context) error {
	var req clockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Message: "invalid request body"})
	}

	rec, err := h.attendance.ClockOut(c.Request().Context(), middleware.UserID(c), req.QRCode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// RecordsHandler lists records newest first. Admins see the whole company
// timesheet, employees only their own history.
func (h *TimesheetHandler) RecordsHandler(c echo.Context) error {
	role, _ := c.Get(middleware.ContextRole).(domain.Role)

	var (
		records []domain.TimeRecord
		err     error
	)
	if role == domain.RoleAdmin {
		records, err = h.reports.AllRecords(c.Request().Context())
	} else {
		records, err = h.reports.Records(c.Request().Context(), middleware.UserID(c))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// yearMonth reads the year and month query params, defaulting to the current
// UTC month when absent.
func yearMonth(c echo.Context) (int, int, error) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.Validationf("invalid year %q", raw)
		}
		year = parsed
	}
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, domain.Validationf("invalid month %q", raw)
		}
		month = parsed
	}
	return year, month, nil
}

func (h *TimesheetHandler) MyMonthlyHandler(c echo.Context) error {
	year, month, err := yearMonth(c)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.reports.MonthlySelf(c.Request().Context(), middleware.UserID(c), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *TimesheetHandler) MyArchiveHandler(c echo.Context) error {
	months, err := h.reports.Archive(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, months)
}

func (h *TimesheetHandler) MyStatsHandler(c echo.Context) error {
	stats, err := h.reports.Stats(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// MonthlyRecordsHandler is the admin month view, grouped per employee.
func (h *TimesheetHandler) MonthlyRecordsHandler(c echo.Context) error {
	year, month, err := yearMonth(c)
	if err != nil {
		return respondError(c, err)
	}

	groups, err := h.reports.MonthlyRecords(c.Request().Context(), year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

// ArchiveMonthsHandler is the admin company-wide month rollup, newest first.
func (h *TimesheetHandler) ArchiveMonthsHandler(c echo.Context) error {
	months, err := h.reports.ArchiveMonths(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, months)
}
