package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/worklyapp/workly-backend/internal/config"
	"github.com/worklyapp/workly-backend/internal/database"
	"github.com/worklyapp/workly-backend/internal/handler"
	"github.com/worklyapp/workly-backend/internal/logger"
	"github.com/worklyapp/workly-backend/internal/middleware"
	"github.com/worklyapp/workly-backend/internal/notifier"
	"github.com/worklyapp/workly-backend/internal/repository"
	"github.com/worklyapp/workly-backend/internal/service"
)

type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.Info(ctx, "environment variables loaded")

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	users := repository.NewUserRepository(db)
	companies := repository.NewCompanyRepository(db)
	records := repository.NewTimeRecordRepository(db)
	bonuses := repository.NewBonusRepository(db)

	// The search mirror is optional; the primary store stays authoritative.
	var indexer service.ShiftIndexer
	if cfg.ELASTIC_URL != "" {
		si, err := database.NewShiftIndexer(cfg.ELASTIC_URL)
		if err != nil {
			logger.Warn(ctx, "shift indexing disabled: %v", err)
		} else {
			indexer = si
		}
	}

	var mailer service.Mailer
	if cfg.SMTP_HOST != "" {
		mailer = notifier.NewSMTPMailer(cfg.SMTP_HOST, cfg.SMTP_PORT, cfg.SMTP_USER, cfg.SMTP_PASSWORD, cfg.SMTP_FROM)
	}

	authSvc := service.NewAuthService(users, companies, cfg.JWT_SECRET, cfg.JWT_TTL)
	companySvc := service.NewCompanyService(users, companies, cfg.QR_TOKEN_TTL)
	attendanceSvc := service.NewAttendanceService(users, companies, records, indexer)
	reportSvc := service.NewReportService(users, records)
	employeeSvc := service.NewEmployeeService(users)
	bonusSvc := service.NewBonusService(users, bonuses, mailer)

	a.RegisterMiddlewares()
	a.RegisterRoutes(
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewCompanyHandler(companySvc),
		handler.NewTimesheetHandler(attendanceSvc, reportSvc),
		handler.NewEmployeeHandler(employeeSvc, reportSvc),
		handler.NewBonusHandler(bonusSvc),
	)
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(echomw.Logger())
	a.Echo.Use(echomw.Recover())
	a.Echo.Use(echomw.CORS())
}

func (a *App) RegisterRoutes(
	verifier middleware.TokenVerifier,
	auth *handler.AuthHandler,
	company *handler.CompanyHandler,
	timesheet *handler.TimesheetHandler,
	employee *handler.EmployeeHandler,
	bonus *handler.BonusHandler,
) {
	api := a.Echo.Group("/api")

	api.POST("/auth/register", auth.RegisterHandler)
	api.POST("/auth/login", auth.LoginHandler)

	authed := api.Group("", middleware.Auth(verifier))

	ts := authed.Group("/timesheet")
	ts.POST("/clock-in", timesheet.ClockInHandler)
	ts.POST("/clock-out", timesheet.ClockOutHandler)
	ts.GET("/records", timesheet.RecordsHandler)
	ts.GET("/my/monthly", timesheet.MyMonthlyHandler)
	ts.GET("/my/archive", timesheet.MyArchiveHandler)
	ts.GET("/my/stats", timesheet.MyStatsHandler)
	ts.GET("/monthly-records", timesheet.MonthlyRecordsHandler, middleware.RequireAdmin())
	ts.GET("/archive-months", timesheet.ArchiveMonthsHandler, middleware.RequireAdmin())

	admin := authed.Group("", middleware.RequireAdmin())
	admin.GET("/company", company.GetCompanyHandler)
	admin.POST("/company/qr-code", company.IssueQRCodeHandler)

	admin.POST("/employees", employee.OnboardHandler)
	admin.GET("/employees", employee.ListHandler)
	admin.GET("/employees/:id", employee.GetHandler)
	admin.PUT("/employees/:id", employee.UpdateHandler)
	admin.DELETE("/employees/:id", employee.DeleteHandler)
	admin.GET("/employees/:id/monthly", employee.MonthlyHandler)

	admin.POST("/bonuses", bonus.CreateHandler)
	admin.GET("/bonuses/:id", bonus.ListByEmployeeHandler)
}

func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
