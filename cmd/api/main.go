package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/sanadhr/payroll-backend-go/internal/config"
	appHTTP "github.com/sanadhr/payroll-backend-go/internal/handler/http"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/cron"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/jwt"
	"github.com/sanadhr/payroll-backend-go/internal/repository/postgresql"
	eosService "github.com/sanadhr/payroll-backend-go/internal/service/eos"
	gosiService "github.com/sanadhr/payroll-backend-go/internal/service/gosi"
	leaveService "github.com/sanadhr/payroll-backend-go/internal/service/leave"
	payrollService "github.com/sanadhr/payroll-backend-go/internal/service/payroll"
	wpsService "github.com/sanadhr/payroll-backend-go/internal/service/wps"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLogLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sanad-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	allowanceRepo := postgresql.NewAllowanceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	gosiRepo := postgresql.NewGOSIRepository(db)
	eosRepo := postgresql.NewEOSRepository(db)
	wpsRepo := postgresql.NewWPSRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		employeeRepo,
		allowanceRepo,
		attendanceRepo,
		loanRepo,
		leaveRepo,
		gosiRepo,
		policyRepo,
		cfg.Payroll.CalcConcurrency,
		logger,
	)
	eosSvc := eosService.NewEOSService(eosRepo, employeeRepo, allowanceRepo, policyRepo)
	gosiSvc := gosiService.NewGOSIService(gosiRepo, employeeRepo, logger)
	wpsSvc := wpsService.NewWPSService(wpsRepo, payrollRepo, logger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	eosHandler := appHTTP.NewEOSHandler(eosSvc)
	gosiHandler := appHTTP.NewGOSIHandler(gosiSvc)
	wpsHandler := appHTTP.NewWPSHandler(wpsSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	rateLimiter := middleware.NewRateLimiter(cfg.Payroll.RateLimitPerMinute)

	router := appHTTP.NewRouter(
		logger,
		jwtService,
		rateLimiter,
		payrollHandler,
		eosHandler,
		gosiHandler,
		wpsHandler,
		leaveHandler,
	)

	scheduler := cron.NewScheduler(logger)
	scheduler.AddJob("payroll-run-reconciliation", cfg.Payroll.ReconcileInterval, payrollSvc.Reconcile)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
