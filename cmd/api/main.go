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

	"github.com/hongchuan-tech/ams-backend-go/internal/config"
	appHTTP "github.com/hongchuan-tech/ams-backend-go/internal/handler/http"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/cron"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/email"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/jwt"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/scan"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/sse"
	"github.com/hongchuan-tech/ams-backend-go/internal/repository/postgresql"
	approvalService "github.com/hongchuan-tech/ams-backend-go/internal/service/approval"
	attendanceService "github.com/hongchuan-tech/ams-backend-go/internal/service/attendance"
	authService "github.com/hongchuan-tech/ams-backend-go/internal/service/auth"
	companyService "github.com/hongchuan-tech/ams-backend-go/internal/service/company"
	leaveService "github.com/hongchuan-tech/ams-backend-go/internal/service/leave"
	makeupService "github.com/hongchuan-tech/ams-backend-go/internal/service/makeup"
	notificationService "github.com/hongchuan-tech/ams-backend-go/internal/service/notification"
	overtimeService "github.com/hongchuan-tech/ams-backend-go/internal/service/overtime"
	reportService "github.com/hongchuan-tech/ams-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	location := cfg.Location()

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	relationRepo := postgresql.NewRelationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	makeupRepo := postgresql.NewMakeupRepository(db)
	quotaRepo := postgresql.NewMakeupQuotaRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	// Shared infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	emailService, err := email.NewService(cfg.SMTP)
	if err != nil {
		fmt.Println("Error initializing email service:", err)
		os.Exit(1)
	}
	hub := sse.NewHub()
	scans := scan.NewManager()

	// Services
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, jwtService, location)
	authSvc := authService.NewAuthService(employeeRepo, relationRepo, jwtService, emailService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, companyRepo, scans, location)
	companySvc := companyService.NewCompanyService(companyRepo, relationRepo, location)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, balanceRepo, relationRepo, approvalRepo, notificationSvc, location)
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, relationRepo, approvalRepo, notificationSvc, location)
	makeupSvc := makeupService.NewMakeupService(makeupRepo, quotaRepo, relationRepo, approvalRepo, notificationSvc, location)
	approvalSvc := approvalService.NewApprovalService(
		approvalRepo,
		leaveRepo,
		balanceRepo,
		overtimeRepo,
		makeupRepo,
		quotaRepo,
		attendanceRepo,
		relationRepo,
		employeeRepo,
		notificationSvc,
		location,
	)
	reportSvc := reportService.NewReportService(reportRepo)

	// Background jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, relationRepo, notificationSvc, location).RegisterJobs(scheduler)
	cron.NewMakeupJobs(quotaRepo, location).RegisterJobs(scheduler)
	scheduler.AddJob("purge_scan_sessions", 1*time.Minute, func(ctx context.Context) error {
		scans.PurgeExpired()
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtService, authSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Company:      appHTTP.NewCompanyHandler(companySvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:     appHTTP.NewOvertimeHandler(overtimeSvc),
		Makeup:       appHTTP.NewMakeupHandler(makeupSvc),
		Approval:     appHTTP.NewApprovalHandler(approvalSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
