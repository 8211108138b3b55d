package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hongchuan-tech/ams-backend-go/internal/config"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/middleware"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Company      CompanyHandler
	Leave        LeaveHandler
	Overtime     OvertimeHandler
	Makeup       MakeupHandler
	Approval     ApprovalHandler
	Report       ReportHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ams-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
		})

		// The stream authenticates itself with a query-string token, so it
		// sits outside the access-token group.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/profile", h.Auth.Profile)
				r.Put("/password", h.Auth.ChangePassword)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
					r.Post("/scan-sessions", h.Attendance.StartScanSession)
					r.Get("/scan-sessions/{id}", h.Attendance.ScanSessionState)
					r.Post("/scan", h.Attendance.Scan)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/records", h.Attendance.ListOwn)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/company-records", h.Attendance.ListCompany)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceFix))
					r.Put("/records/{id}", h.Attendance.Correct)
				})
			})

			r.Route("/company", func(r chi.Router) {
				r.Get("/", h.Company.GetOwn)
				r.Get("/qr-code", h.Company.QRCode)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCompanyManage))
					r.Put("/location", h.Company.UpdateLocation)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/members", h.Company.ListMembers)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveApply))
				r.Post("/requests", h.Leave.Apply)
				r.Get("/requests", h.Leave.ListOwn)
				r.Get("/balances", h.Leave.Balances)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOvertimeApply))
				r.Post("/requests", h.Overtime.Apply)
				r.Get("/requests", h.Overtime.ListOwn)
				r.Delete("/requests/{id}", h.Overtime.Cancel)
			})

			r.Route("/makeup", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionMakeupApply))
				r.Post("/requests", h.Makeup.Apply)
				r.Get("/requests", h.Makeup.ListOwn)
				r.Get("/quota", h.Makeup.Quota)
			})

			r.Route("/approvals", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionApprove))
				r.Get("/pending", h.Approval.Pending)
				r.Post("/{id}/approve", h.Approval.Approve)
				r.Post("/{id}/reject", h.Approval.Reject)
				r.Post("/batch", h.Approval.Batch)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance-summary", h.Report.AttendanceSummary)
				r.Get("/anomalies", h.Report.AnomalyList)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Get("/stream-token", h.Notification.StreamToken)
				r.Put("/{id}/read", h.Notification.MarkAsRead)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
			})
		})
	})
	return r
}
