// Package api exposes the tracker over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ojt/internal/accounts"
	"ojt/internal/attachments"
	"ojt/internal/attendance"
	"ojt/internal/auth"
	"ojt/internal/dtr"
	"ojt/internal/httpmiddleware"
	"ojt/internal/metrics"
	"ojt/internal/profile"
	"ojt/internal/report"
	"ojt/internal/trainee"
	"ojt/internal/workflow"
)

// Views served under /v1/views/:view.
const (
	ViewAdmin      = "admin"
	ViewSupervisor = "supervisor"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) bool

// Deps are the services the handlers call.
type Deps struct {
	Accounts  *accounts.Service
	Issuer    *auth.Issuer
	Trainees  *trainee.Directory
	Sessions  *trainee.Sessions
	Profiles  *profile.Store
	Submitter *dtr.Submitter
	// Uploader is nil when attachment storage is not configured.
	Uploader attachments.Uploader
	Metrics  *metrics.Collectors
	Limiter  *httpmiddleware.TokenBucket
	Health   map[string]HealthCheck
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

type view struct {
	name       string
	roles      []string
	attendance *attendance.Board
	reports    *report.Board
}

// Handler holds the route handlers and the per-view boards.
type Handler struct {
	Deps
	views map[string]*view
}

// New builds a handler with fresh admin and supervisor boards.
func New(d Deps) *Handler {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop()
	}
	if d.Limiter == nil {
		d.Limiter = httpmiddleware.NewTokenBucket(0, 0)
	}
	attChange := countTransitions[attendance.Verification](d.Metrics, attendance.Machine.Name())
	repChange := countTransitions[report.Status](d.Metrics, report.Machine.Name())
	return &Handler{
		Deps: d,
		views: map[string]*view{
			ViewAdmin: {
				name:       ViewAdmin,
				roles:      []string{auth.RoleAdmin},
				attendance: attendance.NewBoard(attendance.AdminSeed(), attChange),
				reports:    report.NewBoard(report.AdminSeed(), repChange),
			},
			ViewSupervisor: {
				name:       ViewSupervisor,
				roles:      []string{auth.RoleSupervisor, auth.RoleAdmin},
				attendance: attendance.NewBoard(attendance.SupervisorSeed(), attChange),
				reports:    report.NewBoard(report.SupervisorSeed(), repChange),
			},
		},
	}
}

func countTransitions[S ~string](m *metrics.Collectors, name string) func(workflow.Change[S]) {
	return func(ch workflow.Change[S]) {
		m.Transitions.WithLabelValues(name, string(ch.From), string(ch.To)).Inc()
	}
}

// Router wires every route onto a new gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(securityHeaders())

	if h.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(h.MetricsHandler))
	}
	r.GET("/healthz", h.Healthz)

	public := r.Group("/v1", h.Limiter.Middleware(httpmiddleware.ClientIP))
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.POST("/forgot-password", h.ForgotPassword)
	public.POST("/dtr/compute", h.ComputeDTR)

	v1 := r.Group("/v1", auth.Required(h.Issuer), h.Limiter.Middleware(httpmiddleware.UserOrIP))
	v1.POST("/logout", h.Logout)
	v1.GET("/me", h.Me)
	v1.POST("/dtr/submit", h.SubmitDTR)

	staff := auth.RequireRole(auth.RoleAdmin, auth.RoleSupervisor)
	v1.GET("/trainees", staff, h.ListTrainees)
	tr := v1.Group("/trainees/:id")
	tr.GET("", staff, h.GetTrainee)
	tr.POST("/edit", staff, h.EditTrainee)
	tr.PATCH("/draft", staff, h.PatchDraft)
	tr.POST("/save", staff, h.SaveTrainee)
	tr.POST("/cancel", staff, h.CancelTrainee)
	tr.DELETE("", staff, h.DeleteTrainee)

	v1.GET("/supervisor/profile", staff, h.GetProfile)
	v1.PUT("/supervisor/profile", staff, h.SaveProfile)

	vw := v1.Group("/views/:view", h.requireView)
	vw.GET("/attendance", h.ListAttendance)
	vw.GET("/attendance/export.csv", h.ExportAttendanceCSV)
	vw.GET("/attendance/export.xlsx", h.ExportAttendanceXLSX)
	vw.POST("/attendance/reload", h.ReloadAttendance)
	vw.POST("/attendance/:id/:action", h.TransitionAttendance)

	vw.GET("/reports", h.ListReports)
	vw.GET("/reports/export.csv", h.ExportReportsCSV)
	vw.GET("/reports/export.xlsx", h.ExportReportsXLSX)
	vw.POST("/reports/reload", h.ReloadReports)
	vw.GET("/reports/:id", h.GetReport)
	vw.POST("/reports/:id/attachment", h.UploadAttachment)
	vw.POST("/reports/:id/:action", h.TransitionReport)

	return r
}

// Healthz reports each dependency check. Any failing check makes it 503.
func (h *Handler) Healthz(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	status := http.StatusOK
	for name, check := range h.Health {
		ok := check(c.Request.Context())
		resp[name] = ok
		if !ok {
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
		}
	}
	c.JSON(status, resp)
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
