package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/api/http/handlers"
	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Users      *handlers.UsersHandler
	Dashboard  *handlers.DashboardHandler
	Audits     *handlers.AuditsHandler
	Checklists *handlers.ChecklistsHandler
	Documents  *handlers.DocumentsHandler
	Reports    *handlers.ReportsHandler
	Risk       *handlers.RiskHandler
	Sessions   *auth.SessionManager
	Logger     *zap.Logger
}

// Route is one endpoint together with who may reach it.
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
	Roles   []domain.Role
	Public  bool
	Entry   bool
}

// Routes is the single table of endpoints and required roles.
func Routes(cfg RouteConfig) []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/health/live", Handler: cfg.Health.Live, Public: true},
		{Method: fiber.MethodGet, Path: "/health/ready", Handler: cfg.Health.Ready, Public: true},

		{Method: fiber.MethodGet, Path: "/login", Handler: cfg.Auth.LoginForm, Public: true, Entry: true},
		{Method: fiber.MethodPost, Path: "/login", Handler: cfg.Auth.Login, Public: true, Entry: true},
		{Method: fiber.MethodGet, Path: "/register", Handler: cfg.Auth.RegisterForm, Public: true, Entry: true},
		{Method: fiber.MethodPost, Path: "/register", Handler: cfg.Auth.Register, Public: true, Entry: true},
		{Method: fiber.MethodPost, Path: "/logout", Handler: cfg.Auth.Logout, Roles: auth.PermAuthenticated},

		{Method: fiber.MethodGet, Path: "/", Handler: cfg.Dashboard.Show, Roles: auth.PermViewRecords},

		{Method: fiber.MethodGet, Path: "/audits", Handler: cfg.Audits.List, Roles: auth.PermViewRecords},
		{Method: fiber.MethodPost, Path: "/audits", Handler: cfg.Audits.Create, Roles: auth.PermScheduleAudits},
		{Method: fiber.MethodPatch, Path: "/audits/:id/status", Handler: cfg.Audits.UpdateStatus, Roles: auth.PermScheduleAudits},

		{Method: fiber.MethodGet, Path: "/checklists", Handler: cfg.Checklists.List, Roles: auth.PermViewRecords},
		{Method: fiber.MethodPost, Path: "/checklists", Handler: cfg.Checklists.Create, Roles: auth.PermEditChecklists},
		{Method: fiber.MethodPut, Path: "/checklists/:id", Handler: cfg.Checklists.Update, Roles: auth.PermEditChecklists},
		{Method: fiber.MethodPost, Path: "/checklists/:id/duplicate", Handler: cfg.Checklists.Duplicate, Roles: auth.PermEditChecklists},
		{Method: fiber.MethodDelete, Path: "/checklists/:id", Handler: cfg.Checklists.Delete, Roles: auth.PermDeleteRecords},

		{Method: fiber.MethodGet, Path: "/documents", Handler: cfg.Documents.List, Roles: auth.PermViewRecords},
		{Method: fiber.MethodPost, Path: "/documents", Handler: cfg.Documents.Create, Roles: auth.PermEditDocuments},
		{Method: fiber.MethodPut, Path: "/documents/:id", Handler: cfg.Documents.Update, Roles: auth.PermEditDocuments},
		{Method: fiber.MethodPost, Path: "/documents/:id/duplicate", Handler: cfg.Documents.Duplicate, Roles: auth.PermEditDocuments},
		{Method: fiber.MethodDelete, Path: "/documents/:id", Handler: cfg.Documents.Delete, Roles: auth.PermDeleteRecords},

		{Method: fiber.MethodGet, Path: "/reports", Handler: cfg.Reports.List, Roles: auth.PermViewRecords},
		{Method: fiber.MethodPost, Path: "/reports", Handler: cfg.Reports.Create, Roles: auth.PermDraftReports},
		{Method: fiber.MethodGet, Path: "/reports/:id", Handler: cfg.Reports.Get, Roles: auth.PermViewRecords},
		{Method: fiber.MethodPost, Path: "/reports/:id/findings", Handler: cfg.Reports.AddFinding, Roles: auth.PermDraftReports},
		{Method: fiber.MethodPost, Path: "/reports/:id/finalize", Handler: cfg.Reports.Finalize, Roles: auth.PermFinalizeReports},

		{Method: fiber.MethodGet, Path: "/risk-assessment", Handler: cfg.Risk.Form, Roles: auth.PermRiskAssessment},
		{Method: fiber.MethodPost, Path: "/risk-assessment", Handler: cfg.Risk.Assess, Roles: auth.PermRiskAssessment},

		{Method: fiber.MethodGet, Path: "/settings", Handler: cfg.Auth.Settings, Roles: auth.PermAuthenticated},
		{Method: fiber.MethodPut, Path: "/settings/profile", Handler: cfg.Auth.UpdateProfile, Roles: auth.PermAuthenticated},
		{Method: fiber.MethodGet, Path: "/settings/users", Handler: cfg.Users.List, Roles: auth.PermManageUsers},
		{Method: fiber.MethodPost, Path: "/settings/users", Handler: cfg.Users.Create, Roles: auth.PermManageUsers},
		{Method: fiber.MethodPut, Path: "/settings/users/:id", Handler: cfg.Users.Update, Roles: auth.PermManageUsers},
		{Method: fiber.MethodDelete, Path: "/settings/users/:id", Handler: cfg.Users.Delete, Roles: auth.PermManageUsers},
	}
}

// PolicyFor derives the authorization policy from a route table.
func PolicyFor(routes []Route) *auth.Policy {
	rules := make([]auth.Rule, 0, len(routes))
	for _, r := range routes {
		rules = append(rules, auth.Rule{
			Method:  r.Method,
			Pattern: r.Path,
			Roles:   r.Roles,
			Public:  r.Public,
			Entry:   r.Entry,
		})
	}
	return auth.NewPolicy(rules...)
}

// RegisterRoutes installs the route guard and wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	routes := Routes(cfg)
	guard := auth.NewRouteGuard(PolicyFor(routes), cfg.Sessions, cfg.Logger)
	app.Use(guard.Handle)

	for _, r := range routes {
		app.Add(r.Method, r.Path, r.Handler)
	}
}
