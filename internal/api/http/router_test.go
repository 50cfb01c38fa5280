package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/api/http/handlers"
	"github.com/spec-kit/audit-tracker/internal/auth"
	"github.com/spec-kit/audit-tracker/internal/config"
	"github.com/spec-kit/audit-tracker/internal/domain"
	"github.com/spec-kit/audit-tracker/internal/observability"
	"github.com/spec-kit/audit-tracker/internal/service"
)

var routerSecret = []byte("router-test-secret-router-test-secret")

type routerFixture struct {
	app     *fiber.App
	codec   *auth.TokenCodec
	metrics *observability.Metrics
}

// newRouterFixture wires the real route table. Services have no repositories,
// so only requests that stop at the guard or at validation are exercised.
func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	codec, err := auth.NewTokenCodec(routerSecret)
	require.NoError(t, err)
	sessions := auth.NewSessionManager(codec, auth.SessionConfig{}, nil)
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(config.Config{}, service.AuthDependencies{}, logger)
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("audit-tracker", "test", nil, nil),
		Auth:       handlers.NewAuthHandler(authService, sessions),
		Users:      handlers.NewUsersHandler(authService),
		Dashboard:  handlers.NewDashboardHandler(service.NewDashboardService(nil, nil, nil)),
		Audits:     handlers.NewAuditsHandler(service.NewAuditService(nil, nil, logger)),
		Checklists: handlers.NewChecklistsHandler(service.NewChecklistService(nil, nil, logger)),
		Documents:  handlers.NewDocumentsHandler(service.NewDocumentService(nil)),
		Reports:    handlers.NewReportsHandler(service.NewReportService(service.ReportDependencies{}, logger)),
		Risk:       handlers.NewRiskHandler(service.NewRiskService(nil, logger)),
		Sessions:   sessions,
		Logger:     logger,
	})
	return &routerFixture{app: app, codec: codec, metrics: metrics}
}

func (f *routerFixture) cookie(t *testing.T, role domain.Role) *nethttp.Cookie {
	t.Helper()
	now := time.Now()
	token, err := f.codec.Encode(domain.IdentityClaims{
		SubjectID: "user-" + strings.ToLower(string(role)),
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return &nethttp.Cookie{Name: "session", Value: token}
}

func (f *routerFixture) do(t *testing.T, method, path, body string, cookie *nethttp.Cookie) *nethttp.Response {
	t.Helper()
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func errorBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	var payload struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Error
}

func TestEveryRouteHasAnAccessRule(t *testing.T) {
	routes := Routes(RouteConfig{
		Health: &handlers.HealthHandler{}, Auth: &handlers.AuthHandler{}, Users: &handlers.UsersHandler{},
		Dashboard: &handlers.DashboardHandler{}, Audits: &handlers.AuditsHandler{}, Checklists: &handlers.ChecklistsHandler{},
		Documents: &handlers.DocumentsHandler{}, Reports: &handlers.ReportsHandler{}, Risk: &handlers.RiskHandler{},
	})
	policy := PolicyFor(routes)

	for _, r := range routes {
		rule, ok := policy.Match(r.Method, r.Path)
		require.True(t, ok, "%s %s", r.Method, r.Path)
		assert.Equal(t, r.Path, rule.Pattern)
		if !r.Public {
			assert.NotEmpty(t, r.Roles, "%s %s must name its roles", r.Method, r.Path)
		}
		if r.Entry {
			assert.True(t, r.Public, "%s %s", r.Method, r.Path)
		}
	}
}

func TestAnonymousRequestsRedirectToLogin(t *testing.T) {
	f := newRouterFixture(t)

	for _, tc := range []struct{ method, path string }{
		{fiber.MethodGet, "/"},
		{fiber.MethodGet, "/audits"},
		{fiber.MethodPost, "/reports/RPT-1/finalize"},
		{fiber.MethodGet, "/risk-assessment"},
		{fiber.MethodGet, "/no-such-page"},
	} {
		resp := f.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, tc.path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), tc.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, fiber.StatusOK, f.do(t, fiber.MethodGet, "/health/live", "", nil).StatusCode)
	assert.Equal(t, fiber.StatusOK, f.do(t, fiber.MethodGet, "/health/ready", "", nil).StatusCode)
	assert.Equal(t, fiber.StatusOK, f.do(t, fiber.MethodGet, "/login", "", nil).StatusCode)
	assert.Equal(t, fiber.StatusOK, f.do(t, fiber.MethodGet, "/register", "", nil).StatusCode)
}

func TestRoleMatrix(t *testing.T) {
	f := newRouterFixture(t)

	tests := []struct {
		role   domain.Role
		method string
		path   string
		denied bool
	}{
		{domain.RoleAuditor, fiber.MethodGet, "/risk-assessment", true},
		{domain.RoleManager, fiber.MethodGet, "/risk-assessment", true},
		{domain.RoleAdmin, fiber.MethodGet, "/risk-assessment", false},
		{domain.RoleAuditor, fiber.MethodPost, "/audits", true},
		{domain.RoleAuditor, fiber.MethodPost, "/reports/RPT-1/finalize", true},
		{domain.RoleManager, fiber.MethodPost, "/reports", true},
		{domain.RoleManager, fiber.MethodPost, "/documents", true},
		{domain.RoleAuditor, fiber.MethodDelete, "/checklists/c1", true},
		{domain.RoleManager, fiber.MethodDelete, "/documents/d1", true},
		{domain.RoleAuditor, fiber.MethodGet, "/settings/users", true},
		{domain.RoleManager, fiber.MethodDelete, "/settings/users/u1", true},
	}
	for _, tt := range tests {
		resp := f.do(t, tt.method, tt.path, "", f.cookie(t, tt.role))
		if tt.denied {
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s %s", tt.role, tt.method, tt.path)
			assert.Equal(t, "FORBIDDEN", errorBody(t, resp)["code"])
		} else {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, "%s %s %s", tt.role, tt.method, tt.path)
		}
	}
}

func TestSignedInUsersAreSentHomeFromEntryPoints(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.cookie(t, domain.RoleManager)

	for _, path := range []string{"/login", "/register"} {
		resp := f.do(t, fiber.MethodGet, path, "", cookie)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}
}

func TestValidationErrorsReachTheClient(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, fiber.MethodPost, "/login", `{"email":"nope","password":""}`, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := errorBody(t, resp)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Contains(t, body["details"], "email")
	assert.Contains(t, body["details"], "password")

	resp = f.do(t, fiber.MethodPost, "/audits", `{"name":"Q4","auditor":"Al"}`, f.cookie(t, domain.RoleManager))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Len(t, errorBody(t, resp)["details"], 4)
}

func TestRiskAssessmentUnavailableWithoutEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	body := `{"historical_data":"h","regulatory_changes":"r","industry_trends":"i"}`

	resp := f.do(t, fiber.MethodPost, "/risk-assessment", body, f.cookie(t, domain.RoleAdmin))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, fiber.MethodPost, "/logout", "", f.cookie(t, domain.RoleAuditor))
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	var cleared *nethttp.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestUnknownRouteForSignedInUserIsNotFound(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, fiber.MethodGet, "/no-such-page", "", f.cookie(t, domain.RoleAuditor))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, f.metrics.Snapshot().Requests)
}

func TestRequestIDIsEchoedAndAttachedToErrors(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(fiber.MethodGet, "/no-such-page", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.AddCookie(f.cookie(t, domain.RoleManager))
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "req-42", resp.Header.Get(HeaderRequestID))
	body := errorBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "req-42", body["request_id"])

	resp = f.do(t, fiber.MethodGet, "/health/live", "", nil)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
}
