package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/domain"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

const (
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"
	// HomePath is the default landing page for signed-in users.
	HomePath = "/"
)

// RouteGuard enforces the Policy for every request before it reaches a handler.
type RouteGuard struct {
	policy   *Policy
	sessions *SessionManager
	logger   *zap.Logger
}

// NewRouteGuard constructs the guard.
func NewRouteGuard(policy *Policy, sessions *SessionManager, logger *zap.Logger) *RouteGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteGuard{policy: policy, sessions: sessions, logger: logger}
}

// Handle is the fiber middleware.
func (g *RouteGuard) Handle(c *fiber.Ctx) error {
	session, ok := g.sessions.Get(c)
	decision := g.policy.Evaluate(session, ok, c.Method(), c.Path())

	switch decision.Action {
	case ActionRedirectLogin:
		return c.Redirect(LoginPath, fiber.StatusSeeOther)
	case ActionRedirectHome:
		return c.Redirect(HomePath, fiber.StatusSeeOther)
	case ActionDeny:
		g.logger.Debug("route denied",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("subject_id", session.SubjectID),
			zap.String("role", string(session.Role)))
		return apperrors.NewForbidden("insufficient role")
	}
	return c.Next()
}

// SessionFromContext returns the session resolved for this request, if any.
func SessionFromContext(c *fiber.Ctx) (domain.Session, bool) {
	memo, ok := c.Locals(sessionMemoKey).(*sessionMemo)
	if !ok {
		return domain.Session{}, false
	}
	return memo.session, memo.ok
}
