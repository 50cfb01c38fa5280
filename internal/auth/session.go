package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

const sessionMemoKey = "auth_session_memo"

// DefaultSessionTTL is the lifetime of a session credential.
const DefaultSessionTTL = 24 * time.Hour

// UserLookup re-reads principals from the system of record.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionConfig controls how session credentials travel to the client.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	// Lookup, when set, makes Get re-read the role from storage on every request
	// instead of trusting the role embedded in the token.
	Lookup UserLookup
}

// SessionManager issues, reads and clears cookie-held session tokens.
type SessionManager struct {
	codec  *TokenCodec
	cfg    SessionConfig
	now    func() time.Time
	logger *zap.Logger
}

// sessionMemo caches the outcome of Get for the lifetime of one fiber.Ctx.
type sessionMemo struct {
	session domain.Session
	ok      bool
}

// NewSessionManager constructs the manager.
func NewSessionManager(codec *TokenCodec, cfg SessionConfig, logger *zap.Logger) *SessionManager {
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{codec: codec, cfg: cfg, now: codec.now, logger: logger}
}

// Create issues a session credential for user. The password hash never enters the token.
func (m *SessionManager) Create(c *fiber.Ctx, user *domain.User) error {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.cfg.TTL)

	token, err := m.codec.Encode(domain.IdentityClaims{
		SubjectID: user.ID,
		Role:      user.Role,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		Secure:   m.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionMemoKey, &sessionMemo{session: domain.Session{SubjectID: user.ID, Role: user.Role}, ok: true})
	return nil
}

// Destroy removes the client-held credential. The token itself stays valid until
// its expiry if replayed; there is no server-side revocation list.
func (m *SessionManager) Destroy(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(sessionMemoKey, &sessionMemo{})
}

// Get returns the session of the current request, decoding the cookie at most once per request.
func (m *SessionManager) Get(c *fiber.Ctx) (domain.Session, bool) {
	if memo, ok := c.Locals(sessionMemoKey).(*sessionMemo); ok {
		return memo.session, memo.ok
	}
	session, ok := m.resolve(c)
	c.Locals(sessionMemoKey, &sessionMemo{session: session, ok: ok})
	return session, ok
}

func (m *SessionManager) resolve(c *fiber.Ctx) (domain.Session, bool) {
	token := c.Cookies(m.cfg.CookieName)
	if token == "" {
		return domain.Session{}, false
	}

	session, ok := m.codec.Decode(token)
	if !ok {
		return domain.Session{}, false
	}
	if m.cfg.Lookup == nil {
		return session, true
	}

	user, err := m.cfg.Lookup.GetByID(c.UserContext(), session.SubjectID)
	if err != nil || user == nil {
		m.logger.Debug("session principal lookup failed", zap.String("subject_id", session.SubjectID), zap.Error(err))
		return domain.Session{}, false
	}
	if !m.codec.allowed(user.Role) {
		return domain.Session{}, false
	}
	return domain.Session{SubjectID: user.ID, Role: user.Role}, true
}
