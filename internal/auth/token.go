package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// ErrSecretNotConfigured is returned when a codec is built without a signing secret.
var ErrSecretNotConfigured = errors.New("session signing secret not configured")

var (
	errEmptySubject  = errors.New("claims: empty subject")
	errUnknownRole   = errors.New("claims: unknown role")
	errInvalidWindow = errors.New("claims: expiry must be after issuance")
)

// TokenCodec issues and validates HS256 session tokens.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	roles  map[domain.Role]struct{}
	logger *zap.Logger
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(tc *TokenCodec) {
		if now != nil {
			tc.now = now
		}
	}
}

// WithCodecLogger sets the logger used for rejected tokens.
func WithCodecLogger(logger *zap.Logger) CodecOption {
	return func(tc *TokenCodec) {
		if logger != nil {
			tc.logger = logger
		}
	}
}

// WithAllowedRoles restricts the roles a token may carry.
func WithAllowedRoles(roles ...domain.Role) CodecOption {
	return func(tc *TokenCodec) {
		if len(roles) == 0 {
			return
		}
		tc.roles = make(map[domain.Role]struct{}, len(roles))
		for _, role := range roles {
			tc.roles[role] = struct{}{}
		}
	}
}

// NewTokenCodec builds a codec around secret.
func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, ErrSecretNotConfigured
	}
	tc := &TokenCodec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	WithAllowedRoles(domain.AllRoles...)(tc)
	for _, opt := range opts {
		opt(tc)
	}
	return tc, nil
}

// Claims describes the JWT payload. LegacyUserID accepts tokens minted before
// the subject moved to the registered "sub" claim.
type Claims struct {
	Role         domain.Role `json:"role"`
	LegacyUserID string      `json:"userId,omitempty"`
	jwt.RegisteredClaims
}

// Encode signs claims into a compact token.
func (tc *TokenCodec) Encode(claims domain.IdentityClaims) (string, error) {
	if claims.SubjectID == "" {
		return "", errEmptySubject
	}
	if !tc.allowed(claims.Role) {
		return "", fmt.Errorf("%w: %q", errUnknownRole, claims.Role)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		return "", errInvalidWindow
	}

	payload := &Claims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.SubjectID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return token.SignedString(tc.secret)
}

// Decode validates token and returns the session it carries. ok is false for
// malformed, tampered, foreign-algorithm or expired tokens.
func (tc *TokenCodec) Decode(token string) (domain.Session, bool) {
	claims, err := tc.parse(token)
	if err != nil {
		tc.logRejection(err)
		return domain.Session{}, false
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.LegacyUserID
	}
	if subject == "" {
		tc.logger.Debug("session token rejected", zap.Error(errEmptySubject))
		return domain.Session{}, false
	}
	if !tc.allowed(claims.Role) {
		tc.logger.Debug("session token rejected", zap.Error(errUnknownRole), zap.String("role", string(claims.Role)))
		return domain.Session{}, false
	}
	if claims.IssuedAt != nil && !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		tc.logger.Debug("session token rejected", zap.Error(errInvalidWindow))
		return domain.Session{}, false
	}

	return domain.Session{SubjectID: subject, Role: claims.Role}, true
}

func (tc *TokenCodec) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, jwt.ErrTokenMalformed
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.now),
	)
	parsed, err := parser.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tc.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (tc *TokenCodec) allowed(role domain.Role) bool {
	_, ok := tc.roles[role]
	return ok
}

// logRejection keeps routine failures at debug level.
func (tc *TokenCodec) logRejection(err error) {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		tc.logger.Debug("session token rejected", zap.Error(err))
	default:
		tc.logger.Warn("session token rejected for unexpected reason", zap.Error(err))
	}
}
