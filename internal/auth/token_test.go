package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

var (
	testSecret = []byte("0123456789abcdef0123456789abcdef")
	baseTime   = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestCodec(t *testing.T, at time.Time, opts ...CodecOption) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, append([]CodecOption{WithClock(fixedClock(at))}, opts...)...)
	require.NoError(t, err)
	return codec
}

func dayClaims(subject string, role domain.Role) domain.IdentityClaims {
	return domain.IdentityClaims{
		SubjectID: subject,
		Role:      role,
		IssuedAt:  baseTime,
		ExpiresAt: baseTime.Add(24 * time.Hour),
	}
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	_, err := NewTokenCodec(nil)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = NewTokenCodec([]byte{})
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t, baseTime.Add(time.Hour))

	for _, role := range domain.AllRoles {
		token, err := codec.Encode(dayClaims("user-"+string(role), role))
		require.NoError(t, err)

		session, ok := codec.Decode(token)
		require.True(t, ok, "role %s", role)
		assert.Equal(t, domain.Session{SubjectID: "user-" + string(role), Role: role}, session)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	codec := newTestCodec(t, baseTime)

	first, err := codec.Encode(dayClaims("u1", domain.RoleAuditor))
	require.NoError(t, err)
	second, err := codec.Encode(dayClaims("u1", domain.RoleAuditor))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTokenWireFormat(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token, err := codec.Encode(dayClaims("u1", domain.RoleManager))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"alg":"HS256","typ":"JWT"}`, string(header))

	rawPayload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rawPayload, &payload))
	assert.Equal(t, "u1", payload["sub"])
	assert.Equal(t, "MANAGER", payload["role"])
	assert.EqualValues(t, baseTime.Unix(), payload["iat"])
	assert.EqualValues(t, baseTime.Add(24*time.Hour).Unix(), payload["exp"])
	assert.NotContains(t, payload, "password")
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	issuer := newTestCodec(t, baseTime)
	token, err := issuer.Encode(dayClaims("u1", domain.RoleAdmin))
	require.NoError(t, err)

	other, err := NewTokenCodec([]byte("another-secret-another-secret-another"), WithClock(fixedClock(baseTime)))
	require.NoError(t, err)

	_, ok := other.Decode(token)
	assert.False(t, ok)
}

func TestDecodeEnforcesExpiry(t *testing.T) {
	token, err := newTestCodec(t, baseTime).Encode(dayClaims("u1", domain.RoleAuditor))
	require.NoError(t, err)

	_, ok := newTestCodec(t, baseTime.Add(24*time.Hour-time.Second)).Decode(token)
	assert.True(t, ok, "valid one second before expiry")

	_, ok = newTestCodec(t, baseTime.Add(24*time.Hour)).Decode(token)
	assert.False(t, ok, "invalid at the expiry instant")

	_, ok = newTestCodec(t, baseTime.Add(24*time.Hour+time.Second)).Decode(token)
	assert.False(t, ok, "invalid one second after expiry")
}

func TestDecodeRejectsTamperedSignature(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token, err := codec.Encode(dayClaims("u1", domain.RoleAuditor))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")

	_, ok := codec.Decode(tampered)
	assert.False(t, ok)
}

func TestDecodeRejectsTamperedPayload(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token, err := codec.Encode(dayClaims("u1", domain.RoleAuditor))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(
		`{"role":"ADMIN","sub":"u1","exp":` + jsonInt(baseTime.Add(24*time.Hour).Unix()) + `}`))

	_, ok := codec.Decode(parts[0] + "." + forged + "." + parts[2])
	assert.False(t, ok)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	for _, token := range []string{"", "abc", "a.b", "a.b.c", "....", "eyJhbGciOiJIUzI1NiJ9..sig"} {
		_, ok := codec.Decode(token)
		assert.False(t, ok, "token %q", token)
	}
}

func TestDecodeRejectsOtherAlgorithms(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(baseTime),
			ExpiresAt: jwt.NewNumericDate(baseTime.Add(time.Hour)),
		},
	}

	hs512 := signRaw(t, jwt.SigningMethodHS512, claims, testSecret)
	_, ok := codec.Decode(hs512)
	assert.False(t, ok, "HS512 with the same secret")

	none := signRaw(t, jwt.SigningMethodNone, claims, jwt.UnsafeAllowNoneSignatureType)
	_, ok = codec.Decode(none)
	assert.False(t, ok, "unsigned token")
}

func TestDecodeRequiresExpiryClaim(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token := signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": "ADMIN"}, testSecret)

	_, ok := codec.Decode(token)
	assert.False(t, ok)
}

func TestDecodeRejectsUnknownRole(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token := signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "ROOT",
		"exp":  baseTime.Add(time.Hour).Unix(),
	}, testSecret)

	_, ok := codec.Decode(token)
	assert.False(t, ok)
}

func TestDecodeRejectsInvertedWindow(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token := signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "ADMIN",
		"iat":  baseTime.Add(2 * time.Hour).Unix(),
		"exp":  baseTime.Add(time.Hour).Unix(),
	}, testSecret)

	_, ok := codec.Decode(token)
	assert.False(t, ok)
}

func TestDecodeAcceptsLegacyUserIDClaim(t *testing.T) {
	codec := newTestCodec(t, baseTime)
	token := signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  "legacy-user",
		"role":    "AUDITOR",
		"expires": baseTime.Add(24 * time.Hour).Format(time.RFC3339),
		"iat":     baseTime.Unix(),
		"exp":     baseTime.Add(24 * time.Hour).Unix(),
	}, testSecret)

	session, ok := codec.Decode(token)
	require.True(t, ok)
	assert.Equal(t, domain.Session{SubjectID: "legacy-user", Role: domain.RoleAuditor}, session)
}

func TestEncodeValidatesClaims(t *testing.T) {
	codec := newTestCodec(t, baseTime)

	_, err := codec.Encode(dayClaims("", domain.RoleAdmin))
	assert.Error(t, err)

	_, err = codec.Encode(dayClaims("u1", domain.Role("ROOT")))
	assert.Error(t, err)

	claims := dayClaims("u1", domain.RoleAdmin)
	claims.ExpiresAt = claims.IssuedAt
	_, err = codec.Encode(claims)
	assert.Error(t, err)
}

func TestWithAllowedRolesRestrictsDeployment(t *testing.T) {
	full := newTestCodec(t, baseTime)
	managerToken, err := full.Encode(dayClaims("u1", domain.RoleManager))
	require.NoError(t, err)

	restricted := newTestCodec(t, baseTime, WithAllowedRoles(domain.RoleAdmin, domain.RoleAuditor))

	_, err = restricted.Encode(dayClaims("u1", domain.RoleManager))
	assert.Error(t, err)

	_, ok := restricted.Decode(managerToken)
	assert.False(t, ok)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
