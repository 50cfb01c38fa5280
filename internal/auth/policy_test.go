package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

func testPolicy() *Policy {
	return NewPolicy(
		Rule{Method: "GET", Pattern: "/login", Public: true, Entry: true},
		Rule{Method: "POST", Pattern: "/login", Public: true, Entry: true},
		Rule{Method: "GET", Pattern: "/health/*", Public: true},
		Rule{Method: "GET", Pattern: "/", Roles: PermViewRecords},
		Rule{Method: "GET", Pattern: "/reports/:id", Roles: PermViewRecords},
		Rule{Method: "GET", Pattern: "/reports/drafts", Roles: PermDraftReports},
		Rule{Method: "POST", Pattern: "/reports/:id/finalize", Roles: PermFinalizeReports},
		Rule{Method: "GET", Pattern: "/risk-assessment", Roles: PermRiskAssessment},
	)
}

func TestPolicyMatch(t *testing.T) {
	p := testPolicy()

	rule, ok := p.Match("GET", "/reports/RPT-1")
	assert.True(t, ok)
	assert.Equal(t, "/reports/:id", rule.Pattern)

	rule, ok = p.Match("GET", "/reports/drafts")
	assert.True(t, ok)
	assert.Equal(t, "/reports/drafts", rule.Pattern, "static segments win over params")

	rule, ok = p.Match("HEAD", "/risk-assessment/")
	assert.True(t, ok)
	assert.Equal(t, "/risk-assessment", rule.Pattern)

	rule, ok = p.Match("GET", "/health/ready")
	assert.True(t, ok)
	assert.True(t, rule.Public)

	_, ok = p.Match("DELETE", "/reports/RPT-1")
	assert.False(t, ok)

	_, ok = p.Match("GET", "/reports/RPT-1/extra")
	assert.False(t, ok)
}

func TestPolicyEvaluateStates(t *testing.T) {
	p := testPolicy()
	auditor := domain.Session{SubjectID: "u1", Role: domain.RoleAuditor}
	admin := domain.Session{SubjectID: "u2", Role: domain.RoleAdmin}

	tests := []struct {
		name          string
		session       domain.Session
		authenticated bool
		method, path  string
		wantState     State
		wantAction    Action
	}{
		{"anonymous on protected route", domain.Session{}, false, "GET", "/", StateUnauthenticated, ActionRedirectLogin},
		{"anonymous on login", domain.Session{}, false, "GET", "/login", StateUnauthenticated, ActionAllow},
		{"signed in on login", auditor, true, "POST", "/login", StateAuthorized, ActionRedirectHome},
		{"signed in on public health", auditor, true, "GET", "/health/live", StateAuthorized, ActionAllow},
		{"auditor on admin route", auditor, true, "GET", "/risk-assessment", StateAuthenticatedNoRoleMatch, ActionDeny},
		{"admin on admin route", admin, true, "GET", "/risk-assessment", StateAuthorized, ActionAllow},
		{"auditor on shared route", auditor, true, "GET", "/reports/RPT-1", StateAuthorized, ActionAllow},
		{"auditor finalizing", auditor, true, "POST", "/reports/RPT-1/finalize", StateAuthenticatedNoRoleMatch, ActionDeny},
		{"unknown route fails closed", domain.Session{}, false, "GET", "/nowhere", StateUnauthenticated, ActionRedirectLogin},
		{"unknown route for any role", auditor, true, "GET", "/nowhere", StateAuthorized, ActionAllow},
		{"session with foreign role", domain.Session{SubjectID: "u3", Role: "GUEST"}, true, "GET", "/nowhere", StateAuthenticatedNoRoleMatch, ActionDeny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Evaluate(tt.session, tt.authenticated, tt.method, tt.path)
			assert.Equal(t, tt.wantState, d.State, d.State.String())
			assert.Equal(t, tt.wantAction, d.Action)
		})
	}
}

func TestPolicyEvaluateIsStable(t *testing.T) {
	p := testPolicy()
	auditor := domain.Session{SubjectID: "u1", Role: domain.RoleAuditor}

	first := p.Evaluate(auditor, true, "GET", "/risk-assessment")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, p.Evaluate(auditor, true, "GET", "/risk-assessment"))
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(domain.Session{}, domain.RoleAdmin)
	assert.ErrorContains(t, err, "authentication required")

	err = Authorize(domain.Session{SubjectID: "u1", Role: domain.RoleAuditor}, PermRiskAssessment...)
	assert.ErrorContains(t, err, "insufficient role")

	assert.NoError(t, Authorize(domain.Session{SubjectID: "u1", Role: domain.RoleAdmin}, PermRiskAssessment...))
}
