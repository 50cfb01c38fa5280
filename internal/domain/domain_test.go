package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDocumentVersion(t *testing.T) {
	cases := map[string]string{
		"v1.0":  "v1.1",
		"v3.2":  "v3.3",
		"v2":    "v2.1",
		"2.9":   "v2.10",
		"N/A":   "v1.1",
		"":      "v1.1",
		"v1.x":  "v1.1",
		"v-1.0": "v1.1",
	}
	for in, want := range cases {
		assert.Equal(t, want, NextDocumentVersion(in), "input %q", in)
	}
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" auditor ")
	assert.True(t, ok)
	assert.Equal(t, RoleAuditor, role)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestSessionHasRole(t *testing.T) {
	s := Session{SubjectID: "u1", Role: RoleManager}
	assert.True(t, s.HasRole(RoleAdmin, RoleManager))
	assert.False(t, s.HasRole(RoleAdmin))
	assert.False(t, s.HasRole())
}
