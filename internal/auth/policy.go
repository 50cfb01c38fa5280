package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

// State is the authorization state of a request.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticatedNoRoleMatch
	StateAuthorized
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedNoRoleMatch:
		return "authenticated_no_role_match"
	case StateAuthorized:
		return "authorized"
	}
	return "unknown"
}

// Action is what the guard does with a request.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirectLogin
	ActionRedirectHome
	ActionDeny
)

// Rule binds a route to the roles allowed to reach it.
type Rule struct {
	Method  string
	Pattern string
	Roles   []domain.Role
	// Public routes skip authentication.
	Public bool
	// Entry marks login/register pages; signed-in users are sent home from them.
	Entry bool
}

// Decision is the outcome of evaluating a request against the policy.
type Decision struct {
	State  State
	Action Action
	Rule   Rule
}

// Policy is a static route -> roles table. Unmatched routes require any known role.
type Policy struct {
	rules    []compiledRule
	fallback Rule
}

type compiledRule struct {
	rule     Rule
	segments []string
}

// NewPolicy compiles rules.
func NewPolicy(rules ...Rule) *Policy {
	p := &Policy{fallback: Rule{Roles: domain.AllRoles}}
	for _, rule := range rules {
		rule.Method = strings.ToUpper(rule.Method)
		p.rules = append(p.rules, compiledRule{rule: rule, segments: splitPath(rule.Pattern)})
	}
	return p
}

// Match returns the most specific rule for method and path.
func (p *Policy) Match(method, path string) (Rule, bool) {
	method = strings.ToUpper(method)
	if method == fiber.MethodHead {
		method = fiber.MethodGet
	}
	segments := splitPath(path)

	best, bestScore := -1, -1
	for i, cr := range p.rules {
		if cr.rule.Method != "" && cr.rule.Method != method {
			continue
		}
		score, ok := matchSegments(cr.segments, segments)
		if ok && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return p.fallback, false
	}
	return p.rules[best].rule, true
}

// Evaluate resolves the authorization state for a request.
func (p *Policy) Evaluate(session domain.Session, authenticated bool, method, path string) Decision {
	rule, _ := p.Match(method, path)

	if rule.Public {
		if rule.Entry && authenticated {
			return Decision{State: StateAuthorized, Action: ActionRedirectHome, Rule: rule}
		}
		state := StateUnauthenticated
		if authenticated {
			state = StateAuthorized
		}
		return Decision{State: state, Action: ActionAllow, Rule: rule}
	}

	if !authenticated {
		return Decision{State: StateUnauthenticated, Action: ActionRedirectLogin, Rule: rule}
	}
	if !session.HasRole(rule.Roles...) {
		return Decision{State: StateAuthenticatedNoRoleMatch, Action: ActionDeny, Rule: rule}
	}
	return Decision{State: StateAuthorized, Action: ActionAllow, Rule: rule}
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// matchSegments supports ":param" for one segment and a trailing "*" for the rest.
// The score counts literal segments so static routes beat parameterized ones.
func matchSegments(pattern, path []string) (int, bool) {
	score := 0
	for i, seg := range pattern {
		if seg == "*" && i == len(pattern)-1 {
			return score, true
		}
		if i >= len(path) {
			return 0, false
		}
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != path[i] {
			return 0, false
		}
		score++
	}
	if len(pattern) != len(path) {
		return 0, false
	}
	return score, true
}
