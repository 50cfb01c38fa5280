package auth

import (
	"github.com/spec-kit/audit-tracker/internal/domain"
	apperrors "github.com/spec-kit/audit-tracker/pkg/util/errorutil"
)

// Role sets shared by the route table and the services that re-check them.
var (
	PermAuthenticated   = domain.AllRoles
	PermViewRecords     = []domain.Role{domain.RoleAdmin, domain.RoleAuditor, domain.RoleManager}
	PermScheduleAudits  = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	PermEditChecklists  = []domain.Role{domain.RoleAdmin, domain.RoleAuditor, domain.RoleManager}
	PermEditDocuments   = []domain.Role{domain.RoleAdmin, domain.RoleAuditor}
	PermDeleteRecords   = []domain.Role{domain.RoleAdmin}
	PermDraftReports    = []domain.Role{domain.RoleAdmin, domain.RoleAuditor}
	PermFinalizeReports = []domain.Role{domain.RoleAdmin, domain.RoleManager}
	PermRiskAssessment  = []domain.Role{domain.RoleAdmin}
	PermManageUsers     = []domain.Role{domain.RoleAdmin}
)

// Authorize re-validates actor at the point of a sensitive operation.
func Authorize(actor domain.Session, roles ...domain.Role) error {
	if actor.SubjectID == "" {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !actor.HasRole(roles...) {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}
