// Package auth resolves request identity and enforces role permissions.
// Identity comes from the X-User-Email and X-User-Role headers, or from a
// verified OIDC ID token when an issuer is configured.
package auth

import "slices"

// Permission names a guarded capability.
type Permission string

const (
	AnalysisCreate         Permission = "analysis.create"
	AnalysisRead           Permission = "analysis.read"
	AnalysisFeedbackWrite  Permission = "analysis.feedback.write"
	AnalysisHistoryRead    Permission = "analysis.history.read"
	AdminUsersManage       Permission = "admin.users.manage"
	AdminRegulationsManage Permission = "admin.regulations.manage"
	AdminSettingsManage    Permission = "admin.settings.manage"
)

// Role groups permissions.
type Role string

const (
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

var reviewerPermissions = []Permission{
	AnalysisCreate,
	AnalysisRead,
	AnalysisFeedbackWrite,
	AnalysisHistoryRead,
}

var rolePermissions = map[Role][]Permission{
	RoleReviewer: reviewerPermissions,
	RoleAdmin: append(slices.Clone(reviewerPermissions),
		AdminUsersManage,
		AdminRegulationsManage,
		AdminSettingsManage,
	),
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Can reports whether r grants p. Unknown roles grant nothing.
func (r Role) Can(p Permission) bool {
	return slices.Contains(rolePermissions[r], p)
}

// Permissions returns the permissions granted to r.
func (r Role) Permissions() []Permission {
	return slices.Clone(rolePermissions[r])
}
