package domain

const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleCollegeAdmin = "COLLEGE_ADMIN"
	RoleFaculty      = "FACULTY"
	RoleDataAnalyst  = "DATA_ANALYST"
	RoleViewer       = "VIEWER"
)

// DefaultRoleNames is the closed set of role names, in seed order.
var DefaultRoleNames = []string{
	RoleSuperAdmin,
	RoleCollegeAdmin,
	RoleFaculty,
	RoleDataAnalyst,
	RoleViewer,
}

// Role is reference data: seeded once at startup, read-only afterwards.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IsValidRoleName reports whether name belongs to the closed role set.
func IsValidRoleName(name string) bool {
	for _, n := range DefaultRoleNames {
		if n == name {
			return true
		}
	}
	return false
}
