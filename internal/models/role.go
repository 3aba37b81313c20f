package models

import "fmt"

// Role is the closed set of portal roles. Role values match the server-side
// enumeration exactly and are carried verbatim in tokens, menu payloads and
// query parameters.
type Role string

// Portal roles
const (
	RoleOwner           Role = "OWNER"
	RoleSchoolManager   Role = "SCHOOL_MANAGER"
	RoleSchoolAdmin     Role = "SCHOOL_ADMIN"
	RoleTeacher         Role = "TEACHER"
	RoleStudent         Role = "STUDENT"
	RoleParent          Role = "PARENT"
	RoleCanteenOperator Role = "CANTEEN_OPERATOR"
	RoleFinanceTeam     Role = "FINANCE_TEAM"
)

// PermissionAll is the wildcard permission granting everything.
const PermissionAll = "all"

// AllRoles lists every valid role.
var AllRoles = []Role{
	RoleOwner,
	RoleSchoolManager,
	RoleSchoolAdmin,
	RoleTeacher,
	RoleStudent,
	RoleParent,
	RoleCanteenOperator,
	RoleFinanceTeam,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleSchoolManager, RoleSchoolAdmin, RoleTeacher,
		RoleStudent, RoleParent, RoleCanteenOperator, RoleFinanceTeam:
		return true
	}
	return false
}

// ParseRole converts a raw string (e.g. a query parameter) into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}

// TranslationKey returns the i18n key used by the presentation layer for the
// role's display name.
func (r Role) TranslationKey() string {
	switch r {
	case RoleOwner:
		return "roles.owner"
	case RoleSchoolManager:
		return "roles.schoolManager"
	case RoleSchoolAdmin:
		return "roles.schoolAdmin"
	case RoleTeacher:
		return "roles.teacher"
	case RoleStudent:
		return "roles.student"
	case RoleParent:
		return "roles.parent"
	case RoleCanteenOperator:
		return "roles.canteenOperator"
	case RoleFinanceTeam:
		return "roles.financeTeam"
	}
	return ""
}

// DashboardPath returns the server-canonical route of the role's landing
// dashboard, or "" for back-office roles that have no mobile dashboard.
func (r Role) DashboardPath() string {
	switch r {
	case RoleTeacher:
		return "/teacher/dashboard"
	case RoleStudent:
		return "/student/dashboard"
	case RoleParent:
		return "/parent/dashboard"
	case RoleCanteenOperator:
		return "/canteen/dashboard"
	case RoleOwner, RoleSchoolManager, RoleSchoolAdmin, RoleFinanceTeam:
		return ""
	}
	return ""
}

// DefaultPermissions returns the permission set granted to the role when the
// server does not send an explicit permission list for the user.
func (r Role) DefaultPermissions() []string {
	switch r {
	case RoleOwner, RoleSchoolManager:
		return []string{PermissionAll}
	case RoleSchoolAdmin:
		return []string{"view_reports", "manage_teachers", "view_students"}
	case RoleTeacher:
		return []string{"manage_classes", "manage_attendance", "manage_grades"}
	case RoleStudent:
		return []string{"view_schedule", "submit_assignments", "view_grades"}
	case RoleParent:
		return []string{"view_child_progress", "view_attendance", "make_payments"}
	case RoleCanteenOperator:
		return []string{"manage_menu", "manage_orders", "view_inventory"}
	case RoleFinanceTeam:
		return []string{"manage_fees", "view_payments", "financial_reports"}
	}
	return nil
}
