package menu

import (
	"strings"

	"github.com/schoolhub/portal/internal/models"
)

// PanelRoot is the client-side route segment all authenticated screens live
// under.
const PanelRoot = "/(panel)"

// MapServerRoute converts a server-canonical route into the client route:
// one leading separator is stripped and the panel root is prefixed.
// "/teacher/dashboard" becomes "/(panel)/teacher/dashboard".
func MapServerRoute(route string) string {
	clean := strings.TrimPrefix(route, "/")
	return PanelRoot + "/" + clean
}

// DashboardRoute returns the client route of the role's landing screen,
// falling back to the panel root for roles without a dedicated dashboard.
func DashboardRoute(role models.Role) string {
	switch role {
	case models.RoleTeacher:
		return PanelRoot + "/teacher"
	case models.RoleStudent:
		return PanelRoot + "/student"
	case models.RoleParent:
		return PanelRoot + "/parent"
	case models.RoleCanteenOperator:
		return PanelRoot + "/canteen"
	}
	return PanelRoot
}
