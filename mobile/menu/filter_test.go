package menu

import (
	"testing"

	"github.com/schoolhub/portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(id int64, title, route string, order int, roles ...models.Role) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		Title:        title,
		Route:        route,
		OrderIndex:   order,
		AllowedRoles: roles,
		IsRootItem:   true,
		HasChildren:  false,
	}
}

func TestFilterForRole_OrderIndex(t *testing.T) {
	// Two teacher root items arriving out of order must come back sorted.
	items := []models.MenuItem{
		leaf(1, "Classes", "/teacher/classes", 2, models.RoleTeacher),
		leaf(2, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher),
	}

	got := FilterForRole(items, models.RoleTeacher)

	require.Len(t, got, 2)
	assert.Equal(t, "Dashboard", got[0].Title)
	assert.Equal(t, "Classes", got[1].Title)
}

func TestFilterForRole_TiesKeepInputOrder(t *testing.T) {
	items := []models.MenuItem{
		leaf(1, "First", "/a", 3, models.RoleTeacher),
		leaf(2, "Second", "/b", 3, models.RoleTeacher),
		leaf(3, "Third", "/c", 3, models.RoleTeacher),
	}

	got := FilterForRole(items, models.RoleTeacher)

	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)
	assert.Equal(t, int64(3), got[2].ID)
}

func TestFilterForRole_RoleExclusion(t *testing.T) {
	items := []models.MenuItem{
		leaf(1, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher),
		leaf(2, "My Children", "/parent/my-children", 2, models.RoleParent),
	}

	got := FilterForRole(items, models.RoleTeacher)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterForRole_NonRootExcluded(t *testing.T) {
	child := leaf(2, "Nested", "/teacher/grades", 1, models.RoleTeacher)
	child.IsRootItem = false

	got := FilterForRole([]models.MenuItem{child}, models.RoleTeacher)
	assert.Empty(t, got)
}

func TestFilterForRole_ContainersExcluded(t *testing.T) {
	container := models.MenuItem{
		ID:           1,
		Title:        "Administration",
		Route:        "/admin",
		OrderIndex:   1,
		AllowedRoles: []models.Role{models.RoleSchoolAdmin},
		IsRootItem:   true,
		HasChildren:  true,
		Children: []models.MenuItem{
			leaf(2, "Teachers", "/admin/teachers", 1, models.RoleSchoolAdmin),
		},
	}

	got := FilterForRole([]models.MenuItem{container}, models.RoleSchoolAdmin)
	assert.Empty(t, got, "container items are drill-down targets, not flat entries")
}

// The filter trusts the hasChildren flag rather than recomputing it; both
// directions of a violated invariant change the outcome, which is why the
// gateway rejects such payloads up front.
func TestFilterForRole_TrustsHasChildrenFlag(t *testing.T) {
	t.Run("hasChildren true without children hides a leaf", func(t *testing.T) {
		item := leaf(1, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher)
		item.HasChildren = true // violates the invariant

		got := FilterForRole([]models.MenuItem{item}, models.RoleTeacher)
		assert.Empty(t, got)
	})

	t.Run("hasChildren false with children surfaces a container", func(t *testing.T) {
		item := leaf(1, "Admin", "/admin", 1, models.RoleTeacher)
		item.Children = []models.MenuItem{leaf(2, "Sub", "/admin/sub", 1, models.RoleTeacher)}
		// HasChildren stays false: violates the invariant

		got := FilterForRole([]models.MenuItem{item}, models.RoleTeacher)
		assert.Len(t, got, 1)
	})
}

func TestFilterForRole_Idempotent(t *testing.T) {
	items := []models.MenuItem{
		leaf(1, "Classes", "/teacher/classes", 2, models.RoleTeacher),
		leaf(2, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher),
		leaf(3, "My Children", "/parent/my-children", 3, models.RoleParent),
	}

	once := FilterForRole(items, models.RoleTeacher)
	twice := FilterForRole(once, models.RoleTeacher)

	assert.Equal(t, once, twice)
}

func TestNavigableEntries(t *testing.T) {
	items := []models.MenuItem{
		leaf(2, "Classes", "/teacher/classes", 2, models.RoleTeacher),
		leaf(1, "Dashboard", "/teacher/dashboard", 1, models.RoleTeacher),
	}
	items[0].Icon = "book"
	items[1].Icon = "home"
	items[1].TitleKey = "menu.dashboard"

	entries := NavigableEntries(items, models.RoleTeacher)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{
		ID:         1,
		Title:      "Dashboard",
		TitleKey:   "menu.dashboard",
		Icon:       "home",
		Path:       "/(panel)/teacher/dashboard",
		OrderIndex: 1,
	}, entries[0])
	assert.Equal(t, "/(panel)/teacher/classes", entries[1].Path)
}

func TestNavigableEntries_Empty(t *testing.T) {
	assert.Empty(t, NavigableEntries(nil, models.RoleTeacher))
}
