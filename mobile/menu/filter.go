package menu

import (
	"sort"

	"github.com/schoolhub/portal/internal/models"
)

// Entry is a menu item surfaced to the presentation layer as a direct
// navigation target, with the server route already mapped to a client path.
type Entry struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	TitleKey   string `json:"titleKey,omitempty"`
	Icon       string `json:"icon"`
	Path       string `json:"path"`
	OrderIndex int    `json:"orderIndex"`
}

// FilterForRole selects the top-level destinations a role may navigate to:
// items whose allowedRoles contains the role, that are root items, and that
// have no children (container items are handled by the drill-down view, not
// listed flatly). Survivors are sorted by orderIndex; ties keep input order.
// Pure function of its inputs, safe to call on every render.
func FilterForRole(items []models.MenuItem, role models.Role) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.AllowsRole(role) && item.IsRootItem && !item.HasChildren {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// NavigableEntries filters the tree for role and maps the survivors to
// presentation entries with client paths.
func NavigableEntries(items []models.MenuItem, role models.Role) []Entry {
	filtered := FilterForRole(items, role)

	entries := make([]Entry, 0, len(filtered))
	for _, item := range filtered {
		entries = append(entries, Entry{
			ID:         item.ID,
			Title:      item.Title,
			TitleKey:   item.TitleKey,
			Icon:       item.Icon,
			Path:       MapServerRoute(item.Route),
			OrderIndex: item.OrderIndex,
		})
	}
	return entries
}
