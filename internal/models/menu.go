package models

import "fmt"

// MenuItem is one node of the role-scoped navigation tree returned by
// GET /menu/user. Trees are immutable once received; the whole tree is
// replaced atomically on refetch.
type MenuItem struct {
	ID                 int64      `json:"id"`
	TitleKey           string     `json:"titleKey,omitempty"`
	Title              string     `json:"title"`
	Icon               string     `json:"icon"`
	Route              string     `json:"route"`
	OrderIndex         int        `json:"orderIndex"`
	Children           []MenuItem `json:"children"`
	RequiredPermission *string    `json:"requiredPermission"`
	AllowedRoles       []Role     `json:"allowedRoles"`
	ParentID           *int64     `json:"parentId"`
	IsRootItem         bool       `json:"isRootItem"`
	HasChildren        bool       `json:"hasChildren"`
}

// AllowsRole reports whether the item's allowedRoles contains role.
func (m MenuItem) AllowsRole(role Role) bool {
	for _, r := range m.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidateMenuTree checks the hasChildren invariant on every node:
// hasChildren must equal children being non-empty. Payloads violating it are
// rejected as malformed rather than repaired.
func ValidateMenuTree(items []MenuItem) error {
	for _, it := range items {
		if it.HasChildren != (len(it.Children) > 0) {
			return fmt.Errorf("menu item %d: hasChildren=%t with %d children", it.ID, it.HasChildren, len(it.Children))
		}
		if err := ValidateMenuTree(it.Children); err != nil {
			return err
		}
	}
	return nil
}
