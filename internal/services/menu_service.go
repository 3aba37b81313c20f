package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/schoolhub/portal/internal/models"
	"go.uber.org/zap"
)

// MenuRepository is the interface that wraps methods for menu table data access
type MenuRepository interface {
	// Method GetAll retrieves every menu item with its allowed roles as a flat list.
	//
	// "schoolID" parameter scopes the items; zero returns platform-wide items only.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetAll(ctx context.Context, schoolID int64) ([]models.MenuItem, error)
}

// menuService builds the role-scoped menu tree
type menuService struct {
	menuRepo MenuRepository
	logger   *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo MenuRepository, logger *zap.Logger) *menuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

// MenuForRole returns the menu tree for the role: flat rows are pruned to the
// ones the role may see, nested by parent_id, and every node's isRootItem and
// hasChildren flags are derived from the final shape. A child whose parent
// the role may not see is dropped with it.
func (s *menuService) MenuForRole(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %q", role)
	}

	flat, err := s.menuRepo.GetAll(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	// Prune to the items the role may see
	visible := make([]models.MenuItem, 0, len(flat))
	byID := make(map[int64]bool, len(flat))
	for _, item := range flat {
		if !item.AllowsRole(role) {
			continue
		}
		visible = append(visible, item)
		byID[item.ID] = true
	}

	// Group children under their surviving parents
	children := make(map[int64][]models.MenuItem)
	var roots []models.MenuItem
	for _, item := range visible {
		if item.ParentID != nil {
			if !byID[*item.ParentID] {
				// Parent pruned away, the subtree goes with it
				continue
			}
			children[*item.ParentID] = append(children[*item.ParentID], item)
			continue
		}
		roots = append(roots, item)
	}

	tree := buildSubtree(roots, children, true)
	if tree == nil {
		tree = []models.MenuItem{}
	}
	return tree, nil
}

// buildSubtree attaches children recursively and derives the isRootItem and
// hasChildren flags
func buildSubtree(items []models.MenuItem, children map[int64][]models.MenuItem, root bool) []models.MenuItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderIndex < items[j].OrderIndex
	})

	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		item.IsRootItem = root
		item.Children = buildSubtree(children[item.ID], children, false)
		item.HasChildren = len(item.Children) > 0
		out = append(out, item)
	}
	return out
}
