package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/schoolhub/portal/internal/models"
	"go.uber.org/zap"
)

// menuRepository implements data access for the menu_items table
type menuRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *sql.DB, logger *zap.Logger) *menuRepository {
	return &menuRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves every menu item with its allowed roles as a flat list,
// ordered by order_index. The service layer prunes and nests them. A zero
// schoolID returns the platform-wide items only.
func (r *menuRepository) GetAll(ctx context.Context, schoolID int64) ([]models.MenuItem, error) {
	query := `
		SELECT mi.id, mi.title_key, mi.title, mi.icon, mi.route, mi.order_index,
		       mi.required_permission, mi.parent_id,
		       GROUP_CONCAT(mir.role ORDER BY mir.role SEPARATOR ',') AS roles
		FROM menu_items mi
		LEFT JOIN menu_item_roles mir ON mir.menu_item_id = mi.id
		WHERE mi.school_id IS NULL OR mi.school_id = ?
		GROUP BY mi.id
		ORDER BY mi.order_index ASC, mi.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, schoolID)
	if err != nil {
		r.logger.Error("failed to get menu items", zap.Error(err), zap.Int64("school_id", schoolID))
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var titleKey, icon, requiredPermission, roles sql.NullString
		var parentID sql.NullInt64

		if err := rows.Scan(
			&item.ID,
			&titleKey,
			&item.Title,
			&icon,
			&item.Route,
			&item.OrderIndex,
			&requiredPermission,
			&parentID,
			&roles,
		); err != nil {
			r.logger.Error("failed to scan menu item row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan menu item row: %w", err)
		}

		item.TitleKey = titleKey.String
		item.Icon = icon.String
		if requiredPermission.Valid {
			perm := requiredPermission.String
			item.RequiredPermission = &perm
		}
		if parentID.Valid {
			id := parentID.Int64
			item.ParentID = &id
		}
		if roles.Valid && roles.String != "" {
			for _, roleStr := range strings.Split(roles.String, ",") {
				role, err := models.ParseRole(strings.TrimSpace(roleStr))
				if err != nil {
					r.logger.Warn("skipping unknown menu role",
						zap.Int64("menu_item_id", item.ID),
						zap.String("role", roleStr),
					)
					continue
				}
				item.AllowedRoles = append(item.AllowedRoles, role)
			}
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu item rows: %w", err)
	}

	return items, nil
}
