package client

import (
	"context"
	"fmt"

	"github.com/schoolhub/portal/internal/models"
)

// GetParentDashboardStats retrieves the summary block of the parent dashboard
// for the authenticated parent.
func (c *Client) GetParentDashboardStats(ctx context.Context) (*models.ParentDashboardStats, error) {
	stats := &models.ParentDashboardStats{}
	if err := c.getJSON(ctx, "/parents/me/dashboard/stats", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetMyChildren retrieves the authenticated parent's children.
func (c *Client) GetMyChildren(ctx context.Context) ([]models.Child, error) {
	var children []models.Child
	if err := c.getJSON(ctx, "/parents/me/children", nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// GetChildDetail retrieves the detail record of one child.
func (c *Client) GetChildDetail(ctx context.Context, childID int64) (*models.ChildDetail, error) {
	detail := &models.ChildDetail{}
	path := fmt.Sprintf("/parents/me/children/%d", childID)
	if err := c.getJSON(ctx, path, nil, detail); err != nil {
		return nil, err
	}
	return detail, nil
}
