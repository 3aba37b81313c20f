package client

import (
	"context"
	"fmt"

	"github.com/schoolhub/portal/internal/models"
)

// GetTeacherDashboardStats retrieves the summary block of a teacher dashboard.
func (c *Client) GetTeacherDashboardStats(ctx context.Context, teacherID int64) (*models.TeacherDashboardStats, error) {
	stats := &models.TeacherDashboardStats{}
	path := fmt.Sprintf("/teachers/%d/dashboard/stats", teacherID)
	if err := c.getJSON(ctx, path, nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetTeacherClasses retrieves the classes assigned to a teacher.
func (c *Client) GetTeacherClasses(ctx context.Context, teacherID int64) ([]models.TeacherClass, error) {
	var classes []models.TeacherClass
	path := fmt.Sprintf("/teachers/%d/classes", teacherID)
	if err := c.getJSON(ctx, path, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// GetUpcomingClasses retrieves a teacher's upcoming classes.
func (c *Client) GetUpcomingClasses(ctx context.Context, teacherID int64) ([]models.UpcomingClass, error) {
	var classes []models.UpcomingClass
	path := fmt.Sprintf("/teachers/%d/upcoming-classes", teacherID)
	if err := c.getJSON(ctx, path, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// GetTodaySchedule retrieves a teacher's schedule for today.
func (c *Client) GetTodaySchedule(ctx context.Context, teacherID int64) ([]models.UpcomingClass, error) {
	var classes []models.UpcomingClass
	path := fmt.Sprintf("/teachers/%d/today-schedule", teacherID)
	if err := c.getJSON(ctx, path, nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// GetRecentActivity retrieves a teacher's recent-activity feed.
func (c *Client) GetRecentActivity(ctx context.Context, teacherID int64) ([]models.TeacherActivity, error) {
	var activity []models.TeacherActivity
	path := fmt.Sprintf("/teachers/%d/recent-activity", teacherID)
	if err := c.getJSON(ctx, path, nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}
