package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/schoolhub/portal/internal/models"
)

// MenuFetchError is a network or server failure while retrieving the menu.
// It is retryable; the resolver surfaces it as the Error state.
type MenuFetchError struct {
	Err error
}

func (e *MenuFetchError) Error() string { return "menu fetch failed: " + e.Err.Error() }
func (e *MenuFetchError) Unwrap() error { return e.Err }

// MalformedMenuError is a menu payload that decoded to the wrong shape or
// violated the hasChildren invariant. The payload is never partially applied.
type MalformedMenuError struct {
	Err error
}

func (e *MalformedMenuError) Error() string { return "malformed menu response: " + e.Err.Error() }
func (e *MalformedMenuError) Unwrap() error { return e.Err }

// FetchUserMenu retrieves the permission-filtered menu tree for a role from
// GET /menu/user. A schoolID of zero omits the schoolId parameter.
func (c *Client) FetchUserMenu(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error) {
	query := url.Values{}
	query.Set("role", string(role))
	if schoolID != 0 {
		query.Set("schoolId", strconv.FormatInt(schoolID, 10))
	}

	data, err := c.do(ctx, http.MethodGet, "/menu/user", query, nil)
	if err != nil {
		return nil, &MenuFetchError{Err: err}
	}

	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &MalformedMenuError{Err: err}
	}
	if err := models.ValidateMenuTree(items); err != nil {
		return nil, &MalformedMenuError{Err: err}
	}
	return items, nil
}
