package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolhub/portal/internal/models"
)

// Login authenticates against POST /auth/login and returns the token plus the
// user payload. The caller decides what to do with the token; this call does
// not touch the credential store.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp := &models.LoginResponse{}
	if err := c.postJSON(ctx, "/auth/login", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
