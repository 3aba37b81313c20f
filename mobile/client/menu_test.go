package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/schoolhub/portal/internal/models"
	"github.com/schoolhub/portal/mobile/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMenuJSON = `[
	{
		"id": 1,
		"title": "Dashboard",
		"icon": "home",
		"route": "/teacher/dashboard",
		"orderIndex": 1,
		"children": [],
		"requiredPermission": null,
		"allowedRoles": ["TEACHER"],
		"parentId": null,
		"isRootItem": true,
		"hasChildren": false
	},
	{
		"id": 2,
		"title": "Classes",
		"icon": "book",
		"route": "/teacher/classes",
		"orderIndex": 2,
		"children": [],
		"requiredPermission": "manage_classes",
		"allowedRoles": ["TEACHER", "SCHOOL_ADMIN"],
		"parentId": null,
		"isRootItem": true,
		"hasChildren": false
	}
]`

func TestClient_FetchUserMenu(t *testing.T) {
	ctx := context.Background()

	t.Run("success with query parameters", func(t *testing.T) {
		var gotRole, gotSchoolID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/menu/user", r.URL.Path)
			gotRole = r.URL.Query().Get("role")
			gotSchoolID = r.URL.Query().Get("schoolId")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(validMenuJSON))
		}))
		defer srv.Close()

		c := New(srv.URL, credentials.NewMemoryStore())
		items, err := c.FetchUserMenu(ctx, models.RoleTeacher, 5)
		require.NoError(t, err)

		assert.Equal(t, "TEACHER", gotRole)
		assert.Equal(t, "5", gotSchoolID)
		require.Len(t, items, 2)
		assert.Equal(t, "Dashboard", items[0].Title)
		assert.True(t, items[1].AllowsRole(models.RoleSchoolAdmin))
	})

	t.Run("zero school id omits parameter", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.URL.Query()["schoolId"]
			assert.False(t, present)
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := New(srv.URL, credentials.NewMemoryStore())
		items, err := c.FetchUserMenu(ctx, models.RoleParent, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("server error surfaces as MenuFetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, credentials.NewMemoryStore())
		_, err := c.FetchUserMenu(ctx, models.RoleTeacher, 0)

		var fetchErr *MenuFetchError
		require.ErrorAs(t, err, &fetchErr)

		var apiErr *APIError
		require.True(t, errors.As(fetchErr.Err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	})

	t.Run("network failure surfaces as MenuFetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused

		c := New(srv.URL, credentials.NewMemoryStore())
		_, err := c.FetchUserMenu(ctx, models.RoleTeacher, 0)

		var fetchErr *MenuFetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("undecodable payload surfaces as MalformedMenuError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"menuItems": "not an array"}`))
		}))
		defer srv.Close()

		c := New(srv.URL, credentials.NewMemoryStore())
		_, err := c.FetchUserMenu(ctx, models.RoleTeacher, 0)

		var malformed *MalformedMenuError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("hasChildren violation surfaces as MalformedMenuError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"id": 1, "title": "Broken", "route": "/x", "children": [], "allowedRoles": ["TEACHER"], "isRootItem": true, "hasChildren": true}
			]`))
		}))
		defer srv.Close()

		c := New(srv.URL, credentials.NewMemoryStore())
		_, err := c.FetchUserMenu(ctx, models.RoleTeacher, 0)

		var malformed *MalformedMenuError
		assert.ErrorAs(t, err, &malformed)
	})
}
