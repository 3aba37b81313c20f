package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/schoolhub/portal/internal/models"
	"go.uber.org/zap"
)

// MenuService is the interface that wraps methods for menu business logic.
type MenuService interface {
	// Method MenuForRole returns the menu tree a role may see, scoped to a school.
	//
	// "role" parameter selects the role; "schoolID" scopes the items, zero means platform-wide only.
	//
	// If the role is unknown or some other error occurs, the error will be returned together with "nil" value.
	MenuForRole(ctx context.Context, role models.Role, schoolID int64) ([]models.MenuItem, error)
}

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	BaseHandler
	menuService MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService MenuService, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{
		BaseHandler: BaseHandler{Logger: logger},
		menuService: menuService,
	}
}

// RegisterRoutes registers all menu handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Get("/user", h.GetUserMenu)
	})
}

// GetUserMenu handles GET /menu/user?role=&schoolId=
func (h *MenuHandler) GetUserMenu(w http.ResponseWriter, r *http.Request) {
	role, err := models.ParseRole(r.URL.Query().Get("role"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var schoolID int64
	if schoolIDStr := r.URL.Query().Get("schoolId"); schoolIDStr != "" {
		schoolID, err = strconv.ParseInt(schoolIDStr, 10, 64)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid schoolId")
			return
		}
	}

	items, err := h.menuService.MenuForRole(r.Context(), role, schoolID)
	if err != nil {
		h.Logger.Error("failed to build user menu",
			zap.Error(err),
			zap.String("role", string(role)),
			zap.Int64("school_id", schoolID),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}
