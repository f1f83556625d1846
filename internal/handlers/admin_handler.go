package handlers

import (
	"net/http"

	"schoolhub/internal/models"
	"schoolhub/internal/service"
)

// AdminHandler serves the admin dashboard's user management
type AdminHandler struct {
	workspaces *service.WorkspaceService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(workspaces *service.WorkspaceService) *AdminHandler {
	return &AdminHandler{workspaces: workspaces}
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, AdminDashboardView{
		Users:       ws.Admin.Users(),
		Stats:       ws.Admin.Stats(),
		Permissions: models.AllPermissions,
	})
}

// TogglePermission handles POST /api/admin/users/{id}/permissions/{perm}/toggle
func (h *AdminHandler) TogglePermission(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	user, err := ws.Admin.TogglePermission(r.Context(), r.PathValue("id"), models.Permission(r.PathValue("perm")))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
