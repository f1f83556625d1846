package handlers

import (
	"net/http"

	"schoolhub/internal/service"
)

// AuthHandler drives the login screen's simulated flows. Results are
// observed by polling GET /api/app.
type AuthHandler struct {
	workspaces *service.WorkspaceService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(workspaces *service.WorkspaceService) *AuthHandler {
	return &AuthHandler{workspaces: workspaces}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Auth.Login(in); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Auth.State())
}

// StudentDemo handles POST /api/login/demo
func (h *AuthHandler) StudentDemo(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Auth.StudentDemo(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Auth.State())
}

// Biometric handles POST /api/login/biometric
func (h *AuthHandler) Biometric(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Auth.Biometric(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Auth.State())
}

// EditField handles POST /api/login/edit, sent when either input changes
func (h *AuthHandler) EditField(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	ws.Auth.EditField()
	respondJSON(w, http.StatusOK, ws.Auth.State())
}
