package handlers

import (
	"net/http"

	"schoolhub/internal/models"
	"schoolhub/internal/service"
)

// TeacherHandler serves the teacher dashboard's attendance panel and tools
type TeacherHandler struct {
	workspaces *service.WorkspaceService
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(workspaces *service.WorkspaceService) *TeacherHandler {
	return &TeacherHandler{workspaces: workspaces}
}

type MarkAllRequest struct {
	Status models.AttendanceStatus `json:"status" validate:"required"`
}

// Attendance handles GET /api/attendance
func (h *TeacherHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ws.Attendance.State())
}

// ToggleAttendance handles POST /api/attendance/{id}/toggle
func (h *TeacherHandler) ToggleAttendance(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	record, err := ws.Attendance.Toggle(r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// MarkAll handles POST /api/attendance/mark-all
func (h *TeacherHandler) MarkAll(w http.ResponseWriter, r *http.Request) {
	var req MarkAllRequest
	if !decode(w, r, &req) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Attendance.MarkAll(req.Status); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ws.Attendance.State())
}

// SyncAttendance handles POST /api/attendance/sync
func (h *TeacherHandler) SyncAttendance(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Attendance.SyncBiometric(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Attendance.State())
}

// CreateExam handles POST /api/exams
func (h *TeacherHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var in service.ExamInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Teacher.CreateExam(in); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Teacher.State())
}

// SendMessage handles POST /api/messages
func (h *TeacherHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var in service.MessageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Teacher.SendMessage(in); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Teacher.State())
}

// Salaries handles GET /api/salaries
func (h *TeacherHandler) Salaries(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ws.Teacher.Salaries())
}
