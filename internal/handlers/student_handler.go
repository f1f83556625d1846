package handlers

import (
	"net/http"

	"schoolhub/internal/advisory"
	"schoolhub/internal/service"
)

// StudentHandler serves the overlays of the student home: fee payment, the
// AI tutor and the bus tracker
type StudentHandler struct {
	workspaces *service.WorkspaceService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(workspaces *service.WorkspaceService) *StudentHandler {
	return &StudentHandler{workspaces: workspaces}
}

type TutorOpenRequest struct {
	Subject string `json:"subject" validate:"max=120"`
}

type TutorMessageRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

type TrackRequest struct {
	Place     string   `json:"place" validate:"max=200"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
}

// Fees handles GET /api/fees
func (h *StudentHandler) Fees(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ws.Fees.State())
}

// PayFees handles POST /api/fees/pay
func (h *StudentHandler) PayFees(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if err := ws.Fees.Pay(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, ws.Fees.State())
}

// OpenTutor handles POST /api/tutor/sessions
func (h *StudentHandler) OpenTutor(w http.ResponseWriter, r *http.Request) {
	var req TutorOpenRequest
	if !decode(w, r, &req) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusCreated, ws.Tutor.Open(req.Subject))
}

// SendTutorMessage handles POST /api/tutor/messages. It answers once the
// tutor has replied.
func (h *StudentHandler) SendTutorMessage(w http.ResponseWriter, r *http.Request) {
	var req TutorMessageRequest
	if !decode(w, r, &req) {
		return
	}
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	turn, err := ws.Tutor.Send(r.Context(), req.Text)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, turn)
}

// CloseTutor handles DELETE /api/tutor/sessions
func (h *StudentHandler) CloseTutor(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	ws.Tutor.Close()
	w.WriteHeader(http.StatusNoContent)
}

// TrackBus handles POST /api/bus/track
func (h *StudentHandler) TrackBus(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if !decode(w, r, &req) {
		return
	}
	var loc *advisory.LatLng
	if req.Latitude != nil && req.Longitude != nil {
		loc = &advisory.LatLng{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	if _, err := ws.Bus.Track(r.Context(), req.Place, loc); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ws.Bus.State())
}

// StopTracking handles DELETE /api/bus/track
func (h *StudentHandler) StopTracking(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	ws.Bus.Close()
	w.WriteHeader(http.StatusNoContent)
}
