package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"schoolhub/internal/flow"
	"schoolhub/internal/service"
	"schoolhub/internal/validation"
)

type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorBody{Error: userMsg})
}

// respondWithServiceError maps a service failure to a status code. Expected
// user errors are not logged.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, flow.ErrBusy),
		errors.Is(err, service.ErrReplyPending),
		errors.Is(err, service.ErrAdvisoryPending):
		respondWithError(w, http.StatusConflict, ErrBusy, "", nil)
	case errors.Is(err, flow.ErrGuardRejected):
		respondWithError(w, http.StatusUnprocessableEntity, ErrNothingToSubmit, "", nil)
	case errors.Is(err, service.ErrNoTutorSession):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, service.ErrUnknownPermission),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyMessage):
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "", err)
	}
}

// decodeJSON reads a size-limited JSON body into v. An empty body leaves v
// untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return false
	}
	return true
}

// decode reads and validates a JSON body
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := validation.Struct(v); err != nil {
		respondWithServiceError(w, err)
		return false
	}
	return true
}
