package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"schoolhub/internal/logger"
	"schoolhub/internal/security"
	"schoolhub/internal/service"
)

const recoveryMessage = "Something went wrong. You can reload the app or send us a report."

// Reporter is a logger that can also ship crash reports
type Reporter interface {
	logger.Logger
	Report(err error, extras map[string]interface{}) bool
}

type crash struct {
	id  string
	err error
	at  time.Time
	url string
}

// RecoveryHandler is the app's crash guard. A panic anywhere below it is
// answered with the recovery screen, and the device can then reload (which
// wipes its persisted state) or send a report.
type RecoveryHandler struct {
	workspaces *service.WorkspaceService
	csrf       *security.CSRFGenerator
	log        Reporter

	mu      sync.Mutex
	crashes map[string]crash
}

// NewRecoveryHandler creates a new recovery handler
func NewRecoveryHandler(workspaces *service.WorkspaceService, csrf *security.CSRFGenerator, log Reporter) *RecoveryHandler {
	return &RecoveryHandler{
		workspaces: workspaces,
		csrf:       csrf,
		log:        log,
		crashes:    make(map[string]crash),
	}
}

// Recover wraps the whole router
func (h *RecoveryHandler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = errors.Errorf("%v", rec)
			}
			err = errors.WithStack(err)

			c := crash{id: uuid.NewString(), err: err, at: time.Now(), url: r.URL.Path}
			if cookie, cerr := r.Cookie(security.DeviceCookieName); cerr == nil && security.ValidDeviceID(cookie.Value) {
				h.mu.Lock()
				h.crashes[cookie.Value] = c
				h.mu.Unlock()
			}
			h.log.Error("recovered from panic", "path", r.URL.Path, "crash", c.id, err)

			respondJSON(w, http.StatusInternalServerError, AppView{
				Screen: ScreenRecovery,
				View:   RecoveryView{Message: recoveryMessage, CrashID: c.id, Actions: []string{"reload", "report"}},
			})
		}()
		next.ServeHTTP(w, r)
	})
}

// Reload handles POST /api/recovery/reload. It clears the device's
// persisted state and returns the fresh start screen.
func (h *RecoveryHandler) Reload(w http.ResponseWriter, r *http.Request) {
	deviceID := GetDeviceFromContext(r.Context())
	if err := h.workspaces.Reset(r.Context(), deviceID); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error resetting device state", err)
		return
	}
	h.mu.Lock()
	delete(h.crashes, deviceID)
	h.mu.Unlock()

	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, renderApp(ws, h.csrf))
}

// Report handles POST /api/recovery/report. The report is acknowledged
// locally and forwarded to the error tracker when one is configured.
func (h *RecoveryHandler) Report(w http.ResponseWriter, r *http.Request) {
	deviceID := GetDeviceFromContext(r.Context())

	h.mu.Lock()
	c, ok := h.crashes[deviceID]
	delete(h.crashes, deviceID)
	h.mu.Unlock()

	ack := ReportAck{Acknowledged: true}
	if ok {
		ack.CrashID = c.id
		ack.Forwarded = h.log.Report(c.err, map[string]interface{}{
			"crash_id": c.id,
			"path":     c.url,
			"at":       c.at.Format(time.RFC3339),
		})
	}
	h.log.Info("crash report acknowledged", "crash", ack.CrashID, "forwarded", ack.Forwarded)
	respondJSON(w, http.StatusOK, ack)
}

// Prune forgets crashes older than maxAge that were never reported
func (h *RecoveryHandler) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	h.mu.Lock()
	defer h.mu.Unlock()
	removed := 0
	for id, c := range h.crashes {
		if c.at.Before(cutoff) {
			delete(h.crashes, id)
			removed++
		}
	}
	return removed
}
