package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"schoolhub/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const DeviceContextKey ContextKey = "device"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	csrf      *security.CSRFGenerator
	limiter   *security.RateLimiter
	cookieTTL time.Duration
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(csrf *security.CSRFGenerator, limiter *security.RateLimiter, cookieTTL time.Duration) *Middleware {
	return &Middleware{
		csrf:      csrf,
		limiter:   limiter,
		cookieTTL: cookieTTL,
	}
}

// Device makes sure every request carries a device ID, issuing a new
// cookie when the browser has none
func (m *Middleware) Device(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := ""
		if cookie, err := r.Cookie(security.DeviceCookieName); err == nil && security.ValidDeviceID(cookie.Value) {
			deviceID = cookie.Value
		}
		if deviceID == "" {
			deviceID = security.GenerateDeviceID()
		}
		// Refresh on every request so an active device keeps its state
		http.SetCookie(w, security.CreateDeviceCookie(r, deviceID, m.cookieTTL))

		ctx := context.WithValue(r.Context(), DeviceContextKey, deviceID)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect rejects state-changing requests without the device's token.
// It must run inside Device.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next(w, r)
			return
		}
		if !m.csrf.ValidateToken(GetDeviceFromContext(r.Context()), r.Header.Get(security.CSRFHeader)) {
			respondWithError(w, http.StatusForbidden, ErrInvalidCSRF, "", nil)
			return
		}
		next(w, r)
	}
}

// RateLimit limits requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// API wraps an endpoint with the device and CSRF checks
func (m *Middleware) API(next http.HandlerFunc) http.HandlerFunc {
	return m.Device(m.CSRFProtect(next))
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetDeviceFromContext retrieves the device ID from the request context
func GetDeviceFromContext(ctx context.Context) string {
	id, _ := ctx.Value(DeviceContextKey).(string)
	return id
}
