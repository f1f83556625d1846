package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DeviceCookieName identifies the browser/device whose app state a request touches
const DeviceCookieName = "device_id"

// GenerateDeviceID creates a new UUID for a device
func GenerateDeviceID() string {
	return uuid.New().String()
}

// ValidDeviceID reports whether id looks like one we issued
func ValidDeviceID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	return r.URL.Scheme == "https"
}

// CreateDeviceCookie creates the long-lived device cookie with proper security flags
func CreateDeviceCookie(r *http.Request, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     DeviceCookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateDeleteCookie creates a cookie for deletion with proper security flags
func CreateDeleteCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
	}
}
