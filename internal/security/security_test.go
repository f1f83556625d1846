package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	password := "password123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() returned %q", hash)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes due to salt")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct password", password: "password123", want: true},
		{name: "incorrect password", password: "Password123", want: false},
		{name: "empty password", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.password, hash); got != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCSRFToken(t *testing.T) {
	g := NewCSRFGenerator("secret")
	device := GenerateDeviceID()

	token, err := g.GenerateToken(device)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if !g.ValidateToken(device, token) {
		t.Error("token should validate for its own device")
	}
	if g.ValidateToken(GenerateDeviceID(), token) {
		t.Error("token must not validate for another device")
	}
	if NewCSRFGenerator("other").ValidateToken(device, token) {
		t.Error("token must not validate under another secret")
	}
	if _, err := g.GenerateToken(""); err == nil {
		t.Error("expected error for empty device ID")
	}
}

func TestValidDeviceID(t *testing.T) {
	if !ValidDeviceID(GenerateDeviceID()) {
		t.Error("generated IDs should be valid")
	}
	if ValidDeviceID("../../etc/passwd") {
		t.Error("arbitrary strings should be rejected")
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two attempts should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third attempt in the window should be refused")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other clients have their own budget")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Error("budget should refill after the window")
	}

	now = now.Add(2 * time.Minute)
	if removed := rl.Prune(); removed != 2 {
		t.Errorf("Prune() removed %d buckets, want 2", removed)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, want: "10.0.0.9"},
		{name: "remote addr", remote: "192.168.1.5:5123", want: "192.168.1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateDeviceCookieSecureBehindProxy(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	c := CreateDeviceCookie(r, "abc", time.Hour)
	if !c.Secure || !c.HttpOnly || c.Name != DeviceCookieName {
		t.Errorf("unexpected cookie: %+v", c)
	}
}
