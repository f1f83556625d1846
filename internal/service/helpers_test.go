package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"schoolhub/internal/advisory"
	"schoolhub/internal/models"
)

// manualClock collects scheduled callbacks so tests can fire them in order
type manualClock struct {
	mu      sync.Mutex
	pending []func()
}

func (c *manualClock) schedule(_ time.Duration, fn func()) {
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

func (c *manualClock) step(t *testing.T) {
	t.Helper()
	c.mu.Lock()
	require.NotEmpty(t, c.pending, "no pending timers")
	next := c.pending[0]
	c.pending = c.pending[1:]
	c.mu.Unlock()
	next()
}

// drain fires timers until none are left
func (c *manualClock) drain(t *testing.T) {
	t.Helper()
	for c.len() > 0 {
		c.step(t)
	}
}

func (c *manualClock) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

var testTimings = Timings{
	Login:   1500 * time.Millisecond,
	Payment: 2 * time.Second,
	Sync:    2500 * time.Millisecond,
	Exam:    1500 * time.Millisecond,
	Message: time.Second,
	Display: 3 * time.Second,
}

var errStoreDown = errors.New("store unavailable")

// brokenStore fails every write
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (brokenStore) Set(context.Context, string, string) error         { return errStoreDown }

// scriptedGenerator answers with text or fails with err, counting calls
type scriptedGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	last  advisory.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req advisory.Request) (advisory.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.last = req
	if g.err != nil {
		return advisory.Response{}, g.err
	}
	return advisory.Response{
		Text:      g.text,
		Citations: []advisory.Citation{{URI: "https://maps.example/route", Title: "Route 42"}},
	}, nil
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// recordingAnnouncer captures announcements
type recordingAnnouncer struct {
	mu         sync.Mutex
	err        error
	recipients [][]string
}

func (a *recordingAnnouncer) IsEnabled() bool { return true }

func (a *recordingAnnouncer) SendAnnouncement(_ context.Context, recipients []string, _, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recipients = append(a.recipients, recipients)
	return a.err
}

func permissionSet(perms []models.Permission) map[models.Permission]bool {
	set := make(map[models.Permission]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}
