package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"schoolhub/internal/advisory"
	"schoolhub/internal/flow"
	"schoolhub/internal/logger"
	"schoolhub/internal/navigation"
	"schoolhub/internal/repository"
)

// Timings are the simulated latencies of the app's flows
type Timings struct {
	Login   time.Duration
	Payment time.Duration
	Sync    time.Duration
	Exam    time.Duration
	Message time.Duration
	// Display is how long a success banner stays up
	Display time.Duration
}

// Dependencies are shared by every workspace
type Dependencies struct {
	Store       repository.StateStore
	Advisory    *advisory.Client
	Email       Announcer
	Credentials *Credentials
	Timings     Timings
	// Scheduler defaults to flow.RealScheduler
	Scheduler flow.Scheduler
	Log       logger.Logger
}

// Workspace is everything one device sees: its navigation shell and the
// local state of every screen component
type Workspace struct {
	DeviceID   string
	Shell      *navigation.Shell
	Auth       *AuthService
	Fees       *FeeService
	Attendance *AttendanceService
	Teacher    *TeacherService
	Admin      *AdminService
	Tutor      *TutorService
	Bus        *BusService

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// close tears down pending flows so late timers do nothing
func (w *Workspace) close() {
	w.Shell.Close()
	w.Auth.Close()
	w.Fees.Close()
	w.Attendance.Close()
	w.Teacher.Close()
	w.Tutor.Close()
	w.Bus.Close()
}

// WorkspaceService keeps one workspace per device. Workspaces are restored
// lazily from the state store and dropped after ttl without requests; the
// persisted keys outlive them.
type WorkspaceService struct {
	deps Dependencies
	ttl  time.Duration
	now  func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

// NewWorkspaceService creates an empty registry
func NewWorkspaceService(deps Dependencies, ttl time.Duration) *WorkspaceService {
	if deps.Scheduler == nil {
		deps.Scheduler = flow.RealScheduler
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	return &WorkspaceService{
		deps:       deps,
		ttl:        ttl,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Get returns the device's workspace, restoring it on first use
func (s *WorkspaceService) Get(ctx context.Context, deviceID string) (*Workspace, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ws, ok := s.workspaces[deviceID]; ok {
		ws.touch(now)
		return ws, nil
	}

	ws := s.build(ctx, deviceID)
	ws.touch(now)
	s.workspaces[deviceID] = ws
	return ws, nil
}

func (s *WorkspaceService) build(ctx context.Context, deviceID string) *Workspace {
	d := s.deps
	store := repository.Scope(d.Store, deviceID)
	shell := navigation.NewShell(ctx, store, d.Log)

	next := func(e navigation.Event) {
		shell.Dispatch(context.Background(), e)
	}

	return &Workspace{
		DeviceID:   deviceID,
		Shell:      shell,
		Auth:       NewAuthService(d.Credentials, d.Timings, d.Scheduler, next),
		Fees:       NewFeeService(d.Timings, d.Scheduler, d.Log),
		Attendance: NewAttendanceService(d.Timings, d.Scheduler, d.Log),
		Teacher:    NewTeacherService(d.Timings, d.Scheduler, d.Email, d.Log),
		Admin:      NewAdminService(ctx, store, d.Log),
		Tutor:      NewTutorService(d.Advisory, d.Log),
		Bus:        NewBusService(d.Advisory),
	}
}

// Reset wipes the device's persisted state and drops its workspace, so the
// next request starts from the welcome screen
func (s *WorkspaceService) Reset(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	ws, ok := s.workspaces[deviceID]
	delete(s.workspaces, deviceID)
	s.mu.Unlock()

	if ok {
		ws.close()
	}
	if err := repository.Scope(s.deps.Store, deviceID).Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear device state: %w", err)
	}
	return nil
}

// Reap drops workspaces idle for longer than the ttl and returns how many
// were removed
func (s *WorkspaceService) Reap() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var idle []*Workspace
	for id, ws := range s.workspaces {
		if ws.idleSince().Before(cutoff) {
			idle = append(idle, ws)
			delete(s.workspaces, id)
		}
	}
	s.mu.Unlock()

	for _, ws := range idle {
		ws.close()
	}
	return len(idle)
}

// Len returns the number of live workspaces
func (s *WorkspaceService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Close tears down every workspace
func (s *WorkspaceService) Close() {
	s.mu.Lock()
	all := s.workspaces
	s.workspaces = make(map[string]*Workspace)
	s.mu.Unlock()

	for _, ws := range all {
		ws.close()
	}
}
