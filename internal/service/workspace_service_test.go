package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub/internal/advisory"
	"schoolhub/internal/logger"
	"schoolhub/internal/models"
	"schoolhub/internal/navigation"
	"schoolhub/internal/repository"
)

func newTestWorkspaces(t *testing.T, store repository.StateStore, clock *manualClock) *WorkspaceService {
	t.Helper()
	return NewWorkspaceService(Dependencies{
		Store:       store,
		Advisory:    advisory.New(advisory.Disabled(), logger.Discard()),
		Credentials: testCredentials(t),
		Timings:     testTimings,
		Scheduler:   clock.schedule,
		Log:         logger.Discard(),
	}, time.Hour)
}

func TestWorkspaceLoginNavigates(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{}
	store := repository.NewMemoryStore()
	svc := newTestWorkspaces(t, store, clock)

	ws, err := svc.Get(ctx, "device-1")
	require.NoError(t, err)
	again, err := svc.Get(ctx, "device-1")
	require.NoError(t, err)
	assert.Same(t, ws, again)

	ws.Shell.Dispatch(ctx, navigation.GetStarted{})
	require.NoError(t, ws.Auth.Login(LoginInput{Email: "teacher@school.edu", Password: demoPassword}))
	assert.Equal(t, models.ScreenLogin, ws.Shell.Screen())

	clock.drain(t)
	assert.Equal(t, models.ScreenRoleSelection, ws.Shell.Screen())

	raw, ok, err := store.Get(ctx, repository.DeviceScope("device-1")+repository.KeyCurrentScreen)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.ScreenRoleSelection.Encode(), raw)
}

func TestWorkspaceRestoresFromStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, repository.DeviceScope("device-1")+repository.KeyCurrentScreen, models.ScreenStudentDetails.Encode()))

	ws, err := newTestWorkspaces(t, store, &manualClock{}).Get(ctx, "device-1")
	require.NoError(t, err)
	assert.Equal(t, models.ScreenStudentHome, ws.Shell.Screen())

	other, err := newTestWorkspaces(t, store, &manualClock{}).Get(ctx, "device-2")
	require.NoError(t, err)
	assert.Equal(t, models.ScreenWelcome, other.Shell.Screen())
}

func TestWorkspaceReset(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{}
	store := repository.NewMemoryStore()
	svc := newTestWorkspaces(t, store, clock)

	ws, err := svc.Get(ctx, "device-1")
	require.NoError(t, err)
	ws.Shell.Dispatch(ctx, navigation.StudentDemo{})
	_, err = ws.Admin.TogglePermission(ctx, "u2", models.PermViewReports)
	require.NoError(t, err)
	require.NoError(t, ws.Fees.Pay())

	other, err := svc.Get(ctx, "device-2")
	require.NoError(t, err)
	other.Shell.Dispatch(ctx, navigation.GetStarted{})

	require.NoError(t, svc.Reset(ctx, "device-1"))
	clock.drain(t)

	keys, err := store.List(ctx, repository.DeviceScope("device-1"))
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Greater(t, ws.Fees.TotalDue(), 0.0, "closed workspace ignores the pending payment")

	fresh, err := svc.Get(ctx, "device-1")
	require.NoError(t, err)
	assert.NotSame(t, ws, fresh)
	assert.Equal(t, models.ScreenWelcome, fresh.Shell.Screen())
	assert.Equal(t, models.ScreenLogin, other.Shell.Screen())
}

func TestWorkspaceReap(t *testing.T) {
	ctx := context.Background()
	svc := newTestWorkspaces(t, repository.NewMemoryStore(), &manualClock{})
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Get(ctx, "idle")
	require.NoError(t, err)
	now = now.Add(30 * time.Minute)
	_, err = svc.Get(ctx, "active")
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, svc.Reap())
	assert.Equal(t, 1, svc.Len())

	_, err = svc.Get(ctx, "")
	assert.Error(t, err)
}

func TestLateLoginContinuationCannotUndoReset(t *testing.T) {
	ctx := context.Background()
	clock := &manualClock{}
	store := repository.NewMemoryStore()
	svc := newTestWorkspaces(t, store, clock)

	ws, err := svc.Get(ctx, "device-1")
	require.NoError(t, err)
	ws.Shell.Dispatch(ctx, navigation.GetStarted{})
	require.NoError(t, ws.Auth.Login(LoginInput{Email: "student@school.edu", Password: demoPassword}))

	// The login effect has already been admitted when teardown reaches the shell.
	ws.Shell.Close()
	require.NoError(t, repository.Scope(store, "device-1").Clear(ctx))
	clock.drain(t)

	keys, err := store.List(ctx, repository.DeviceScope("device-1"))
	require.NoError(t, err)
	assert.Empty(t, keys, "no screen written after teardown")
	assert.Equal(t, models.ScreenLogin, ws.Shell.Screen())
}
