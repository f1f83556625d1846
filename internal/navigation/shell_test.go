package navigation

import (
	"context"
	"errors"
	"testing"

	"schoolhub/internal/logger"
	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
	"schoolhub/internal/repository"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "3", true, f.getErr
}

func (f *failingStore) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func TestShellRestoresAndPersists(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := store.Set(ctx, repository.KeyCurrentScreen, "5"); err != nil {
		t.Fatal(err)
	}

	shell := NewShell(ctx, store, logger.Discard())
	if got := shell.Screen(); got != models.ScreenTeacherDashboard {
		t.Fatalf("restored screen = %v, want teacher dashboard", got)
	}

	shell.Dispatch(ctx, Back{})
	raw, ok, _ := store.Get(ctx, repository.KeyCurrentScreen)
	if !ok || raw != models.ScreenRoleSelection.Encode() {
		t.Errorf("persisted screen = %q, want %q", raw, models.ScreenRoleSelection.Encode())
	}
}

func TestShellDoesNotPersistSelection(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	shell := NewShell(ctx, store, logger.Discard())
	shell.Dispatch(ctx, StudentDemo{})

	course, _ := mockdata.CourseByID("c4")
	shell.Dispatch(ctx, CourseSelected{Course: &course})

	reloaded := NewShell(ctx, store, logger.Discard())
	if got := reloaded.State(); got.Screen != models.ScreenStudentHome || got.Course != nil {
		t.Errorf("reloaded state = %+v, want student home with no course", got)
	}
}

func TestShellSwallowsStorageErrors(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{getErr: errors.New("read failed"), setErr: errors.New("quota exceeded")}

	shell := NewShell(ctx, store, logger.Discard())
	if got := shell.Screen(); got != models.ScreenWelcome {
		t.Fatalf("screen after failed read = %v, want welcome", got)
	}

	got := shell.Dispatch(ctx, GetStarted{})
	if got.Screen != models.ScreenLogin {
		t.Errorf("transition should happen despite write failure, got %v", got.Screen)
	}
	if store.sets != 1 {
		t.Errorf("expected one write attempt, got %d", store.sets)
	}
}

func TestClosedShellIgnoresDispatch(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	shell := NewShell(ctx, store, logger.Discard())
	shell.Close()

	got := shell.Dispatch(ctx, Logout{})
	if got.Screen != models.ScreenStudentHome {
		t.Errorf("closed shell moved to %v", got.Screen)
	}
	if store.sets != 0 {
		t.Errorf("closed shell wrote %d times, want none", store.sets)
	}
}
