package navigation

import (
	"testing"

	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
)

func TestRestore(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		found bool
		want  models.Screen
	}{
		{name: "absent", found: false, want: models.ScreenWelcome},
		{name: "empty", raw: "", found: true, want: models.ScreenWelcome},
		{name: "garbage", raw: "{not json", found: true, want: models.ScreenWelcome},
		{name: "unknown number", raw: "42", found: true, want: models.ScreenWelcome},
		{name: "details falls back to home", raw: "4", found: true, want: models.ScreenStudentHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Restore(tt.raw, tt.found)
			if got.Screen != tt.want {
				t.Errorf("Restore(%q, %v).Screen = %v, want %v", tt.raw, tt.found, got.Screen, tt.want)
			}
			if got.Course != nil {
				t.Error("restored state must not carry a course")
			}
		})
	}
}

func TestRestoreEverySupportedScreen(t *testing.T) {
	for s := models.ScreenWelcome; s <= models.ScreenAdminDashboard; s++ {
		want := s
		if s == models.ScreenStudentDetails {
			want = models.ScreenStudentHome
		}
		if got := Restore(s.Encode(), true).Screen; got != want {
			t.Errorf("Restore(%v) = %v, want %v", s, got, want)
		}
	}
}

func TestTransition(t *testing.T) {
	course, _ := mockdata.CourseByID("c1")

	tests := []struct {
		name  string
		from  State
		event Event
		want  models.Screen
	}{
		{name: "get started", from: State{Screen: models.ScreenWelcome}, event: GetStarted{}, want: models.ScreenLogin},
		{name: "get started ignored elsewhere", from: State{Screen: models.ScreenAdminDashboard}, event: GetStarted{}, want: models.ScreenAdminDashboard},
		{name: "login success", from: State{Screen: models.ScreenLogin}, event: LoginSucceeded{}, want: models.ScreenRoleSelection},
		{name: "biometric", from: State{Screen: models.ScreenLogin}, event: BiometricLogin{}, want: models.ScreenRoleSelection},
		{name: "student demo", from: State{Screen: models.ScreenLogin}, event: StudentDemo{}, want: models.ScreenStudentHome},
		{name: "student role", from: State{Screen: models.ScreenRoleSelection}, event: RoleChosen{Role: models.RoleStudent}, want: models.ScreenStudentHome},
		{name: "teacher role", from: State{Screen: models.ScreenRoleSelection}, event: RoleChosen{Role: models.RoleTeacher}, want: models.ScreenTeacherDashboard},
		{name: "admin role", from: State{Screen: models.ScreenRoleSelection}, event: RoleChosen{Role: models.RoleAdmin}, want: models.ScreenAdminDashboard},
		{name: "unknown role", from: State{Screen: models.ScreenRoleSelection}, event: RoleChosen{Role: "Janitor"}, want: models.ScreenRoleSelection},
		{name: "course selected", from: State{Screen: models.ScreenStudentHome}, event: CourseSelected{Course: &course}, want: models.ScreenStudentDetails},
		{name: "role ignored on welcome", from: State{Screen: models.ScreenWelcome}, event: RoleChosen{Role: models.RoleAdmin}, want: models.ScreenWelcome},
		{name: "role ignored on login", from: State{Screen: models.ScreenLogin}, event: RoleChosen{Role: models.RoleTeacher}, want: models.ScreenLogin},
		{name: "role ignored on dashboard", from: State{Screen: models.ScreenStudentHome}, event: RoleChosen{Role: models.RoleAdmin}, want: models.ScreenStudentHome},
		{name: "course ignored on welcome", from: State{Screen: models.ScreenWelcome}, event: CourseSelected{Course: &course}, want: models.ScreenWelcome},
		{name: "course ignored on login", from: State{Screen: models.ScreenLogin}, event: CourseSelected{Course: &course}, want: models.ScreenLogin},
		{name: "course ignored on teacher dashboard", from: State{Screen: models.ScreenTeacherDashboard}, event: CourseSelected{Course: &course}, want: models.ScreenTeacherDashboard},
		{name: "nil course ignored", from: State{Screen: models.ScreenStudentHome}, event: CourseSelected{}, want: models.ScreenStudentHome},
		{name: "back from login", from: State{Screen: models.ScreenLogin}, event: Back{}, want: models.ScreenWelcome},
		{name: "back from roles", from: State{Screen: models.ScreenRoleSelection}, event: Back{}, want: models.ScreenLogin},
		{name: "back from teacher", from: State{Screen: models.ScreenTeacherDashboard}, event: Back{}, want: models.ScreenRoleSelection},
		{name: "back on welcome", from: State{Screen: models.ScreenWelcome}, event: Back{}, want: models.ScreenWelcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.from, tt.event)
			if got.Screen != tt.want {
				t.Errorf("Transition(%v, %s) = %v, want %v", tt.from.Screen, EventName(tt.event), got.Screen, tt.want)
			}
		})
	}
}

func TestSelectDetailsBackClearsSelection(t *testing.T) {
	course, _ := mockdata.CourseByID("c2")

	s := State{Screen: models.ScreenStudentHome}
	s = Transition(s, CourseSelected{Course: &course})
	if s.Screen != models.ScreenStudentDetails || s.Course == nil || s.Course.ID != "c2" {
		t.Fatalf("unexpected state after selection: %+v", s)
	}

	s = Transition(s, Back{})
	if s.Screen != models.ScreenStudentHome {
		t.Errorf("screen = %v, want student home", s.Screen)
	}
	if s.Course != nil {
		t.Error("selection should be cleared after going back")
	}
}

func TestLogoutFromAnyScreen(t *testing.T) {
	course, _ := mockdata.CourseByID("c1")
	for s := models.ScreenWelcome; s <= models.ScreenAdminDashboard; s++ {
		from := State{Screen: s, Course: &course}
		got := Transition(from, Logout{})
		if got.Screen != models.ScreenWelcome || got.Course != nil {
			t.Errorf("Logout from %v = %+v, want welcome with no selection", s, got)
		}
	}
}

func TestTransitionDoesNotAliasCourse(t *testing.T) {
	course, _ := mockdata.CourseByID("c1")
	s := Transition(State{Screen: models.ScreenStudentHome}, CourseSelected{Course: &course})
	course.Title = "mutated"
	if s.Course.Title == "mutated" {
		t.Error("state shares memory with the caller's course")
	}
}

func TestRender(t *testing.T) {
	course, _ := mockdata.CourseByID("c1")
	tests := []struct {
		name  string
		state State
		want  models.Screen
	}{
		{name: "unknown screen", state: State{Screen: models.Screen(99)}, want: models.ScreenRoleSelection},
		{name: "details without course", state: State{Screen: models.ScreenStudentDetails}, want: models.ScreenStudentHome},
		{name: "details with course", state: State{Screen: models.ScreenStudentDetails, Course: &course}, want: models.ScreenStudentDetails},
		{name: "admin", state: State{Screen: models.ScreenAdminDashboard}, want: models.ScreenAdminDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.state); got != tt.want {
				t.Errorf("Render() = %v, want %v", got, tt.want)
			}
		})
	}
}
