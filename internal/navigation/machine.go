// Package navigation is the screen state machine behind the app shell.
//
// Transition is a pure function from (State, Event) to State. Shell wraps
// it with the one side effect navigation has: mirroring the current screen
// to persistent storage.
package navigation

import (
	"schoolhub/internal/models"
)

// State is everything the shell knows across screens
type State struct {
	Screen models.Screen
	// Course is the selection shown by the details screen. It is never persisted.
	Course *models.Course
}

// Initial is the state of a device that has never been seen before
func Initial() State {
	return State{Screen: models.ScreenWelcome}
}

// Event is a user-initiated navigation
type Event interface {
	eventName() string
}

type (
	// GetStarted leaves the welcome screen
	GetStarted struct{}
	// LoginSucceeded is fired by the credential check
	LoginSucceeded struct{}
	// StudentDemo skips role selection and lands on the student home
	StudentDemo struct{}
	// BiometricLogin is the fingerprint shortcut on the login screen
	BiometricLogin struct{}
	// RoleChosen picks which dashboard to open
	RoleChosen struct{ Role models.Role }
	// CourseSelected opens a course's details
	CourseSelected struct{ Course *models.Course }
	// Back is the header back button
	Back struct{}
	// Logout returns to the welcome screen and forgets the selection
	Logout struct{}
)

func (GetStarted) eventName() string     { return "get_started" }
func (LoginSucceeded) eventName() string { return "login_succeeded" }
func (StudentDemo) eventName() string    { return "student_demo" }
func (BiometricLogin) eventName() string { return "biometric_login" }
func (RoleChosen) eventName() string     { return "role_chosen" }
func (CourseSelected) eventName() string { return "course_selected" }
func (Back) eventName() string           { return "back" }
func (Logout) eventName() string         { return "logout" }

// EventName returns the wire name of an event, used in logs
func EventName(e Event) string {
	if e == nil {
		return "nil"
	}
	return e.eventName()
}

// Transition computes the next state. Events that make no sense for the
// current state return it unchanged.
func Transition(s State, e Event) State {
	switch ev := e.(type) {
	case GetStarted:
		if s.Screen == models.ScreenWelcome {
			return State{Screen: models.ScreenLogin}
		}
	case LoginSucceeded, BiometricLogin:
		return State{Screen: models.ScreenRoleSelection}
	case StudentDemo:
		return State{Screen: models.ScreenStudentHome}
	case RoleChosen:
		if s.Screen != models.ScreenRoleSelection {
			return s
		}
		switch ev.Role {
		case models.RoleStudent:
			return State{Screen: models.ScreenStudentHome}
		case models.RoleTeacher:
			return State{Screen: models.ScreenTeacherDashboard}
		case models.RoleAdmin:
			return State{Screen: models.ScreenAdminDashboard}
		}
	case CourseSelected:
		if s.Screen == models.ScreenStudentHome && ev.Course != nil {
			c := ev.Course.Clone()
			return State{Screen: models.ScreenStudentDetails, Course: &c}
		}
	case Back:
		return back(s)
	case Logout:
		return Initial()
	}
	return s
}

func back(s State) State {
	switch s.Screen {
	case models.ScreenStudentDetails:
		return State{Screen: models.ScreenStudentHome}
	case models.ScreenLogin:
		return State{Screen: models.ScreenWelcome}
	case models.ScreenRoleSelection:
		return State{Screen: models.ScreenLogin}
	case models.ScreenStudentHome, models.ScreenTeacherDashboard, models.ScreenAdminDashboard:
		return State{Screen: models.ScreenRoleSelection}
	}
	return State{Screen: s.Screen}
}

// Restore rebuilds the state from a persisted screen identifier. Anything
// absent or unrecognised starts at Welcome. The details screen needs a
// course that is not persisted, so it falls back to the student home.
func Restore(raw string, found bool) State {
	if !found {
		return Initial()
	}
	screen, ok := models.ParseScreen(raw)
	if !ok {
		return Initial()
	}
	if screen == models.ScreenStudentDetails {
		screen = models.ScreenStudentHome
	}
	return State{Screen: screen}
}

// Render picks the screen to draw for s. It is total: unknown screens draw
// role selection and a details screen without a course draws the home.
func Render(s State) models.Screen {
	if !s.Screen.Valid() {
		return models.ScreenRoleSelection
	}
	if s.Screen == models.ScreenStudentDetails && s.Course == nil {
		return models.ScreenStudentHome
	}
	return s.Screen
}
