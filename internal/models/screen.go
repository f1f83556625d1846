package models

import (
	"strconv"
	"strings"
)

// Screen identifies one of the views the application shell can display.
// The numeric value is what gets persisted, so the order must not change.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenLogin
	ScreenRoleSelection
	ScreenStudentHome
	ScreenStudentDetails
	ScreenTeacherDashboard
	ScreenAdminDashboard
)

var screenNames = map[Screen]string{
	ScreenWelcome:          "welcome",
	ScreenLogin:            "login",
	ScreenRoleSelection:    "role_selection",
	ScreenStudentHome:      "student_home",
	ScreenStudentDetails:   "student_details",
	ScreenTeacherDashboard: "teacher_dashboard",
	ScreenAdminDashboard:   "admin_dashboard",
}

// Valid reports whether s is one of the known screens
func (s Screen) Valid() bool {
	_, ok := screenNames[s]
	return ok
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// Encode returns the persisted form of the screen
func (s Screen) Encode() string {
	return strconv.Itoa(int(s))
}

// ParseScreen decodes a persisted screen identifier. It returns false for
// anything that is not the decimal form of a known screen.
func ParseScreen(raw string) (Screen, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	s := Screen(n)
	if !s.Valid() {
		return 0, false
	}
	return s, true
}
