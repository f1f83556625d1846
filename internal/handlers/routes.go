package handlers

import "net/http"

// Handlers groups every endpoint group of the API
type Handlers struct {
	App      *AppHandler
	Auth     *AuthHandler
	Student  *StudentHandler
	Teacher  *TeacherHandler
	Admin    *AdminHandler
	Recovery *RecoveryHandler
}

// NewRouter registers the API routes behind the crash guard
func NewRouter(h Handlers, m *Middleware) http.Handler {
	mux := http.NewServeMux()

	// App shell
	mux.HandleFunc("GET /api/app", m.API(h.App.App))
	mux.HandleFunc("POST /api/nav", m.API(h.App.Nav))

	// Login
	mux.HandleFunc("POST /api/login", m.RateLimit(m.API(h.Auth.Login)))
	mux.HandleFunc("POST /api/login/demo", m.RateLimit(m.API(h.Auth.StudentDemo)))
	mux.HandleFunc("POST /api/login/biometric", m.RateLimit(m.API(h.Auth.Biometric)))
	mux.HandleFunc("POST /api/login/edit", m.API(h.Auth.EditField))

	// Student overlays
	mux.HandleFunc("GET /api/fees", m.API(h.Student.Fees))
	mux.HandleFunc("POST /api/fees/pay", m.API(h.Student.PayFees))
	mux.HandleFunc("POST /api/tutor/sessions", m.API(h.Student.OpenTutor))
	mux.HandleFunc("POST /api/tutor/messages", m.API(h.Student.SendTutorMessage))
	mux.HandleFunc("DELETE /api/tutor/sessions", m.API(h.Student.CloseTutor))
	mux.HandleFunc("POST /api/bus/track", m.API(h.Student.TrackBus))
	mux.HandleFunc("DELETE /api/bus/track", m.API(h.Student.StopTracking))

	// Teacher dashboard
	mux.HandleFunc("GET /api/attendance", m.API(h.Teacher.Attendance))
	mux.HandleFunc("POST /api/attendance/{id}/toggle", m.API(h.Teacher.ToggleAttendance))
	mux.HandleFunc("POST /api/attendance/mark-all", m.API(h.Teacher.MarkAll))
	mux.HandleFunc("POST /api/attendance/sync", m.API(h.Teacher.SyncAttendance))
	mux.HandleFunc("POST /api/exams", m.API(h.Teacher.CreateExam))
	mux.HandleFunc("POST /api/messages", m.API(h.Teacher.SendMessage))
	mux.HandleFunc("GET /api/salaries", m.API(h.Teacher.Salaries))

	// Admin dashboard
	mux.HandleFunc("GET /api/admin/users", m.API(h.Admin.Users))
	mux.HandleFunc("POST /api/admin/users/{id}/permissions/{perm}/toggle", m.API(h.Admin.TogglePermission))

	// Crash recovery
	mux.HandleFunc("POST /api/recovery/reload", m.API(h.Recovery.Reload))
	mux.HandleFunc("POST /api/recovery/report", m.API(h.Recovery.Report))

	return h.Recovery.Recover(mux)
}
