package handlers

import (
	"net/http"

	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
	"schoolhub/internal/navigation"
	"schoolhub/internal/security"
	"schoolhub/internal/service"
	"schoolhub/internal/validation"
)

// AppHandler renders the current screen and applies navigation events
type AppHandler struct {
	workspaces *service.WorkspaceService
	csrf       *security.CSRFGenerator
}

// NewAppHandler creates a new app handler
func NewAppHandler(workspaces *service.WorkspaceService, csrf *security.CSRFGenerator) *AppHandler {
	return &AppHandler{workspaces: workspaces, csrf: csrf}
}

// NavRequest is a navigation event sent by a screen. Login events are not
// accepted here; they only come from the login flows.
type NavRequest struct {
	Event    string `json:"event" validate:"required,oneof=get_started role_chosen course_selected back logout"`
	Role     string `json:"role" validate:"omitempty,oneof=Student Teacher Admin"`
	CourseID string `json:"course_id" validate:"max=64"`
}

// App handles GET /api/app
func (h *AppHandler) App(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.render(ws))
}

// Nav handles POST /api/nav
func (h *AppHandler) Nav(w http.ResponseWriter, r *http.Request) {
	var req NavRequest
	if !decode(w, r, &req) {
		return
	}

	var event navigation.Event
	switch req.Event {
	case "get_started":
		event = navigation.GetStarted{}
	case "role_chosen":
		if req.Role == "" {
			respondWithServiceError(w, validation.NewError("role", "role is required"))
			return
		}
		event = navigation.RoleChosen{Role: models.Role(req.Role)}
	case "course_selected":
		course, ok := mockdata.CourseByID(req.CourseID)
		if !ok {
			respondWithError(w, http.StatusNotFound, "Course not found", "", nil)
			return
		}
		event = navigation.CourseSelected{Course: &course}
	case "back":
		event = navigation.Back{}
	case "logout":
		event = navigation.Logout{}
	}

	ws, ok := workspace(w, r, h.workspaces)
	if !ok {
		return
	}
	ws.Shell.Dispatch(r.Context(), event)
	respondJSON(w, http.StatusOK, h.render(ws))
}

func (h *AppHandler) render(ws *service.Workspace) AppView {
	return renderApp(ws, h.csrf)
}

// renderApp draws the workspace's current screen
func renderApp(ws *service.Workspace, csrf *security.CSRFGenerator) AppView {
	state := ws.Shell.State()
	screen := navigation.Render(state)
	id := int(screen)

	view := AppView{Screen: screen.String(), ScreenID: &id}
	if token, err := csrf.GenerateToken(ws.DeviceID); err == nil {
		view.CSRFToken = token
	}

	switch screen {
	case models.ScreenWelcome:
		view.View = WelcomeView{Title: "SchoolHub", Tagline: "Learning, attendance and fees in one place"}
	case models.ScreenLogin:
		view.View = ws.Auth.State()
	case models.ScreenStudentHome:
		view.View = StudentHomeView{
			Courses:  courseCards(mockdata.Courses()),
			TotalDue: ws.Fees.TotalDue(),
			Tutor:    ws.Tutor.State(),
			Bus:      ws.Bus.State(),
		}
	case models.ScreenStudentDetails:
		course := state.Course.Clone()
		detail := CourseDetailView{Course: course, CallToAction: course.CallToAction()}
		if lesson, ok := course.FirstUnlocked(); ok {
			detail.FirstLesson = &lesson
		}
		view.View = detail
	case models.ScreenTeacherDashboard:
		view.View = TeacherDashboardView{
			Attendance: ws.Attendance.State(),
			Tools:      ws.Teacher.State(),
		}
	case models.ScreenAdminDashboard:
		view.View = AdminDashboardView{
			Users:       ws.Admin.Users(),
			Stats:       ws.Admin.Stats(),
			Permissions: models.AllPermissions,
		}
	default:
		view.View = RoleSelectionView{Roles: []models.Role{models.RoleStudent, models.RoleTeacher, models.RoleAdmin}}
	}
	return view
}

// workspace resolves the device's workspace or writes an error
func workspace(w http.ResponseWriter, r *http.Request, workspaces *service.WorkspaceService) (*service.Workspace, bool) {
	ws, err := workspaces.Get(r.Context(), GetDeviceFromContext(r.Context()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading workspace", err)
		return nil, false
	}
	return ws, true
}
