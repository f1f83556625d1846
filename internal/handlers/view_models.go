package handlers

import (
	"schoolhub/internal/models"
	"schoolhub/internal/service"
)

// ScreenRecovery is the crash guard's screen. It is never persisted.
const ScreenRecovery = "recovery"

// AppView is the envelope every screen is rendered into
type AppView struct {
	Screen    string      `json:"screen"`
	ScreenID  *int        `json:"screen_id,omitempty"`
	CSRFToken string      `json:"csrf_token,omitempty"`
	View      interface{} `json:"view"`
}

type WelcomeView struct {
	Title   string `json:"title"`
	Tagline string `json:"tagline"`
}

type RoleSelectionView struct {
	Roles []models.Role `json:"roles"`
}

type CourseCard struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
	GradientFrom string  `json:"gradient_from"`
	GradientTo   string  `json:"gradient_to"`
	Icon         string  `json:"icon"`
}

type StudentHomeView struct {
	Courses  []CourseCard       `json:"courses"`
	TotalDue float64            `json:"total_due"`
	Tutor    service.TutorState `json:"tutor"`
	Bus      service.BusState   `json:"bus"`
}

type CourseDetailView struct {
	Course       models.Course        `json:"course"`
	CallToAction string               `json:"call_to_action"`
	FirstLesson  *models.SyllabusItem `json:"first_lesson,omitempty"`
}

type TeacherDashboardView struct {
	Attendance service.AttendanceState `json:"attendance"`
	Tools      service.TeacherState    `json:"tools"`
}

type AdminDashboardView struct {
	Users       []models.SystemUser `json:"users"`
	Stats       service.AdminStats  `json:"stats"`
	Permissions []models.Permission `json:"permissions"`
}

type RecoveryView struct {
	Message string   `json:"message"`
	CrashID string   `json:"crash_id,omitempty"`
	Actions []string `json:"actions"`
}

type ReportAck struct {
	Acknowledged bool   `json:"acknowledged"`
	Forwarded    bool   `json:"forwarded"`
	CrashID      string `json:"crash_id,omitempty"`
}

func courseCards(courses []models.Course) []CourseCard {
	cards := make([]CourseCard, len(courses))
	for i, c := range courses {
		cards[i] = CourseCard{
			ID:           c.ID,
			Title:        c.Title,
			Price:        c.Price,
			Rating:       c.Rating,
			ReviewCount:  c.ReviewCount,
			GradientFrom: c.GradientFrom,
			GradientTo:   c.GradientTo,
			Icon:         c.Icon,
		}
	}
	return cards
}
