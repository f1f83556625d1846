package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schoolhub/internal/flow"
	"schoolhub/internal/logger"
	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
	"schoolhub/internal/receipts"
	"schoolhub/internal/validation"
)

// Message audiences
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceStaff    = "staff"
)

const announcementTimeout = 15 * time.Second

// Announcer delivers teacher messages outside the app
type Announcer interface {
	IsEnabled() bool
	SendAnnouncement(ctx context.Context, recipients []string, subject, text string) error
}

// ExamInput is the create-exam form
type ExamInput struct {
	Title   string `json:"title" validate:"max=120"`
	Subject string `json:"subject" validate:"max=60"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// MessageInput is the compose form
type MessageInput struct {
	Audience string `json:"audience" validate:"omitempty,oneof=all students staff"`
	Text     string `json:"text" validate:"max=2000"`
}

// Exam is a scheduled exam
type Exam struct {
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SentMessage is an outbox entry
type SentMessage struct {
	ID       string    `json:"id"`
	Audience string    `json:"audience"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
	Emailed  int       `json:"emailed"`
}

// TeacherState is the teacher dashboard's tool panel
type TeacherState struct {
	Exams    []Exam                `json:"exams"`
	Outbox   []SentMessage         `json:"outbox"`
	Exam     flow.Snapshot         `json:"exam"`
	Message  flow.Snapshot         `json:"message"`
	Salaries []models.SalaryRecord `json:"salaries"`
}

// TeacherService runs the exam and messaging tools of one device
type TeacherService struct {
	exam     *flow.Action
	message  *flow.Action
	announce Announcer
	log      logger.Logger
	now      func() time.Time

	mu     sync.Mutex
	exams  []Exam
	outbox []SentMessage
}

// NewTeacherService creates the tools. announce may be nil.
func NewTeacherService(t Timings, sched flow.Scheduler, announce Announcer, log logger.Logger) *TeacherService {
	return &TeacherService{
		exam:     flow.New(flow.Options{Processing: t.Exam, Display: t.Display, Scheduler: sched}),
		message:  flow.New(flow.Options{Processing: t.Message, Display: t.Display, Scheduler: sched}),
		announce: announce,
		log:      log,
		now:      time.Now,
	}
}

// CreateExam schedules an exam. A blank title leaves the flow idle and
// returns flow.ErrGuardRejected.
func (s *TeacherService) CreateExam(in ExamInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	title := strings.TrimSpace(in.Title)
	subject := strings.TrimSpace(in.Subject)

	return s.exam.Trigger(func() bool { return title != "" }, func() error {
		code, err := receipts.NewReference(receipts.PrefixExam)
		if err != nil {
			return fmt.Errorf("failed to allocate exam code: %w", err)
		}
		exam := Exam{Code: code, Title: title, Subject: subject, Date: in.Date, CreatedAt: s.now()}
		s.mu.Lock()
		s.exams = append(s.exams, exam)
		s.mu.Unlock()
		s.log.Info("exam created", "code", code, "title", title)
		return nil
	})
}

// SendMessage posts a message to an audience. Blank text leaves the flow
// idle and returns flow.ErrGuardRejected. When email is enabled the message
// is also mailed; a delivery failure does not fail the send.
func (s *TeacherService) SendMessage(in MessageInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	text := strings.TrimSpace(in.Text)
	audience := in.Audience
	if audience == "" {
		audience = AudienceAll
	}

	return s.message.Trigger(func() bool { return text != "" }, func() error {
		msg := SentMessage{ID: uuid.NewString(), Audience: audience, Text: text, SentAt: s.now()}
		msg.Emailed = s.mail(audience, text)

		s.mu.Lock()
		s.outbox = append(s.outbox, msg)
		s.mu.Unlock()
		return nil
	})
}

func (s *TeacherService) mail(audience, text string) int {
	if s.announce == nil || !s.announce.IsEnabled() {
		return 0
	}
	recipients := Recipients(audience)
	ctx, cancel := context.WithTimeout(context.Background(), announcementTimeout)
	defer cancel()
	if err := s.announce.SendAnnouncement(ctx, recipients, "New message from your teacher", text); err != nil {
		s.log.Error("failed to email announcement", "audience", audience, err)
		return 0
	}
	return len(recipients)
}

// Recipients resolves an audience to the directory's email addresses
func Recipients(audience string) []string {
	var out []string
	for _, u := range mockdata.Users() {
		switch audience {
		case AudienceStudents:
			if u.Role != models.RoleStudent {
				continue
			}
		case AudienceStaff:
			if u.Role == models.RoleStudent {
				continue
			}
		}
		out = append(out, u.Email)
	}
	return out
}

// Salaries returns the teacher's pay history
func (s *TeacherService) Salaries() []models.SalaryRecord {
	return mockdata.Salaries()
}

// State returns the panel state
func (s *TeacherService) State() TeacherState {
	st := TeacherState{
		Exam:     s.exam.Snapshot(),
		Message:  s.message.Snapshot(),
		Salaries: mockdata.Salaries(),
	}
	s.mu.Lock()
	st.Exams = append([]Exam{}, s.exams...)
	st.Outbox = append([]SentMessage{}, s.outbox...)
	s.mu.Unlock()
	return st
}

// Close drops pending exam and message flows
func (s *TeacherService) Close() {
	s.exam.Close()
	s.message.Close()
}
