package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"schoolhub/internal/advisory"
	"schoolhub/internal/logger"
	"schoolhub/internal/models"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrNoTutorSession = errors.New("tutor session is not open")
	ErrReplyPending   = errors.New("tutor is still answering")
)

// Tutor is the slice of the advisory client the chat needs
type Tutor interface {
	TutorReply(ctx context.Context, subject string, history []models.ChatMessage, message, instruction string) advisory.Reply
}

// TutorTurn is the assistant's answer to one user message
type TutorTurn struct {
	Message  models.ChatMessage `json:"message"`
	Degraded bool               `json:"degraded"`
}

// TutorState is the chat overlay
type TutorState struct {
	Open     bool                 `json:"open"`
	Subject  string               `json:"subject,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
	Pending  bool                 `json:"pending"`
}

type tutorSession struct {
	subject  string
	messages []models.ChatMessage
	pending  bool
}

// TutorService runs the AI tutor chat of one device. Each Open starts a
// fresh history holding only the welcome message.
type TutorService struct {
	tutor Tutor
	log   logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	session *tutorSession
}

// NewTutorService creates a closed chat
func NewTutorService(tutor Tutor, log logger.Logger) *TutorService {
	return &TutorService{tutor: tutor, log: log, now: time.Now}
}

// Open starts a session for subject, replacing any previous one
func (s *TutorService) Open(subject string) TutorState {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "General Studies"
	}
	welcome := s.newMessage(models.ChatRoleAssistant,
		fmt.Sprintf("Hi! I'm your AI tutor for %s. Ask me anything about the course and I'll help you work through it.", subject))

	s.mu.Lock()
	s.session = &tutorSession{subject: subject, messages: []models.ChatMessage{welcome}}
	st := s.stateLocked()
	s.mu.Unlock()
	return st
}

// Send appends the user's message and exactly one assistant reply. A failed
// service call still yields the fallback reply.
func (s *TutorService) Send(ctx context.Context, text string) (TutorTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TutorTurn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	sess := s.session
	if sess == nil {
		s.mu.Unlock()
		return TutorTurn{}, ErrNoTutorSession
	}
	if sess.pending {
		s.mu.Unlock()
		return TutorTurn{}, ErrReplyPending
	}
	history := append([]models.ChatMessage(nil), sess.messages...)
	sess.messages = append(sess.messages, s.newMessage(models.ChatRoleUser, text))
	sess.pending = true
	subject := sess.subject
	s.mu.Unlock()

	reply := s.tutor.TutorReply(ctx, subject, history, text, "")
	answer := s.newMessage(models.ChatRoleAssistant, reply.Text)

	s.mu.Lock()
	defer s.mu.Unlock()
	// The chat may have been closed or reopened while waiting.
	if s.session != sess {
		return TutorTurn{}, ErrNoTutorSession
	}
	sess.messages = append(sess.messages, answer)
	sess.pending = false
	return TutorTurn{Message: answer, Degraded: reply.Degraded}, nil
}

// Close discards the session
func (s *TutorService) Close() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// State returns the overlay state
func (s *TutorService) State() TutorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *TutorService) stateLocked() TutorState {
	if s.session == nil {
		return TutorState{Messages: []models.ChatMessage{}}
	}
	return TutorState{
		Open:     true,
		Subject:  s.session.subject,
		Messages: append([]models.ChatMessage(nil), s.session.messages...),
		Pending:  s.session.pending,
	}
}

func (s *TutorService) newMessage(role models.ChatRole, text string) models.ChatMessage {
	return models.ChatMessage{ID: uuid.NewString(), Role: role, Text: text, Timestamp: s.now()}
}
