package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"schoolhub/internal/flow"
	"schoolhub/internal/navigation"
	"schoolhub/internal/security"
	"schoolhub/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("this account has been suspended, please contact the school office")
)

// Credentials is the mock rule set behind the login screen. It is not real
// authentication: there are no accounts, one shared demo password opens
// every email address and one reserved address is always suspended.
type Credentials struct {
	passwordHash   string
	suspendedEmail string
}

// NewCredentials hashes the demo password once at start-up
func NewCredentials(demoPassword, suspendedEmail string) (*Credentials, error) {
	if demoPassword == "" {
		return nil, fmt.Errorf("demo password is required")
	}
	hash, err := security.HashPassword(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}
	return &Credentials{
		passwordHash:   hash,
		suspendedEmail: strings.ToLower(strings.TrimSpace(suspendedEmail)),
	}, nil
}

// Check applies the mock rules. The suspended address wins over the password.
func (c *Credentials) Check(email, password string) error {
	if c.suspendedEmail != "" && strings.EqualFold(strings.TrimSpace(email), c.suspendedEmail) {
		return ErrAccountSuspended
	}
	if !security.CheckPassword(password, c.passwordHash) {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginInput is the login form
type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// LoginState is what the login screen renders
type LoginState struct {
	Login       flow.Snapshot           `json:"login"`
	Demo        flow.Snapshot           `json:"demo"`
	Biometric   flow.Snapshot           `json:"biometric"`
	FieldErrors []validation.FieldError `json:"field_errors,omitempty"`
}

// AuthService runs the login screen of one device. Each of the three ways in
// has its own simulated latency and its own continuation into navigation.
type AuthService struct {
	creds     *Credentials
	next      func(navigation.Event)
	login     *flow.Action
	demo      *flow.Action
	biometric *flow.Action

	mu       sync.Mutex
	inputErr *validation.ValidationError
}

// NewAuthService creates the login component. next receives the navigation
// event of a successful login.
func NewAuthService(creds *Credentials, t Timings, sched flow.Scheduler, next func(navigation.Event)) *AuthService {
	opts := flow.Options{Processing: t.Login, Display: t.Display, Scheduler: sched}
	return &AuthService{
		creds:     creds,
		next:      next,
		login:     flow.New(opts),
		demo:      flow.New(opts),
		biometric: flow.New(opts),
	}
}

// Login validates the form and starts the simulated credential check.
// Empty fields fail immediately with a *validation.ValidationError and no
// flow is started.
func (s *AuthService) Login(in LoginInput) error {
	if err := validation.Struct(in); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			s.mu.Lock()
			s.inputErr = verr
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	s.inputErr = nil
	s.mu.Unlock()

	email, password := in.Email, in.Password
	return s.login.Trigger(nil, func() error {
		if err := s.creds.Check(email, password); err != nil {
			return err
		}
		s.next(navigation.LoginSucceeded{})
		return nil
	})
}

// StudentDemo skips the form and lands on the student home
func (s *AuthService) StudentDemo() error {
	return s.demo.Trigger(nil, func() error {
		s.next(navigation.StudentDemo{})
		return nil
	})
}

// Biometric simulates a fingerprint scan that always succeeds
func (s *AuthService) Biometric() error {
	return s.biometric.Trigger(nil, func() error {
		s.next(navigation.BiometricLogin{})
		return nil
	})
}

// EditField clears any error shown on the form
func (s *AuthService) EditField() {
	s.mu.Lock()
	s.inputErr = nil
	s.mu.Unlock()
	s.login.Reset()
}

// State returns the login screen state
func (s *AuthService) State() LoginState {
	st := LoginState{
		Login:     s.login.Snapshot(),
		Demo:      s.demo.Snapshot(),
		Biometric: s.biometric.Snapshot(),
	}
	s.mu.Lock()
	if s.inputErr != nil {
		st.FieldErrors = append([]validation.FieldError(nil), s.inputErr.Fields...)
	}
	s.mu.Unlock()
	return st
}

// Close stops pending continuations from firing
func (s *AuthService) Close() {
	s.login.Close()
	s.demo.Close()
	s.biometric.Close()
}
