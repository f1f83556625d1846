package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"schoolhub/internal/advisory"
	"schoolhub/internal/models"
)

// DefaultBusStop is used when the tracker is opened without a place
const DefaultBusStop = "Greenwood High School main gate"

var ErrAdvisoryPending = errors.New("traffic advisory is still loading")

// TrafficSource is the slice of the advisory client the tracker needs
type TrafficSource interface {
	TrafficAdvisory(ctx context.Context, place string, loc *advisory.LatLng) models.TrafficAdvisory
}

// BusState is the tracker overlay
type BusState struct {
	Open     bool                    `json:"open"`
	Place    string                  `json:"place,omitempty"`
	Loading  bool                    `json:"loading"`
	Advisory *models.TrafficAdvisory `json:"advisory,omitempty"`
}

type busSession struct {
	place    string
	loading  bool
	advisory *models.TrafficAdvisory
}

// BusService runs the bus tracker of one device. An advisory is fetched
// once per tracking session and forgotten when the tracker closes.
type BusService struct {
	source TrafficSource

	mu      sync.Mutex
	session *busSession
}

// NewBusService creates a closed tracker
func NewBusService(source TrafficSource) *BusService {
	return &BusService{source: source}
}

// Track opens the tracker and returns its advisory, fetching it on the first
// call of the session
func (s *BusService) Track(ctx context.Context, place string, loc *advisory.LatLng) (models.TrafficAdvisory, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		place = DefaultBusStop
	}

	s.mu.Lock()
	if sess := s.session; sess != nil {
		if sess.advisory != nil {
			cached := *sess.advisory
			s.mu.Unlock()
			return cached, nil
		}
		if sess.loading {
			s.mu.Unlock()
			return models.TrafficAdvisory{}, ErrAdvisoryPending
		}
	}
	sess := &busSession{place: place, loading: true}
	s.session = sess
	s.mu.Unlock()

	result := s.source.TrafficAdvisory(ctx, place, loc)

	s.mu.Lock()
	if s.session == sess {
		sess.loading = false
		sess.advisory = &result
	}
	s.mu.Unlock()
	return result, nil
}

// Close ends the session and drops its advisory
func (s *BusService) Close() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}

// State returns the overlay state
func (s *BusService) State() BusState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return BusState{}
	}
	st := BusState{Open: true, Place: s.session.place, Loading: s.session.loading}
	if s.session.advisory != nil {
		a := *s.session.advisory
		st.Advisory = &a
	}
	return st
}
