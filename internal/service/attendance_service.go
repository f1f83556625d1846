package service

import (
	"errors"
	"sync"
	"time"

	"schoolhub/internal/flow"
	"schoolhub/internal/logger"
	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
)

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidStatus  = errors.New("invalid attendance status")
)

// AttendanceState is the attendance panel of the teacher dashboard
type AttendanceState struct {
	Records  []models.AttendanceRecord `json:"records"`
	Summary  models.AttendanceSummary  `json:"summary"`
	Sync     flow.Snapshot             `json:"sync"`
	LastSync *time.Time                `json:"last_sync,omitempty"`
}

// AttendanceService holds one device's copy of the class roster
type AttendanceService struct {
	sync *flow.Action
	log  logger.Logger
	now  func() time.Time

	mu       sync.Mutex
	records  []models.AttendanceRecord
	lastSync time.Time
}

// NewAttendanceService starts from the mock roster
func NewAttendanceService(t Timings, sched flow.Scheduler, log logger.Logger) *AttendanceService {
	return &AttendanceService{
		sync:    flow.New(flow.Options{Processing: t.Sync, Display: t.Display, Scheduler: sched}),
		log:     log,
		now:     time.Now,
		records: mockdata.Attendance(),
	}
}

// Records returns a copy of the roster
func (s *AttendanceService) Records() []models.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AttendanceRecord(nil), s.records...)
}

// Toggle moves one student to the next status and returns the new record
func (s *AttendanceService) Toggle(id string) (models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = s.records[i].Status.Next()
			return s.records[i], nil
		}
	}
	return models.AttendanceRecord{}, ErrRecordNotFound
}

// MarkAll sets every student to status
func (s *AttendanceService) MarkAll(status models.AttendanceStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		s.records[i].Status = status
	}
	return nil
}

// Summary counts the roster
func (s *AttendanceService) Summary() models.AttendanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Summarize(s.records)
}

// SyncBiometric simulates pulling the day's scans from the gate reader
func (s *AttendanceService) SyncBiometric() error {
	return s.sync.Trigger(nil, func() error {
		s.mu.Lock()
		s.lastSync = s.now()
		summary := models.Summarize(s.records)
		s.mu.Unlock()
		s.log.Info("biometric attendance synced", "present", summary.Present, "total", summary.Total)
		return nil
	})
}

// State returns the panel state
func (s *AttendanceService) State() AttendanceState {
	snap := s.sync.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	st := AttendanceState{
		Records: append([]models.AttendanceRecord(nil), s.records...),
		Summary: models.Summarize(s.records),
		Sync:    snap,
	}
	if !s.lastSync.IsZero() {
		t := s.lastSync
		st.LastSync = &t
	}
	return st
}

// Close drops a sync that is still processing
func (s *AttendanceService) Close() {
	s.sync.Close()
}
