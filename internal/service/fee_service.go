package service

import (
	"fmt"
	"sync"
	"time"

	"schoolhub/internal/flow"
	"schoolhub/internal/logger"
	"schoolhub/internal/mockdata"
	"schoolhub/internal/models"
	"schoolhub/internal/receipts"
)

// FeeState is what the fee payment overlay renders
type FeeState struct {
	Invoices []models.FeeInvoice `json:"invoices"`
	TotalDue float64             `json:"total_due"`
	Payment  flow.Snapshot       `json:"payment"`
	Receipt  string              `json:"receipt,omitempty"`
	PaidAt   *time.Time          `json:"paid_at,omitempty"`
}

// FeeService holds one device's copy of the fee ledger
type FeeService struct {
	pay *flow.Action
	log logger.Logger
	now func() time.Time

	mu       sync.Mutex
	invoices []models.FeeInvoice
	receipt  string
	paidAt   time.Time
}

// NewFeeService starts from the mock ledger
func NewFeeService(t Timings, sched flow.Scheduler, log logger.Logger) *FeeService {
	return &FeeService{
		pay:      flow.New(flow.Options{Processing: t.Payment, Display: t.Display, Scheduler: sched}),
		log:      log,
		now:      time.Now,
		invoices: mockdata.Fees(),
	}
}

// Invoices returns a copy of the ledger
func (s *FeeService) Invoices() []models.FeeInvoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FeeInvoice(nil), s.invoices...)
}

// TotalDue sums every invoice that is not paid
func (s *FeeService) TotalDue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TotalDue(s.invoices)
}

// Pay settles everything outstanding. Nothing happens when nothing is due.
func (s *FeeService) Pay() error {
	return s.pay.Trigger(func() bool { return s.TotalDue() > 0 }, s.settle)
}

func (s *FeeService) settle() error {
	ref, err := receipts.NewReference(receipts.PrefixPayment)
	if err != nil {
		return fmt.Errorf("failed to issue receipt: %w", err)
	}

	s.mu.Lock()
	var paid int
	var amount float64
	for i := range s.invoices {
		if !s.invoices[i].IsPaid() {
			amount += s.invoices[i].Amount
			s.invoices[i].Status = models.FeePaid
			paid++
		}
	}
	s.receipt = ref
	s.paidAt = s.now()
	s.mu.Unlock()

	s.log.Info("fee payment settled", "receipt", ref, "invoices", paid, "amount", amount)
	return nil
}

// State returns the overlay state
func (s *FeeService) State() FeeState {
	payment := s.pay.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	st := FeeState{
		Invoices: append([]models.FeeInvoice(nil), s.invoices...),
		TotalDue: models.TotalDue(s.invoices),
		Payment:  payment,
		Receipt:  s.receipt,
	}
	if !s.paidAt.IsZero() {
		t := s.paidAt
		st.PaidAt = &t
	}
	return st
}

// Close drops a payment that is still processing
func (s *FeeService) Close() {
	s.pay.Close()
}
