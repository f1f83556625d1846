package models

// FeeStatus is the payment state of an invoice
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePending FeeStatus = "Pending"
	FeeOverdue FeeStatus = "Overdue"
)

// FeeInvoice represents one monthly fee line
type FeeInvoice struct {
	ID      string    `json:"id"`
	Month   string    `json:"month"`
	Amount  float64   `json:"amount"`
	Status  FeeStatus `json:"status"`
	DueDate string    `json:"due_date"`
}

// IsPaid reports whether the invoice has been settled
func (f FeeInvoice) IsPaid() bool {
	return f.Status == FeePaid
}

// TotalDue sums every invoice that is not paid yet
func TotalDue(invoices []FeeInvoice) float64 {
	var total float64
	for _, inv := range invoices {
		if !inv.IsPaid() {
			total += inv.Amount
		}
	}
	return total
}

// SalaryRecord is a teacher's monthly salary entry
type SalaryRecord struct {
	ID     string  `json:"id"`
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
	PaidOn string  `json:"paid_on,omitempty"`
}
