package model

import "time"

// DateLayout is layout of calendar dates stored in records
const DateLayout = "2006-01-02"

// InvoiceStatus is invoice payment state
type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Invoice is invoice model entity.
// CustomerName and JobTitle are copied from referenced records when reference is set
// and are not kept in sync afterwards.
type Invoice struct {
	ID           string        `json:"id"`
	JobID        string        `json:"jobId"`
	CustomerID   string        `json:"customerId"`
	CustomerName string        `json:"customerName"`
	JobTitle     string        `json:"jobTitle"`
	Amount       Money         `json:"amount"`
	Status       InvoiceStatus `json:"status"`
	Date         string        `json:"date"`
	DueDate      string        `json:"dueDate"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// MergePatch applies non-nil patch fields on top of invoice
func (i Invoice) MergePatch(patch PatchInvoice) Invoice {
	if patch.JobID != nil {
		i.JobID = *patch.JobID
	}

	if patch.CustomerID != nil {
		i.CustomerID = *patch.CustomerID
	}

	if patch.Amount != nil {
		i.Amount = *patch.Amount
	}

	if patch.Status != nil {
		i.Status = *patch.Status
	}

	if patch.Date != nil {
		i.Date = *patch.Date
	}

	if patch.DueDate != nil {
		i.DueDate = *patch.DueDate
	}
	return i
}

// NewInvoice is data required to bill job
type NewInvoice struct {
	JobID      string        `json:"jobId" validate:"required"`
	CustomerID string        `json:"customerId" validate:"required"`
	Amount     Money         `json:"amount" validate:"gte=0"`
	Status     InvoiceStatus `json:"status" validate:"oneof=pending paid overdue"`
	Date       string        `json:"date" validate:"required,datetime=2006-01-02"`
	DueDate    string        `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// PatchInvoice is partial invoice update, nil fields stay untouched
type PatchInvoice struct {
	JobID      *string        `json:"jobId" validate:"omitempty,min=1"`
	CustomerID *string        `json:"customerId" validate:"omitempty,min=1"`
	Amount     *Money         `json:"amount" validate:"omitempty,gte=0"`
	Status     *InvoiceStatus `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Date       *string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate    *string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (p PatchInvoice) IsEmpty() bool {
	return p == PatchInvoice{}
}
