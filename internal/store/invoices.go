package store

import (
	"fmt"
	"time"

	"github.com/umalmyha/fieldops/internal/bus"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
)

// Invoices returns all invoices in creation order
func (s *Store) Invoices() []model.Invoice {
	return s.invoices.all()
}

// Invoice returns invoice with id
func (s *Store) Invoice(id string) (model.Invoice, error) {
	i, ok := s.invoices.get(id)
	if !ok {
		return model.Invoice{}, notFound(entityInvoice, id)
	}
	return i, nil
}

// AddInvoice validates and stores new invoice. Date defaults to today and due date
// to date plus invoice term. Customer name and job title are copied from referenced records.
func (s *Store) AddInvoice(ni model.NewInvoice) (model.Invoice, error) {
	s.mustNotDeliver()

	if ni.Status == "" {
		ni.Status = model.InvoicePending
	}

	if ni.Date == "" {
		ni.Date = s.today()
	}

	if ni.DueDate == "" {
		if d, err := time.Parse(model.DateLayout, ni.Date); err == nil {
			ni.DueDate = d.Add(defaultInvoiceTerm).Format(model.DateLayout)
		}
	}

	if err := s.validate(ni); err != nil {
		return model.Invoice{}, err
	}

	inv := model.Invoice{
		ID:         s.newID(),
		JobID:      ni.JobID,
		CustomerID: ni.CustomerID,
		Amount:     ni.Amount,
		Status:     ni.Status,
		Date:       ni.Date,
		DueDate:    ni.DueDate,
		CreatedAt:  s.now(),
	}

	if err := s.linkInvoice(&inv, true, true); err != nil {
		return model.Invoice{}, err
	}

	if err := checkInvoiceDates(inv); err != nil {
		return model.Invoice{}, err
	}

	s.invoices.insert(inv.ID, inv)

	s.commit(bus.Invoices)
	return inv, nil
}

// UpdateInvoice applies patch to invoice with id. Patching a reference re-checks it
// and refreshes the copied customer name or job title.
func (s *Store) UpdateInvoice(id string, patch model.PatchInvoice) (model.Invoice, error) {
	s.mustNotDeliver()

	inv, ok := s.invoices.get(id)
	if !ok {
		return model.Invoice{}, notFound(entityInvoice, id)
	}

	if patch.IsEmpty() {
		return inv, nil
	}

	if err := s.validate(patch); err != nil {
		return model.Invoice{}, err
	}

	inv = inv.MergePatch(patch)

	if patch.JobID != nil || patch.CustomerID != nil {
		if err := s.linkInvoice(&inv, patch.JobID != nil, patch.CustomerID != nil); err != nil {
			return model.Invoice{}, err
		}
	}

	if patch.Date != nil || patch.DueDate != nil {
		if err := checkInvoiceDates(inv); err != nil {
			return model.Invoice{}, err
		}
	}

	s.invoices.replace(id, inv)

	s.commit(bus.Invoices)
	return inv, nil
}

// linkInvoice checks invoice references and copies names of referenced records.
// Job of invoice must belong to invoice customer.
func (s *Store) linkInvoice(inv *model.Invoice, jobSet bool, customerSet bool) error {
	vErr := &apperrors.ValidationErr{}

	job, jobOK := s.jobs.get(inv.JobID)
	if jobSet && !jobOK {
		vErr.Violation(apperrors.Violation{
			Field:   "jobId",
			Message: fmt.Sprintf("jobId references unknown job %s", inv.JobID),
		})
	}

	cust, custOK := s.customers.get(inv.CustomerID)
	if customerSet && !custOK {
		vErr.Violation(apperrors.Violation{
			Field:   "customerId",
			Message: fmt.Sprintf("customerId references unknown customer %s", inv.CustomerID),
		})
	}

	if jobOK && custOK && job.CustomerID != cust.ID {
		vErr.Violation(apperrors.Violation{
			Field:   "customerId",
			Message: fmt.Sprintf("customerId must match customer of job %s", job.ID),
		})
	}

	if vErr.HasViolations() {
		return vErr
	}

	if jobSet {
		inv.JobTitle = job.Title
	}

	if customerSet {
		inv.CustomerName = cust.Name
	}
	return nil
}

func checkInvoiceDates(inv model.Invoice) error {
	date, err := time.Parse(model.DateLayout, inv.Date)
	if err != nil {
		return violation("date", "date must be a valid date")
	}

	due, err := time.Parse(model.DateLayout, inv.DueDate)
	if err != nil {
		return violation("dueDate", "dueDate must be a valid date")
	}

	if due.Before(date) {
		return violation("dueDate", "dueDate must not be before date")
	}
	return nil
}
