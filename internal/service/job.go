package service

import (
	"fmt"

	"github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

// Completion is outcome of job completion workflow
type Completion struct {
	Job     model.Job     `json:"job"`
	Invoice model.Invoice `json:"invoice"`
}

// JobService runs job workflows spanning several collections
type JobService interface {
	Complete(string) (Completion, error)
}

type jobService struct {
	store *store.Store
}

// NewJobService builds JobService on top of s
func NewJobService(s *store.Store) JobService {
	return &jobService{store: s}
}

// Complete marks job completed, bills it with pending invoice, credits assigned technician
// and raises notification. Steps are separate store mutations, a failed step leaves earlier ones applied.
func (svc *jobService) Complete(id string) (Completion, error) {
	job, err := svc.store.Job(id)
	if err != nil {
		return Completion{}, err
	}

	switch job.Status {
	case model.JobCompleted:
		return Completion{}, errors.NewValidationErr("status", "job is already completed")
	case model.JobCancelled:
		return Completion{}, errors.NewValidationErr("status", "cancelled job can't be completed")
	}

	completed := model.JobCompleted
	job, err = svc.store.UpdateJob(id, model.PatchJob{Status: &completed})
	if err != nil {
		return Completion{}, err
	}

	invoice, err := svc.store.AddInvoice(model.NewInvoice{
		JobID:      job.ID,
		CustomerID: job.CustomerID,
		Amount:     job.Amount,
		Status:     model.InvoicePending,
	})
	if err != nil {
		return Completion{}, fmt.Errorf("job %s completed but not invoiced - %w", job.ID, err)
	}

	if err := svc.creditAssignee(job); err != nil {
		return Completion{}, err
	}

	_, err = svc.store.AddNotification(model.NewNotification{
		Title:   "Job completed",
		Message: fmt.Sprintf("%s for %s was completed and invoiced", job.Title, invoice.CustomerName),
		Type:    model.NotificationJob,
	})
	if err != nil {
		return Completion{}, err
	}

	return Completion{Job: job, Invoice: invoice}, nil
}

func (svc *jobService) creditAssignee(job model.Job) error {
	if job.AssigneeID == "" {
		return nil
	}

	member, err := svc.store.TeamMember(job.AssigneeID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if !member.IsTechnician() {
		return nil
	}

	jobsCompleted := member.JobsCompleted + 1
	available := model.AvailabilityAvailable
	_, err = svc.store.UpdateTeamMember(member.ID, model.PatchTeamMember{
		JobsCompleted: &jobsCompleted,
		Availability:  &available,
	})
	return err
}
