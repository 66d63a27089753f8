package store

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
)

// Jobs returns all jobs in creation order
func (s *Store) Jobs() []model.Job {
	return s.jobs.all()
}

// Job returns job with id
func (s *Store) Job(id string) (model.Job, error) {
	j, ok := s.jobs.get(id)
	if !ok {
		return model.Job{}, notFound(entityJob, id)
	}
	return j, nil
}

// RecentJobs returns at most limit jobs, most recently created first.
// Non-positive limit returns all jobs.
func (s *Store) RecentJobs(limit int) []model.Job {
	// every limit covering all jobs shares one cache entry
	if limit < 0 || limit >= s.jobs.len() {
		limit = 0
	}
	return s.recentJobs.get(limit)
}

// AddJob validates and stores new job
func (s *Store) AddJob(nj model.NewJob) (model.Job, error) {
	s.mustNotDeliver()

	if nj.Status == "" {
		nj.Status = model.JobScheduled
	}

	if nj.Priority == "" {
		nj.Priority = model.PriorityMedium
	}

	if err := s.validate(nj); err != nil {
		return model.Job{}, err
	}

	if err := s.checkJobRefs(&nj.CustomerID, &nj.AssigneeID); err != nil {
		return model.Job{}, err
	}

	j := model.Job{
		ID:            s.newID(),
		Title:         nj.Title,
		CustomerID:    nj.CustomerID,
		Address:       nj.Address,
		Status:        nj.Status,
		Priority:      nj.Priority,
		AssigneeID:    nj.AssigneeID,
		ScheduledDate: nj.ScheduledDate,
		ScheduledTime: nj.ScheduledTime,
		Amount:        nj.Amount,
		Description:   nj.Description,
		CreatedAt:     s.now(),
	}
	s.jobs.insert(j.ID, j)

	s.commit(bus.Jobs)
	return j, nil
}

// UpdateJob applies patch to job with id, references are checked only when patched
func (s *Store) UpdateJob(id string, patch model.PatchJob) (model.Job, error) {
	s.mustNotDeliver()

	j, ok := s.jobs.get(id)
	if !ok {
		return model.Job{}, notFound(entityJob, id)
	}

	if patch.IsEmpty() {
		return j, nil
	}

	if err := s.validate(patch); err != nil {
		return model.Job{}, err
	}

	if err := s.checkJobRefs(patch.CustomerID, patch.AssigneeID); err != nil {
		return model.Job{}, err
	}

	j = j.MergePatch(patch)
	s.jobs.replace(id, j)

	s.commit(bus.Jobs)
	return j, nil
}

// DeleteJob removes job with id. Invoices billing the job are kept and reported in result warning.
func (s *Store) DeleteJob(id string) (model.DeleteResult, error) {
	s.mustNotDeliver()

	if !s.jobs.has(id) {
		return model.DeleteResult{}, notFound(entityJob, id)
	}

	invoices := 0
	s.invoices.each(func(i model.Invoice) bool {
		if i.JobID == id {
			invoices++
		}
		return true
	})

	s.jobs.remove(id)

	keys := []bus.DataKey{bus.Jobs}
	res := model.DeleteResult{}
	if invoices > 0 {
		keys = append(keys, bus.Invoices)
		res.Warning = fmt.Sprintf("job was deleted but is still referenced by %d invoice(s)", invoices)
		s.log.WithFields(logrus.Fields{"job": id, "invoices": invoices}).Warn(res.Warning)
	}

	s.commit(keys...)
	return res, nil
}

// checkJobRefs verifies non-nil references, empty assignee means unassigned job
func (s *Store) checkJobRefs(customerID *string, assigneeID *string) error {
	vErr := &apperrors.ValidationErr{}

	if customerID != nil && !s.customers.has(*customerID) {
		vErr.Violation(apperrors.Violation{
			Field:   "customerId",
			Message: fmt.Sprintf("customerId references unknown customer %s", *customerID),
		})
	}

	if assigneeID != nil && *assigneeID != "" && !s.team.has(*assigneeID) {
		vErr.Violation(apperrors.Violation{
			Field:   "assigneeId",
			Message: fmt.Sprintf("assigneeId references unknown team member %s", *assigneeID),
		})
	}

	if vErr.HasViolations() {
		return vErr
	}
	return nil
}
