package model

import "time"

// JobStatus is job lifecycle state
type JobStatus string

const (
	JobScheduled  JobStatus = "scheduled"
	JobInProgress JobStatus = "in-progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Priority is job priority
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Job is job model entity
type Job struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CustomerID    string    `json:"customerId"`
	Address       string    `json:"address"`
	Status        JobStatus `json:"status"`
	Priority      Priority  `json:"priority"`
	AssigneeID    string    `json:"assigneeId"`
	ScheduledDate string    `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	Amount        Money     `json:"amount"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsActive reports whether job is still open
func (j Job) IsActive() bool {
	return j.Status == JobScheduled || j.Status == JobInProgress
}

// MergePatch applies non-nil patch fields on top of job
func (j Job) MergePatch(patch PatchJob) Job {
	if patch.Title != nil {
		j.Title = *patch.Title
	}

	if patch.CustomerID != nil {
		j.CustomerID = *patch.CustomerID
	}

	if patch.Address != nil {
		j.Address = *patch.Address
	}

	if patch.Status != nil {
		j.Status = *patch.Status
	}

	if patch.Priority != nil {
		j.Priority = *patch.Priority
	}

	if patch.AssigneeID != nil {
		j.AssigneeID = *patch.AssigneeID
	}

	if patch.ScheduledDate != nil {
		j.ScheduledDate = *patch.ScheduledDate
	}

	if patch.ScheduledTime != nil {
		j.ScheduledTime = *patch.ScheduledTime
	}

	if patch.Amount != nil {
		j.Amount = *patch.Amount
	}

	if patch.Description != nil {
		j.Description = *patch.Description
	}
	return j
}

// NewJob is data required to schedule job.
// Empty AssigneeID creates unassigned job, non-empty one must reference existing team member.
type NewJob struct {
	Title         string    `json:"title" validate:"required,max=200"`
	CustomerID    string    `json:"customerId" validate:"required"`
	Address       string    `json:"address" validate:"max=255"`
	Status        JobStatus `json:"status" validate:"oneof=scheduled in-progress completed cancelled"`
	Priority      Priority  `json:"priority" validate:"oneof=low medium high"`
	AssigneeID    string    `json:"assigneeId"`
	ScheduledDate string    `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime string    `json:"scheduledTime" validate:"required,datetime=15:04"`
	Amount        Money     `json:"amount" validate:"gte=0"`
	Description   string    `json:"description" validate:"max=2000"`
}

// PatchJob is partial job update, nil fields stay untouched.
// Empty AssigneeID unassigns job.
type PatchJob struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=200"`
	CustomerID    *string    `json:"customerId" validate:"omitempty,min=1"`
	Address       *string    `json:"address" validate:"omitempty,max=255"`
	Status        *JobStatus `json:"status" validate:"omitempty,oneof=scheduled in-progress completed cancelled"`
	Priority      *Priority  `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssigneeID    *string    `json:"assigneeId"`
	ScheduledDate *string    `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime *string    `json:"scheduledTime" validate:"omitempty,datetime=15:04"`
	Amount        *Money     `json:"amount" validate:"omitempty,gte=0"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
}

func (p PatchJob) IsEmpty() bool {
	return p == PatchJob{}
}
