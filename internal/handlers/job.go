package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/service"
	"github.com/umalmyha/fieldops/internal/store"
)

const defaultRecentJobsLimit = 5

// JobHTTPHandler is http handler for job endpoint
type JobHTTPHandler struct {
	store  *SyncStore
	jobSvc service.JobService
}

// NewJobHTTPHandler builds new JobHTTPHandler, jobSvc must work on the store guarded by s
func NewJobHTTPHandler(s *SyncStore, jobSvc service.JobService) *JobHTTPHandler {
	return &JobHTTPHandler{store: s, jobSvc: jobSvc}
}

// GetAll gets all jobs
// @Summary     Get all jobs
// @Tags        jobs
// @Produce     json
// @Success     200    {array}  model.Job
// @Router      /api/jobs [get]
func (h *JobHTTPHandler) GetAll(c echo.Context) error {
	var jobs []model.Job
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		jobs = s.Jobs()
		tag = etag(s, "jobs", bus.Jobs)
		return nil
	})
	return snapshot(c, tag, jobs)
}

// Recent gets most recently created jobs
// @Summary     Get recent jobs
// @Tags        jobs
// @Produce     json
// @Param       limit  query    int false "Max number of jobs, 5 by default, 0 for all"
// @Success     200    {array}  model.Job
// @Router      /api/jobs/recent [get]
func (h *JobHTTPHandler) Recent(c echo.Context) error {
	limit := defaultRecentJobsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("limit must be non-negative integer, got %q", raw))
		}
		limit = n
	}

	var jobs []model.Job
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		jobs = s.RecentJobs(limit)
		tag = etag(s, fmt.Sprintf("recent-jobs-%d", limit), store.RecentJobsDeps...)
		return nil
	})
	return snapshot(c, tag, jobs)
}

// Get gets job
// @Summary     Get single job by id
// @Tags        jobs
// @Produce     json
// @Param       id     path     string true "Job guid" Format(uuid)
// @Success     200    {object} model.Job
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/jobs/{id} [get]
func (h *JobHTTPHandler) Get(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var job model.Job
	err = h.store.Do(func(s *store.Store) (err error) {
		job, err = s.Job(id)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, job)
}

// Post creates new job
// @Summary     New job
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       newJob body     model.NewJob true "Data for new job"
// @Success     201    {object} model.Job
// @Failure     400    {object} errors.ValidationErr
// @Router      /api/jobs [post]
func (h *JobHTTPHandler) Post(c echo.Context) error {
	var nj model.NewJob
	if err := bindBody(c, &nj); err != nil {
		return err
	}

	var job model.Job
	err := h.store.Do(func(s *store.Store) (err error) {
		job, err = s.AddJob(nj)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, job)
}

// Patch updates job fields present in payload
// @Summary     Patch job
// @Tags        jobs
// @Accept      json
// @Produce     json
// @Param       id       path     string         true "Job guid" Format(uuid)
// @Param       patchJob body     model.PatchJob true "Fields to update"
// @Success     200      {object} model.Job
// @Failure     400      {object} errors.ValidationErr
// @Failure     404      {object} errors.EntryNotFoundErr
// @Router      /api/jobs/{id} [patch]
func (h *JobHTTPHandler) Patch(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var patch model.PatchJob
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	var job model.Job
	err = h.store.Do(func(s *store.Store) (err error) {
		job, err = s.UpdateJob(id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, job)
}

// DeleteByID deletes job
// @Summary     Delete job by id
// @Description Invoices of job are kept, response carries warning about them
// @Tags        jobs
// @Param       id     path     string true "Job guid" Format(uuid)
// @Success     200    {object} deleted
// @Success     204    "Deleted, job wasn't invoiced"
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/jobs/{id} [delete]
func (h *JobHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var res model.DeleteResult
	err = h.store.Do(func(s *store.Store) (err error) {
		res, err = s.DeleteJob(id)
		return err
	})
	if err != nil {
		return err
	}
	return deleteResponse(c, res)
}

// Complete completes job and bills it
// @Summary     Complete job
// @Description Marks job completed, creates pending invoice, credits technician and raises notification
// @Tags        jobs
// @Produce     json
// @Param       id     path     string true "Job guid" Format(uuid)
// @Success     200    {object} service.Completion
// @Failure     400    {object} errors.ValidationErr
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/jobs/{id}/complete [post]
func (h *JobHTTPHandler) Complete(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var completion service.Completion
	err = h.store.Do(func(*store.Store) (err error) {
		completion, err = h.jobSvc.Complete(id)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, &completion)
}
