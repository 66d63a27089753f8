package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
)

// TeamHTTPHandler is http handler for team endpoint
type TeamHTTPHandler struct {
	store *SyncStore
}

// NewTeamHTTPHandler builds new TeamHTTPHandler
func NewTeamHTTPHandler(s *SyncStore) *TeamHTTPHandler {
	return &TeamHTTPHandler{store: s}
}

// GetAll gets all team members
// @Summary     Get all team members
// @Tags        team
// @Produce     json
// @Success     200    {array}  model.TeamMember
// @Router      /api/team [get]
func (h *TeamHTTPHandler) GetAll(c echo.Context) error {
	var members []model.TeamMember
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		members = s.TeamMembers()
		tag = etag(s, "team", bus.Team)
		return nil
	})
	return snapshot(c, tag, members)
}

// Technicians gets team members working in the field
// @Summary     Get technicians
// @Tags        team
// @Produce     json
// @Success     200    {array}  model.TeamMember
// @Router      /api/team/technicians [get]
func (h *TeamHTTPHandler) Technicians(c echo.Context) error {
	var technicians []model.TeamMember
	var tag string
	_ = h.store.Do(func(s *store.Store) error {
		technicians = s.Technicians()
		tag = etag(s, "technicians", store.TechniciansDeps...)
		return nil
	})
	return snapshot(c, tag, technicians)
}

// Get gets team member
// @Summary     Get single team member by id
// @Tags        team
// @Produce     json
// @Param       id     path     string true "Team member guid" Format(uuid)
// @Success     200    {object} model.TeamMember
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/team/{id} [get]
func (h *TeamHTTPHandler) Get(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var member model.TeamMember
	err = h.store.Do(func(s *store.Store) (err error) {
		member, err = s.TeamMember(id)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, member)
}

// Post invites new team member
// @Summary     New team member
// @Tags        team
// @Accept      json
// @Produce     json
// @Param       newTeamMember body     model.NewTeamMember true "Data for new team member"
// @Success     201           {object} model.TeamMember
// @Failure     400           {object} errors.ValidationErr
// @Router      /api/team [post]
func (h *TeamHTTPHandler) Post(c echo.Context) error {
	var nm model.NewTeamMember
	if err := bindBody(c, &nm); err != nil {
		return err
	}

	var member model.TeamMember
	err := h.store.Do(func(s *store.Store) (err error) {
		member, err = s.AddTeamMember(nm)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, member)
}

// Patch updates team member fields present in payload
// @Summary     Patch team member
// @Tags        team
// @Accept      json
// @Produce     json
// @Param       id              path     string                true "Team member guid" Format(uuid)
// @Param       patchTeamMember body     model.PatchTeamMember true "Fields to update"
// @Success     200             {object} model.TeamMember
// @Failure     400             {object} errors.ValidationErr
// @Failure     404             {object} errors.EntryNotFoundErr
// @Router      /api/team/{id} [patch]
func (h *TeamHTTPHandler) Patch(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var patch model.PatchTeamMember
	if err := bindBody(c, &patch); err != nil {
		return err
	}

	var member model.TeamMember
	err = h.store.Do(func(s *store.Store) (err error) {
		member, err = s.UpdateTeamMember(id, patch)
		return err
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, member)
}

// DeleteByID deletes team member
// @Summary     Delete team member by id
// @Description Jobs assigned to member are kept, response carries warning about them
// @Tags        team
// @Param       id     path     string true "Team member guid" Format(uuid)
// @Success     200    {object} deleted
// @Success     204    "Deleted, member had no jobs"
// @Failure     404    {object} errors.EntryNotFoundErr
// @Router      /api/team/{id} [delete]
func (h *TeamHTTPHandler) DeleteByID(c echo.Context) error {
	id, err := validateID(c)
	if err != nil {
		return err
	}

	var res model.DeleteResult
	err = h.store.Do(func(s *store.Store) (err error) {
		res, err = s.DeleteTeamMember(id)
		return err
	})
	if err != nil {
		return err
	}
	return deleteResponse(c, res)
}
