package store

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
)

// TeamMembers returns all team members in creation order
func (s *Store) TeamMembers() []model.TeamMember {
	return s.team.all()
}

// Technicians returns team members with technician role
func (s *Store) Technicians() []model.TeamMember {
	return s.technicians.get()
}

// TeamMember returns team member with id
func (s *Store) TeamMember(id string) (model.TeamMember, error) {
	m, ok := s.team.get(id)
	if !ok {
		return model.TeamMember{}, notFound(entityTeamMember, id)
	}
	return m, nil
}

// AddTeamMember validates and stores new team member
func (s *Store) AddTeamMember(nm model.NewTeamMember) (model.TeamMember, error) {
	s.mustNotDeliver()

	if nm.Status == "" {
		nm.Status = model.MemberPending
	}

	if nm.Availability == "" {
		nm.Availability = model.AvailabilityAvailable
	}

	if err := s.validate(nm); err != nil {
		return model.TeamMember{}, err
	}

	m := model.TeamMember{
		ID:            s.newID(),
		Name:          nm.Name,
		Email:         nm.Email,
		Phone:         nm.Phone,
		Role:          nm.Role,
		Status:        nm.Status,
		Availability:  nm.Availability,
		JobsCompleted: nm.JobsCompleted,
		Rating:        nm.Rating,
		CreatedAt:     s.now(),
	}
	s.team.insert(m.ID, m)

	s.commit(bus.Team)
	return m, nil
}

// UpdateTeamMember applies patch to team member with id
func (s *Store) UpdateTeamMember(id string, patch model.PatchTeamMember) (model.TeamMember, error) {
	s.mustNotDeliver()

	m, ok := s.team.get(id)
	if !ok {
		return model.TeamMember{}, notFound(entityTeamMember, id)
	}

	if patch.IsEmpty() {
		return m, nil
	}

	if err := s.validate(patch); err != nil {
		return model.TeamMember{}, err
	}

	m = m.MergePatch(patch)
	s.team.replace(id, m)

	s.commit(bus.Team)
	return m, nil
}

// DeleteTeamMember removes team member with id. Jobs assigned to member keep
// their assignee and are reported in result warning.
func (s *Store) DeleteTeamMember(id string) (model.DeleteResult, error) {
	s.mustNotDeliver()

	if !s.team.has(id) {
		return model.DeleteResult{}, notFound(entityTeamMember, id)
	}

	jobs := 0
	s.jobs.each(func(j model.Job) bool {
		if j.AssigneeID == id {
			jobs++
		}
		return true
	})

	s.team.remove(id)

	keys := []bus.DataKey{bus.Team}
	res := model.DeleteResult{}
	if jobs > 0 {
		keys = append(keys, bus.Jobs)
		res.Warning = fmt.Sprintf("team member was deleted but is still assigned to %d job(s)", jobs)
		s.log.WithFields(logrus.Fields{"member": id, "jobs": jobs}).Warn(res.Warning)
	}

	s.commit(keys...)
	return res, nil
}
