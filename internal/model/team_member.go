package model

import "time"

// Role is team member role
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleTechnician Role = "technician"
)

// MemberStatus is team member account status
type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberPending  MemberStatus = "pending"
	MemberInactive MemberStatus = "inactive"
)

// Availability is team member field availability
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityOnJob     Availability = "on-job"
	AvailabilityOffDuty   Availability = "off-duty"
)

// TeamMember is team member model entity.
// JobsCompleted and Rating are meaningful for technicians only.
type TeamMember struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Role          Role         `json:"role"`
	Status        MemberStatus `json:"status"`
	Availability  Availability `json:"availability"`
	JobsCompleted int          `json:"jobsCompleted"`
	Rating        float64      `json:"rating"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// IsTechnician reports whether member works in the field
func (m TeamMember) IsTechnician() bool {
	return m.Role == RoleTechnician
}

// MergePatch applies non-nil patch fields on top of team member
func (m TeamMember) MergePatch(patch PatchTeamMember) TeamMember {
	if patch.Name != nil {
		m.Name = *patch.Name
	}

	if patch.Email != nil {
		m.Email = *patch.Email
	}

	if patch.Phone != nil {
		m.Phone = *patch.Phone
	}

	if patch.Role != nil {
		m.Role = *patch.Role
	}

	if patch.Status != nil {
		m.Status = *patch.Status
	}

	if patch.Availability != nil {
		m.Availability = *patch.Availability
	}

	if patch.JobsCompleted != nil {
		m.JobsCompleted = *patch.JobsCompleted
	}

	if patch.Rating != nil {
		m.Rating = *patch.Rating
	}
	return m
}

// NewTeamMember is data required to invite team member
type NewTeamMember struct {
	Name          string       `json:"name" validate:"required,max=120"`
	Email         string       `json:"email" validate:"required,email"`
	Phone         string       `json:"phone" validate:"max=32"`
	Role          Role         `json:"role" validate:"required,oneof=admin dispatcher technician"`
	Status        MemberStatus `json:"status" validate:"oneof=active pending inactive"`
	Availability  Availability `json:"availability" validate:"oneof=available on-job off-duty"`
	JobsCompleted int          `json:"jobsCompleted" validate:"gte=0"`
	Rating        float64      `json:"rating" validate:"gte=0,lte=5"`
}

// PatchTeamMember is partial team member update, nil fields stay untouched
type PatchTeamMember struct {
	Name          *string       `json:"name" validate:"omitempty,min=1,max=120"`
	Email         *string       `json:"email" validate:"omitempty,email"`
	Phone         *string       `json:"phone" validate:"omitempty,max=32"`
	Role          *Role         `json:"role" validate:"omitempty,oneof=admin dispatcher technician"`
	Status        *MemberStatus `json:"status" validate:"omitempty,oneof=active pending inactive"`
	Availability  *Availability `json:"availability" validate:"omitempty,oneof=available on-job off-duty"`
	JobsCompleted *int          `json:"jobsCompleted" validate:"omitempty,gte=0"`
	Rating        *float64      `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (p PatchTeamMember) IsEmpty() bool {
	return p == PatchTeamMember{}
}
