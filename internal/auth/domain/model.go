package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleMember   Role = "member"
	RoleElevated Role = "elevated"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleElevated
}

// Citizen is the local mirror of an identity-provider principal.
// SubjectID is the provider's stable subject and the primary key.
type Citizen struct {
	SubjectID  string    `json:"subject_id"`
	Email      string    `json:"email"`
	GivenName  string    `json:"given_name"`
	FamilyName string    `json:"family_name"`
	AvatarURL  string    `json:"avatar_url"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *Citizen) IsElevated() bool {
	return c != nil && c.Role == RoleElevated
}

// DisplayName is "given family" trimmed, or "Anonymous" when both are empty.
func (c *Citizen) DisplayName() string {
	name := strings.TrimSpace(c.GivenName + " " + c.FamilyName)
	if name == "" {
		return "Anonymous"
	}
	return name
}

// SyncRequest carries the profile fields asserted at sign-in.
type SyncRequest struct {
	SubjectID  string
	Email      string
	GivenName  string
	FamilyName string
	AvatarURL  string
}
