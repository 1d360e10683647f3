package domain

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is an SOS signal raised by a Citizen. UserEmail and
// UserDisplayName are copied from the Citizen when the request is created
// and are not kept in sync afterwards.
type Request struct {
	ID               string    `json:"id"`
	SubjectID        string    `json:"subject_id"`
	UserEmail        string    `json:"user_email"`
	UserDisplayName  string    `json:"user_display_name"`
	Location         string    `json:"location"`
	Message          string    `json:"message"`
	Status           Status    `json:"status"`
	OperatorResponse string    `json:"operator_response"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateRequest struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

type TransitionRequest struct {
	Status           Status `json:"status"`
	OperatorResponse string `json:"operator_response"`
}
