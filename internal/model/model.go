package model

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Toggled returns the other status. Only two states exist.
func (s Status) Toggled() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

type Vehicle struct {
	ID       string
	Name     string
	Year     string
	Plate    string
	Selected bool
}

type Service struct {
	ID      string
	Label   string
	Price   int
	TimeMin int
}

type Appointment struct {
	ID       string
	CarName  string
	Year     string
	Plate    string
	Service  string
	Datetime time.Time
	Status   Status
}

type Session struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
