package domain

import (
	"strings"
	"time"
)

// ProjectStatus represents the progress of a project. Any status may follow
// any other; there is no enforced ordering.
type ProjectStatus string

const (
	StatusUpcoming   ProjectStatus = "upcoming"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ParseStatus maps a status token ("in_progress", "IN_PROGRESS", ...) to a
// ProjectStatus.
func ParseStatus(s string) (ProjectStatus, bool) {
	st := ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// Client is the customer a project is delivered to. It has no lifecycle of
// its own and lives embedded in its Project.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewClient validates the client contact fields.
func NewClient(name, email, phone string) (Client, error) {
	if name == "" {
		return Client{}, invalid("client name cannot be empty")
	}
	if email == "" {
		return Client{}, invalid("client email cannot be empty")
	}
	if phone == "" {
		return Client{}, invalid("client phone cannot be empty")
	}
	return Client{Name: name, Email: email, Phone: phone}, nil
}

// Project is the aggregate root tracked by the portfolio. BuilderID and
// ManagerID are fixed at creation.
type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Status      ProjectStatus `json:"status"`
	Client      Client        `json:"client"`
	BuilderID   string        `json:"builder_id"`
	ManagerID   string        `json:"manager_id"`
}

// NewProject validates and assembles a project. An empty status defaults to
// StatusUpcoming. The identifier is left zero for the caller to assign.
func NewProject(name, description string, start, end time.Time, client Client, status ProjectStatus, builderID, managerID string) (*Project, error) {
	if name == "" {
		return nil, invalid("project name cannot be empty")
	}
	if builderID == "" {
		return nil, invalid("builder id cannot be empty")
	}
	if managerID == "" {
		return nil, invalid("manager id cannot be empty")
	}
	if client.Name == "" {
		return nil, invalid("client cannot be empty")
	}
	if start.IsZero() || end.IsZero() {
		return nil, invalid("start date and end date are required")
	}
	if end.Before(start) {
		return nil, invalid("end date cannot be before start date")
	}
	if status == "" {
		status = StatusUpcoming
	}
	if !status.Valid() {
		return nil, invalid("unknown status " + string(status))
	}
	return &Project{
		Name:        name,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		Client:      client,
		BuilderID:   builderID,
		ManagerID:   managerID,
	}, nil
}

// Reschedule replaces the project dates, keeping end not before start.
func (p *Project) Reschedule(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return invalid("start date and end date are required")
	}
	if end.Before(start) {
		return invalid("end date cannot be before start date")
	}
	p.StartDate = start
	p.EndDate = end
	return nil
}
