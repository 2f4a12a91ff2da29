package model

import "time"

// Task status values.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Valid returns true for a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task priority values.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Valid returns true for a known priority value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task is a single unit of work inside a project. TagIDs reference
// tags in the same project; AssignedUserID may be empty.
type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	TagIDs         []string   `json:"tag_ids"`
	AssignedUserID string     `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTask creates a task with default status and priority.
func NewTask(id, projectID, title string) Task {
	now := time.Now().UTC()
	return Task{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		TagIDs:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOverdue returns true if the task has a due date in the past.
func (t *Task) IsOverdue() bool {
	return t.DueDate != nil && t.DueDate.Before(time.Now())
}
