package model

import "time"

// TaskTemplate is a reusable task blueprint. Only the creator may
// modify it; private templates are invisible to everyone else.
// Instantiating a template copies its fields into a fresh task and
// never mutates the template.
type TaskTemplate struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	TagIDs      []string  `json:"tag_ids"`
	CreatedBy   string    `json:"created_by"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskTemplate creates a template with default priority and
// visibility.
func NewTaskTemplate(id, projectID, createdBy, name, title string) TaskTemplate {
	now := time.Now().UTC()
	return TaskTemplate{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Title:     title,
		Priority:  PriorityMedium,
		TagIDs:    []string{},
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
