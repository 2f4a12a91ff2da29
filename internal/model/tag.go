package model

import "time"

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#3B82F6"

// Tag is a project-scoped label that tasks and templates reference
// by ID.
type Tag struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a tag, defaulting the color when empty.
func NewTag(id, projectID, name, color string) Tag {
	if color == "" {
		color = DefaultTagColor
	}
	now := time.Now().UTC()
	return Tag{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
