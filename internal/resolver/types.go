package resolver

import "github.com/existflow/taskhub/internal/model"

// ProjectView is a project with its owner and member records
// populated for the API response.
type ProjectView struct {
	model.Project
	Owner   *model.User  `json:"owner,omitempty"`
	Members []model.User `json:"members"`
}

// TaskView is a task with its tag references and assignee resolved.
type TaskView struct {
	model.Task
	Tags         []model.Tag `json:"tags"`
	AssignedUser *model.User `json:"assigned_user,omitempty"`
}

// TemplateView is a template with its tag references resolved.
type TemplateView struct {
	model.TaskTemplate
	Tags []model.Tag `json:"tags"`
}

// CreateTaskInput carries the arguments for task creation. Optional
// fields left zero take their defaults.
type CreateTaskInput struct {
	ProjectID    string
	Title        string
	Description  string
	Priority     string
	DueDate      string
	TagIDs       []string
	AssignedUser string
}

// TaskUpdate carries a partial task update. Nil pointer fields are
// left untouched. ClearDueDate distinguishes "remove the due date"
// from "leave it alone", matching an explicit null on the wire.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	DueDate      *string
	ClearDueDate bool
	TagIDs       *[]string
	AssignedUser *string
}

// TagUpdate carries a partial tag update.
type TagUpdate struct {
	Name  *string
	Color *string
}

// CreateTemplateInput carries the arguments for template creation.
type CreateTemplateInput struct {
	ProjectID   string
	Name        string
	Title       string
	Description string
	Priority    string
	TagIDs      []string
	IsPublic    bool
}

// TemplateUpdate carries a partial template update.
type TemplateUpdate struct {
	Name        *string
	Title       *string
	Description *string
	Priority    *string
	TagIDs      *[]string
	IsPublic    *bool
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	User      model.User `json:"user"`
}
