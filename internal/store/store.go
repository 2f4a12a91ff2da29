package store

import (
	"context"
	"errors"

	"github.com/existflow/taskhub/internal/model"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("store: record not found")

// ErrDuplicate is returned when an insert violates a unique
// constraint.
var ErrDuplicate = errors.New("store: duplicate key")

// Store is the persistence interface for users, sessions, projects,
// tasks, tags and task templates. Implementations do not enforce
// authorization; that is the resolver layer's job.
type Store interface {
	// Users and sessions.

	CreateUser(ctx context.Context, u model.User) error
	UserByID(ctx context.Context, id string) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UsersByIDs(ctx context.Context, ids []string) ([]model.User, error)

	CreateSession(ctx context.Context, s model.Session) error
	SessionByToken(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Projects.

	CreateProject(ctx context.Context, p model.Project) error
	SaveProject(ctx context.Context, p model.Project) error
	DeleteProject(ctx context.Context, id string) error
	ProjectByID(ctx context.Context, id string) (*model.Project, error)
	// ProjectsForUser lists projects with the given archived state
	// where the user is the owner, or any member when includeMember
	// is set. Results are ordered by creation time.
	ProjectsForUser(ctx context.Context, userID string, archived, includeMember bool) ([]model.Project, error)

	// Tasks.

	CreateTask(ctx context.Context, t model.Task) error
	SaveTask(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasksByProject(ctx context.Context, projectID string) error
	TaskByID(ctx context.Context, id string) (*model.Task, error)
	TasksByProject(ctx context.Context, projectID string) ([]model.Task, error)

	// Tags.

	CreateTag(ctx context.Context, t model.Tag) error
	SaveTag(ctx context.Context, t model.Tag) error
	DeleteTag(ctx context.Context, id string) error
	TagByID(ctx context.Context, id string) (*model.Tag, error)
	TagsByProject(ctx context.Context, projectID string) ([]model.Tag, error)
	TagsByIDs(ctx context.Context, ids []string) ([]model.Tag, error)

	// Task templates.

	CreateTemplate(ctx context.Context, t model.TaskTemplate) error
	SaveTemplate(ctx context.Context, t model.TaskTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	TemplateByID(ctx context.Context, id string) (*model.TaskTemplate, error)
	TemplatesByProject(ctx context.Context, projectID string) ([]model.TaskTemplate, error)

	Close() error
}
