package resolver

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/existflow/taskhub/internal/logger"
	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/policy"
	"github.com/existflow/taskhub/internal/store"
)

// CreateTag creates a tag in a project the caller can write to. Tag
// mutations are not gated on the archived flag.
func (r *Resolver) CreateTag(ctx context.Context, callerID, projectID, name, color string) (*model.Tag, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, policy.ErrInvalidInput("name required")
	}

	p, err := r.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteInProject(r.access, callerID, p); err != nil {
		return nil, err
	}

	t := model.NewTag(uuid.New().String(), projectID, name, color)
	if err := r.store.CreateTag(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Tag created",
		logger.F("tag_id", t.ID), logger.F("project_id", projectID),
		logger.F("user_id", callerID), logger.F("name", name))

	return &t, nil
}

// UpdateTag applies a partial update to a tag's name and color.
func (r *Resolver) UpdateTag(ctx context.Context, callerID, id string, update TagUpdate) (*model.Tag, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	t, err := r.store.TagByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, policy.ErrNotFound("Tag")
	}
	if err != nil {
		return nil, err
	}

	p, err := r.project(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteInProject(r.access, callerID, p); err != nil {
		return nil, err
	}

	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Color != nil {
		t.Color = *update.Color
	}

	if err := r.store.SaveTag(ctx, *t); err != nil {
		return nil, err
	}

	logger.Info("Tag updated", logger.F("tag_id", id), logger.F("user_id", callerID))
	return t, nil
}

// DeleteTag removes a tag and pulls its ID out of every task and
// template in the project. The pull is a sequential sweep, not a
// transaction; a crash mid-sweep can leave references behind, which
// read-time population tolerates.
func (r *Resolver) DeleteTag(ctx context.Context, callerID, id string) (bool, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return false, err
	}

	t, err := r.store.TagByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, policy.ErrNotFound("Tag")
	}
	if err != nil {
		return false, err
	}

	p, err := r.project(ctx, t.ProjectID)
	if err != nil {
		return false, err
	}
	if err := policy.CanWriteInProject(r.access, callerID, p); err != nil {
		return false, err
	}

	if err := r.store.DeleteTag(ctx, id); err != nil {
		return false, err
	}

	// Pull the tag from tasks. Only same-project tasks can reference
	// it, so the sweep stays project-scoped.
	tasks, err := r.store.TasksByProject(ctx, t.ProjectID)
	if err != nil {
		return false, err
	}
	for i := range tasks {
		if trimmed, removed := removeID(tasks[i].TagIDs, id); removed {
			tasks[i].TagIDs = trimmed
			if err := r.store.SaveTask(ctx, tasks[i]); err != nil {
				return false, err
			}
		}
	}

	// Same sweep for templates.
	templates, err := r.store.TemplatesByProject(ctx, t.ProjectID)
	if err != nil {
		return false, err
	}
	for i := range templates {
		if trimmed, removed := removeID(templates[i].TagIDs, id); removed {
			templates[i].TagIDs = trimmed
			if err := r.store.SaveTemplate(ctx, templates[i]); err != nil {
				return false, err
			}
		}
	}

	logger.Info("Tag deleted",
		logger.F("tag_id", id), logger.F("project_id", t.ProjectID), logger.F("user_id", callerID))
	return true, nil
}

// TagsByProject lists a project's tags.
func (r *Resolver) TagsByProject(ctx context.Context, callerID, projectID string) ([]model.Tag, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	p, err := r.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadProject(r.access, callerID, p); err != nil {
		return nil, err
	}

	return r.store.TagsByProject(ctx, projectID)
}
