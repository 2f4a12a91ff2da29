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

// CreateTemplate creates a task template in a project the caller can
// write to. The caller becomes the creator, which is immutable.
func (r *Resolver) CreateTemplate(ctx context.Context, callerID string, in CreateTemplateInput) (*TemplateView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Title == "" {
		return nil, policy.ErrInvalidInput("name and title required")
	}

	p, err := r.project(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteInProject(r.access, callerID, p); err != nil {
		return nil, err
	}

	t := model.NewTaskTemplate(uuid.New().String(), in.ProjectID, callerID, in.Name, in.Title)
	t.Description = in.Description
	t.IsPublic = in.IsPublic
	if in.Priority != "" {
		pr := model.Priority(in.Priority)
		if !pr.Valid() {
			return nil, policy.ErrInvalidInput("Invalid priority: " + in.Priority)
		}
		t.Priority = pr
	}
	if in.TagIDs != nil {
		t.TagIDs = uniqueIDs(in.TagIDs)
	}

	if err := r.store.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Template created",
		logger.F("template_id", t.ID), logger.F("project_id", in.ProjectID),
		logger.F("user_id", callerID), logger.F("name", in.Name))

	return r.populateTemplate(ctx, &t)
}

// UpdateTemplate applies a partial update. Creator only: a project
// owner who did not create the template cannot edit it.
func (r *Resolver) UpdateTemplate(ctx context.Context, callerID, id string, update TemplateUpdate) (*TemplateView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	t, err := r.template(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateTemplate(callerID, t); err != nil {
		return nil, err
	}

	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Priority != nil {
		pr := model.Priority(*update.Priority)
		if !pr.Valid() {
			return nil, policy.ErrInvalidInput("Invalid priority: " + *update.Priority)
		}
		t.Priority = pr
	}
	if update.TagIDs != nil {
		t.TagIDs = uniqueIDs(*update.TagIDs)
	}
	if update.IsPublic != nil {
		t.IsPublic = *update.IsPublic
	}

	if err := r.store.SaveTemplate(ctx, *t); err != nil {
		return nil, err
	}

	logger.Info("Template updated", logger.F("template_id", id), logger.F("user_id", callerID))
	return r.populateTemplate(ctx, t)
}

// DeleteTemplate removes a template. Creator only.
func (r *Resolver) DeleteTemplate(ctx context.Context, callerID, id string) (bool, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return false, err
	}

	t, err := r.template(ctx, id)
	if err != nil {
		return false, err
	}
	if err := policy.CanDeleteTemplate(callerID, t); err != nil {
		return false, err
	}

	if err := r.store.DeleteTemplate(ctx, id); err != nil {
		return false, err
	}

	logger.Info("Template deleted",
		logger.F("template_id", id), logger.F("project_id", t.ProjectID), logger.F("user_id", callerID))
	return true, nil
}

// TemplatesByProject lists the project's templates visible to the
// caller: their own plus public ones.
func (r *Resolver) TemplatesByProject(ctx context.Context, callerID, projectID string) ([]TemplateView, error) {
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

	templates, err := r.store.TemplatesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]TemplateView, 0, len(templates))
	for i := range templates {
		if !templates[i].IsPublic && templates[i].CreatedBy != callerID {
			continue
		}
		v, err := r.populateTemplate(ctx, &templates[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Template retrieves a single template. Private templates are only
// visible to their creator, even when the caller owns the project.
func (r *Resolver) Template(ctx context.Context, callerID, id string) (*TemplateView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	t, err := r.template(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := r.project(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadTemplate(r.access, callerID, t, p); err != nil {
		return nil, err
	}

	return r.populateTemplate(ctx, t)
}

// CreateTaskFromTemplate instantiates a template into a new task:
// title, description, priority and tags are copied, status starts at
// TODO, and the caller may supply a due date. The template itself is
// never mutated. The project must be non-archived and writable.
func (r *Resolver) CreateTaskFromTemplate(ctx context.Context, callerID, templateID, dueDate string) (*TaskView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	tpl, err := r.template(ctx, templateID)
	if err != nil {
		return nil, err
	}

	p, err := r.project(ctx, tpl.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteTask(r.access, callerID, p, policy.TaskCreate); err != nil {
		return nil, err
	}

	t := model.NewTask(uuid.New().String(), tpl.ProjectID, tpl.Title)
	t.Description = tpl.Description
	t.Priority = tpl.Priority
	t.TagIDs = append([]string{}, tpl.TagIDs...)
	if dueDate != "" {
		due, err := parseDueDate(dueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}

	if err := r.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Task created from template",
		logger.F("task_id", t.ID), logger.F("template_id", templateID),
		logger.F("project_id", tpl.ProjectID), logger.F("user_id", callerID))

	return r.populateTask(ctx, &t)
}

func (r *Resolver) template(ctx context.Context, id string) (*model.TaskTemplate, error) {
	t, err := r.store.TemplateByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, policy.ErrNotFound("Template")
	}
	return t, err
}

func (r *Resolver) populateTemplate(ctx context.Context, t *model.TaskTemplate) (*TemplateView, error) {
	tags, err := r.store.TagsByIDs(ctx, t.TagIDs)
	if err != nil {
		return nil, err
	}
	return &TemplateView{TaskTemplate: *t, Tags: tags}, nil
}
