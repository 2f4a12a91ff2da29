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

// CreateTask creates a task in a non-archived project the caller can
// write to. Status defaults to TODO and priority to MEDIUM. Tag IDs
// are trusted as given; dangling references drop out at read time.
func (r *Resolver) CreateTask(ctx context.Context, callerID string, in CreateTaskInput) (*TaskView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, policy.ErrInvalidInput("title required")
	}

	p, err := r.project(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteTask(r.access, callerID, p, policy.TaskCreate); err != nil {
		return nil, err
	}

	t := model.NewTask(uuid.New().String(), in.ProjectID, in.Title)
	t.Description = in.Description
	t.AssignedUserID = in.AssignedUser
	if in.Priority != "" {
		pr := model.Priority(in.Priority)
		if !pr.Valid() {
			return nil, policy.ErrInvalidInput("Invalid priority: " + in.Priority)
		}
		t.Priority = pr
	}
	if in.DueDate != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}
	if in.TagIDs != nil {
		t.TagIDs = uniqueIDs(in.TagIDs)
	}

	if err := r.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Task created",
		logger.F("task_id", t.ID), logger.F("project_id", in.ProjectID),
		logger.F("user_id", callerID), logger.F("priority", string(t.Priority)))

	return r.populateTask(ctx, &t)
}

// UpdateTask applies a partial update. Only fields present in the
// input change; an explicit null due date clears it. The project must
// be non-archived and writable by the caller.
func (r *Resolver) UpdateTask(ctx context.Context, callerID, id string, update TaskUpdate) (*TaskView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	t, err := r.store.TaskByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, policy.ErrNotFound("Task")
	}
	if err != nil {
		return nil, err
	}

	p, err := r.project(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanWriteTask(r.access, callerID, p, policy.TaskUpdate); err != nil {
		return nil, err
	}

	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Status != nil {
		st := model.Status(*update.Status)
		if !st.Valid() {
			return nil, policy.ErrInvalidInput("Invalid status: " + *update.Status)
		}
		t.Status = st
	}
	if update.Priority != nil {
		pr := model.Priority(*update.Priority)
		if !pr.Valid() {
			return nil, policy.ErrInvalidInput("Invalid priority: " + *update.Priority)
		}
		t.Priority = pr
	}
	if update.ClearDueDate {
		t.DueDate = nil
	} else if update.DueDate != nil {
		due, err := parseDueDate(*update.DueDate)
		if err != nil {
			return nil, err
		}
		t.DueDate = due
	}
	if update.TagIDs != nil {
		t.TagIDs = uniqueIDs(*update.TagIDs)
	}
	if update.AssignedUser != nil {
		t.AssignedUserID = *update.AssignedUser
	}

	if err := r.store.SaveTask(ctx, *t); err != nil {
		return nil, err
	}

	logger.Info("Task updated", logger.F("task_id", id), logger.F("user_id", callerID))

	return r.populateTask(ctx, t)
}

// DeleteTask removes a task from a non-archived, writable project.
func (r *Resolver) DeleteTask(ctx context.Context, callerID, id string) (bool, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return false, err
	}

	t, err := r.store.TaskByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, policy.ErrNotFound("Task")
	}
	if err != nil {
		return false, err
	}

	p, err := r.project(ctx, t.ProjectID)
	if err != nil {
		return false, err
	}
	if err := policy.CanWriteTask(r.access, callerID, p, policy.TaskDelete); err != nil {
		return false, err
	}

	if err := r.store.DeleteTask(ctx, id); err != nil {
		return false, err
	}

	logger.Info("Task deleted",
		logger.F("task_id", id), logger.F("project_id", t.ProjectID), logger.F("user_id", callerID))
	return true, nil
}

// TasksByProject lists a project's tasks with tags resolved. Reads
// are allowed on archived projects.
func (r *Resolver) TasksByProject(ctx context.Context, callerID, projectID string) ([]TaskView, error) {
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

	tasks, err := r.store.TasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		v, err := r.populateTask(ctx, &tasks[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// populateTask resolves tag references and the assignee. Tag IDs
// with no backing record are dropped from the view but left in the
// stored set.
func (r *Resolver) populateTask(ctx context.Context, t *model.Task) (*TaskView, error) {
	view := TaskView{Task: *t, Tags: []model.Tag{}}

	tags, err := r.store.TagsByIDs(ctx, t.TagIDs)
	if err != nil {
		return nil, err
	}
	view.Tags = tags

	if t.AssignedUserID != "" {
		user, err := r.store.UserByID(ctx, t.AssignedUserID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		view.AssignedUser = user
	}

	return &view, nil
}
