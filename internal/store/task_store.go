package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/taskhub/internal/model"
)

const taskColumns = `id, project_id, title, description, status, priority, due_date, tag_ids, assigned_user_id, created_at, updated_at`

// CreateTask inserts a new task.
func (s *SQLStore) CreateTask(ctx context.Context, t model.Task) error {
	tags, err := encodeIDs(t.TagIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.ProjectID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.DueDate, tags, t.AssignedUserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// SaveTask updates a task's mutable fields. The project reference is
// immutable and not written.
func (s *SQLStore) SaveTask(ctx context.Context, t model.Task) error {
	tags, err := encodeIDs(t.TagIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
		    tag_ids = ?, assigned_user_id = ?, updated_at = ?
		WHERE id = ?`),
		t.Title, t.Description, string(t.Status), string(t.Priority), t.DueDate,
		tags, t.AssignedUserID, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes a single task.
func (s *SQLStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// DeleteTasksByProject removes every task belonging to a project.
func (s *SQLStore) DeleteTasksByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM tasks WHERE project_id = ?`), projectID)
	if err != nil {
		return fmt.Errorf("deleting tasks for project %s: %w", projectID, err)
	}
	return nil
}

// TaskByID retrieves a single task.
func (s *SQLStore) TaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, s.q(`
		SELECT `+taskColumns+` FROM tasks WHERE id = ?`), id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &t, nil
}

// TasksByProject lists a project's tasks in creation order.
func (s *SQLStore) TasksByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, s.q(`
		SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at`), projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t                model.Task
		status, priority string
		tags             string
	)

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &priority,
		&t.DueDate, &tags, &t.AssignedUserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	t.Status = model.Status(status)
	t.Priority = model.Priority(priority)
	t.TagIDs, err = decodeIDs(tags)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}
