package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/taskhub/internal/model"
)

const templateColumns = `id, project_id, name, title, description, priority, tag_ids, created_by, is_public, created_at, updated_at`

// CreateTemplate inserts a new task template.
func (s *SQLStore) CreateTemplate(ctx context.Context, t model.TaskTemplate) error {
	tags, err := encodeIDs(t.TagIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO task_templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.ProjectID, t.Name, t.Title, t.Description, string(t.Priority),
		tags, t.CreatedBy, t.IsPublic, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

// SaveTemplate updates a template's mutable fields. The creator and
// project reference are immutable and not written.
func (s *SQLStore) SaveTemplate(ctx context.Context, t model.TaskTemplate) error {
	tags, err := encodeIDs(t.TagIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		UPDATE task_templates
		SET name = ?, title = ?, description = ?, priority = ?, tag_ids = ?,
		    is_public = ?, updated_at = ?
		WHERE id = ?`),
		t.Name, t.Title, t.Description, string(t.Priority), tags,
		t.IsPublic, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTemplate removes a template.
func (s *SQLStore) DeleteTemplate(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM task_templates WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	return nil
}

// TemplateByID retrieves a single template.
func (s *SQLStore) TemplateByID(ctx context.Context, id string) (*model.TaskTemplate, error) {
	row := s.db.QueryRowxContext(ctx, s.q(`
		SELECT `+templateColumns+` FROM task_templates WHERE id = ?`), id)

	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting template %s: %w", id, err)
	}
	return &t, nil
}

// TemplatesByProject lists a project's templates in creation order.
func (s *SQLStore) TemplatesByProject(ctx context.Context, projectID string) ([]model.TaskTemplate, error) {
	rows, err := s.db.QueryxContext(ctx, s.q(`
		SELECT `+templateColumns+` FROM task_templates WHERE project_id = ? ORDER BY created_at`), projectID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	templates := []model.TaskTemplate{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func scanTemplate(row rowScanner) (model.TaskTemplate, error) {
	var (
		t        model.TaskTemplate
		priority string
		tags     string
	)

	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Title, &t.Description, &priority,
		&tags, &t.CreatedBy, &t.IsPublic, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.TaskTemplate{}, err
	}

	t.Priority = model.Priority(priority)
	t.TagIDs, err = decodeIDs(tags)
	if err != nil {
		return model.TaskTemplate{}, err
	}
	return t, nil
}
