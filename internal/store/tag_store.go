package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/existflow/taskhub/internal/model"
)

// CreateTag inserts a new tag.
func (s *SQLStore) CreateTag(ctx context.Context, t model.Tag) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO tags (id, project_id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		t.ID, t.ProjectID, t.Name, t.Color, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

// SaveTag updates a tag's name and color.
func (s *SQLStore) SaveTag(ctx context.Context, t model.Tag) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		UPDATE tags SET name = ?, color = ?, updated_at = ? WHERE id = ?`),
		t.Name, t.Color, time.Now().UTC(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating tag %s: %w", t.ID, err)
	}
	return nil
}

// DeleteTag removes a tag row. Pulling the tag out of tasks and
// templates is the resolver's responsibility.
func (s *SQLStore) DeleteTag(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM tags WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	return nil
}

// TagByID retrieves a single tag.
func (s *SQLStore) TagByID(ctx context.Context, id string) (*model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowxContext(ctx, s.q(`
		SELECT id, project_id, name, color, created_at, updated_at
		FROM tags WHERE id = ?`), id).
		Scan(&t.ID, &t.ProjectID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %s: %w", id, err)
	}
	return &t, nil
}

// TagsByProject lists a project's tags in creation order.
func (s *SQLStore) TagsByProject(ctx context.Context, projectID string) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx, s.q(`
		SELECT id, project_id, name, color, created_at, updated_at
		FROM tags WHERE project_id = ? ORDER BY created_at`), projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TagsByIDs retrieves the tags whose IDs are in the given set.
// Dangling IDs are skipped, not errors.
func (s *SQLStore) TagsByIDs(ctx context.Context, ids []string) ([]model.Tag, error) {
	if len(ids) == 0 {
		return []model.Tag{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, project_id, name, color, created_at, updated_at
		FROM tags WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("building tag query: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
