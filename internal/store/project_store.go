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

const projectColumns = `id, title, description, owner_id, member_ids, archived, created_at, updated_at`

// CreateProject inserts a new project.
func (s *SQLStore) CreateProject(ctx context.Context, p model.Project) error {
	members, err := encodeIDs(p.MemberIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO projects (`+projectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Title, p.Description, p.OwnerID, members, p.Archived, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// SaveProject updates a project's mutable fields.
func (s *SQLStore) SaveProject(ctx context.Context, p model.Project) error {
	members, err := encodeIDs(p.MemberIDs)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		UPDATE projects
		SET title = ?, description = ?, member_ids = ?, archived = ?, updated_at = ?
		WHERE id = ?`),
		p.Title, p.Description, members, p.Archived, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", p.ID, err)
	}
	return nil
}

// DeleteProject removes a project row. Dependent tasks are the
// resolver's responsibility.
func (s *SQLStore) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.q(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	return nil
}

// ProjectByID retrieves a single project.
func (s *SQLStore) ProjectByID(ctx context.Context, id string) (*model.Project, error) {
	row := s.db.QueryRowxContext(ctx, s.q(`
		SELECT `+projectColumns+` FROM projects WHERE id = ?`), id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &p, nil
}

// ProjectsForUser lists projects with the given archived state that
// the user owns, or is a member of when includeMember is set.
// Membership is matched against the JSON-encoded member set; IDs are
// opaque UUIDs so a quoted substring match is exact.
func (s *SQLStore) ProjectsForUser(ctx context.Context, userID string, archived, includeMember bool) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE archived = ? AND (owner_id = ?`
	args := []interface{}{archived, userID}
	if includeMember {
		query += ` OR member_ids LIKE ?`
		args = append(args, `%"`+userID+`"%`)
	}
	query += `) ORDER BY created_at`

	rows, err := s.db.QueryxContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// rowScanner is satisfied by both sqlx.Row and sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

var _ rowScanner = (*sqlx.Row)(nil)
var _ rowScanner = (*sqlx.Rows)(nil)

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p       model.Project
		members string
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.OwnerID, &members,
		&p.Archived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	p.MemberIDs, err = decodeIDs(members)
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}
