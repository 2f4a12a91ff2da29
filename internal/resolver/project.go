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

// CreateProject creates a project owned by the caller, who becomes
// its sole member.
func (r *Resolver) CreateProject(ctx context.Context, callerID, title, description string) (*ProjectView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, policy.ErrInvalidInput("title required")
	}

	p := model.NewProject(uuid.New().String(), callerID, title, description)
	if err := r.store.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Project created",
		logger.F("project_id", p.ID), logger.F("user_id", callerID), logger.F("title", title))

	return r.populateProject(ctx, &p)
}

// Projects lists the caller's non-archived projects. The filter
// follows the access strategy: owner-only by default, owner-or-member
// under the membership model.
func (r *Resolver) Projects(ctx context.Context, callerID string) ([]ProjectView, error) {
	return r.listProjects(ctx, callerID, false)
}

// ArchivedProjects lists the caller's archived projects.
func (r *Resolver) ArchivedProjects(ctx context.Context, callerID string) ([]ProjectView, error) {
	return r.listProjects(ctx, callerID, true)
}

func (r *Resolver) listProjects(ctx context.Context, callerID string, archived bool) ([]ProjectView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	includeMember := r.access.Name() == (policy.OwnerOrMember{}).Name()
	projects, err := r.store.ProjectsForUser(ctx, callerID, archived, includeMember)
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		v, err := r.populateProject(ctx, &projects[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// Project retrieves a single project the caller has access to.
func (r *Resolver) Project(ctx context.Context, callerID, id string) (*ProjectView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	p, err := r.project(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadProject(r.access, callerID, p); err != nil {
		return nil, err
	}
	return r.populateProject(ctx, p)
}

// ArchiveProject sets the archived flag. Owner only. Archiving
// freezes every task mutation in the project without touching the
// tasks themselves.
func (r *Resolver) ArchiveProject(ctx context.Context, callerID, id string) (*ProjectView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	p, err := r.project(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanArchiveProject(callerID, p); err != nil {
		return nil, err
	}

	p.Archived = true
	if err := r.store.SaveProject(ctx, *p); err != nil {
		return nil, err
	}

	logger.Info("Project archived",
		logger.F("project_id", id), logger.F("user_id", callerID), logger.F("title", p.Title))

	return r.populateProject(ctx, p)
}

// UnarchiveProject clears the archived flag. Owner only.
func (r *Resolver) UnarchiveProject(ctx context.Context, callerID, id string) (*ProjectView, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return nil, err
	}

	p, err := r.project(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUnarchiveProject(callerID, p); err != nil {
		return nil, err
	}

	p.Archived = false
	if err := r.store.SaveProject(ctx, *p); err != nil {
		return nil, err
	}

	logger.Info("Project unarchived",
		logger.F("project_id", id), logger.F("user_id", callerID), logger.F("title", p.Title))

	return r.populateProject(ctx, p)
}

// DeleteProject removes a project and every task in it. Owner only.
// Tags and templates survive the project on purpose; the tag delete
// cascade covers them individually. The two deletes are separate
// store calls, not a transaction.
func (r *Resolver) DeleteProject(ctx context.Context, callerID, id string) (bool, error) {
	if err := policy.Authenticated(callerID); err != nil {
		return false, err
	}

	p, err := r.project(ctx, id)
	if err != nil {
		return false, err
	}
	if err := policy.CanDeleteProject(callerID, p); err != nil {
		return false, err
	}

	if err := r.store.DeleteProject(ctx, id); err != nil {
		return false, err
	}
	if err := r.store.DeleteTasksByProject(ctx, id); err != nil {
		return false, err
	}

	logger.Info("Project deleted", logger.F("project_id", id), logger.F("user_id", callerID))
	return true, nil
}

// populateProject resolves the owner and member records, mirroring
// the project field resolvers of the API schema.
func (r *Resolver) populateProject(ctx context.Context, p *model.Project) (*ProjectView, error) {
	view := ProjectView{Project: *p, Members: []model.User{}}

	owner, err := r.store.UserByID(ctx, p.OwnerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	view.Owner = owner

	members, err := r.store.UsersByIDs(ctx, p.MemberIDs)
	if err != nil {
		return nil, err
	}
	view.Members = members

	return &view, nil
}
