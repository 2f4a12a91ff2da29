package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/existflow/taskhub/internal/policy"
	"github.com/existflow/taskhub/internal/store"
)

func TestCreateProject(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")

	p, err := r.CreateProject(ctx, owner.ID, "Launch", "ship it")
	if err != nil {
		t.Fatalf("CreateProject = %v", err)
	}
	if p.OwnerID != owner.ID {
		t.Errorf("OwnerID = %q, want %q", p.OwnerID, owner.ID)
	}
	if p.Archived {
		t.Error("new project should not be archived")
	}
	// The creator starts as the sole member, and both owner and member
	// records come back populated.
	if len(p.MemberIDs) != 1 || p.MemberIDs[0] != owner.ID {
		t.Errorf("MemberIDs = %v", p.MemberIDs)
	}
	if p.Owner == nil || p.Owner.ID != owner.ID {
		t.Errorf("Owner = %+v", p.Owner)
	}
	if len(p.Members) != 1 || p.Members[0].ID != owner.ID {
		t.Errorf("Members = %+v", p.Members)
	}

	_, err = r.CreateProject(ctx, "", "Nope", "")
	wantKind(t, err, policy.KindUnauthenticated)

	_, err = r.CreateProject(ctx, owner.ID, "", "")
	wantKind(t, err, policy.KindInvalidInput)
}

func TestProjectListsSplitByArchived(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	active := createProject(t, r, owner.ID, "Active")
	toArchive := createProject(t, r, owner.ID, "Old")

	if _, err := r.ArchiveProject(ctx, owner.ID, toArchive.ID); err != nil {
		t.Fatalf("ArchiveProject = %v", err)
	}

	projects, err := r.Projects(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Projects = %v", err)
	}
	if len(projects) != 1 || projects[0].ID != active.ID {
		t.Errorf("Projects = %v, want only %s", projects, active.ID)
	}

	archived, err := r.ArchivedProjects(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ArchivedProjects = %v", err)
	}
	if len(archived) != 1 || archived[0].ID != toArchive.ID {
		t.Errorf("ArchivedProjects = %v, want only %s", archived, toArchive.ID)
	}
}

func TestProjectReadAccess(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Private")

	if _, err := r.Project(ctx, owner.ID, p.ID); err != nil {
		t.Errorf("owner read = %v", err)
	}

	_, err := r.Project(ctx, stranger.ID, p.ID)
	wantKind(t, err, policy.KindNotAuthorized)

	_, err = r.Project(ctx, owner.ID, "no-such-project")
	wantKind(t, err, policy.KindNotFound)
	if err.Error() != "Project not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestMemberAccessUnderMemberPolicy(t *testing.T) {
	t.Parallel()
	r, st := newTestResolver(t, policy.OwnerOrMember{})
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	member := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Shared")
	addMember(t, st, p.ID, member.ID)

	if _, err := r.Project(ctx, member.ID, p.ID); err != nil {
		t.Errorf("member read under member policy = %v", err)
	}

	// Membership shows up in the member's own project list.
	projects, err := r.Projects(ctx, member.ID)
	if err != nil {
		t.Fatalf("Projects = %v", err)
	}
	if len(projects) != 1 || projects[0].ID != p.ID {
		t.Errorf("member project list = %v", projects)
	}

	// Members can write tasks but still cannot archive or delete.
	if _, err := r.CreateTask(ctx, member.ID, CreateTaskInput{ProjectID: p.ID, Title: "Member task"}); err != nil {
		t.Errorf("member task create = %v", err)
	}
	_, err = r.ArchiveProject(ctx, member.ID, p.ID)
	wantKind(t, err, policy.KindNotAuthorized)
	_, err = r.DeleteProject(ctx, member.ID, p.ID)
	wantKind(t, err, policy.KindNotAuthorized)
}

func TestArchiveUnarchiveRoundTrip(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Cycle")

	archived, err := r.ArchiveProject(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatalf("ArchiveProject = %v", err)
	}
	if !archived.Archived {
		t.Error("Archived = false after archive")
	}

	// Archived blocks task writes...
	_, err = r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Nope"})
	wantKind(t, err, policy.KindInvalidState)

	// ...until the owner unarchives, restoring writes with tasks
	// untouched.
	restored, err := r.UnarchiveProject(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatalf("UnarchiveProject = %v", err)
	}
	if restored.Archived {
		t.Error("Archived = true after unarchive")
	}
	if _, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Now fine"}); err != nil {
		t.Errorf("task create after unarchive = %v", err)
	}
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	t.Parallel()
	r, st := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Doomed")
	other := createProject(t, r, owner.ID, "Survivor")

	for _, title := range []string{"one", "two", "three"} {
		if _, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: title}); err != nil {
			t.Fatalf("CreateTask = %v", err)
		}
	}
	kept, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: other.ID, Title: "keep"})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}

	ok, err := r.DeleteProject(ctx, owner.ID, p.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteProject = %v, %v", ok, err)
	}

	if _, err := st.ProjectByID(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ProjectByID after delete = %v, want ErrNotFound", err)
	}
	tasks, err := st.TasksByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("TasksByProject = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("%d tasks survived project delete", len(tasks))
	}

	// The other project's task is untouched.
	if _, err := st.TaskByID(ctx, kept.ID); err != nil {
		t.Errorf("unrelated task gone: %v", err)
	}
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	t.Parallel()
	r, st := newTestResolver(t, policy.OwnerOrMember{})
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	member := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Shared")
	addMember(t, st, p.ID, member.ID)

	_, err := r.DeleteProject(ctx, member.ID, p.ID)
	wantKind(t, err, policy.KindNotAuthorized)

	if ok, err := r.DeleteProject(ctx, owner.ID, p.ID); err != nil || !ok {
		t.Errorf("owner delete = %v, %v", ok, err)
	}
}
