package resolver

import (
	"context"
	"testing"

	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/policy"
)

func TestCreateTag(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")

	tag, err := r.CreateTag(ctx, owner.ID, p.ID, "bug", "#EF4444")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}
	if tag.Color != "#EF4444" {
		t.Errorf("Color = %q", tag.Color)
	}

	// Color defaults when omitted.
	tag, err = r.CreateTag(ctx, owner.ID, p.ID, "chore", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}
	if tag.Color != model.DefaultTagColor {
		t.Errorf("Color = %q, want %q", tag.Color, model.DefaultTagColor)
	}

	_, err = r.CreateTag(ctx, owner.ID, p.ID, "", "")
	wantKind(t, err, policy.KindInvalidInput)
}

func TestTagWritesAllowedOnArchivedProject(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Frozen")
	if _, err := r.ArchiveProject(ctx, owner.ID, p.ID); err != nil {
		t.Fatalf("ArchiveProject = %v", err)
	}

	// The archived gate applies to tasks only.
	tag, err := r.CreateTag(ctx, owner.ID, p.ID, "postmortem", "")
	if err != nil {
		t.Fatalf("CreateTag on archived project = %v", err)
	}
	if _, err := r.DeleteTag(ctx, owner.ID, tag.ID); err != nil {
		t.Errorf("DeleteTag on archived project = %v", err)
	}
}

func TestUpdateTag(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Board")
	tag, err := r.CreateTag(ctx, owner.ID, p.ID, "bug", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}

	name := "defect"
	updated, err := r.UpdateTag(ctx, owner.ID, tag.ID, TagUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTag = %v", err)
	}
	if updated.Name != "defect" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Color != model.DefaultTagColor {
		t.Errorf("Color changed by name-only update: %q", updated.Color)
	}

	_, err = r.UpdateTag(ctx, stranger.ID, tag.ID, TagUpdate{Name: &name})
	wantKind(t, err, policy.KindNotAuthorized)
}

func TestDeleteTagPullsReferences(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")

	doomed, err := r.CreateTag(ctx, owner.ID, p.ID, "doomed", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}
	kept, err := r.CreateTag(ctx, owner.ID, p.ID, "kept", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}

	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{
		ProjectID: p.ID,
		Title:     "Tagged task",
		TagIDs:    []string{doomed.ID, kept.ID},
	})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}
	tpl, err := r.CreateTemplate(ctx, owner.ID, CreateTemplateInput{
		ProjectID: p.ID,
		Name:      "Tagged template",
		Title:     "From template",
		TagIDs:    []string{doomed.ID, kept.ID},
		IsPublic:  true,
	})
	if err != nil {
		t.Fatalf("CreateTemplate = %v", err)
	}

	ok, err := r.DeleteTag(ctx, owner.ID, doomed.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteTag = %v, %v", ok, err)
	}

	// The deleted tag is pulled from the task and the template; other
	// tags survive.
	gotTask, err := r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{})
	if err != nil {
		t.Fatalf("reloading task = %v", err)
	}
	if len(gotTask.TagIDs) != 1 || gotTask.TagIDs[0] != kept.ID {
		t.Errorf("task TagIDs = %v, want [%s]", gotTask.TagIDs, kept.ID)
	}

	gotTpl, err := r.Template(ctx, owner.ID, tpl.ID)
	if err != nil {
		t.Fatalf("reloading template = %v", err)
	}
	if len(gotTpl.TagIDs) != 1 || gotTpl.TagIDs[0] != kept.ID {
		t.Errorf("template TagIDs = %v, want [%s]", gotTpl.TagIDs, kept.ID)
	}

	_, err = r.DeleteTag(ctx, owner.ID, doomed.ID)
	wantKind(t, err, policy.KindNotFound)
	if err.Error() != "Tag not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDanglingTagReferencesDropAtReadTime(t *testing.T) {
	t.Parallel()
	r, st := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")
	tag, err := r.CreateTag(ctx, owner.ID, p.ID, "real", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}

	// Simulate an interrupted sweep: delete the tag row without the
	// reference pull.
	if _, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{
		ProjectID: p.ID,
		Title:     "Stale",
		TagIDs:    []string{tag.ID},
	}); err != nil {
		t.Fatalf("CreateTask = %v", err)
	}
	if err := st.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag = %v", err)
	}

	views, err := r.TasksByProject(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatalf("TasksByProject = %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("tasks = %v", views)
	}
	// The stored reference survives but the view carries no tag.
	if len(views[0].TagIDs) != 1 || views[0].TagIDs[0] != tag.ID {
		t.Errorf("stored TagIDs = %v, want untouched", views[0].TagIDs)
	}
	if len(views[0].Tags) != 0 {
		t.Errorf("resolved Tags = %v, want none", views[0].Tags)
	}
}

func TestTagsByProject(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Board")

	for _, name := range []string{"bug", "feature"} {
		if _, err := r.CreateTag(ctx, owner.ID, p.ID, name, ""); err != nil {
			t.Fatalf("CreateTag = %v", err)
		}
	}

	tags, err := r.TagsByProject(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatalf("TagsByProject = %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v, want 2", tags)
	}

	_, err = r.TagsByProject(ctx, stranger.ID, p.ID)
	wantKind(t, err, policy.KindNotAuthorized)
}
