package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/policy"
)

func TestCreateTaskDefaults(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")

	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Write docs"})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Errorf("Status = %q, want TODO", task.Status)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want MEDIUM", task.Priority)
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", task.DueDate)
	}
	if len(task.TagIDs) != 0 {
		t.Errorf("TagIDs = %v, want empty", task.TagIDs)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")

	_, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID})
	wantKind(t, err, policy.KindInvalidInput)

	_, err = r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "X", Priority: "URGENT"})
	wantKind(t, err, policy.KindInvalidInput)

	_, err = r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "X", DueDate: "tomorrow"})
	wantKind(t, err, policy.KindInvalidInput)

	_, err = r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: "missing", Title: "X"})
	wantKind(t, err, policy.KindNotFound)
}

func TestCreateTaskDeduplicatesTags(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")
	tag, err := r.CreateTag(ctx, owner.ID, p.ID, "urgent", "")
	if err != nil {
		t.Fatalf("CreateTag = %v", err)
	}

	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{
		ProjectID: p.ID,
		Title:     "Tagged",
		TagIDs:    []string{tag.ID, tag.ID, tag.ID},
	})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}
	if len(task.TagIDs) != 1 {
		t.Errorf("TagIDs = %v, want one entry", task.TagIDs)
	}
	if len(task.Tags) != 1 || task.Tags[0].Name != "urgent" {
		t.Errorf("Tags = %v", task.Tags)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")
	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{
		ProjectID:   p.ID,
		Title:       "Original",
		Description: "keep me",
		Priority:    "HIGH",
		DueDate:     "2026-12-01",
	})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}

	status := "DOING"
	updated, err := r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask = %v", err)
	}

	// Only the status changed; absent fields stay put.
	if updated.Status != model.StatusDoing {
		t.Errorf("Status = %q, want DOING", updated.Status)
	}
	if updated.Title != "Original" || updated.Description != "keep me" {
		t.Errorf("untouched fields changed: %+v", updated.Task)
	}
	if updated.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q, want HIGH", updated.Priority)
	}
	if updated.DueDate == nil {
		t.Error("DueDate cleared by unrelated update")
	}
}

func TestUpdateTaskDueDate(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Board")
	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Dated"})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}

	due := "2026-10-31"
	updated, err := r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{DueDate: &due})
	if err != nil {
		t.Fatalf("UpdateTask(set due) = %v", err)
	}
	want := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	if updated.DueDate == nil || !updated.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", updated.DueDate, want)
	}

	// An explicit clear removes the date; it is distinct from leaving
	// the field absent.
	updated, err = r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{ClearDueDate: true})
	if err != nil {
		t.Fatalf("UpdateTask(clear due) = %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("DueDate = %v after clear, want nil", updated.DueDate)
	}
}

func TestTaskWritesBlockedOnArchivedProject(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	p := createProject(t, r, owner.ID, "Frozen")
	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Pre-freeze"})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}

	if _, err := r.ArchiveProject(ctx, owner.ID, p.ID); err != nil {
		t.Fatalf("ArchiveProject = %v", err)
	}

	_, err = r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Nope"})
	wantKind(t, err, policy.KindInvalidState)
	if err.Error() != "Cannot create tasks in archived project" {
		t.Errorf("create message = %q", err.Error())
	}

	status := "DONE"
	_, err = r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{Status: &status})
	wantKind(t, err, policy.KindInvalidState)
	if err.Error() != "Cannot update tasks in archived project" {
		t.Errorf("update message = %q", err.Error())
	}

	_, err = r.DeleteTask(ctx, owner.ID, task.ID)
	wantKind(t, err, policy.KindInvalidState)
	if err.Error() != "Cannot delete tasks from archived project" {
		t.Errorf("delete message = %q", err.Error())
	}

	// Reads still work on an archived project.
	tasks, err := r.TasksByProject(ctx, owner.ID, p.ID)
	if err != nil {
		t.Fatalf("TasksByProject on archived = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("tasks = %v, want the pre-freeze task", tasks)
	}
}

func TestTaskAssignment(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	assignee := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Board")

	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{
		ProjectID:    p.ID,
		Title:        "Assigned",
		AssignedUser: assignee.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}
	if task.AssignedUser == nil || task.AssignedUser.ID != assignee.ID {
		t.Errorf("AssignedUser = %+v, want %s", task.AssignedUser, assignee.ID)
	}

	// Unassign by setting the field to empty.
	empty := ""
	updated, err := r.UpdateTask(ctx, owner.ID, task.ID, TaskUpdate{AssignedUser: &empty})
	if err != nil {
		t.Fatalf("UpdateTask = %v", err)
	}
	if updated.AssignedUser != nil {
		t.Errorf("AssignedUser = %+v after unassign", updated.AssignedUser)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	owner := registerUser(t, r, "alice")
	stranger := registerUser(t, r, "bob")
	p := createProject(t, r, owner.ID, "Board")
	task, err := r.CreateTask(ctx, owner.ID, CreateTaskInput{ProjectID: p.ID, Title: "Doomed"})
	if err != nil {
		t.Fatalf("CreateTask = %v", err)
	}

	_, err = r.DeleteTask(ctx, stranger.ID, task.ID)
	wantKind(t, err, policy.KindNotAuthorized)

	ok, err := r.DeleteTask(ctx, owner.ID, task.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteTask = %v, %v", ok, err)
	}

	_, err = r.DeleteTask(ctx, owner.ID, task.ID)
	wantKind(t, err, policy.KindNotFound)
	if err.Error() != "Task not found" {
		t.Errorf("message = %q", err.Error())
	}
}
