package policy

import (
	"testing"

	"github.com/existflow/taskhub/internal/model"
)

func project(ownerID string, memberIDs []string, archived bool) *model.Project {
	return &model.Project{
		ID:        "p1",
		Title:     "Test",
		OwnerID:   ownerID,
		MemberIDs: memberIDs,
		Archived:  archived,
	}
}

func TestForName(t *testing.T) {
	t.Parallel()

	if got := ForName("member").Name(); got != "member" {
		t.Errorf("ForName(\"member\").Name() = %q, want %q", got, "member")
	}
	if got := ForName("owner").Name(); got != "owner" {
		t.Errorf("ForName(\"owner\").Name() = %q, want %q", got, "owner")
	}
	// Unknown values fall back to the strict default.
	if got := ForName("").Name(); got != "owner" {
		t.Errorf("ForName(\"\").Name() = %q, want %q", got, "owner")
	}
}

func TestAccessStrategies(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner", "member"}, false)

	tests := []struct {
		name     string
		access   Access
		callerID string
		want     bool
	}{
		{"owner-only allows owner", OwnerOnly{}, "owner", true},
		{"owner-only denies member", OwnerOnly{}, "member", false},
		{"owner-only denies stranger", OwnerOnly{}, "stranger", false},
		{"owner-or-member allows owner", OwnerOrMember{}, "owner", true},
		{"owner-or-member allows member", OwnerOrMember{}, "member", true},
		{"owner-or-member denies stranger", OwnerOrMember{}, "stranger", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.access.CanAccess(tt.callerID, p); got != tt.want {
				t.Errorf("CanAccess(%q) = %v, want %v", tt.callerID, got, tt.want)
			}
		})
	}
}

func TestOwnerAccessWithoutMembership(t *testing.T) {
	t.Parallel()

	// The owner keeps access under the member strategy even if the
	// member list somehow omits them.
	p := project("owner", []string{"other"}, false)
	if !(OwnerOrMember{}).CanAccess("owner", p) {
		t.Error("CanAccess(owner) = false, want true")
	}
}

func TestAuthenticated(t *testing.T) {
	t.Parallel()

	if err := Authenticated("u1"); err != nil {
		t.Errorf("Authenticated(u1) = %v, want nil", err)
	}
	err := Authenticated("")
	if KindOf(err) != KindUnauthenticated {
		t.Errorf("KindOf = %v, want KindUnauthenticated", KindOf(err))
	}
	if err.Error() != "Not authenticated" {
		t.Errorf("message = %q, want %q", err.Error(), "Not authenticated")
	}
}

func TestCanArchiveProject(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner", "member"}, false)
	if err := CanArchiveProject("owner", p); err != nil {
		t.Errorf("owner archive = %v, want nil", err)
	}

	err := CanArchiveProject("member", p)
	if KindOf(err) != KindNotAuthorized {
		t.Fatalf("KindOf = %v, want KindNotAuthorized", KindOf(err))
	}
	if err.Error() != "Not authorized - only owner can archive" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCanUnarchiveProject(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner"}, true)
	if err := CanUnarchiveProject("owner", p); err != nil {
		t.Errorf("owner unarchive = %v, want nil", err)
	}

	err := CanUnarchiveProject("member", p)
	if err == nil || err.Error() != "Not authorized - only owner can unarchive" {
		t.Errorf("member unarchive = %v", err)
	}
}

func TestCanDeleteProject(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner", "member"}, false)
	if err := CanDeleteProject("owner", p); err != nil {
		t.Errorf("owner delete = %v, want nil", err)
	}
	if KindOf(CanDeleteProject("member", p)) != KindNotAuthorized {
		t.Error("member delete should be denied")
	}
}

func TestCanWriteTaskArchivedGate(t *testing.T) {
	t.Parallel()

	archived := project("owner", []string{"owner"}, false)
	archived.Archived = true

	// The archived gate fires before the access check and even for
	// the owner.
	tests := []struct {
		action TaskAction
		want   string
	}{
		{TaskCreate, "Cannot create tasks in archived project"},
		{TaskUpdate, "Cannot update tasks in archived project"},
		{TaskDelete, "Cannot delete tasks from archived project"},
	}
	for _, tt := range tests {
		err := CanWriteTask(OwnerOnly{}, "owner", archived, tt.action)
		if KindOf(err) != KindInvalidState {
			t.Errorf("KindOf(action %d) = %v, want KindInvalidState", tt.action, KindOf(err))
		}
		if err.Error() != tt.want {
			t.Errorf("message = %q, want %q", err.Error(), tt.want)
		}
	}

	// A stranger hitting an archived project still gets the state
	// error, not a permission error.
	err := CanWriteTask(OwnerOnly{}, "stranger", archived, TaskUpdate)
	if KindOf(err) != KindInvalidState {
		t.Errorf("stranger on archived: KindOf = %v, want KindInvalidState", KindOf(err))
	}
}

func TestCanWriteTaskAccess(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner", "member"}, false)

	if err := CanWriteTask(OwnerOnly{}, "owner", p, TaskCreate); err != nil {
		t.Errorf("owner create = %v, want nil", err)
	}
	if KindOf(CanWriteTask(OwnerOnly{}, "member", p, TaskCreate)) != KindNotAuthorized {
		t.Error("member create under owner-only should be denied")
	}
	if err := CanWriteTask(OwnerOrMember{}, "member", p, TaskCreate); err != nil {
		t.Errorf("member create under owner-or-member = %v, want nil", err)
	}
}

func TestCanWriteInProjectIgnoresArchived(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner"}, true)
	if err := CanWriteInProject(OwnerOnly{}, "owner", p); err != nil {
		t.Errorf("tag/template write on archived project = %v, want nil", err)
	}
	if KindOf(CanWriteInProject(OwnerOnly{}, "stranger", p)) != KindNotAuthorized {
		t.Error("stranger write should be denied")
	}
}

func TestCanReadTemplate(t *testing.T) {
	t.Parallel()

	p := project("owner", []string{"owner", "member"}, false)
	private := &model.TaskTemplate{ID: "t1", CreatedBy: "member", IsPublic: false}
	public := &model.TaskTemplate{ID: "t2", CreatedBy: "member", IsPublic: true}

	if err := CanReadTemplate(OwnerOrMember{}, "member", private, p); err != nil {
		t.Errorf("creator reading own private template = %v, want nil", err)
	}

	// Private templates are hidden even from the project owner.
	err := CanReadTemplate(OwnerOrMember{}, "owner", private, p)
	if KindOf(err) != KindNotAuthorized {
		t.Fatalf("KindOf = %v, want KindNotAuthorized", KindOf(err))
	}
	if err.Error() != "Not authorized - this template is private" {
		t.Errorf("message = %q", err.Error())
	}

	if err := CanReadTemplate(OwnerOrMember{}, "owner", public, p); err != nil {
		t.Errorf("owner reading public template = %v, want nil", err)
	}

	// No project access means no template access, public or not.
	if KindOf(CanReadTemplate(OwnerOrMember{}, "stranger", public, p)) != KindNotAuthorized {
		t.Error("stranger reading public template should be denied")
	}
}

func TestTemplateMutationIsCreatorOnly(t *testing.T) {
	t.Parallel()

	tpl := &model.TaskTemplate{ID: "t1", CreatedBy: "member"}

	if err := CanUpdateTemplate("member", tpl); err != nil {
		t.Errorf("creator update = %v, want nil", err)
	}

	err := CanUpdateTemplate("owner", tpl)
	if err == nil || err.Error() != "Not authorized - only template creator can update it" {
		t.Errorf("owner update = %v", err)
	}

	err = CanDeleteTemplate("owner", tpl)
	if err == nil || err.Error() != "Not authorized - only template creator can delete it" {
		t.Errorf("owner delete = %v", err)
	}
	if err := CanDeleteTemplate("member", tpl); err != nil {
		t.Errorf("creator delete = %v, want nil", err)
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	if KindOf(nil) != KindUnknown {
		t.Error("KindOf(nil) should be KindUnknown")
	}
	if KindOf(ErrConflict("dup")) != KindConflict {
		t.Error("KindOf(ErrConflict) should be KindConflict")
	}
	if KindOf(ErrInvalidCredentials()) != KindInvalidCredentials {
		t.Error("KindOf(ErrInvalidCredentials) should be KindInvalidCredentials")
	}
}
