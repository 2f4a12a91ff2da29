// Package resolver implements the query and mutation operations of
// the tracker: store reads and writes guarded by the policy package,
// cascade deletes, and field population for API responses.
//
// Operations take the caller's user ID as an explicit argument and
// trust it; establishing that identity is the transport's job. Checks
// run against the freshly loaded parent project on every call, and
// check-then-act sequences are deliberately not wrapped in
// transactions (see DESIGN.md).
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/policy"
	"github.com/existflow/taskhub/internal/store"
)

// DefaultSessionTTL is how long a login remains valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Resolver executes tracker operations against a store under a
// configured access strategy.
type Resolver struct {
	store      store.Store
	access     policy.Access
	sessionTTL time.Duration
}

// New creates a resolver. A nil access strategy falls back to
// owner-only.
func New(st store.Store, access policy.Access) *Resolver {
	if access == nil {
		access = policy.OwnerOnly{}
	}
	return &Resolver{
		store:      st,
		access:     access,
		sessionTTL: DefaultSessionTTL,
	}
}

// SetSessionTTL overrides the session lifetime.
func (r *Resolver) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		r.sessionTTL = ttl
	}
}

// project loads a project, translating a missing row into the domain
// not-found error.
func (r *Resolver) project(ctx context.Context, id string) (*model.Project, error) {
	p, err := r.store.ProjectByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, policy.ErrNotFound("Project")
	}
	return p, err
}

// parseDueDate parses a due date from the wire. RFC 3339 timestamps
// and bare YYYY-MM-DD dates are accepted; the result is normalized to
// UTC, which is the only internal representation.
func parseDueDate(value string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, policy.ErrInvalidInput("Invalid due date: " + value)
}

// uniqueIDs copies an ID list dropping duplicates, preserving order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// removeID returns the ID list without the given ID, and whether
// anything was removed.
func removeID(ids []string, id string) ([]string, bool) {
	out := ids[:0:0]
	removed := false
	for _, v := range ids {
		if v == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out, removed
}
