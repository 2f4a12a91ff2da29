package model

import "time"

// Project groups tasks, tags and templates under a single owner.
// The owner is immutable after creation and is always present in
// Members. Archived projects reject task mutations but stay readable.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	MemberIDs   []string  `json:"member_ids"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember returns true if the user is in the member set.
// The owner counts as a member.
func (p *Project) HasMember(userID string) bool {
	if userID == p.OwnerID {
		return true
	}
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// NewProject creates a project owned by ownerID, who starts as the
// sole member.
func NewProject(id, ownerID, title, description string) Project {
	now := time.Now().UTC()
	return Project{
		ID:          id,
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		MemberIDs:   []string{ownerID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
