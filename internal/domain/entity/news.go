package entity

import (
	"time"
)

// News is a user-authored post. Private posts are visible to their owner
// only; the visibility filter is applied at list time, not in storage.
type News struct {
	ID        string
	Title     string
	Content   string
	IsPrivate bool
	PhotoPath string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleTo reports whether the post may be shown to the given viewer.
// An empty viewerID means an anonymous reader.
func (n *News) VisibleTo(viewerID string) bool {
	if !n.IsPrivate {
		return true
	}
	return viewerID != "" && viewerID == n.UserID
}
