package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a single entry in a post's discussion thread. A nil ParentID
// marks a thread root. Comments are immutable after creation; deleting a
// comment orphans its replies rather than cascading, so the reply content
// stays visible with a dangling parent reference.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Author    *Profile   `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsRoot reports whether the comment starts a thread.
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}
