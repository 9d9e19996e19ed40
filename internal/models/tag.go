package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels posts in a many-to-many relationship. Deleting a tag removes
// its post associations but never deletes posts.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int       `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
}
