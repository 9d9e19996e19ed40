package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies posts. A post references at most one category;
// deleting a category detaches its posts but never deletes them.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	PostCount   int       `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
