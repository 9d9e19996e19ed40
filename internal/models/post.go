package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// wordsPerMinute is the reading speed used to derive reading time.
const wordsPerMinute = 200

// Post represents a blog or documentation post. Visibility is controlled
// by the Published flag: drafts are only visible to elevated callers.
type Post struct {
	ID            uuid.UUID  `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Content       string     `json:"content,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	Published     bool       `json:"published"`
	AuthorID      uuid.UUID  `json:"author_id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Author        *Profile   `json:"author,omitempty"`
	Category      *Category  `json:"category,omitempty"`
	Tags          []Tag      `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// TagIDs returns the ids of the post's attached tags.
func (p *Post) TagIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// HasTag reports whether the post carries the given tag.
func (p *Post) HasTag(tagID uuid.UUID) bool {
	for _, t := range p.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// ReadingTime returns the estimated reading time of the post in whole
// minutes, rounding up. Word count splits on runs of whitespace.
func (p *Post) ReadingTime() int {
	words := len(strings.Fields(p.Content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
