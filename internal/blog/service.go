package blog

import (
	"inkwell/internal/store"
)

// Service is the engine facade used by the HTTP layer. All operations are
// request-scoped and stateless between requests; concurrent callers share
// nothing but the backing store.
type Service struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	users      *store.UserStore
	comments   *store.CommentStore
}

// NewService wires the engine to its stores.
func NewService(posts *store.PostStore, categories *store.CategoryStore, tags *store.TagStore, users *store.UserStore, comments *store.CommentStore) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		tags:       tags,
		users:      users,
		comments:   comments,
	}
}
