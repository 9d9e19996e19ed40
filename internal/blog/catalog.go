package blog

import (
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery carries the listing request as received from the caller,
// before visibility rules are applied.
type ListQuery struct {
	Page         int
	PageSize     int
	CategorySlug string
	TagSlug      string
	// Published is tri-state: nil means "both", which only an elevated
	// caller may request. Non-elevated callers are always forced to
	// published-only regardless of what they ask for.
	Published *bool
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total       int `json:"total"`
	PageCount   int `json:"page_count"`
	CurrentPage int `json:"current_page"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

// normalizeQuery applies defaults, bounds, and the visibility rule for the
// given caller, producing the store-level filter.
func normalizeQuery(caller *models.Identity, q ListQuery) (store.PostFilter, int, int) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	published := q.Published
	if !caller.Elevated() {
		t := true
		published = &t
	}

	return store.PostFilter{
		CategorySlug: q.CategorySlug,
		TagSlug:      q.TagSlug,
		Published:    published,
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}, page, pageSize
}

// pageCount computes ceil(total/pageSize).
func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ListPosts returns a filtered, paginated page of posts ordered by
// creation time descending. Category and tag filters are exact slug
// matches and combine with AND semantics.
func (s *Service) ListPosts(caller *models.Identity, q ListQuery) (*PostPage, error) {
	filter, page, pageSize := normalizeQuery(caller, q)

	total, err := s.posts.Count(filter)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(filter)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return &PostPage{
		Posts: posts,
		Pagination: Pagination{
			Total:       total,
			PageCount:   pageCount(total, pageSize),
			CurrentPage: page,
		},
	}, nil
}

// GetPostBySlug returns the post with the given slug. An unpublished post
// is reported as not found unless the caller is elevated.
func (s *Service) GetPostBySlug(caller *models.Identity, postSlug string) (*models.Post, error) {
	p, err := s.posts.FindBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.Published && !caller.Elevated()) {
		return nil, notFoundErr("post")
	}
	return p, nil
}

// PostInput carries the fields for creating or updating a post.
type PostInput struct {
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Content       string      `json:"content"`
	Excerpt       *string     `json:"excerpt,omitempty"`
	FeaturedImage *string     `json:"featured_image,omitempty"`
	Published     bool        `json:"published"`
	CategoryID    *uuid.UUID  `json:"category_id,omitempty"`
	TagIDs        []uuid.UUID `json:"tag_ids"`
}

// validatePostInput checks required fields and normalizes the slug.
func validatePostInput(in *PostInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return validationErr("title", "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return validationErr("content", "content is required")
	}
	in.Slug = slug.Generate(in.Slug)
	if in.Slug == "" {
		return validationErr("slug", "slug is required")
	}
	return nil
}

// CreatePost creates a post owned by authorID. Tag ids are attached as
// given; an id that references no tag fails the create.
func (s *Service) CreatePost(authorID uuid.UUID, in PostInput) (*models.Post, error) {
	if err := validatePostInput(&in); err != nil {
		return nil, err
	}

	p := &models.Post{
		Slug:          in.Slug,
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Published:     in.Published,
		AuthorID:      authorID,
		CategoryID:    in.CategoryID,
	}

	created, err := s.posts.Create(p, in.TagIDs)
	if err != nil {
		return nil, mapPostStoreErr(err, in.Slug)
	}
	return created, nil
}

// UpdatePost modifies an existing post and replaces its tag associations.
func (s *Service) UpdatePost(id uuid.UUID, in PostInput) (*models.Post, error) {
	if err := validatePostInput(&in); err != nil {
		return nil, err
	}

	existing, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundErr("post")
	}

	existing.Slug = in.Slug
	existing.Title = in.Title
	existing.Content = in.Content
	existing.Excerpt = in.Excerpt
	existing.FeaturedImage = in.FeaturedImage
	existing.Published = in.Published
	existing.CategoryID = in.CategoryID

	updated, err := s.posts.Update(existing, in.TagIDs)
	if err != nil {
		return nil, mapPostStoreErr(err, in.Slug)
	}
	return updated, nil
}

// DeletePost removes a post and returns the removed record. Its comments
// and tag links go with it.
func (s *Service) DeletePost(id uuid.UUID) (*models.Post, error) {
	existing, err := s.posts.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundErr("post")
	}
	if err := s.posts.Delete(id); err != nil {
		return nil, err
	}
	return existing, nil
}

// mapPostStoreErr translates storage constraint violations on post writes
// into domain errors.
func mapPostStoreErr(err error, postSlug string) error {
	if store.IsUniqueViolation(err) {
		return duplicateSlugErr(postSlug)
	}
	if store.IsForeignKeyViolation(err) {
		return validationErr("tag_ids", "a referenced tag or category does not exist")
	}
	return err
}
