package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
)

// Public groups the read-side and engagement handlers: listings, post
// detail, related posts, taxonomy listings, and the comment thread.
// Published post detail responses are cached in Valkey for anonymous
// readers; elevated callers always bypass the cache since they may see
// drafts.
type Public struct {
	svc       *blog.Service
	postCache *cache.PostCache
}

// NewPublic creates the public handler group. postCache may be nil when
// Valkey is not configured.
func NewPublic(svc *blog.Service, postCache *cache.PostCache) *Public {
	return &Public{svc: svc, postCache: postCache}
}

// ListPosts serves GET /api/posts with paging and slug filters.
func (h *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	query := blog.ListQuery{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: q.Get("category"),
		TagSlug:      q.Get("tag"),
		Published:    parsePublished(q.Get("published")),
	}

	result, err := h.svc.ListPosts(caller, query)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Posts      []postView      `json:"posts"`
		Pagination blog.Pagination `json:"pagination"`
	}{
		Posts:      newPostViews(result.Posts),
		Pagination: result.Pagination,
	})
}

// parsePublished interprets the published query parameter. Absent means
// the published-only default; "all" drops the filter, which only takes
// effect for elevated callers.
func parsePublished(raw string) *bool {
	switch raw {
	case "all":
		return nil
	case "false":
		f := false
		return &f
	default:
		t := true
		return &t
	}
}

// GetPost serves GET /api/posts/{slug}. Pass content=false to omit the body.
func (h *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	postSlug := chi.URLParam(r, "slug")
	includeContent := r.URL.Query().Get("content") != "false"

	// Cache only serves the anonymous full view of published posts.
	cacheable := caller == nil && includeContent
	if cacheable && h.postCache != nil {
		if payload, ok := h.postCache.Get(r.Context(), postSlug); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(payload)
			return
		}
	}

	post, err := h.svc.GetPostBySlug(caller, postSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	view := newPostView(*post, includeContent)
	if cacheable && h.postCache != nil && post.Published {
		if payload, err := json.Marshal(view); err == nil {
			h.postCache.Set(r.Context(), postSlug, payload)
		}
	}

	respondJSON(w, http.StatusOK, view)
}

// RelatedPosts serves GET /api/posts/{slug}/related?limit=N.
func (h *Public) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	postSlug := chi.URLParam(r, "slug")

	post, err := h.svc.GetPostBySlug(caller, postSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	related, err := h.svc.RelatedPosts(post.ID, post.CategoryID, post.TagIDs(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Posts []postView `json:"posts"`
	}{Posts: newPostViews(related)})
}

// ListCategories serves GET /api/categories.
func (h *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListCategories()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Categories []models.Category `json:"categories"`
	}{Categories: cats})
}

// ListTags serves GET /api/tags.
func (h *Public) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags()
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Tags []models.Tag `json:"tags"`
	}{Tags: tags})
}

// ListComments serves GET /api/posts/{slug}/comments: the flat comment
// list with parent references, newest roots first. The reply tree is the
// client's to assemble.
func (h *Public) ListComments(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	postSlug := chi.URLParam(r, "slug")

	post, err := h.svc.GetPostBySlug(caller, postSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	comments, err := h.svc.ListComments(post.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Comments []models.Comment `json:"comments"`
	}{Comments: comments})
}

type addCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
	// Guest identity fields, ignored for authenticated callers.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// AddComment serves POST /api/posts/{slug}/comments for both
// authenticated and guest callers. An authenticated caller comments as
// themselves; a guest submission is resolved to a durable user record by
// email, created on first contact.
func (h *Public) AddComment(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())
	postSlug := chi.URLParam(r, "slug")

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.svc.GetPostBySlug(caller, postSlug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var authorID uuid.UUID
	if caller != nil {
		authorID = caller.ID
	} else {
		author, err := h.svc.ResolveCommenter(req.Name, req.Email)
		if err != nil {
			respondError(w, r, err)
			return
		}
		authorID = author.ID
	}

	comment, err := h.svc.AddComment(post.ID, authorID, req.Content, req.ParentID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// DeleteComment serves DELETE /api/comments/{id}. Allowed for the
// comment's author or an elevated caller; replies stay put.
func (h *Public) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, &blog.Error{Kind: blog.KindValidation, Field: "id", Message: "invalid comment id"})
		return
	}

	if err := h.svc.DeleteComment(id, caller); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
