package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
)

// Admin groups the write-side handlers for posts and taxonomy. Routes
// using this group sit behind RequireAdmin.
type Admin struct {
	svc       *blog.Service
	postCache *cache.PostCache
}

// NewAdmin creates the admin handler group. postCache may be nil when
// Valkey is not configured.
func NewAdmin(svc *blog.Service, postCache *cache.PostCache) *Admin {
	return &Admin{svc: svc, postCache: postCache}
}

// parseID reads a UUID route parameter, reporting a validation error for
// malformed values.
func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &blog.Error{Kind: blog.KindValidation, Field: "id", Message: "invalid id"}
	}
	return id, nil
}

// invalidatePost drops a cached post response after a write.
func (h *Admin) invalidatePost(r *http.Request, slug string) {
	if h.postCache != nil && slug != "" {
		h.postCache.Invalidate(r.Context(), slug)
	}
}

// CreatePost serves POST /api/posts. The authenticated admin becomes the
// post's author.
func (h *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromCtx(r.Context())

	var in blog.PostInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.svc.CreatePost(caller.ID, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.invalidatePost(r, post.Slug)
	respondJSON(w, http.StatusCreated, newPostView(*post, true))
}

// UpdatePost serves PUT /api/posts/{id}.
func (h *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var in blog.PostInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, r, err)
		return
	}

	post, err := h.svc.UpdatePost(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.invalidatePost(r, post.Slug)
	respondJSON(w, http.StatusOK, newPostView(*post, true))
}

// DeletePost serves DELETE /api/posts/{id}.
func (h *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	deleted, err := h.svc.DeletePost(id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.invalidatePost(r, deleted.Slug)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateCategory serves POST /api/categories.
func (h *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	category, err := h.svc.CreateCategory(name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// UpdateCategory serves PUT /api/categories/{id}. Omitted fields keep
// their current value; a changed name re-derives the slug.
func (h *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.svc.UpdateCategory(id, req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

// DeleteCategory serves DELETE /api/categories/{id}. Referencing posts
// are detached, never deleted.
func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.svc.DeleteCategory(id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type tagRequest struct {
	Name string `json:"name"`
}

// CreateTag serves POST /api/tags.
func (h *Admin) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	tag, err := h.svc.CreateTag(req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, tag)
}

// UpdateTag serves PUT /api/tags/{id}.
func (h *Admin) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req tagRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	tag, err := h.svc.UpdateTag(id, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tag)
}

// DeleteTag serves DELETE /api/tags/{id}. Tagged posts lose the label but
// are never deleted.
func (h *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.svc.DeleteTag(id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
