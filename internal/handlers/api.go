// Package handlers implements the JSON API surface over the blog engine.
// Handlers stay thin: they decode requests, call the engine, and translate
// domain error kinds into HTTP status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

// errorBody is the JSON error envelope returned for every failure.
type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	} `json:"error"`
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError translates a domain error into the JSON error envelope.
// Unclassified errors are logged and reported as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var body errorBody

	var de *blog.Error
	if errors.As(err, &de) {
		body.Error.Kind = string(de.Kind)
		body.Error.Message = de.Message
		body.Error.Field = de.Field
		respondJSON(w, statusForKind(de.Kind), body)
		return
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	body.Error.Kind = "internal"
	body.Error.Message = "internal server error"
	respondJSON(w, http.StatusInternalServerError, body)
}

// statusForKind maps stable domain error kinds to HTTP status codes.
func statusForKind(kind blog.Kind) int {
	switch kind {
	case blog.KindValidation:
		return http.StatusBadRequest
	case blog.KindUnauthorized:
		return http.StatusUnauthorized
	case blog.KindForbidden:
		return http.StatusForbidden
	case blog.KindNotFound:
		return http.StatusNotFound
	case blog.KindDuplicateSlug:
		return http.StatusConflict
	case blog.KindInvalidParent:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &blog.Error{Kind: blog.KindValidation, Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

// postView augments a post with its derived reading time. List responses
// drop the body; detail responses keep it.
type postView struct {
	models.Post
	ReadingTime int `json:"reading_time"`
}

// newPostView builds the response shape for a post.
func newPostView(p models.Post, includeContent bool) postView {
	v := postView{Post: p, ReadingTime: p.ReadingTime()}
	if !includeContent {
		v.Post.Content = ""
	}
	return v
}

// newPostViews maps a post slice to list views without content bodies.
func newPostViews(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p, false))
	}
	return views
}
