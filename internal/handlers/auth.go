package handlers

import (
	"log/slog"
	"net/http"

	"inkwell/internal/blog"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// Auth is the minimal session boundary: it exchanges credentials for a
// session cookie carrying the resolved identity. Everything downstream
// consumes only that identity.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates the auth handler group.
func NewAuth(users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session cookie. Guest accounts
// have no credential and can never log in.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondError(w, r, &blog.Error{Kind: blog.KindUnauthorized, Message: "invalid email or password"})
		return
	}

	identity := &models.Identity{ID: user.ID, Email: user.Email, Role: user.Role}
	if _, err := h.sessions.Create(r.Context(), w, identity); err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("user logged in", "email", user.Email)
	respondJSON(w, http.StatusOK, identity)
}

// Logout destroys the current session, if any.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
