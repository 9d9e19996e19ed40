package blog

import (
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

// ResolveCommenter maps a comment submission to a durable user record,
// keyed on email only. An unknown email creates a guest account (role
// USER, no credential) exactly once; a known email returns the existing
// user unchanged, even when the submitted name differs.
//
// Creation is race-safe: the unique constraint on email is the arbiter,
// and a losing creator re-reads the winner's row once before giving up.
func (s *Service) ResolveCommenter(name, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, validationErr("email", "email is required")
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var namePtr *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		namePtr = &trimmed
	}

	created, err := s.users.Create(email, namePtr, models.RoleUser, nil)
	if err == nil {
		return created, nil
	}
	if !store.IsUniqueViolation(err) {
		return nil, fmt.Errorf("create guest user: %w", err)
	}

	// Lost the creation race: another request inserted this email between
	// our lookup and insert. Exactly one row exists; read it.
	winner, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, fmt.Errorf("guest user for %s vanished after unique violation", email)
	}
	return winner, nil
}
