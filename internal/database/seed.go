package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed creates the initial admin account from externally supplied
// credentials. When either credential is empty the step is skipped: there
// is deliberately no built-in default admin. Safe to run on every start;
// an existing account with the configured email is left untouched.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		slog.Info("admin bootstrap credentials not configured, skipping seed")
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", adminEmail).Scan(&count); err != nil {
		return fmt.Errorf("seed check admin: %w", err)
	}
	if count > 0 {
		slog.Info("admin account already exists, skipping seed", "email", adminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, name, role, password_hash)
		VALUES ($1, $2, 'ADMIN', $3)
	`, adminEmail, "Admin", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("admin account created", "email", adminEmail)
	return nil
}
