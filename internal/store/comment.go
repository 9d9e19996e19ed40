package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore manages comments in the database. Comments form threads via
// a nullable self-reference; the store only ever deals in the flat list.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `c.id, c.post_id, c.author_id, c.content, c.parent_id, c.created_at,
       u.id, u.name, u.email, u.image, u.role`

const commentJoins = `
	FROM comments c
	JOIN users u ON u.id = c.author_id`

// scanComment scans one joined comment row with its author profile.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var cm models.Comment
	var author models.Profile
	err := scanner.Scan(
		&cm.ID, &cm.PostID, &cm.AuthorID, &cm.Content, &cm.ParentID, &cm.CreatedAt,
		&author.ID, &author.Name, &author.Email, &author.Image, &author.Role,
	)
	if err != nil {
		return nil, err
	}
	cm.Author = &author
	return &cm, nil
}

// ListByPost returns every comment on the post, newest first, each with
// its author profile. Thread assembly from ParentID links is left to the
// presentation layer.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+commentJoins+`
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		cm, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *cm)
	}
	return comments, rows.Err()
}

// FindByID retrieves a comment with its author profile. Returns nil if not found.
func (s *CommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRow(`SELECT `+commentColumns+commentJoins+` WHERE c.id = $1`, id)
	cm, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return cm, nil
}

// Create inserts a new comment and returns it with the author profile attached.
func (s *CommentStore) Create(postID, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, author_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, postID, authorID, content, parentID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes exactly the target comment. Replies keep their dangling
// parent reference and stay visible.
func (s *CommentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
