package blog

import (
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// AddComment appends a comment to a post's thread. A non-nil parentID must
// reference an existing comment on the same post. The returned comment
// carries its author's public profile.
func (s *Service) AddComment(postID, authorID uuid.UUID, content string, parentID *uuid.UUID) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content", "content is required")
	}

	exists, err := s.posts.Exists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFoundErr("post")
	}

	if parentID != nil {
		parent, err := s.comments.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, invalidParentErr("parent comment does not exist")
		}
		if parent.PostID != postID {
			return nil, invalidParentErr("parent comment belongs to a different post")
		}
	}

	return s.comments.Create(postID, authorID, content, parentID)
}

// ListComments returns the post's comments as a flat list, newest first,
// each carrying its parent reference. Assembling a reply tree is the
// presentation layer's concern.
func (s *Service) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// DeleteComment removes exactly the target comment. Only the comment's
// author (matched by email) or an elevated caller may delete it; replies
// are orphaned, not cascaded, so the rest of the conversation survives.
func (s *Service) DeleteComment(commentID uuid.UUID, caller *models.Identity) error {
	if caller == nil {
		return unauthorizedErr("authentication required")
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return notFoundErr("comment")
	}

	if !caller.Elevated() && !strings.EqualFold(caller.Email, comment.Author.Email) {
		return forbiddenErr("only the comment author or an admin may delete a comment")
	}

	return s.comments.Delete(commentID)
}
