package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestCommentStoreCreateAndList(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testAuthor(t, db, "test-comment-create@store-test.local")
	post := testPost(t, db, author.ID, "test-comment-create")

	first, err := s.Create(post.ID, author.ID, "first comment", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if first.Author == nil || first.Author.ID != author.ID {
		t.Error("expected author profile attached")
	}
	if !first.IsRoot() {
		t.Error("comment without parent must be a root")
	}

	reply, err := s.Create(post.ID, author.ID, "a reply", &first.ID)
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != first.ID {
		t.Error("expected parent reference on reply")
	}

	comments, err := s.ListByPost(post.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	// Newest first.
	if comments[0].ID != reply.ID {
		t.Error("expected the reply first in newest-first order")
	}
}

func TestCommentStoreFindByID(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)

	missing, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for random UUID")
	}
}

// Deleting a comment leaves its replies in place with a dangling parent
// reference.
func TestCommentStoreDeleteOrphansReplies(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	author := testAuthor(t, db, "test-comment-orphan@store-test.local")
	post := testPost(t, db, author.ID, "test-comment-orphan")

	parent, err := s.Create(post.ID, author.ID, "parent", nil)
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}
	reply, err := s.Create(post.ID, author.ID, "reply", &parent.ID)
	if err != nil {
		t.Fatalf("Create reply: %v", err)
	}

	if err := s.Delete(parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	gone, _ := s.FindByID(parent.ID)
	if gone != nil {
		t.Error("expected parent removed")
	}

	orphan, err := s.FindByID(reply.ID)
	if err != nil {
		t.Fatalf("FindByID reply: %v", err)
	}
	if orphan == nil {
		t.Fatal("reply must survive parent deletion")
	}
	if orphan.ParentID == nil || *orphan.ParentID != parent.ID {
		t.Error("reply must keep its dangling parent reference")
	}
}
