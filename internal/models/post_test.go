package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 1},
		{"under a minute", strings.Repeat("word ", 199), 1},
		{"exactly one minute", strings.Repeat("word ", 200), 1},
		{"just over a minute", strings.Repeat("word ", 201), 2},
		{"five minutes", strings.Repeat("word ", 1000), 5},
		{"irregular whitespace", "one\n\ntwo\tthree    four", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Content: tt.content}
			if got := p.ReadingTime(); got != tt.want {
				t.Errorf("ReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTagIDsAndHasTag(t *testing.T) {
	t1 := uuid.New()
	t2 := uuid.New()
	other := uuid.New()

	p := Post{Tags: []Tag{{ID: t1}, {ID: t2}}}

	ids := p.TagIDs()
	if len(ids) != 2 || ids[0] != t1 || ids[1] != t2 {
		t.Errorf("TagIDs() = %v", ids)
	}
	if !p.HasTag(t1) || !p.HasTag(t2) {
		t.Error("expected HasTag true for attached tags")
	}
	if p.HasTag(other) {
		t.Error("expected HasTag false for unattached tag")
	}
}

func TestIdentityElevated(t *testing.T) {
	var anon *Identity
	if anon.Elevated() {
		t.Error("nil identity must not be elevated")
	}
	if (&Identity{Role: RoleUser}).Elevated() {
		t.Error("USER role must not be elevated")
	}
	if !(&Identity{Role: RoleAdmin}).Elevated() {
		t.Error("ADMIN role must be elevated")
	}
}

func TestUserHelpers(t *testing.T) {
	hash := "$2a$10$abcdefghijklmnopqrstuv"
	admin := User{Role: RoleAdmin, PasswordHash: &hash}
	guest := User{Role: RoleUser}

	if !admin.IsAdmin() || admin.IsGuest() {
		t.Error("admin with credential misclassified")
	}
	if guest.IsAdmin() || !guest.IsGuest() {
		t.Error("guest misclassified")
	}
}
