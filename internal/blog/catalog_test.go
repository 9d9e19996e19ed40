package blog

import (
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func elevatedCaller() *models.Identity {
	return &models.Identity{ID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin}
}

func regularCaller() *models.Identity {
	return &models.Identity{ID: uuid.New(), Email: "reader@example.com", Role: models.RoleUser}
}

func TestNormalizeQueryDefaults(t *testing.T) {
	filter, page, pageSize := normalizeQuery(nil, ListQuery{})

	if page != 1 {
		t.Errorf("page: got %d, want 1", page)
	}
	if pageSize != defaultPageSize {
		t.Errorf("pageSize: got %d, want %d", pageSize, defaultPageSize)
	}
	if filter.Offset != 0 {
		t.Errorf("offset: got %d, want 0", filter.Offset)
	}
	if filter.Published == nil || !*filter.Published {
		t.Error("anonymous caller must be forced to published-only")
	}
}

func TestNormalizeQueryOffset(t *testing.T) {
	filter, page, pageSize := normalizeQuery(nil, ListQuery{Page: 3, PageSize: 20})
	if page != 3 || pageSize != 20 {
		t.Fatalf("got page %d size %d", page, pageSize)
	}
	if filter.Offset != 40 {
		t.Errorf("offset: got %d, want 40", filter.Offset)
	}
	if filter.Limit != 20 {
		t.Errorf("limit: got %d, want 20", filter.Limit)
	}
}

func TestNormalizeQueryBounds(t *testing.T) {
	filter, page, pageSize := normalizeQuery(nil, ListQuery{Page: -4, PageSize: 10_000})
	if page != 1 {
		t.Errorf("negative page: got %d, want 1", page)
	}
	if pageSize != maxPageSize {
		t.Errorf("oversized pageSize: got %d, want %d", pageSize, maxPageSize)
	}
	if filter.Limit != maxPageSize {
		t.Errorf("limit: got %d, want %d", filter.Limit, maxPageSize)
	}
}

// A non-elevated caller is always forced to published = true no matter
// what the request asked for.
func TestNormalizeQueryVisibility(t *testing.T) {
	f := false

	tests := []struct {
		name      string
		caller    *models.Identity
		requested *bool
		want      *bool // nil means "no filter"
	}{
		{"anonymous requesting drafts", nil, &f, boolPtr(true)},
		{"anonymous requesting all", nil, nil, boolPtr(true)},
		{"regular user requesting drafts", regularCaller(), &f, boolPtr(true)},
		{"admin requesting drafts", elevatedCaller(), &f, boolPtr(false)},
		{"admin requesting all", elevatedCaller(), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, _, _ := normalizeQuery(tt.caller, ListQuery{Published: tt.requested})
			switch {
			case tt.want == nil && filter.Published != nil:
				t.Errorf("got published=%v, want no filter", *filter.Published)
			case tt.want != nil && filter.Published == nil:
				t.Errorf("got no filter, want published=%v", *tt.want)
			case tt.want != nil && *filter.Published != *tt.want:
				t.Errorf("got published=%v, want %v", *filter.Published, *tt.want)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestPageCount(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{101, 10, 11},
		{7, 3, 3},
	}

	for _, tt := range tests {
		if got := pageCount(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestValidatePostInput(t *testing.T) {
	valid := PostInput{Title: "Title", Slug: "My Slug!", Content: "body"}

	t.Run("normalizes slug", func(t *testing.T) {
		in := valid
		if err := validatePostInput(&in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.Slug != "my-slug" {
			t.Errorf("slug: got %q, want %q", in.Slug, "my-slug")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		cases := []struct {
			name  string
			in    PostInput
			field string
		}{
			{"empty title", PostInput{Slug: "s", Content: "c"}, "title"},
			{"empty content", PostInput{Title: "t", Slug: "s"}, "content"},
			{"empty slug", PostInput{Title: "t", Content: "c"}, "slug"},
			{"slug with no alphanumerics", PostInput{Title: "t", Slug: "!!!", Content: "c"}, "slug"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := tc.in
				err := validatePostInput(&in)
				if err == nil {
					t.Fatal("expected validation error")
				}
				de, ok := err.(*Error)
				if !ok || de.Kind != KindValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				if de.Field != tc.field {
					t.Errorf("field: got %q, want %q", de.Field, tc.field)
				}
			})
		}
	})
}
