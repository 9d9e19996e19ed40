package blog

import (
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// deriveSlug validates a taxonomy name and computes its slug. Slug is a
// computed field: callers never set it independently.
func deriveSlug(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", validationErr("name", "name is required")
	}
	derived := slug.Generate(name)
	if derived == "" {
		return "", "", validationErr("name", "name must contain at least one alphanumeric character")
	}
	return name, derived, nil
}

// ListCategories returns all categories with post counts, name ascending.
func (s *Service) ListCategories() ([]models.Category, error) {
	cats, err := s.categories.List()
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []models.Category{}
	}
	return cats, nil
}

// CreateCategory creates a category with a slug derived from its name.
func (s *Service) CreateCategory(name string, description *string) (*models.Category, error) {
	name, derived, err := deriveSlug(name)
	if err != nil {
		return nil, err
	}

	created, err := s.categories.Create(name, derived, description)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, duplicateSlugErr(derived)
		}
		return nil, err
	}
	return created, nil
}

// UpdateCategory renames a category and/or replaces its description. A
// name change re-derives the slug.
func (s *Service) UpdateCategory(id uuid.UUID, name *string, description *string) (*models.Category, error) {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundErr("category")
	}

	if name != nil {
		newName, derived, err := deriveSlug(*name)
		if err != nil {
			return nil, err
		}
		existing.Name = newName
		existing.Slug = derived
	}
	if description != nil {
		existing.Description = description
	}

	if err := s.categories.Update(existing); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, duplicateSlugErr(existing.Slug)
		}
		return nil, err
	}
	return existing, nil
}

// DeleteCategory detaches the category from every referencing post, then
// removes it. Posts are never deleted.
func (s *Service) DeleteCategory(id uuid.UUID) error {
	existing, err := s.categories.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFoundErr("category")
	}
	return s.categories.Delete(id)
}

// ListTags returns all tags with association counts, name ascending.
func (s *Service) ListTags() ([]models.Tag, error) {
	tags, err := s.tags.List()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// CreateTag creates a tag with a slug derived from its name.
func (s *Service) CreateTag(name string) (*models.Tag, error) {
	name, derived, err := deriveSlug(name)
	if err != nil {
		return nil, err
	}

	created, err := s.tags.Create(name, derived)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, duplicateSlugErr(derived)
		}
		return nil, err
	}
	return created, nil
}

// UpdateTag renames a tag, re-deriving its slug.
func (s *Service) UpdateTag(id uuid.UUID, name string) (*models.Tag, error) {
	existing, err := s.tags.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundErr("tag")
	}

	newName, derived, err := deriveSlug(name)
	if err != nil {
		return nil, err
	}
	existing.Name = newName
	existing.Slug = derived

	if err := s.tags.Update(existing); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, duplicateSlugErr(derived)
		}
		return nil, err
	}
	return existing, nil
}

// DeleteTag removes the tag's post associations, then the tag itself.
// Posts are never deleted.
func (s *Service) DeleteTag(id uuid.UUID) error {
	existing, err := s.tags.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFoundErr("tag")
	}
	return s.tags.Delete(id)
}
