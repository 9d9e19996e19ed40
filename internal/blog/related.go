package blog

import (
	"sort"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

const (
	defaultRelatedLimit = 3
	maxRelatedLimit     = 20
)

// RelatedPosts proposes up to limit published posts related to the source
// post, ranked by shared classification and recency. A candidate sharing
// neither the category nor any tag is excluded entirely; the result is
// never padded with unrelated posts.
func (s *Service) RelatedPosts(postID uuid.UUID, categoryID *uuid.UUID, tagIDs []uuid.UUID, limit int) ([]models.Post, error) {
	if limit < 1 {
		limit = defaultRelatedLimit
	}
	if limit > maxRelatedLimit {
		limit = maxRelatedLimit
	}

	candidates, err := s.posts.RelatedCandidates(postID, categoryID, tagIDs)
	if err != nil {
		return nil, err
	}

	ranked := rankRelated(categoryID, tagIDs, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// sharedTagCount returns the size of the intersection between the source
// tag set and the candidate's tags.
func sharedTagCount(tagIDs []uuid.UUID, candidate *models.Post) int {
	count := 0
	for _, id := range tagIDs {
		if candidate.HasTag(id) {
			count++
		}
	}
	return count
}

// rankRelated orders candidates in two tiers: posts sharing the source's
// category come first, newest first among themselves; the remaining
// tag-sharing posts follow, ordered by shared-tag count and then creation
// time descending. The sort is stable so equal candidates keep the
// store's newest-first order.
func rankRelated(categoryID *uuid.UUID, tagIDs []uuid.UUID, candidates []models.Post) []models.Post {
	type scored struct {
		post          models.Post
		categoryMatch bool
		sharedTags    int
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		sc := scored{
			post:       c,
			sharedTags: sharedTagCount(tagIDs, &c),
		}
		if categoryID != nil && c.CategoryID != nil && *c.CategoryID == *categoryID {
			sc.categoryMatch = true
		}
		// The store query already filters, but guard against a candidate
		// that matches neither signal.
		if !sc.categoryMatch && sc.sharedTags == 0 {
			continue
		}
		ranked = append(ranked, sc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.categoryMatch != b.categoryMatch {
			return a.categoryMatch
		}
		if a.categoryMatch {
			// Inside the category tier recency alone decides.
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		if a.sharedTags != b.sharedTags {
			return a.sharedTags > b.sharedTags
		}
		return a.post.CreatedAt.After(b.post.CreatedAt)
	})

	result := make([]models.Post, 0, len(ranked))
	for _, sc := range ranked {
		result = append(result, sc.post)
	}
	return result
}
