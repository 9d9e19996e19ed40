package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations, including the
// post↔tag association table.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostFilter narrows List and Count results. A nil Published means both
// drafts and published posts; visibility rules are the caller's concern.
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	Published    *bool
	Limit        int
	Offset       int
}

const postColumns = `p.id, p.slug, p.title, p.content, p.excerpt, p.featured_image,
       p.published, p.author_id, p.category_id, p.created_at, p.updated_at, p.published_at,
       u.id, u.name, u.email, u.image, u.role,
       c.id, c.name, c.slug, c.description`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

// scanPost scans one joined post row, including the author profile and the
// optional category.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var author models.Profile
	var catID *uuid.UUID
	var catName, catSlug, catDesc *string

	err := scanner.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Published, &p.AuthorID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
		&author.ID, &author.Name, &author.Email, &author.Image, &author.Role,
		&catID, &catName, &catSlug, &catDesc,
	)
	if err != nil {
		return nil, err
	}

	p.Author = &author
	if catID != nil {
		p.Category = &models.Category{ID: *catID, Name: *catName, Slug: *catSlug, Description: catDesc}
	}
	return &p, nil
}

// filterClauses builds WHERE conditions and arguments for a PostFilter.
// Placeholders continue from the given start index.
func filterClauses(f PostFilter, start int) ([]string, []any) {
	var conds []string
	var args []any
	n := start

	if f.Published != nil {
		conds = append(conds, "p.published = $"+strconv.Itoa(n))
		args = append(args, *f.Published)
		n++
	}
	if f.CategorySlug != "" {
		conds = append(conds, "c.slug = $"+strconv.Itoa(n))
		args = append(args, f.CategorySlug)
		n++
	}
	if f.TagSlug != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $`+strconv.Itoa(n)+`)`)
		args = append(args, f.TagSlug)
		n++
	}
	return conds, args
}

// List returns posts matching the filter, newest first, with author,
// category, and tags attached.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	query := `SELECT ` + postColumns + postJoins
	conds, args := filterClauses(f, 1)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.fillTags(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of posts matching the filter, ignoring Limit
// and Offset.
func (s *PostStore) Count(f PostFilter) (int, error) {
	query := `SELECT COUNT(*)` + postJoins
	conds, args := filterClauses(f, 1)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// FindBySlug retrieves a post by its slug regardless of publication state.
// Returns nil if not found. Visibility is enforced by the catalog layer.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postJoins+` WHERE p.slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := s.fillTagsOne(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postJoins+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.fillTagsOne(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Exists reports whether a post with the given id is present.
func (s *PostStore) Exists(id uuid.UUID) (bool, error) {
	var found bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("post exists: %w", err)
	}
	return found, nil
}

// Create inserts a new post and attaches the given tag ids in a single
// transaction. The raw error is returned so the caller can distinguish
// slug collisions and dangling tag ids via IsUniqueViolation and
// IsForeignKeyViolation.
func (s *PostStore) Create(p *models.Post, tagIDs []uuid.UUID) (*models.Post, error) {
	if p.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRow(`
		INSERT INTO posts (slug, title, content, excerpt, featured_image,
		                   published, author_id, category_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Slug, p.Title, p.Content, p.Excerpt, p.FeaturedImage,
		p.Published, p.AuthorID, p.CategoryID, p.PublishedAt,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err := insertPostTags(tx, id, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an existing post and replaces its tag associations.
func (s *PostStore) Update(p *models.Post, tagIDs []uuid.UUID) (*models.Post, error) {
	if p.Published && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE posts SET
			slug = $1, title = $2, content = $3, excerpt = $4, featured_image = $5,
			published = $6, category_id = $7, published_at = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Slug, p.Title, p.Content, p.Excerpt, p.FeaturedImage,
		p.Published, p.CategoryID, p.PublishedAt, p.ID,
	)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM post_tags WHERE post_id = $1`, p.ID); err != nil {
		return nil, fmt.Errorf("clear post tags: %w", err)
	}
	if err := insertPostTags(tx, p.ID, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return s.FindByID(p.ID)
}

// Delete removes a post by ID. Comments and tag associations go with it
// via ON DELETE CASCADE.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// DetachCategory nulls out the category reference on every post pointing
// at the given category. Part of the category delete cascade.
func (s *PostStore) DetachCategory(categoryID uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE posts SET category_id = NULL WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("detach category: %w", err)
	}
	return nil
}

// RelatedCandidates returns published posts other than the source that
// share the given category or at least one of the given tags, with tags
// attached. Ranking happens in the blog layer.
func (s *PostStore) RelatedCandidates(postID uuid.UUID, categoryID *uuid.UUID, tagIDs []uuid.UUID) ([]models.Post, error) {
	args := []any{postID}
	var match []string

	if categoryID != nil {
		args = append(args, *categoryID)
		match = append(match, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if len(tagIDs) > 0 {
		placeholders := make([]string, 0, len(tagIDs))
		for _, id := range tagIDs {
			args = append(args, id)
			placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
		}
		match = append(match, `EXISTS (
			SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id
			AND pt.tag_id IN (`+strings.Join(placeholders, ", ")+`))`)
	}
	if len(match) == 0 {
		return nil, nil
	}

	query := `SELECT ` + postColumns + postJoins + `
		WHERE p.published AND p.id <> $1 AND (` + strings.Join(match, " OR ") + `)
		ORDER BY p.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("related candidates: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan related candidate: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.fillTags(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// insertPostTags attaches tag ids to a post inside a transaction.
func insertPostTags(tx *sql.Tx, postID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// fillTags loads the tags for a batch of posts with a single query.
func (s *PostStore) fillTags(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	args := make([]any, 0, len(posts))
	placeholders := make([]string, 0, len(posts))
	index := make(map[uuid.UUID]int, len(posts))
	for i := range posts {
		posts[i].Tags = []models.Tag{}
		args = append(args, posts[i].ID)
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
		index[posts[i].ID] = i
	}

	rows, err := s.db.Query(`
		SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY t.name
	`, args...)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID uuid.UUID
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		if i, ok := index[postID]; ok {
			posts[i].Tags = append(posts[i].Tags, t)
		}
	}
	return rows.Err()
}

// fillTagsOne loads tags for a single post.
func (s *PostStore) fillTagsOne(p *models.Post) error {
	batch := []models.Post{*p}
	if err := s.fillTags(batch); err != nil {
		return err
	}
	p.Tags = batch[0].Tags
	return nil
}
