package services

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blacknews/blacknews-be/internal/models"
)

// DefaultFeaturedImage is used when an article is created without one.
const DefaultFeaturedImage = "https://images.unsplash.com/photo-1588681664899-f142ff2dc9b1"

// DefaultAuthor is the byline used when none is supplied.
const DefaultAuthor = "Admin User"

const wordsPerMinute = 200

// NewArticleInput carries the fields accepted when creating an article.
type NewArticleInput struct {
	Title         string
	Excerpt       string
	Content       string
	Category      string
	Author        string
	FeaturedImage string
	Tags          []string
	IsFeatured    bool
	ReadTime      int // 0 means derive from the content word count
}

// ArticleServiceProvider defines the interface for article services.
type ArticleServiceProvider interface {
	List(filter models.ArticleFilter) ([]models.Article, error)
	GetByID(id string) (models.Article, error)
	Search(query string) ([]models.Article, error)
	Create(input NewArticleInput) (models.Article, error)
	Delete(id string) (bool, error)
	Count() (int, error)
}

// ArticleService provides the persistent article collection.
type ArticleService struct {
	db *sql.DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *sql.DB) *ArticleService {
	return &ArticleService{db: db}
}

// ReadTimeMinutes derives the editorial read time estimate from content:
// ceil(words / 200), never below one minute.
func ReadTimeMinutes(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

const articleColumns = `id, title, excerpt, content, category, author, featured_image,
	tags_json, views, read_time, is_featured, is_published, published_at, created_at, updated_at`

func scanArticle(row interface{ Scan(dest ...any) error }) (models.Article, error) {
	var a models.Article
	var tagsJSON string
	err := row.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Content, &a.Category, &a.Author,
		&a.FeaturedImage, &tagsJSON, &a.Views, &a.ReadTime, &a.IsFeatured, &a.IsPublished,
		&a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Article{}, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &a.Tags); err != nil {
		a.Tags = nil
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}

// List returns published articles, newest first, honoring the filter's
// category, featured flag and offset/limit window.
func (s *ArticleService) List(filter models.ArticleFilter) ([]models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE is_published = 1"
	args := []any{}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.IsFeatured != nil {
		query += " AND is_featured = ?"
		args = append(args, *filter.IsFeatured)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 12
	}
	query += " ORDER BY published_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Skip)

	return s.queryArticles(query, args...)
}

// GetByID retrieves a single article and atomically bumps its view counter.
// The counter only ever increases and only through this path.
func (s *ArticleService) GetByID(id string) (models.Article, error) {
	res, err := s.db.Exec("UPDATE articles SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return models.Article{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Article{}, ErrNotFound
	}

	row := s.db.QueryRow("SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return models.Article{}, ErrNotFound
	}
	return a, err
}

// Search performs a case-insensitive substring match over title, content and
// tags of published articles, capped at 20 results. An empty query matches
// nothing rather than everything.
func (s *ArticleService) Search(query string) ([]models.Article, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []models.Article{}, nil
	}
	like := "%" + strings.ToLower(q) + "%"
	return s.queryArticles(
		"SELECT "+articleColumns+` FROM articles
		WHERE is_published = 1
		  AND (lower(title) LIKE ? OR lower(content) LIKE ? OR lower(tags_json) LIKE ?)
		ORDER BY published_at DESC LIMIT 20`,
		like, like, like)
}

// Create validates the input, applies defaults and derived fields, and
// inserts the article.
func (s *ArticleService) Create(input NewArticleInput) (models.Article, error) {
	title := strings.TrimSpace(input.Title)
	excerpt := strings.TrimSpace(input.Excerpt)

	if len(title) < 5 {
		return models.Article{}, invalid("title", "title must be at least 5 characters")
	}
	if len(excerpt) < 20 {
		return models.Article{}, invalid("excerpt", "excerpt must be at least 20 characters")
	}
	if len(excerpt) > 200 {
		return models.Article{}, invalid("excerpt", "excerpt must be at most 200 characters")
	}
	if strings.TrimSpace(input.Content) == "" {
		return models.Article{}, invalid("content", "content is required")
	}
	if !models.ValidCategory(input.Category) {
		return models.Article{}, invalid("category", "unknown category "+input.Category)
	}

	readTime := input.ReadTime
	if readTime <= 0 {
		readTime = ReadTimeMinutes(input.Content)
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = DefaultAuthor
	}
	featuredImage := input.FeaturedImage
	if featuredImage == "" {
		featuredImage = DefaultFeaturedImage
	}
	tags := make([]string, 0, len(input.Tags))
	for _, t := range input.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return models.Article{}, err
	}

	now := time.Now().UTC()
	article := models.Article{
		ID:            uuid.New().String(),
		Title:         title,
		Excerpt:       excerpt,
		Content:       input.Content,
		Category:      input.Category,
		Author:        author,
		FeaturedImage: featuredImage,
		Tags:          tags,
		Views:         0,
		ReadTime:      readTime,
		IsFeatured:    input.IsFeatured,
		IsPublished:   true,
		PublishedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err = s.db.Exec(`INSERT INTO articles
		(id, title, excerpt, content, category, author, featured_image, tags_json,
		 views, read_time, is_featured, is_published, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID, article.Title, article.Excerpt, article.Content, article.Category,
		article.Author, article.FeaturedImage, string(tagsJSON), article.Views,
		article.ReadTime, article.IsFeatured, article.IsPublished,
		article.PublishedAt, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// Delete removes an article and reports whether a record existed.
func (s *ArticleService) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of articles, drafts included.
func (s *ArticleService) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n)
	return n, err
}

func (s *ArticleService) queryArticles(query string, args ...any) ([]models.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
