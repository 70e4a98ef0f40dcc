package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blacknews/blacknews-be/internal/models"
)

// CommentServiceProvider defines the interface for comment services.
type CommentServiceProvider interface {
	ListByArticle(articleID string) ([]models.Comment, error)
	GetByID(id string) (models.Comment, error)
	Create(articleID, userID, content string) (models.Comment, error)
	UpdateContent(id, content string) (models.Comment, error)
	Delete(id string) error
	Count() (int, error)
}

// CommentService provides the persistent comment collection. It resolves
// each comment's author from the user store at read time; comments whose
// author account was deleted keep their userId and serialize a null user.
type CommentService struct {
	db    *sql.DB
	users UserServiceProvider
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB, users UserServiceProvider) *CommentService {
	return &CommentService{db: db, users: users}
}

const commentColumns = "id, article_id, user_id, content, created_at, updated_at"

func scanComment(row interface{ Scan(dest ...any) error }) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListByArticle returns an article's comments, newest first, with authors
// attached.
func (s *CommentService) ListByArticle(articleID string) ([]models.Comment, error) {
	rows, err := s.db.Query(
		"SELECT "+commentColumns+" FROM comments WHERE article_id = ? ORDER BY created_at DESC",
		articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		s.attachUser(&c)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// GetByID retrieves a single comment.
func (s *CommentService) GetByID(id string) (models.Comment, error) {
	row := s.db.QueryRow("SELECT "+commentColumns+" FROM comments WHERE id = ?", id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return models.Comment{}, ErrNotFound
	}
	if err != nil {
		return models.Comment{}, err
	}
	s.attachUser(&c)
	return c, nil
}

// Create inserts a new comment. The referenced article is not required to
// exist; no cascade is enforced between the collections.
func (s *CommentService) Create(articleID, userID, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, invalid("content", "content is required")
	}
	if articleID == "" {
		return models.Comment{}, invalid("articleId", "articleId is required")
	}

	now := time.Now().UTC()
	comment := models.Comment{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		"INSERT INTO comments (id, article_id, user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		comment.ID, comment.ArticleID, comment.UserID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	s.attachUser(&comment)
	return comment, nil
}

// UpdateContent replaces a comment's content and refreshes updatedAt.
func (s *CommentService) UpdateContent(id, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, invalid("content", "content is required")
	}
	res, err := s.db.Exec("UPDATE comments SET content = ?, updated_at = ? WHERE id = ?",
		content, time.Now().UTC(), id)
	if err != nil {
		return models.Comment{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Comment{}, ErrNotFound
	}
	return s.GetByID(id)
}

// Delete removes a comment.
func (s *CommentService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of comments.
func (s *CommentService) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&n)
	return n, err
}

func (s *CommentService) attachUser(c *models.Comment) {
	if user, err := s.users.GetByID(c.UserID); err == nil {
		c.User = &user
	}
}
