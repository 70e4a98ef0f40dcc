package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	s := NewCommentService(db, users)

	author, err := users.Create(testUser("author@example.com"))
	require.NoError(t, err)

	comment, err := s.Create("article-1", author.ID, "Great reporting.")
	require.NoError(t, err)
	require.NotNil(t, comment.User)
	assert.Equal(t, author.ID, comment.User.ID)

	before := comment.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	updated, err := s.UpdateContent(comment.ID, "Great reporting, updated.")
	require.NoError(t, err)
	assert.Equal(t, "Great reporting, updated.", updated.Content)
	assert.True(t, updated.UpdatedAt.After(before))
	assert.Equal(t, comment.CreatedAt.Unix(), updated.CreatedAt.Unix())

	require.NoError(t, s.Delete(comment.ID))
	_, err = s.GetByID(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(comment.ID), ErrNotFound)
}

func TestCommentsSortNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	s := NewCommentService(db, users)

	author, err := users.Create(testUser("author@example.com"))
	require.NoError(t, err)

	first, err := s.Create("article-1", author.ID, "first")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Create("article-1", author.ID, "second")
	require.NoError(t, err)

	_, err = s.Create("article-2", author.ID, "elsewhere")
	require.NoError(t, err)

	comments, err := s.ListByArticle("article-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)
}

func TestCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	s := NewCommentService(db, NewUserService(db))

	_, err := s.Create("article-1", "u1", "  ")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "content", ve.Field)

	_, err = s.Create("", "u1", "hello")
	ve, ok = IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "articleId", ve.Field)
}

func TestOrphanedCommentSerializesNullUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserService(db)
	s := NewCommentService(db, users)

	author, err := users.Create(testUser("gone@example.com"))
	require.NoError(t, err)
	comment, err := s.Create("article-1", author.ID, "I was here")
	require.NoError(t, err)

	require.NoError(t, users.Delete(author.ID))

	got, err := s.GetByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.UserID, "orphaned reference remains")
	assert.Nil(t, got.User)
}
