package services

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blacknews/blacknews-be/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func testArticle(title string) NewArticleInput {
	return NewArticleInput{
		Title:    title,
		Excerpt:  "An excerpt long enough to pass validation",
		Content:  "Some article content worth reading.",
		Category: "politics",
	}
}

// words builds deterministic content with exactly n words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}
