package resolver

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/database"
	"github.com/blacknews/blacknews-be/internal/models"
	"github.com/blacknews/blacknews-be/internal/services"
)

type testEnv struct {
	resolver *Resolver
	articles *services.ArticleService
	users    *services.UserService
	comments *services.CommentService
	profiles *services.ProfileService
	tokens   *auth.TokenManager
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	articles := services.NewArticleService(db)
	users := services.NewUserService(db)
	comments := services.NewCommentService(db, users)
	profiles := services.NewProfileService(db)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &testEnv{
		resolver: New(articles, users, comments, profiles, tokens),
		articles: articles,
		users:    users,
		comments: comments,
		profiles: profiles,
		tokens:   tokens,
	}
}

func vars(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

// run executes an operation and requires it to succeed.
func (e *testEnv) run(t *testing.T, actor *auth.Actor, op string, variables any) any {
	t.Helper()
	resp := e.resolver.Execute(actor, Request{Operation: op, Variables: vars(t, variables)})
	require.Empty(t, resp.Errors, "operation %s failed: %+v", op, resp.Errors)
	return resp.Data[op]
}

// fail executes an operation and returns its single error message.
func (e *testEnv) fail(t *testing.T, actor *auth.Actor, op string, variables any) string {
	t.Helper()
	resp := e.resolver.Execute(actor, Request{Operation: op, Variables: vars(t, variables)})
	require.Len(t, resp.Errors, 1, "expected %s to fail", op)
	assert.Nil(t, resp.Data[op])
	return resp.Errors[0].Message
}

func (e *testEnv) register(t *testing.T, email string) AuthPayload {
	t.Helper()
	payload := e.run(t, nil, "register", map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     email,
		"password":  "secret123",
	})
	return payload.(AuthPayload)
}

func actorFor(u models.User) *auth.Actor {
	return &auth.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (e *testEnv) admin(t *testing.T) *auth.Actor {
	t.Helper()
	hash, err := auth.HashPassword("adminpass")
	require.NoError(t, err)
	user, err := e.users.Create(services.NewUserInput{
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	require.NoError(t, err)
	return actorFor(user)
}

func (e *testEnv) seedArticle(t *testing.T, title string) models.Article {
	t.Helper()
	article, err := e.articles.Create(services.NewArticleInput{
		Title:    title,
		Excerpt:  "An excerpt long enough to pass validation",
		Content:  "Plenty of words about current events.",
		Category: "politics",
	})
	require.NoError(t, err)
	return article
}

func TestRegisterIssuesTokenAndProfile(t *testing.T) {
	e := setup(t)
	payload := e.register(t, "jane@example.com")

	assert.Equal(t, models.RoleReader, payload.User.Role)
	assert.Contains(t, payload.User.Avatar, "ui-avatars.com")
	assert.Contains(t, payload.User.Avatar, "Jane+Doe")

	claims, err := e.tokens.Parse(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, payload.User.ID, claims.UserID)

	// The password hash never reaches the wire.
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	_, err = e.profiles.GetByUserID(payload.User.ID)
	assert.NoError(t, err, "registration creates the profile row")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	e := setup(t)
	e.register(t, "jane@example.com")

	msg := e.fail(t, nil, "register", map[string]any{
		"firstName": "Other",
		"lastName":  "Jane",
		"email":     "JANE@example.com",
		"password":  "secret123",
	})
	assert.Equal(t, "User already exists with this email", msg)

	n, err := e.users.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	e := setup(t)
	e.register(t, "jane@example.com")

	wrongPassword := e.fail(t, nil, "login", map[string]any{
		"email": "jane@example.com", "password": "wrong",
	})
	unknownEmail := e.fail(t, nil, "login", map[string]any{
		"email": "nobody@example.com", "password": "secret123",
	})
	assert.Equal(t, "Invalid credentials", wrongPassword)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	e := setup(t)
	registered := e.register(t, "jane@example.com")

	payload := e.run(t, nil, "login", map[string]any{
		"email": "jane@example.com", "password": "secret123",
	}).(AuthPayload)
	assert.Equal(t, registered.User.ID, payload.User.ID)
	assert.NotEmpty(t, payload.Token)

	user, err := e.users.GetByID(payload.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestMeRequiresActor(t *testing.T) {
	e := setup(t)
	assert.Equal(t, "Not authenticated", e.fail(t, nil, "me", nil))

	payload := e.register(t, "jane@example.com")
	me := e.run(t, actorFor(payload.User), "me", nil).(models.User)
	assert.Equal(t, payload.User.ID, me.ID)
}

func TestArticleFetchIncrementsViews(t *testing.T) {
	e := setup(t)
	seeded := e.seedArticle(t, "A story worth reading twice")

	first := e.run(t, nil, "article", map[string]any{"id": seeded.ID}).(models.Article)
	second := e.run(t, nil, "article", map[string]any{"id": seeded.ID}).(models.Article)
	assert.Equal(t, 1, first.Views)
	assert.Greater(t, second.Views, first.Views)

	assert.Equal(t, "Article not found",
		e.fail(t, nil, "article", map[string]any{"id": "missing"}))
}

func TestCreateArticleRequiresAdmin(t *testing.T) {
	e := setup(t)
	reader := e.register(t, "reader@example.com")

	input := map[string]any{
		"title":    "A big exclusive report",
		"excerpt":  "An excerpt long enough to pass validation",
		"content":  "Many words in this report.",
		"category": "politics",
	}

	assert.Equal(t, "Admin access required", e.fail(t, nil, "createArticle", input))
	assert.Equal(t, "Admin access required", e.fail(t, actorFor(reader.User), "createArticle", input))

	n, err := e.articles.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n, "denied mutation must not write")

	article := e.run(t, e.admin(t), "createArticle", input).(models.Article)
	assert.Equal(t, 1, article.ReadTime)
	assert.True(t, article.IsPublished)
}

func TestFeaturedArticlesReturnsNewestFive(t *testing.T) {
	e := setup(t)
	admin := e.admin(t)
	for i := 0; i < 7; i++ {
		e.run(t, admin, "createArticle", map[string]any{
			"title":      "Featured coverage item",
			"excerpt":    "An excerpt long enough to pass validation",
			"content":    "Words of featured coverage.",
			"category":   "culture",
			"isFeatured": true,
		})
	}
	e.seedArticle(t, "Not featured at all")

	featured := e.run(t, nil, "featuredArticles", nil).([]models.Article)
	require.Len(t, featured, 5)
	for _, a := range featured {
		assert.True(t, a.IsFeatured)
	}
}

func TestSearchArticlesOperation(t *testing.T) {
	e := setup(t)
	e.seedArticle(t, "Justice reform explained")
	e.seedArticle(t, "Sports roundup weekly")

	empty := e.run(t, nil, "searchArticles", map[string]any{"query": ""}).([]models.Article)
	assert.Empty(t, empty)

	results := e.run(t, nil, "searchArticles", map[string]any{"query": "justice"}).([]models.Article)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Title, "Justice")
}

func TestCommentOwnershipFlow(t *testing.T) {
	e := setup(t)
	article := e.seedArticle(t, "An article people discuss")

	userA := actorFor(e.register(t, "a@example.com").User)
	userB := actorFor(e.register(t, "b@example.com").User)
	admin := e.admin(t)

	// Anonymous cannot comment.
	assert.Equal(t, "Please login to comment", e.fail(t, nil, "addComment", map[string]any{
		"articleId": article.ID, "content": "anon",
	}))

	comment := e.run(t, userA, "addComment", map[string]any{
		"articleId": article.ID, "content": "First!",
	}).(models.Comment)
	require.NotNil(t, comment.User)
	assert.Equal(t, userA.ID, comment.User.ID)

	// Owner edits; updatedAt moves forward.
	time.Sleep(10 * time.Millisecond)
	updated := e.run(t, userA, "updateComment", map[string]any{
		"id": comment.ID, "content": "First! (edited)",
	}).(models.Comment)
	assert.Equal(t, "First! (edited)", updated.Content)
	assert.True(t, updated.UpdatedAt.After(comment.UpdatedAt))

	// Non-owner, non-admin cannot edit.
	assert.Equal(t, "You can only edit your own comments", e.fail(t, userB, "updateComment", map[string]any{
		"id": comment.ID, "content": "hijack",
	}))

	// Non-owner, non-admin cannot delete either.
	assert.Equal(t, "You can only delete your own comments", e.fail(t, userB, "deleteComment", map[string]any{
		"id": comment.ID,
	}))

	// Admin deletes regardless of ownership.
	deleted := e.run(t, admin, "deleteComment", map[string]any{"id": comment.ID}).(models.Comment)
	assert.Equal(t, comment.ID, deleted.ID)

	assert.Equal(t, "Comment not found", e.fail(t, userA, "updateComment", map[string]any{
		"id": comment.ID, "content": "too late",
	}))
}

func TestUpdateProfileIsPartial(t *testing.T) {
	e := setup(t)
	actor := actorFor(e.register(t, "jane@example.com").User)

	updated := e.run(t, actor, "updateProfile", map[string]any{
		"input": map[string]any{"firstName": "Janet"},
	}).(models.User)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)

	assert.Equal(t, "Not authenticated", e.fail(t, nil, "updateProfile", map[string]any{
		"input": map[string]any{"firstName": "Nobody"},
	}))
}

func TestChangePassword(t *testing.T) {
	e := setup(t)
	actor := actorFor(e.register(t, "jane@example.com").User)

	assert.Equal(t, "Current password is incorrect", e.fail(t, actor, "changePassword", map[string]any{
		"currentPassword": "wrong", "newPassword": "newsecret",
	}))
	assert.Equal(t, "New password must be at least 6 characters", e.fail(t, actor, "changePassword", map[string]any{
		"currentPassword": "secret123", "newPassword": "tiny",
	}))

	result := e.run(t, actor, "changePassword", map[string]any{
		"currentPassword": "secret123", "newPassword": "newsecret",
	})
	assert.Equal(t, true, result)

	// Old password no longer works, new one does.
	assert.Equal(t, "Invalid credentials", e.fail(t, nil, "login", map[string]any{
		"email": "jane@example.com", "password": "secret123",
	}))
	e.run(t, nil, "login", map[string]any{
		"email": "jane@example.com", "password": "newsecret",
	})
}

func TestUpdateAvatarNullResetsToGenerated(t *testing.T) {
	e := setup(t)
	actor := actorFor(e.register(t, "jane@example.com").User)

	custom := e.run(t, actor, "updateAvatar", map[string]any{
		"avatar": "https://example.com/me.png",
	}).(models.User)
	assert.Equal(t, "https://example.com/me.png", custom.Avatar)

	reset := e.run(t, actor, "updateAvatar", map[string]any{"avatar": nil}).(models.User)
	assert.Contains(t, reset.Avatar, "ui-avatars.com")
}

func TestDeleteAccountLeavesCommentsOrphaned(t *testing.T) {
	e := setup(t)
	article := e.seedArticle(t, "An article people discuss")
	actor := actorFor(e.register(t, "jane@example.com").User)

	comment := e.run(t, actor, "addComment", map[string]any{
		"articleId": article.ID, "content": "I was here",
	}).(models.Comment)

	assert.Equal(t, "Password is incorrect", e.fail(t, actor, "deleteAccount", map[string]any{
		"password": "wrong",
	}))

	result := e.run(t, actor, "deleteAccount", map[string]any{"password": "secret123"})
	assert.Equal(t, true, result)

	_, err := e.users.GetByID(actor.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = e.profiles.GetByUserID(actor.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The comment survives with an orphaned reference and a null author.
	orphan, err := e.comments.GetByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, orphan.UserID)
	assert.Nil(t, orphan.User)
}

func TestUnknownOperation(t *testing.T) {
	e := setup(t)
	msg := e.fail(t, nil, "frobnicate", nil)
	assert.Equal(t, "Unknown operation: frobnicate", msg)
}

func TestShortRegistrationPasswordIsRejected(t *testing.T) {
	e := setup(t)
	msg := e.fail(t, nil, "register", map[string]any{
		"firstName": "Jane", "lastName": "Doe",
		"email": "jane@example.com", "password": "tiny",
	})
	assert.Equal(t, "Password must be at least 6 characters", msg)
}
