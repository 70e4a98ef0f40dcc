package resolver

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/models"
	"github.com/blacknews/blacknews-be/internal/policy"
	"github.com/blacknews/blacknews-be/internal/services"
)

// AuthPayload is returned by register and login.
type AuthPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (r *Resolver) register(raw json.RawMessage) (any, error) {
	var args struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	if len(args.Password) < 6 {
		return nil, validationErr("Password must be at least 6 characters")
	}

	// Reject before hashing; the unique index still backs this up under races.
	if _, err := r.users.GetByEmail(args.Email); err == nil {
		return nil, validationErr("User already exists with this email")
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}

	user, err := r.users.Create(services.NewUserInput{
		FirstName:    args.FirstName,
		LastName:     args.LastName,
		Email:        args.Email,
		PasswordHash: hash,
		Avatar:       GenerateAvatarURL(args.FirstName + " " + args.LastName),
		Role:         models.RoleReader,
	})
	if err != nil {
		return nil, fromStore(err, "User not found")
	}

	if _, err := r.profiles.EnsureForUser(user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create user profile")
	}

	token, err := r.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return AuthPayload{Token: token, User: user}, nil
}

func (r *Resolver) login(raw json.RawMessage) (any, error) {
	var args struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	// Unknown email and wrong password produce the same message so callers
	// cannot enumerate accounts.
	user, err := r.users.GetByEmail(args.Email)
	if err != nil {
		return nil, authnErr("Invalid credentials")
	}
	if !auth.CheckPassword(args.Password, user.PasswordHash) {
		return nil, authnErr("Invalid credentials")
	}

	if err := r.users.RecordLogin(user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record login")
	}

	token, err := r.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return AuthPayload{Token: token, User: user}, nil
}

func (r *Resolver) createArticle(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if !policy.Allow(actor, policy.ActionCreateArticle, "") {
		return nil, authzErr("Admin access required")
	}

	var args struct {
		Title         string   `json:"title"`
		Excerpt       string   `json:"excerpt"`
		Content       string   `json:"content"`
		Category      string   `json:"category"`
		Author        string   `json:"author"`
		FeaturedImage string   `json:"featuredImage"`
		Tags          []string `json:"tags"`
		IsFeatured    bool     `json:"isFeatured"`
		ReadTime      int      `json:"readTime"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	article, err := r.articles.Create(services.NewArticleInput{
		Title:         args.Title,
		Excerpt:       args.Excerpt,
		Content:       args.Content,
		Category:      args.Category,
		Author:        args.Author,
		FeaturedImage: args.FeaturedImage,
		Tags:          args.Tags,
		IsFeatured:    args.IsFeatured,
		ReadTime:      args.ReadTime,
	})
	if err != nil {
		return nil, fromStore(err, "Article not found")
	}
	return article, nil
}

func (r *Resolver) addComment(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if !policy.Allow(actor, policy.ActionAddComment, "") {
		return nil, authnErr("Please login to comment")
	}

	var args struct {
		ArticleID string `json:"articleId"`
		Content   string `json:"content"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	comment, err := r.comments.Create(args.ArticleID, actor.ID, args.Content)
	if err != nil {
		return nil, fromStore(err, "Comment not found")
	}
	return comment, nil
}

func (r *Resolver) updateComment(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil {
		return nil, authnErr("Please login to update comment")
	}

	var args struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	comment, err := r.comments.GetByID(args.ID)
	if err != nil {
		return nil, fromStore(err, "Comment not found")
	}
	if !policy.Allow(actor, policy.ActionEditComment, comment.UserID) {
		return nil, authzErr("You can only edit your own comments")
	}

	updated, err := r.comments.UpdateContent(args.ID, args.Content)
	if err != nil {
		return nil, fromStore(err, "Comment not found")
	}
	return updated, nil
}

func (r *Resolver) deleteComment(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil {
		return nil, authnErr("Please login to delete comment")
	}

	var args struct {
		ID string `json:"id"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	comment, err := r.comments.GetByID(args.ID)
	if err != nil {
		return nil, fromStore(err, "Comment not found")
	}
	if !policy.Allow(actor, policy.ActionDeleteComment, comment.UserID) {
		return nil, authzErr("You can only delete your own comments")
	}

	if err := r.comments.Delete(args.ID); err != nil {
		return nil, fromStore(err, "Comment not found")
	}
	return comment, nil
}

func (r *Resolver) updateProfile(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil || !policy.Allow(actor, policy.ActionUpdateProfile, actorID(actor)) {
		return nil, authnErr("Not authenticated")
	}

	var args struct {
		Input models.UserUpdate `json:"input"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	user, err := r.users.Update(actor.ID, args.Input)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	if err := r.profiles.Touch(actor.ID); err != nil {
		log.Error().Err(err).Str("user_id", actor.ID).Msg("Failed to touch user profile")
	}
	return user, nil
}

func (r *Resolver) changePassword(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil || !policy.Allow(actor, policy.ActionUpdateProfile, actorID(actor)) {
		return nil, authnErr("Not authenticated")
	}

	var args struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	if len(args.NewPassword) < 6 {
		return nil, validationErr("New password must be at least 6 characters")
	}

	user, err := r.users.GetByID(actor.ID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	if !auth.CheckPassword(args.CurrentPassword, user.PasswordHash) {
		return nil, authnErr("Current password is incorrect")
	}

	hash, err := auth.HashPassword(args.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := r.users.SetPasswordHash(actor.ID, hash); err != nil {
		return nil, fromStore(err, "User not found")
	}
	return true, nil
}

func (r *Resolver) updateAvatar(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil || !policy.Allow(actor, policy.ActionUpdateProfile, actorID(actor)) {
		return nil, authnErr("Not authenticated")
	}

	var args struct {
		Avatar *string `json:"avatar"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(actor.ID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}

	// Null resets back to the generated identicon.
	avatar := GenerateAvatarURL(user.FullName())
	if args.Avatar != nil && *args.Avatar != "" {
		avatar = *args.Avatar
	}
	if err := r.users.SetAvatar(actor.ID, avatar); err != nil {
		return nil, fromStore(err, "User not found")
	}
	user.Avatar = avatar
	return user, nil
}

func (r *Resolver) deleteAccount(actor *auth.Actor, raw json.RawMessage) (any, error) {
	if actor == nil || !policy.Allow(actor, policy.ActionDeleteAccount, actorID(actor)) {
		return nil, authnErr("Not authenticated")
	}

	var args struct {
		Password string `json:"password"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(actor.ID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	if !auth.CheckPassword(args.Password, user.PasswordHash) {
		return nil, authnErr("Password is incorrect")
	}

	// Comments are deliberately left in place; their userId becomes an
	// orphaned reference and serializes with a null user.
	if err := r.profiles.DeleteForUser(actor.ID); err != nil {
		log.Error().Err(err).Str("user_id", actor.ID).Msg("Failed to delete user profile")
	}
	if err := r.users.Delete(actor.ID); err != nil {
		return nil, fromStore(err, "User not found")
	}
	return true, nil
}

func actorID(actor *auth.Actor) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
