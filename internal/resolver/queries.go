package resolver

import (
	"encoding/json"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/models"
)

func (r *Resolver) queryArticles(raw json.RawMessage) (any, error) {
	var args struct {
		Limit      int    `json:"limit"`
		Skip       int    `json:"skip"`
		Category   string `json:"category"`
		IsFeatured *bool  `json:"isFeatured"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	if args.Limit <= 0 || args.Limit > 100 {
		args.Limit = 12
	}
	if args.Skip < 0 {
		args.Skip = 0
	}
	return r.articles.List(models.ArticleFilter{
		Category:   args.Category,
		IsFeatured: args.IsFeatured,
		Limit:      args.Limit,
		Skip:       args.Skip,
	})
}

func (r *Resolver) queryArticle(raw json.RawMessage) (any, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	article, err := r.articles.GetByID(args.ID)
	if err != nil {
		return nil, fromStore(err, "Article not found")
	}
	return article, nil
}

func (r *Resolver) queryFeaturedArticles() (any, error) {
	featured := true
	return r.articles.List(models.ArticleFilter{IsFeatured: &featured, Limit: 5})
}

func (r *Resolver) queryComments(raw json.RawMessage) (any, error) {
	var args struct {
		ArticleID string `json:"articleId"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	return r.comments.ListByArticle(args.ArticleID)
}

func (r *Resolver) querySearchArticles(raw json.RawMessage) (any, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := decodeVars(raw, &args); err != nil {
		return nil, err
	}
	return r.articles.Search(args.Query)
}

func (r *Resolver) queryMe(actor *auth.Actor) (any, error) {
	if actor == nil {
		return nil, authnErr("Not authenticated")
	}
	user, err := r.users.GetByID(actor.ID)
	if err != nil {
		return nil, fromStore(err, "User not found")
	}
	return user, nil
}
