// Package policy is the single authorization checkpoint for the API. Every
// mutation consults Allow with the acting identity instead of inlining its
// own role checks, so the rule table is testable in isolation and never
// touches storage.
package policy

import (
	"github.com/blacknews/blacknews-be/internal/auth"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionReadContent   Action = "content.read"
	ActionCreateArticle Action = "article.create"
	ActionDeleteArticle Action = "article.delete"
	ActionAddComment    Action = "comment.add"
	ActionEditComment   Action = "comment.edit"
	ActionDeleteComment Action = "comment.delete"
	ActionReadProfile   Action = "profile.read"
	ActionUpdateProfile Action = "profile.update"
	ActionDeleteAccount Action = "account.delete"
)

// Allow decides whether actor may perform action. ownerID identifies the
// owner of the target resource for ownership-gated actions and is ignored
// otherwise. A nil actor is anonymous.
func Allow(actor *auth.Actor, action Action, ownerID string) bool {
	switch action {
	case ActionReadContent:
		// Articles, comments, featured lists and search are public.
		return true

	case ActionCreateArticle, ActionDeleteArticle:
		return actor.IsAdmin()

	case ActionAddComment:
		return actor != nil

	case ActionEditComment:
		return actor != nil && actor.ID == ownerID

	case ActionDeleteComment:
		return actor != nil && (actor.ID == ownerID || actor.IsAdmin())

	case ActionReadProfile, ActionUpdateProfile, ActionDeleteAccount:
		// Self-service only; no operation acts on someone else's profile.
		return actor != nil && actor.ID == ownerID

	default:
		return false
	}
}
