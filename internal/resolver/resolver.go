// Package resolver implements the typed query/mutation surface of the API.
// A request names one operation and its arguments; the resolver validates
// inputs, consults the authorization policy, invokes the stores and shapes a
// {data, errors} response. The acting identity is passed in explicitly and
// never kept in shared state.
package resolver

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/services"
)

// Request names a single operation and carries its arguments.
type Request struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables"`
}

// ResponseError is one entry of the response error list.
type ResponseError struct {
	Message string `json:"message"`
}

// Response is the operation envelope. Absence of Errors signals success even
// when the data field is null.
type Response struct {
	Data   map[string]any  `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// Resolver dispatches named operations against the content stores.
type Resolver struct {
	articles services.ArticleServiceProvider
	users    services.UserServiceProvider
	comments services.CommentServiceProvider
	profiles services.ProfileServiceProvider
	tokens   *auth.TokenManager
}

// New creates a Resolver over the given stores.
func New(
	articles services.ArticleServiceProvider,
	users services.UserServiceProvider,
	comments services.CommentServiceProvider,
	profiles services.ProfileServiceProvider,
	tokens *auth.TokenManager,
) *Resolver {
	return &Resolver{
		articles: articles,
		users:    users,
		comments: comments,
		profiles: profiles,
		tokens:   tokens,
	}
}

// Execute runs one operation for the given actor (nil = anonymous) and
// shapes the result envelope. Failures never escape as panics or transport
// errors; they become entries in the error list.
func (r *Resolver) Execute(actor *auth.Actor, req Request) Response {
	result, err := r.dispatch(actor, req)
	if err != nil {
		log.Warn().Err(err).Str("operation", req.Operation).Msg("Operation failed")
		return Response{
			Data:   map[string]any{req.Operation: nil},
			Errors: []ResponseError{{Message: userMessage(err)}},
		}
	}
	return Response{Data: map[string]any{req.Operation: result}}
}

func (r *Resolver) dispatch(actor *auth.Actor, req Request) (any, error) {
	switch req.Operation {
	// Queries
	case "articles":
		return r.queryArticles(req.Variables)
	case "article":
		return r.queryArticle(req.Variables)
	case "featuredArticles":
		return r.queryFeaturedArticles()
	case "comments":
		return r.queryComments(req.Variables)
	case "searchArticles":
		return r.querySearchArticles(req.Variables)
	case "me":
		return r.queryMe(actor)

	// Mutations
	case "register":
		return r.register(req.Variables)
	case "login":
		return r.login(req.Variables)
	case "createArticle":
		return r.createArticle(actor, req.Variables)
	case "addComment":
		return r.addComment(actor, req.Variables)
	case "updateComment":
		return r.updateComment(actor, req.Variables)
	case "deleteComment":
		return r.deleteComment(actor, req.Variables)
	case "updateProfile":
		return r.updateProfile(actor, req.Variables)
	case "changePassword":
		return r.changePassword(actor, req.Variables)
	case "updateAvatar":
		return r.updateAvatar(actor, req.Variables)
	case "deleteAccount":
		return r.deleteAccount(actor, req.Variables)

	default:
		return nil, validationErr(fmt.Sprintf("Unknown operation: %s", req.Operation))
	}
}

// KindOf exposes the failure classification of an operation error.
func KindOf(err error) Kind {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindInternal
}

// userMessage translates any error into the user-facing message without
// leaking storage detail.
func userMessage(err error) string {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr.Message
	}
	if ve, ok := services.IsValidation(err); ok {
		return ve.Message
	}
	return "Internal server error"
}

// fromStore classifies a store error, mapping not-found to the given message
// and passing validation messages through verbatim.
func fromStore(err error, notFoundMsg string) error {
	if errors.Is(err, services.ErrNotFound) {
		return notFoundErr(notFoundMsg)
	}
	if ve, ok := services.IsValidation(err); ok {
		return validationErr(ve.Message)
	}
	return err
}

func decodeVars(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return validationErr("Invalid variables: " + err.Error())
	}
	return nil
}
