package resolver

// Kind classifies an operation failure. Handlers may use it to pick an HTTP
// status; the query envelope itself only carries the message.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindInternal       Kind = "internal"
)

// Error is a structured operation failure with a stable, user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationErr(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func authnErr(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func authzErr(message string) error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func notFoundErr(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}
