// Package apperror defines the client-facing error kinds of the API and
// renders them into the uniform JSON envelope.
package apperror

import (
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation           Kind = "validation"
	KindParse                Kind = "parse_error"
	KindNotAuthenticated     Kind = "not_authenticated"
	KindAuthenticationFailed Kind = "authentication_failed"
	KindPermissionDenied     Kind = "permission_denied"
	KindNotFound             Kind = "not_found"
	KindUnsupportedMedia     Kind = "unsupported_media_type"
	KindThrottled            Kind = "throttled"
	KindClient               Kind = "client_error"
)

// AuthRealm is sent in the WWW-Authenticate header of every 401 response.
const AuthRealm = `Bearer realm="api"`

// FieldErrors maps a request field name to its error detail. Values may be a
// string, a list of strings or a nested FieldErrors.
type FieldErrors map[string]any

// Error is an API error with an HTTP status and a detail that is flattened
// into the response envelope.
type Error struct {
	Kind       Kind
	Status     int
	Detail     any
	Code       string
	AuthHeader string
	RetryAfter int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, Flatten(e.Detail))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Envelope is the JSON body of every error response.
type Envelope struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Envelope flattens the detail and chooses between the single-message and
// the field-errors shape.
func (e *Error) Envelope() Envelope {
	switch flat := Flatten(e.Detail).(type) {
	case map[string]any:
		return Envelope{Message: "Validation error", Errors: flat, Code: e.Code}
	case string:
		return Envelope{Message: flat, Code: e.Code}
	default:
		return Envelope{Message: fmt.Sprint(flat), Code: e.Code}
	}
}

func NotFound(resource string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("No %s matches the given query.", resource),
	}
}

func PermissionDenied() *Error {
	return &Error{
		Kind:   KindPermissionDenied,
		Status: http.StatusForbidden,
		Detail: "You do not have permission to perform this action.",
	}
}

func NotAuthenticated() *Error {
	return &Error{
		Kind:       KindNotAuthenticated,
		Status:     http.StatusUnauthorized,
		Detail:     "Authentication credentials were not provided.",
		AuthHeader: AuthRealm,
	}
}

func AuthenticationFailed(detail, code string, cause error) *Error {
	return &Error{
		Kind:       KindAuthenticationFailed,
		Status:     http.StatusUnauthorized,
		Detail:     detail,
		Code:       code,
		AuthHeader: AuthRealm,
		Err:        cause,
	}
}

// Validation wraps field-level or request-level validation failures. detail
// is usually FieldErrors; a plain string renders as a single message.
func Validation(detail any) *Error {
	return &Error{
		Kind:   KindValidation,
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}

func ParseError(cause error) *Error {
	return &Error{
		Kind:   KindParse,
		Status: http.StatusBadRequest,
		Detail: fmt.Sprintf("JSON parse error - %v", cause),
		Err:    cause,
	}
}

func UnsupportedMediaType(contentType string) *Error {
	return &Error{
		Kind:   KindUnsupportedMedia,
		Status: http.StatusUnsupportedMediaType,
		Detail: fmt.Sprintf("Unsupported media type %q in request.", contentType),
	}
}

func Throttled(waitSeconds int) *Error {
	return &Error{
		Kind:       KindThrottled,
		Status:     http.StatusTooManyRequests,
		Detail:     fmt.Sprintf("Request was throttled. Expected available in %d seconds.", waitSeconds),
		RetryAfter: waitSeconds,
	}
}
