package authz

import (
	"errors"
	"fmt"
)

// Kind classifies authorization failures for API error mapping.
type Kind string

const (
	// KindUnauthenticated marks requests with no principal. Resolution treats this
	// as a valid Guest outcome, not a failure; the kind exists for callers that
	// reject anonymous access outright.
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	// KindNoRoleAssigned marks authenticated principals without a role.
	KindNoRoleAssigned Kind = "NO_ROLE_ASSIGNED"
	// KindPermissionDenied marks guard rejections.
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	// KindNotFound marks missing roles, permissions or users.
	KindNotFound Kind = "NOT_FOUND"
	// KindValidation marks malformed requests such as unknown role IDs.
	KindValidation Kind = "VALIDATION"
	// KindStoreUnavailable marks transport or I/O failures against the role store
	// or audit sink. Resolution fails closed on this kind.
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
)

// Error carries a Kind alongside a caller-facing message. Denials keep enough
// context (required permission, levels involved) to explain the rejection.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authz: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("authz: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Denied builds a PERMISSION_DENIED error.
func Denied(format string, args ...any) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds a VALIDATION error.
func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a store failure as STORE_UNAVAILABLE.
func Unavailable(err error, message string) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: message, Err: err}
}

// KindOf extracts the Kind from err, or empty string for non-authz errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsDenied reports whether err is a PERMISSION_DENIED rejection.
func IsDenied(err error) bool {
	return KindOf(err) == KindPermissionDenied
}
