package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a catalog API failure.
type Kind int

const (
	// KindNetwork means the transport was unreachable or timed out.
	KindNetwork Kind = iota + 1
	// KindServer means the API answered with a non-success status.
	KindServer
	// KindValidation means the API rejected a mutation payload.
	KindValidation
	// KindUnrecognizedShape means a response envelope matched no known shape.
	KindUnrecognizedShape
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindUnrecognizedShape:
		return "unrecognized_shape"
	default:
		return "unknown"
	}
}

// Error is the uniform failure type returned by the Client. It carries the
// classification, the HTTP status when one was received, and the cause.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog: %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("catalog: %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a catalog Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func serverError(status int, message string) *Error {
	kind := KindServer
	// 4xx on a mutation body is the server telling us the payload is bad.
	if status == 400 || status == 422 {
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: message}
}
