package db

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a data-layer failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindPermissionDenied
	KindTransport
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindTransport:
		return "transport failure"
	case KindValidation:
		return "validation failure"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// DataError is the single error type returned by repositories. Msg is set only for
// failures the application raised itself and is safe to show to clients.
type DataError struct {
	Kind Kind
	Op   string
	Err  error
	Msg  string
}

// Sentinels for errors.Is. They match any DataError of the same Kind.
var (
	ErrNotFound         = &DataError{Kind: KindNotFound}
	ErrPermissionDenied = &DataError{Kind: KindPermissionDenied}
	ErrTransport        = &DataError{Kind: KindTransport}
	ErrValidation       = &DataError{Kind: KindValidation}
	ErrConflict         = &DataError{Kind: KindConflict}
)

func (e *DataError) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *DataError) Unwrap() error { return e.Err }

// Is reports a match on Kind so callers can use the package sentinels.
func (e *DataError) Is(target error) bool {
	t, ok := target.(*DataError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first DataError in err's chain.
func KindOf(err error) Kind {
	var de *DataError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op, format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	return &DataError{Kind: kind, Op: op, Err: err, Msg: err.Error()}
}

func notFound(op, format string, args ...interface{}) error {
	return newError(KindNotFound, op, format, args...)
}

func permissionDenied(op, format string, args ...interface{}) error {
	return newError(KindPermissionDenied, op, format, args...)
}

func invalid(op, format string, args ...interface{}) error {
	return newError(KindValidation, op, format, args...)
}

// classify converts a Firestore/gRPC error into a DataError. Errors that are already
// classified pass through unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DataError
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &DataError{Kind: KindTransport, Op: op, Err: err}
	}
	switch status.Code(err) {
	case codes.NotFound:
		return &DataError{Kind: KindNotFound, Op: op, Err: err}
	case codes.PermissionDenied, codes.Unauthenticated:
		return &DataError{Kind: KindPermissionDenied, Op: op, Err: err}
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return &DataError{Kind: KindValidation, Op: op, Err: err}
	case codes.AlreadyExists:
		return &DataError{Kind: KindConflict, Op: op, Err: err}
	default:
		return &DataError{Kind: KindTransport, Op: op, Err: err}
	}
}
