package resource

import (
	goerrors "errors"

	"sparin/pkg/errors"
)

// Status is the tag of a Resource. Exactly one status is active at a time.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Resource wraps the outcome of an asynchronous operation. Every repository
// operation returns one of these instead of a bare error: Loading first for
// anything user-observable, then exactly one of Success or Error. The zero
// value is Idle, used by controllers after Reset.
type Resource[T any] struct {
	status  Status
	data    T
	message string
	cause   error
}

func Idle[T any]() Resource[T] {
	return Resource[T]{status: StatusIdle}
}

func Loading[T any]() Resource[T] {
	return Resource[T]{status: StatusLoading}
}

// Success carries the fully materialized value. Absence is modeled as a
// Success over an empty collection or a nil pointer where the domain allows
// it, never as a partial placeholder.
func Success[T any](data T) Resource[T] {
	return Resource[T]{status: StatusSuccess, data: data}
}

// Failure carries a human-readable message plus the optional underlying fault.
func Failure[T any](message string, cause error) Resource[T] {
	return Resource[T]{status: StatusError, message: message, cause: cause}
}

// FailureFromErr derives the message from an AppError when the cause is one,
// falling back to a generic message otherwise.
func FailureFromErr[T any](err error) Resource[T] {
	var appErr *errors.AppError
	if goerrors.As(err, &appErr) {
		return Resource[T]{status: StatusError, message: appErr.Message, cause: err}
	}
	return Resource[T]{status: StatusError, message: "Something went wrong", cause: err}
}

func (r Resource[T]) Status() Status { return r.status }

func (r Resource[T]) IsIdle() bool    { return r.status == StatusIdle }
func (r Resource[T]) IsLoading() bool { return r.status == StatusLoading }
func (r Resource[T]) IsSuccess() bool { return r.status == StatusSuccess }
func (r Resource[T]) IsError() bool   { return r.status == StatusError }

// Data returns the payload and whether the resource is Success.
func (r Resource[T]) Data() (T, bool) {
	return r.data, r.status == StatusSuccess
}

// MustData returns the payload of a Success resource and panics otherwise.
// Intended for tests and for call sites that already checked the status.
func (r Resource[T]) MustData() T {
	if r.status != StatusSuccess {
		panic("resource: MustData on " + r.status.String() + " resource")
	}
	return r.data
}

func (r Resource[T]) Message() string { return r.message }

func (r Resource[T]) Cause() error { return r.cause }

// ErrCode reports whether the failure cause carries the given AppError code.
func (r Resource[T]) ErrCode(code string) bool {
	return r.status == StatusError && errors.Is(r.cause, code)
}

// Map converts a Resource[T] into a Resource[U], preserving status, message
// and cause; fn is applied only to Success data.
func Map[T, U any](r Resource[T], fn func(T) U) Resource[U] {
	switch r.status {
	case StatusSuccess:
		return Success(fn(r.data))
	case StatusError:
		return Resource[U]{status: StatusError, message: r.message, cause: r.cause}
	case StatusLoading:
		return Loading[U]()
	default:
		return Idle[U]()
	}
}
