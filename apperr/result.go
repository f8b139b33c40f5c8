package apperr

// Result is either a success value or an *Error.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok wraps a success value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure. A nil err is recorded as UNKNOWN so a failed Result
// always carries an error.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = Unknown("")
	}
	return Result[T]{err: err}
}

// Wrap builds a Result from a conventional (value, error) pair, classifying
// err with From.
func Wrap[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](From(err))
	}
	return Ok(value)
}

func (r Result[T]) IsOk() bool  { return r.err == nil }
func (r Result[T]) IsErr() bool { return r.err != nil }

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// ValueOr returns the success value, or def on failure.
func (r Result[T]) ValueOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Err returns the failure, or nil on success.
func (r Result[T]) Err() *Error {
	return r.err
}

// Message returns the failure message, or "" on success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message()
}

// Unwrap converts back to a (value, error) pair. The error is a nil
// interface on success.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		return r.value, r.err
	}
	return r.value, nil
}
