package apperr

import (
	"errors"
	"testing"
)

func TestResultOk(t *testing.T) {
	r := Ok(5)
	if !r.IsOk() || r.IsErr() {
		t.Fatalf("expected ok result")
	}
	if r.Value() != 5 || r.ValueOr(9) != 5 {
		t.Fatalf("unexpected value")
	}
	if r.Message() != "" || r.Err() != nil {
		t.Fatalf("ok result carries an error")
	}
	v, err := r.Unwrap()
	if v != 5 || err != nil {
		t.Fatalf("Unwrap = %v, %v", v, err)
	}
}

func TestResultFail(t *testing.T) {
	r := Fail[int](NotFound(""))
	if r.IsOk() {
		t.Fatalf("expected failed result")
	}
	if r.ValueOr(9) != 9 {
		t.Fatalf("ValueOr should return default")
	}
	if r.Message() != CodeNotFound.DefaultMessage() {
		t.Fatalf("unexpected message %q", r.Message())
	}
	if _, err := r.Unwrap(); !errors.Is(err, NotFound("")) {
		t.Fatalf("Unwrap error = %v", err)
	}

	if Fail[string](nil).Err().Code() != CodeUnknown {
		t.Fatalf("nil failure should become UNKNOWN")
	}
}

func TestWrapClassifies(t *testing.T) {
	r := Wrap("", errors.New("connection refused"))
	if r.Err().Code() != CodeNetwork {
		t.Fatalf("got %s", r.Err().Code())
	}
	if ok := Wrap("v", nil); !ok.IsOk() || ok.Value() != "v" {
		t.Fatalf("Wrap with nil error should succeed")
	}
}
