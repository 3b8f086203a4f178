package bulkhead

import (
	"errors"
	"testing"
)

func TestGoRunsFnAndObservesResult(t *testing.T) {
	supplier := Go(func() (string, error) { return "done", nil })

	result := supplier()

	done := make(chan struct{})

	var gotVal string

	var gotErr error

	err := result.Observe(func(val string, e error) {
		gotVal = val
		gotErr = e
		close(done)
	})
	if err != nil {
		t.Fatalf("Observe() error = %v, want nil", err)
	}

	<-done

	if gotErr != nil {
		t.Fatalf("observed error = %v, want nil", gotErr)
	}
	if gotVal != "done" {
		t.Fatalf("observed value = %q, want %q", gotVal, "done")
	}
}

func TestGoRecoversPanicInFn(t *testing.T) {
	supplier := Go(func() (string, error) {
		panic("fn exploded")
	})

	result := supplier()

	done := make(chan struct{})

	var gotErr error

	_ = result.Observe(func(_ string, e error) {
		gotErr = e
		close(done)
	})

	<-done

	var ce *CompletionError
	if !errors.As(gotErr, &ce) {
		t.Fatalf("observed error = %T, want *CompletionError", gotErr)
	}
}

func TestSafeInvokeRecoversFactoryPanic(t *testing.T) {
	factory := Supplier[string](func() Result[string] {
		panic(errors.New("factory boom"))
	})

	_, err := safeInvoke(factory)
	if err == nil {
		t.Fatal("safeInvoke() error = nil, want non-nil")
	}

	var ce *CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("safeInvoke() error = %T, want *CompletionError", err)
	}
}

func TestSafeInvokeReturnsResultOnSuccess(t *testing.T) {
	want := &goResult[string]{}

	factory := Supplier[string](func() Result[string] { return want })

	got, err := safeInvoke(factory)
	if err != nil {
		t.Fatalf("safeInvoke() error = %v, want nil", err)
	}
	if got != want {
		t.Fatal("safeInvoke() did not return the factory's Result")
	}
}

type panickingObserveResult[T any] struct{}

func (panickingObserveResult[T]) Observe(func(T, error)) error {
	panic("Observe exploded")
}

func TestSafeObserveRecoversObservePanic(t *testing.T) {
	err := safeObserve[string](panickingObserveResult[string]{}, func(string, error) {})
	if err == nil {
		t.Fatal("safeObserve() error = nil, want non-nil")
	}

	var ce *CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("safeObserve() error = %T, want *CompletionError", err)
	}
}
