package supply

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDerive1(t *testing.T) {
	counter := Fixed(5)

	doubled := Derive1(counter, func(count int) (int, error) {
		return count * 2, nil
	})

	val, err := Resolve[int](doubled)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if val != 10 {
		t.Errorf("expected 10, got %d", val)
	}
}

func TestDerive5(t *testing.T) {
	sum := Derive5(Fixed(1), Fixed(2), Fixed(3), Fixed(4), Fixed(5),
		func(a, b, c, d, e int) (int, error) {
			return a + b + c + d + e, nil
		})

	val, _, err := sum.Supply()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if val != 15 {
		t.Errorf("expected 15, got %d", val)
	}
}

func TestDeriveMixedTypes(t *testing.T) {
	greeting := Derive3(Fixed("hello"), Fixed(3), Fixed(true),
		func(s string, n int, loud bool) (string, error) {
			out := ""
			for range n {
				out += s
			}
			if loud {
				out += "!"
			}
			return out, nil
		})

	val, err := Resolve[string](greeting)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if val != "hellohellohello!" {
		t.Errorf("expected hellohellohello!, got %s", val)
	}

	want := []reflect.Type{TypeOf[string](), TypeOf[int](), TypeOf[bool]()}
	typeEq := cmp.Comparer(func(a, b reflect.Type) bool { return a == b })
	if diff := cmp.Diff(want, greeting.Dependencies(), typeEq); diff != "" {
		t.Errorf("Dependencies() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveContextPropagation(t *testing.T) {
	user := Contextual(func(name string, _ ...any) (string, bool, error) {
		return name, true, nil
	})
	greeting := Derive1(user, func(name string) (string, error) {
		return "hi " + name, nil
	})

	val, err := ResolveRecursive[string](greeting, 7, "ada")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if val != "hi ada" {
		t.Errorf("expected hi ada, got %s", val)
	}

	_, _, err = greeting.Supply()
	var supplyErr *SupplyError
	if !errors.As(err, &supplyErr) || supplyErr.Message != "Error on parameter 0" {
		t.Fatalf("expected parameter error, got %v", err)
	}
	if !errors.Is(err, ErrNoCompatibleContext) {
		t.Errorf("expected ErrNoCompatibleContext in chain, got %v", err)
	}
}

func TestDeriveEmptyAndErrors(t *testing.T) {
	calls := 0
	d := Derive2(Fixed(1), Empty[int](), func(a, b int) (int, error) {
		calls++
		return a + b, nil
	})
	if _, ok, err := d.Supply(); err != nil || ok {
		t.Errorf("expected empty result, got ok=%v err=%v", ok, err)
	}
	if calls != 0 {
		t.Error("combine must not run when a dependency is empty")
	}

	boom := errors.New("boom")
	failing := Derive1(Func(func() (int, error) { return 0, boom }), func(n int) (int, error) {
		return n, nil
	})
	if _, _, err := failing.Supply(); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestDerivedWithResolver(t *testing.T) {
	var events []string
	rec := &recordingExtension{BaseExtension: NewBaseExtension("rec"), events: &events}
	r := NewResolver(WithExtension(rec))

	sum := Derive2(Fixed(1), Fixed(2), func(a, b int) (int, error) {
		return a + b, nil
	})
	bound := sum.WithResolver(r)

	val, _, err := bound.Supply()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if val != 3 {
		t.Errorf("expected 3, got %d", val)
	}
	if len(events) != 4 {
		t.Errorf("expected both dependencies to pass through the extension, got %v", events)
	}

	events = nil
	if _, _, err := sum.Supply(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected the original to keep the default resolver, got %v", events)
	}
}
