package supply

import (
	"reflect"
	"time"
)

// ChanSupplier receives its value from a channel.
type ChanSupplier[T any] struct {
	ch      <-chan T
	timeout time.Duration
	typ     reflect.Type
}

// Chan creates a supplier that blocks on ch. A positive timeout bounds the
// wait; when it elapses, or the channel is closed, the supplier is empty.
func Chan[T any](ch <-chan T, timeout time.Duration) *ChanSupplier[T] {
	return &ChanSupplier[T]{ch: ch, timeout: timeout, typ: TypeOf[T]()}
}

func (s *ChanSupplier[T]) SuppliedType() reflect.Type { return s.typ }

func (s *ChanSupplier[T]) Supply() (T, bool, error) {
	if s.timeout <= 0 {
		v, ok := <-s.ch
		return v, ok, nil
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case v, ok := <-s.ch:
		return v, ok, nil
	case <-timer.C:
		var zero T
		return zero, false, nil
	}
}

func (s *ChanSupplier[T]) SupplyAny() (any, bool, error) {
	v, ok, err := s.Supply()
	if err != nil || !ok {
		return nil, false, err
	}
	return v, true, nil
}
