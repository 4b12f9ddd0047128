// Package remote models data owned by the backend: not yet fetched, fetched,
// or failed. Values are immutable; every transition returns a new value.
package remote

// Status is the lifecycle phase of a remote value.
type Status int

const (
	Pending Status = iota
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Value is a single remotely-resolved value. The zero Value is Pending.
type Value[T any] struct {
	status Status
	data   T
	err    error
}

func Received[T any](data T) Value[T] {
	return Value[T]{status: Loaded, data: data}
}

func Fail[T any](err error) Value[T] {
	return Value[T]{status: Failed, err: err}
}

func (v Value[T]) Status() Status { return v.status }

// Get returns the data and true only when the value is Loaded.
func (v Value[T]) Get() (T, bool) {
	if v.status != Loaded {
		var zero T
		return zero, false
	}
	return v.data, true
}

// Err is the failure cause when Failed, nil otherwise.
func (v Value[T]) Err() error {
	if v.status != Failed {
		return nil
	}
	return v.err
}
