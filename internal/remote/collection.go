package remote

import "github.com/samber/lo"

// Collection is an ordered list fetched from one endpoint. The zero
// Collection is Pending. The backing slice is never mutated after a
// transition; Map and AppendUnique allocate.
type Collection[T any] struct {
	value Value[[]T]
}

// Requested moves any collection back to Pending.
func (c Collection[T]) Requested() Collection[T] {
	return Collection[T]{}
}

// Received replaces the collection with a freshly fetched list.
func (c Collection[T]) Received(items []T) Collection[T] {
	if items == nil {
		items = []T{}
	}
	return Collection[T]{value: Received(items)}
}

// Failed records a fetch failure. Previously loaded items are dropped; the
// failed state is what the renderer shows.
func (c Collection[T]) Failed(err error) Collection[T] {
	return Collection[T]{value: Fail[[]T](err)}
}

func (c Collection[T]) Status() Status { return c.value.Status() }

func (c Collection[T]) Err() error { return c.value.Err() }

// Items returns the loaded list. Callers must treat it as read-only.
func (c Collection[T]) Items() ([]T, bool) {
	return c.value.Get()
}

// Len is zero unless Loaded.
func (c Collection[T]) Len() int {
	items, _ := c.Items()
	return len(items)
}

// Map rewrites a Loaded collection through fn. Non-loaded collections are
// returned unchanged.
func (c Collection[T]) Map(fn func([]T) []T) Collection[T] {
	items, ok := c.Items()
	if !ok {
		return c
	}
	return c.Received(fn(items))
}

// AppendUnique appends item to a Loaded collection unless an element equal
// under eq is already present. It reports whether the item was added.
func (c Collection[T]) AppendUnique(item T, eq func(a, b T) bool) (Collection[T], bool) {
	items, ok := c.Items()
	if !ok {
		return c, false
	}
	if lo.ContainsBy(items, func(existing T) bool { return eq(existing, item) }) {
		return c, false
	}
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	return c.Received(append(next, item)), true
}
