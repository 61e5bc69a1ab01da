package sequence

// Cycle repeats a finite list forever using a wrap-around index
type Cycle[T any] struct {
	items []T
	pos   int
}

// NewCycle creates a cycle over items. The slice is not copied.
func NewCycle[T any](items []T) *Cycle[T] {
	return &Cycle[T]{items: items}
}

// Next returns the next item; an empty cycle is exhausted immediately
func (c *Cycle[T]) Next() (T, bool) {
	var zero T
	if len(c.items) == 0 {
		return zero, false
	}
	v := c.items[c.pos]
	c.pos = (c.pos + 1) % len(c.items)
	return v, true
}

// Remaining is Unbounded for a non-empty cycle
func (c *Cycle[T]) Remaining() int {
	if len(c.items) == 0 {
		return 0
	}
	return Unbounded
}

// Len returns the number of distinct items in the cycle
func (c *Cycle[T]) Len() int {
	return len(c.items)
}
