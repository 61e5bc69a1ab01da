package sequence

import (
	"fmt"
	"strconv"
)

// IntRange yields start, start+step, ... strictly below ceiling
type IntRange struct {
	next    int
	step    int
	ceiling int
}

// NewIntRange creates an arithmetic progression bounded by ceiling
func NewIntRange(start, step, ceiling int) (*IntRange, error) {
	if start < 0 {
		return nil, fmt.Errorf("start %d must not be negative", start)
	}
	if step <= 0 {
		return nil, fmt.Errorf("increment %d must be positive", step)
	}
	return &IntRange{next: start, step: step, ceiling: ceiling}, nil
}

// Next returns the next integer in the range
func (r *IntRange) Next() (int, bool) {
	if r.next >= r.ceiling {
		return 0, false
	}
	v := r.next
	if r.step >= r.ceiling-v {
		r.next = r.ceiling
	} else {
		r.next += r.step
	}
	return v, true
}

// Remaining returns the number of values left before the ceiling
func (r *IntRange) Remaining() int {
	if r.next >= r.ceiling {
		return 0
	}
	return (r.ceiling-r.next-1)/r.step + 1
}

// Names yields prefix+n for each n of an IntRange
type Names struct {
	prefix string
	nums   *IntRange
}

// NewNames creates a name generator over [start, ceiling) by step
func NewNames(prefix string, start, step, ceiling int) (*Names, error) {
	nums, err := NewIntRange(start, step, ceiling)
	if err != nil {
		return nil, err
	}
	return &Names{prefix: prefix, nums: nums}, nil
}

// NewCounterNames creates the prefix1, prefix2, ... names used for routers and hosts
func NewCounterNames(prefix string) *Names {
	return &Names{prefix: prefix, nums: &IntRange{next: 1, step: 1, ceiling: NameCeiling}}
}

// Next returns the next name
func (n *Names) Next() (string, bool) {
	v, ok := n.nums.Next()
	if !ok {
		return "", false
	}
	return n.prefix + strconv.Itoa(v), true
}

// Remaining returns the number of names left
func (n *Names) Remaining() int {
	return n.nums.Remaining()
}
