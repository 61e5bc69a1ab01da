// Package sequence provides the stateful generators used to expand compact
// configuration entries into concrete identifiers: MAC addresses, IPv4
// addresses, bounded integer progressions and synthetic names.
//
// Every generator is an explicit iterator. Next returns the following value
// and false once the sequence is exhausted; it never wraps around. Remaining
// reports how many values are still available so callers can check capacity
// before pulling anything.
package sequence

// Sequence is a bounded, stateful generator
type Sequence[T any] interface {
	Next() (T, bool)
	Remaining() int
}

// Protocol ceilings (exclusive)
const (
	InterfaceCeiling = 255
	VLANCeiling      = 4096
	NameCeiling      = 1000
)

// Unbounded is reported by Remaining for sequences without a ceiling
const Unbounded = int(^uint(0) >> 1)
