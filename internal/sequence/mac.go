package sequence

import "fmt"

const (
	macFirstLow   = 197
	macFirstHigh  = 255
	macSecondLow  = 1
	macSecondHigh = 255

	// MACCapacity is the number of addresses a single MAC sequence can yield
	MACCapacity = (macFirstHigh - macFirstLow) * (macSecondHigh - macSecondLow)
)

// MAC yields locally administered addresses 02:1A:xx:yy:00:00 where xx runs
// over [197,255) and yy over [1,255), yy varying fastest
type MAC struct {
	issued int
}

// NewMAC creates a MAC sequence starting at 02:1A:c5:01:00:00
func NewMAC() *MAC {
	return &MAC{}
}

// Next returns the next MAC address
func (m *MAC) Next() (string, bool) {
	if m.issued >= MACCapacity {
		return "", false
	}
	span := macSecondHigh - macSecondLow
	first := macFirstLow + m.issued/span
	second := macSecondLow + m.issued%span
	m.issued++
	return fmt.Sprintf("02:1A:%02x:%02x:00:00", first, second), true
}

// Remaining returns the number of unused addresses
func (m *MAC) Remaining() int {
	return MACCapacity - m.issued
}
