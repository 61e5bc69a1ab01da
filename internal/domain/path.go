package domain

// Path is an unordered connectivity declaration between two named endpoints
type Path struct {
	A string `json:"a"`
	B string `json:"b"`
}

// NewPath creates a path between a and b, preserving declaration order
func NewPath(a, b string) Path {
	return Path{A: a, B: b}
}

// Key returns an order-independent identity for the path
func (p Path) Key() PathKey {
	a, b := p.A, p.B
	if a > b {
		a, b = b, a
	}
	return PathKey{a, b}
}

// PathKey is the normalized form of an unordered path
type PathKey [2]string
