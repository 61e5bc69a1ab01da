package domain

import "time"

// Plan is the result of one topology build: the generated objects, the
// paths between them and the script that realizes them on the tester
type Plan struct {
	ID        string    `json:"id"`
	Network   string    `json:"network"`
	CreatedAt time.Time `json:"created_at"`
	Objects   []Object  `json:"objects"`
	Paths     []Path    `json:"paths"`
	Commands  []string  `json:"commands,omitempty"`
}

// Summary counts the plan objects per class
func (p *Plan) Summary() map[Class]int {
	counts := make(map[Class]int)
	for _, obj := range p.Objects {
		counts[obj.Class]++
	}
	return counts
}

// PlanInfo is the archive listing entry for a plan
type PlanInfo struct {
	ID        string    `json:"id"`
	Network   string    `json:"network"`
	CreatedAt time.Time `json:"created_at"`
	Objects   int       `json:"objects"`
	Paths     int       `json:"paths"`
}

// Info returns the listing entry for p
func (p *Plan) Info() PlanInfo {
	return PlanInfo{
		ID:        p.ID,
		Network:   p.Network,
		CreatedAt: p.CreatedAt,
		Objects:   len(p.Objects),
		Paths:     len(p.Paths),
	}
}
