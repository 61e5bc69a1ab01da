package expand

import (
	"log"

	"bpauto/internal/config"
	"bpauto/internal/topology"
)

// PathNetwork is the part of a network the pairer needs
type PathNetwork interface {
	PathExists(a, b string) bool
	AddPath(a, b string) error
}

// PairResult counts the pairing attempts and the paths actually added
type PairResult struct {
	Attempts int
	Created  int
}

// PairPools connects names with peers position by position. When the lists
// differ in length the shorter one is reused cyclically, so max(len) pairs
// are attempted. Pairs that already have a path are skipped. An empty list
// on either side pairs nothing.
func PairPools(n PathNetwork, names, peers []string) (PairResult, error) {
	var res PairResult
	if len(names) == 0 || len(peers) == 0 {
		return res, nil
	}

	total := max(len(names), len(peers))
	for i := 0; i < total; i++ {
		name := names[i%len(names)]
		peer := peers[i%len(peers)]
		res.Attempts++
		if n.PathExists(name, peer) {
			continue
		}
		if err := n.AddPath(name, peer); err != nil {
			return res, err
		}
		res.Created++
	}
	return res, nil
}

// PairHosts pairs each host entry that names a Path with its peer pools
func (e *Engine) PairHosts(entries []config.HostEntry) error {
	reg := e.network.Registry()
	for _, entry := range entries {
		if entry.Path == "" {
			continue
		}
		names := reg.Names(reg.ObjectsWithPrefix(topology.HostPool, entry.Name))
		peers := reg.Names(reg.ObjectsWithPrefix(topology.HostPool, entry.Path))

		res, err := PairPools(e.network, names, peers)
		if err != nil {
			return err
		}
		if res.Attempts == 0 {
			log.Printf("expand: no paths for %q -> %q (%d pools, %d peers)", entry.Name, entry.Path, len(names), len(peers))
		}
		e.report.PathAttempts += res.Attempts
		e.report.PathsCreated += res.Created
	}
	return nil
}
