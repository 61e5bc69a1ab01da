package expand

import (
	"log"
	"net/netip"
	"strconv"

	"bpauto/internal/bps"
	"bpauto/internal/config"
	"bpauto/internal/domain"
	"bpauto/internal/sequence"
	"bpauto/internal/topology"
)

// Report summarizes one expansion run
type Report struct {
	Objects      map[domain.Class]int
	PathAttempts int
	PathsCreated int
}

// Engine expands configuration entries into a network
type Engine struct {
	network *bps.Network
	report  Report
}

// New creates an engine that adds objects to network
func New(network *bps.Network) *Engine {
	return &Engine{
		network: network,
		report:  Report{Objects: make(map[domain.Class]int)},
	}
}

// Run expands every section of cfg in declaration order and pairs host pools
func (e *Engine) Run(cfg *config.NetworkConfig) (*Report, error) {
	if err := e.ExpandInterfaces(cfg.Interfaces); err != nil {
		return nil, err
	}
	if err := e.ExpandVLANs(cfg.VLANs); err != nil {
		return nil, err
	}
	if err := e.ExpandRouters(cfg.IPRouters); err != nil {
		return nil, err
	}
	if err := e.ExpandHosts(cfg.IPStaticHosts); err != nil {
		return nil, err
	}
	if err := e.PairHosts(cfg.IPStaticHosts); err != nil {
		return nil, err
	}

	report := e.report
	log.Printf("expand: %s: %d interfaces, %d vlans, %d routers, %d host pools, %d/%d paths",
		e.network.Name(),
		report.Objects[domain.ClassInterface], report.Objects[domain.ClassVLAN],
		report.Objects[domain.ClassIPRouter], report.Objects[domain.ClassIPStaticHosts],
		report.PathsCreated, report.PathAttempts)
	return &report, nil
}

// ExpandInterfaces creates Count interfaces per entry, numbered from Start
// Number by Increment below 255, each with a fresh MAC address
func (e *Engine) ExpandInterfaces(entries []config.InterfaceEntry) error {
	for _, entry := range entries {
		nums, err := sequence.NewIntRange(entry.StartNumber, entry.Increment, sequence.InterfaceCeiling)
		if err != nil {
			return domain.NewConfigurationError(entry.Name, entry.Count, "interface numbers: %v", err)
		}
		if err := e.checkCapacity(entry.Name, entry.Count, nums.Remaining(), "interface numbers below %d", sequence.InterfaceCeiling); err != nil {
			return err
		}
		if err := e.checkMAC(entry.Name, entry.Count); err != nil {
			return err
		}

		for i := 0; i < entry.Count; i++ {
			num, _ := nums.Next()
			mac, _ := e.network.MAC().Next()
			obj := domain.Object{
				Name:         entry.Name + strconv.Itoa(num),
				Class:        domain.ClassInterface,
				Container:    domain.NoObject,
				Number:       num,
				MAC:          mac,
				DuplicateMAC: entry.DuplicateMAC,
			}
			if err := e.add(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpandVLANs creates Count VLANs per entry with IDs from VLAN ID by
// Increment below 4096, spread round-robin over the matching containers
func (e *Engine) ExpandVLANs(entries []config.VLANEntry) error {
	for _, entry := range entries {
		ids, err := sequence.NewIntRange(entry.VLANID, entry.Increment, sequence.VLANCeiling)
		if err != nil {
			return domain.NewConfigurationError(entry.Name, entry.Count, "vlan ids: %v", err)
		}
		if err := e.checkCapacity(entry.Name, entry.Count, ids.Remaining(), "VLAN IDs below %d", sequence.VLANCeiling); err != nil {
			return err
		}
		if err := e.checkMAC(entry.Name, entry.Count); err != nil {
			return err
		}
		containers, err := e.containers(entry.Name, entry.Container, entry.Count)
		if err != nil {
			return err
		}

		for i := 0; i < entry.Count; i++ {
			id, _ := ids.Next()
			mac, _ := e.network.MAC().Next()
			container, _ := containers.Next()
			obj := domain.Object{
				Name:      entry.Name + strconv.Itoa(id),
				Class:     domain.ClassVLAN,
				Container: container,
				VLANID:    id,
				MAC:       mac,
			}
			if err := e.add(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpandRouters creates Count IP routers per entry named Name1, Name2, ...
func (e *Engine) ExpandRouters(entries []config.RouterEntry) error {
	for _, entry := range entries {
		a := addressing{
			entry: entry.Name, count: entry.Count,
			ip: entry.IPAddress, gateway: entry.Gateway, mask: entry.IncrementMask,
		}
		if err := e.expandAddressed(a, entry.Container, func(name string, container domain.ObjectID, ip, gw netip.Addr) domain.Object {
			return domain.Object{
				Name:      name,
				Class:     domain.ClassIPRouter,
				Container: container,
				IP:        ip,
				Gateway:   gw,
				Netmask:   entry.Netmask,
			}
		}); err != nil {
			return err
		}
	}
	return nil
}

// ExpandHosts creates Count static host pools per entry named Name1,
// Name2, ..., each tagged with the entry name. A missing gateway stays
// missing on every pool.
func (e *Engine) ExpandHosts(entries []config.HostEntry) error {
	for _, entry := range entries {
		a := addressing{
			entry: entry.Name, count: entry.Count,
			ip: entry.IPAddress, gateway: entry.Gateway, mask: entry.IncrementMask,
		}
		if err := e.expandAddressed(a, entry.Container, func(name string, container domain.ObjectID, ip, gw netip.Addr) domain.Object {
			return domain.Object{
				Name:      name,
				Class:     domain.ClassIPStaticHosts,
				Container: container,
				IP:        ip,
				Gateway:   gw,
				Netmask:   entry.Netmask,
				IPCount:   entry.IPCount,
				Tag:       entry.Name,
			}
		}); err != nil {
			return err
		}
	}
	return nil
}

// addressing holds the fields shared by router and host entries
type addressing struct {
	entry   string
	count   int
	ip      string
	gateway string
	mask    string
}

type buildFunc func(name string, container domain.ObjectID, ip, gw netip.Addr) domain.Object

func (e *Engine) expandAddressed(a addressing, containerPrefix string, build buildFunc) error {
	names := sequence.NewCounterNames(a.entry)
	if err := e.checkCapacity(a.entry, a.count, names.Remaining(), "names below %d", sequence.NameCeiling); err != nil {
		return err
	}

	ips, err := sequence.NewIPv4(a.ip, a.mask)
	if err != nil {
		return domain.NewConfigurationError(a.entry, a.count, "ip address: %v", err)
	}
	if a.count > ips.Remaining() {
		return &domain.AddressSpaceExhaustedError{Entry: a.entry, Base: a.ip, Increment: a.mask, Count: a.count}
	}

	gws, err := sequence.NewGateway(a.gateway, a.mask)
	if err != nil {
		return domain.NewConfigurationError(a.entry, a.count, "gateway: %v", err)
	}
	if a.count > gws.Remaining() {
		return &domain.AddressSpaceExhaustedError{Entry: a.entry, Base: a.gateway, Increment: a.mask, Count: a.count}
	}

	containers, err := e.containers(a.entry, containerPrefix, a.count)
	if err != nil {
		return err
	}

	for i := 0; i < a.count; i++ {
		name, _ := names.Next()
		ip, _ := ips.Next()
		gw, _ := gws.Next()
		container, _ := containers.Next()
		if err := e.add(build(name, container, ip, gw)); err != nil {
			return err
		}
	}
	return nil
}

// containers resolves a container prefix once into a round-robin cycle
func (e *Engine) containers(entry, prefix string, count int) (*sequence.Cycle[domain.ObjectID], error) {
	ids := e.network.Registry().ObjectsWithPrefix(topology.ContainerEligible, prefix)
	if len(ids) == 0 && count > 0 {
		return nil, domain.NewConfigurationError(entry, count, "no container matches prefix %q", prefix)
	}
	return sequence.NewCycle(ids), nil
}

func (e *Engine) checkCapacity(entry string, count, remaining int, what string, ceiling int) error {
	if count > remaining {
		return domain.NewConfigurationError(entry, count, "only %d "+what+" left", remaining, ceiling)
	}
	return nil
}

func (e *Engine) checkMAC(entry string, count int) error {
	if left := e.network.MAC().Remaining(); count > left {
		return domain.NewConfigurationError(entry, count, "only %d MAC addresses left", left)
	}
	return nil
}

func (e *Engine) add(obj domain.Object) error {
	if _, err := e.network.Add(obj); err != nil {
		return err
	}
	e.report.Objects[obj.Class]++
	return nil
}
