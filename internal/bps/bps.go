// Package bps builds the BreakingPoint TCL commands that create a network
// neighborhood on the tester. Every object added through a Network is
// registered in its topology registry before its command is emitted, so the
// registry and the script never disagree.
package bps

import (
	"fmt"

	"bpauto/internal/domain"
	"bpauto/internal/sequence"
	"bpauto/internal/tcl"
	"bpauto/internal/topology"
)

// DefaultNetworkName is used when the configuration does not name the network
const DefaultNetworkName = "NN"

// Session emits the tester-level commands: connection and network creation
type Session struct {
	prefix  string
	emitter tcl.Emitter
}

// NewSession creates a session whose created objects are prefixed with prefix
func NewSession(prefix string, emitter tcl.Emitter) *Session {
	return &Session{prefix: prefix, emitter: emitter}
}

// Prefix returns the name prefix applied to tester-level objects
func (s *Session) Prefix() string {
	return s.prefix
}

// Connect emits the bps::connect command
func (s *Session) Connect(hostname, login, password string) {
	s.emitter.Emit(fmt.Sprintf(`set bps [bps::connect "%s" "%s" "%s" -onclose exit -shortcuts true]`,
		hostname, login, password))
}

// CreateNetwork emits the network creation commands and returns the network
// that subsequent objects are added to
func (s *Session) CreateNetwork(name string) *Network {
	if name == "" {
		name = DefaultNetworkName
	}
	full := s.prefix + name
	s.emitter.Emit(fmt.Sprintf(`set n [$bps createNetwork -name "%s"]`, full))
	s.emitter.Emit("$n begin")

	return &Network{
		name:     full,
		emitter:  s.emitter,
		registry: topology.NewRegistry(),
		mac:      sequence.NewMAC(),
	}
}

// Network is one network neighborhood under construction
type Network struct {
	name     string
	emitter  tcl.Emitter
	registry *topology.Registry
	mac      *sequence.MAC
}

// Name returns the full (prefixed) network name
func (n *Network) Name() string {
	return n.name
}

// Registry exposes the network's object registry
func (n *Network) Registry() *topology.Registry {
	return n.registry
}

// MAC returns the MAC sequence shared by all interfaces and VLANs of the network
func (n *Network) MAC() *sequence.MAC {
	return n.mac
}

// Add registers obj and emits its creation command
func (n *Network) Add(obj domain.Object) (domain.ObjectID, error) {
	if !obj.Class.Valid() {
		return domain.NoObject, fmt.Errorf("unknown object class %q", obj.Class)
	}
	if obj.Class != domain.ClassInterface && obj.Container == domain.NoObject {
		return domain.NoObject, fmt.Errorf("%s %q has no container", obj.Class, obj.Name)
	}
	if obj.Container != domain.NoObject {
		if _, ok := n.registry.Object(obj.Container); !ok {
			return domain.NoObject, fmt.Errorf("%s %q references unknown container %d", obj.Class, obj.Name, obj.Container)
		}
	}

	id, err := n.registry.Register(obj)
	if err != nil {
		return domain.NoObject, err
	}
	stored, _ := n.registry.Object(id)
	n.emitter.Emit(addCommand(&stored))
	return id, nil
}

// PathExists reports whether a path between a and b was already added
func (n *Network) PathExists(a, b string) bool {
	return n.registry.PathExists(a, b)
}

// AddPath records a path and emits the addPath command
func (n *Network) AddPath(a, b string) error {
	if err := n.registry.AddPath(a, b); err != nil {
		return err
	}
	n.emitter.Emit(fmt.Sprintf(`$n addPath "%s" "%s"`, a, b))
	return nil
}

// Save commits the network on the tester and freezes the registry
func (n *Network) Save() error {
	if n.registry.Finalized() {
		return domain.ErrFinalized
	}
	n.emitter.Emit("$n commit")
	n.emitter.Emit(fmt.Sprintf(`$n save -name "%s" -force`, n.name))
	n.registry.Finalize()
	return nil
}

// Plan snapshots the generated objects and paths
func (n *Network) Plan() *domain.Plan {
	return &domain.Plan{
		Network: n.name,
		Objects: n.registry.Objects(),
		Paths:   n.registry.Paths(),
	}
}

func addCommand(obj *domain.Object) string {
	switch obj.Class {
	case domain.ClassInterface:
		return fmt.Sprintf(`$n add interface -number %d -id "%s" -mac_address "%s" -duplicate_mac_address %d`,
			obj.Number, obj.Name, obj.MAC, boolFlag(obj.DuplicateMAC))
	case domain.ClassVLAN:
		return fmt.Sprintf(`$n add vlan -id %s -default_container "%s" -inner_vlan %d -mac_address "%s" -duplicate_mac_address 1`,
			obj.Name, obj.ContainerName, obj.VLANID, obj.MAC)
	case domain.ClassIPRouter:
		cmd := fmt.Sprintf(`$n add ip_router -id "%s" -default_container "%s" -ip_address "%s"`,
			obj.Name, obj.ContainerName, obj.IP)
		if obj.HasGateway() {
			cmd += fmt.Sprintf(` -gateway_ip_address "%s"`, obj.Gateway)
		}
		return cmd + fmt.Sprintf(" -netmask %d", obj.Netmask)
	default:
		cmd := fmt.Sprintf(`$n add ip_static_hosts -id "%s" -tags [list "%s" "%s"] -default_container "%s" -ip_address "%s" -count %d -netmask %d`,
			obj.Name, obj.Name, obj.Tag, obj.ContainerName, obj.IP, obj.IPCount, obj.Netmask)
		if obj.HasGateway() {
			cmd += fmt.Sprintf(` -gateway_ip_address "%s"`, obj.Gateway)
		}
		return cmd
	}
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
