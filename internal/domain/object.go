package domain

import "net/netip"

// Class identifies the kind of network object created on the tester
type Class string

const (
	ClassInterface     Class = "interface"
	ClassVLAN          Class = "vlan"
	ClassIPRouter      Class = "ip_router"
	ClassIPStaticHosts Class = "ip_static_hosts"
)

// IsContainer reports whether objects of this class can host child objects.
// IP routers count: static hosts may sit behind a router.
func (c Class) IsContainer() bool {
	switch c {
	case ClassInterface, ClassVLAN, ClassIPRouter:
		return true
	default:
		return false
	}
}

// Valid reports whether c is a known class
func (c Class) Valid() bool {
	switch c {
	case ClassInterface, ClassVLAN, ClassIPRouter, ClassIPStaticHosts:
		return true
	default:
		return false
	}
}

// ObjectID is the index of an object inside its network registry
type ObjectID int

// NoObject marks an absent object reference (e.g. an interface has no container)
const NoObject ObjectID = -1

// Object is a single network element generated from a configuration entry.
// Only the fields relevant to its Class are set.
type Object struct {
	ID    ObjectID `json:"id"`
	Name  string   `json:"name"`
	Class Class    `json:"class"`

	// Container references the hosting object, NoObject if none
	Container     ObjectID `json:"container"`
	ContainerName string   `json:"container_name,omitempty"`

	Number       int        `json:"number,omitempty"`
	MAC          string     `json:"mac_address,omitempty"`
	DuplicateMAC bool       `json:"duplicate_mac_address,omitempty"`
	VLANID       int        `json:"vlan_id,omitempty"`
	IP           netip.Addr `json:"ip_address,omitzero"`
	Gateway      netip.Addr `json:"gateway_ip_address,omitzero"`
	Netmask      int        `json:"netmask,omitempty"`
	IPCount      int        `json:"ip_count,omitempty"`
	Tag          string     `json:"tag,omitempty"`
}

// HasGateway reports whether a gateway address was assigned
func (o *Object) HasGateway() bool {
	return o.Gateway.IsValid()
}
