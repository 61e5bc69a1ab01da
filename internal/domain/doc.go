// Package domain defines the core types of the BreakingPoint topology generator.
//
// # Core Types
//
// Object is one generated network element (interface, VLAN, IP router or
// static host pool). Objects are identified by a name that is unique within a
// network and by an ObjectID, their index in the network registry. Child
// objects reference their container by ObjectID.
//
// Path is an unordered pair of endpoint names. Two paths with the same
// endpoints in either order are the same path.
//
// Plan is the outcome of one build: objects, paths and the emitted script.
//
// # Errors
//
// ConfigurationError, DuplicateNameError, AddressSpaceExhaustedError and
// PathExistsError carry enough context (entry name, requested count, reason)
// to diagnose a configuration. ErrFinalized is returned for any mutation of a
// saved network.
package domain
