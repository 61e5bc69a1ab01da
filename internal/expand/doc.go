// Package expand turns the compact Network section of a test description
// into concrete network objects and paths.
//
// Expansion runs once, in a fixed order: interfaces, VLANs, IP routers,
// IP static hosts, then paths. Later phases find the objects created by
// earlier ones through name prefix lookups (an entry's Container, a host
// entry's Path), so the order cannot change. Each prefix is resolved once per
// entry into a list of object IDs; objects of the entry are then assigned to
// those containers round-robin.
//
// Before an entry emits anything, every bounded sequence it draws from is
// checked against the requested count. A build that fails stops at the first
// error and leaves the network partially populated.
package expand
