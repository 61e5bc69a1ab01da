// Package repository defines the data access interface for archived plans.
//
// Every build can be archived so that later runs can be compared with it or
// exported again without reading the original configuration. A plan is
// stored with its objects, its paths and the generated script.
//
// The sqlite subpackage implements the interface on top of an SQLite
// database file. Tests run it against in-memory databases.
package repository
