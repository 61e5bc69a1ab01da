package domain

import (
	"errors"
	"fmt"
)

// ErrFinalized is returned when a network is mutated after it was saved
var ErrFinalized = errors.New("network already finalized")

// ConfigurationError reports a configuration entry that cannot be expanded
type ConfigurationError struct {
	Entry  string
	Count  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error in %q (count %d): %s", e.Entry, e.Count, e.Reason)
}

// NewConfigurationError creates a ConfigurationError for an entry
func NewConfigurationError(entry string, count int, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Entry:  entry,
		Count:  count,
		Reason: fmt.Sprintf(format, args...),
	}
}

// DuplicateNameError reports a name already present in the network
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate object name %q", e.Name)
}

// AddressSpaceExhaustedError reports IPv4 arithmetic that would overflow 32 bits
type AddressSpaceExhaustedError struct {
	Entry     string
	Base      string
	Increment string
	Count     int
}

func (e *AddressSpaceExhaustedError) Error() string {
	return fmt.Sprintf("address space exhausted in %q: %d addresses from %s step %s do not fit in IPv4",
		e.Entry, e.Count, e.Base, e.Increment)
}

// PathExistsError reports an attempt to add an unordered pair twice
type PathExistsError struct {
	A, B string
}

func (e *PathExistsError) Error() string {
	return fmt.Sprintf("path %q <-> %q already exists", e.A, e.B)
}
