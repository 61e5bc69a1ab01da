package preflight

import (
	"log"
	"time"
)

// Option is a functional option for configuring Checker
type Option func(*Checker)

// WithTimeout bounds the whole scan
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.timeout = d
	}
}

// WithPorts replaces the required ports
// Format: "22,443" or "8880-8882" or "22,8880-8882"
func WithPorts(ports string) Option {
	return func(c *Checker) {
		parsed, err := parsePorts(ports)
		if err != nil {
			log.Printf("preflight: ignoring port list %q: %v", ports, err)
			return
		}
		c.ports = parsed
	}
}

// WithSSHPort adds the configured SSH port to the required ports
func WithSSHPort(port int) Option {
	return func(c *Checker) {
		if port > 0 && port <= 65535 {
			c.ports = addPort(c.ports, uint16(port))
		}
	}
}

// WithSkipHostDiscovery sets whether to skip ping and treat the host as online (-Pn)
func WithSkipHostDiscovery(skip bool) Option {
	return func(c *Checker) {
		c.skipHostDiscovery = skip
	}
}
