// Package preflight checks that the tester is reachable before any script is
// generated against it. It runs a TCP connect scan of the management ports
// with nmap.
package preflight

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"
)

// DefaultPorts are the tester's SSH and HTTPS management ports
const DefaultPorts = "22,443"

// Checker scans a tester's management ports
type Checker struct {
	timeout           time.Duration
	ports             []uint16
	skipHostDiscovery bool
}

// Result is the outcome of one preflight scan
type Result struct {
	Host   string
	Up     bool
	Open   []uint16
	Closed []uint16
}

// OK reports whether the host is up with every required port open
func (r *Result) OK() bool {
	return r.Up && len(r.Closed) == 0
}

// Err describes why the preflight failed, nil if it passed
func (r *Result) Err() error {
	switch {
	case !r.Up:
		return fmt.Errorf("tester %s is not reachable", r.Host)
	case len(r.Closed) > 0:
		return fmt.Errorf("tester %s: ports %v not open", r.Host, r.Closed)
	default:
		return nil
	}
}

// NewChecker creates a checker for DefaultPorts
func NewChecker(opts ...Option) *Checker {
	ports, _ := parsePorts(DefaultPorts)
	c := &Checker{
		timeout:           30 * time.Second,
		ports:             ports,
		skipHostDiscovery: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check scans host and reports which required ports are open
func (c *Checker) Check(ctx context.Context, host string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts := []nmap.Option{
		nmap.WithTargets(host),
		nmap.WithPorts(c.portList()),
		nmap.WithConnectScan(),
	}
	if c.skipHostDiscovery {
		opts = append(opts, nmap.WithSkipHostDiscovery())
	}

	scanner, err := nmap.NewScanner(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	log.Printf("preflight: scanning %s ports %s", host, c.portList())
	run, warnings, err := scanner.Run()
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		log.Printf("preflight: warnings for %s: %v", host, *warnings)
	}

	return c.evaluate(run, host)
}

// evaluate matches scan results against the required ports
func (c *Checker) evaluate(run *nmap.Run, host string) (*Result, error) {
	if run == nil {
		return nil, fmt.Errorf("nil scan result")
	}

	res := &Result{Host: host}
	open := make(map[uint16]bool)
	for _, h := range run.Hosts {
		if h.Status.State != "up" {
			continue
		}
		res.Up = true
		for _, p := range h.Ports {
			if p.State.State == "open" {
				open[p.ID] = true
			}
		}
	}

	for _, port := range c.ports {
		if open[port] {
			res.Open = append(res.Open, port)
		} else {
			res.Closed = append(res.Closed, port)
		}
	}

	log.Printf("preflight: %s up=%v open=%v closed=%v", host, res.Up, res.Open, res.Closed)
	return res, nil
}

func (c *Checker) portList() string {
	parts := make([]string, len(c.ports))
	for i, p := range c.ports {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ",")
}

func addPort(ports []uint16, port uint16) []uint16 {
	if slices.Contains(ports, port) {
		return ports
	}
	ports = append(ports, port)
	slices.Sort(ports)
	return ports
}
