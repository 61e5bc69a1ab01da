package preflight

import (
	"fmt"
	"strconv"
	"strings"
)

// maxPorts bounds range expansion
const maxPorts = 1024

// parsePorts expands a port list into sorted, distinct port numbers
// Supported: "80,443,8080" or "1-1000" or "22,80-443,8080"
func parsePorts(portRange string) ([]uint16, error) {
	var ports []uint16
	for _, part := range strings.Split(portRange, ",") {
		part = strings.TrimSpace(part)
		start, end, err := parsePortPart(part)
		if err != nil {
			return nil, err
		}
		for p := start; p <= end; p++ {
			ports = addPort(ports, uint16(p))
			if len(ports) > maxPorts {
				return nil, fmt.Errorf("port list %q expands to more than %d ports", portRange, maxPorts)
			}
		}
	}
	return ports, nil
}

func parsePortPart(part string) (int, int, error) {
	if !strings.Contains(part, "-") {
		port, err := strconv.Atoi(part)
		if err != nil || port < 1 || port > 65535 {
			return 0, 0, fmt.Errorf("invalid port number: %s", part)
		}
		return port, port, nil
	}

	rangeParts := strings.Split(part, "-")
	if len(rangeParts) != 2 {
		return 0, 0, fmt.Errorf("invalid port range: %s", part)
	}
	start, err := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
	if err != nil || start < 1 || start > 65535 {
		return 0, 0, fmt.Errorf("invalid port number: %s", rangeParts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
	if err != nil || end < 1 || end > 65535 || end < start {
		return 0, 0, fmt.Errorf("invalid port number: %s", rangeParts[1])
	}
	return start, end, nil
}
