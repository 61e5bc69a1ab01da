package config

// Example returns a small, valid description to start from: two interfaces,
// one router per interface and two host pools paired with each other
func Example() *Config {
	return &Config{
		Connection: ConnectionConfig{
			TesterIP: "192.168.0.10",
			Login:    DefaultLogin,
			Password: DefaultPassword,
			SSHPort:  DefaultSSHPort,
		},
		General: GeneralConfig{Prefix: "lab_"},
		Network: &NetworkConfig{
			Name: DefaultNetworkName,
			Interfaces: []InterfaceEntry{
				{Name: "eth", StartNumber: 1, Increment: 1, Count: 2},
			},
			IPRouters: []RouterEntry{{
				Name: "rtr", IPAddress: "10.0.0.1", IncrementMask: "0.1.0.0",
				Netmask: 16, Count: 2, Container: "eth",
			}},
			IPStaticHosts: []HostEntry{
				{
					Name: "client", IPAddress: "10.0.0.10", Gateway: "10.0.0.1", IncrementMask: "0.1.0.0",
					Netmask: 16, Count: 1, IPCount: 100, Container: "rtr1", Path: "server",
				},
				{
					Name: "server", IPAddress: "10.1.0.10", Gateway: "10.1.0.1", IncrementMask: "0.1.0.0",
					Netmask: 16, Count: 1, IPCount: 10, Container: "rtr2",
				},
			},
		},
		Payloads: []PayloadConfig{
			{FileName: "payload.bin", Size: 1 << 20, Type: "binary"},
		},
		Superflows: []SuperflowConfig{
			{Name: "http", Template: "HTTP", Size: 1 << 20},
			{Name: "quic", Template: "QUIC", File: "payload.bin"},
		},
	}
}
