package config

// Config is the root of a bpauto test description
type Config struct {
	Connection ConnectionConfig  `yaml:"Connection" validate:"required"`
	General    GeneralConfig     `yaml:"General"`
	Network    *NetworkConfig    `yaml:"Network,omitempty"`
	Payloads   []PayloadConfig   `yaml:"Payloads,omitempty" validate:"dive"`
	Superflows []SuperflowConfig `yaml:"Superflows,omitempty" validate:"dive"`
}

// ConnectionConfig describes how to reach the tester's management interface
type ConnectionConfig struct {
	TesterIP string `yaml:"Tester IP" validate:"required,ipv4|hostname_rfc1123"`
	Login    string `yaml:"Login"`
	Password string `yaml:"Password"`
	SSHPort  int    `yaml:"SSH Port,omitempty" validate:"min=0,max=65535"`
}

// GeneralConfig holds settings shared by every generated object
type GeneralConfig struct {
	// Prefix is prepended to network and superflow names and to the script file name
	Prefix string `yaml:"Prefix"`
}

// NetworkConfig describes one network neighborhood
type NetworkConfig struct {
	Name          string           `yaml:"Name"`
	Interfaces    []InterfaceEntry `yaml:"Interfaces,omitempty" validate:"dive"`
	VLANs         []VLANEntry      `yaml:"VLANs,omitempty" validate:"dive"`
	IPRouters     []RouterEntry    `yaml:"IP Routers,omitempty" validate:"dive"`
	IPStaticHosts []HostEntry      `yaml:"IP Static Hosts,omitempty" validate:"dive"`
}

// InterfaceEntry expands into Count interfaces named Name+number
type InterfaceEntry struct {
	Name         string `yaml:"Name" validate:"required"`
	StartNumber  int    `yaml:"Start Number" validate:"min=0,max=254"`
	Increment    int    `yaml:"Increment" validate:"min=1"`
	Count        int    `yaml:"Count" validate:"min=0"`
	DuplicateMAC bool   `yaml:"Duplicate MAC address"`
}

// VLANEntry expands into Count VLANs named Name+VLAN ID
type VLANEntry struct {
	Name      string `yaml:"Name" validate:"required"`
	VLANID    int    `yaml:"VLAN ID" validate:"min=0,max=4095"`
	Increment int    `yaml:"Increment" validate:"min=1"`
	Count     int    `yaml:"Count" validate:"min=0"`
	Container string `yaml:"Container" validate:"required"`
}

// RouterEntry expands into Count IP routers named Name1, Name2, ...
type RouterEntry struct {
	Name          string `yaml:"Name" validate:"required"`
	IPAddress     string `yaml:"IP Address" validate:"required,ipv4"`
	Gateway       string `yaml:"Gateway" validate:"omitempty,ipv4"`
	IncrementMask string `yaml:"Increment Mask" validate:"required,ipv4"`
	Netmask       int    `yaml:"Netmask" validate:"min=0,max=32"`
	Count         int    `yaml:"Count" validate:"min=0"`
	Container     string `yaml:"Container" validate:"required"`
}

// HostEntry expands into Count static host pools named Name1, Name2, ...
// Path names the peer pool prefix the pools are paired with.
type HostEntry struct {
	Name          string `yaml:"Name" validate:"required"`
	IPAddress     string `yaml:"IP Address" validate:"required,ipv4"`
	Gateway       string `yaml:"Gateway" validate:"omitempty,ipv4"`
	IncrementMask string `yaml:"Increment Mask" validate:"required,ipv4"`
	Netmask       int    `yaml:"Netmask" validate:"min=0,max=32"`
	Count         int    `yaml:"Count" validate:"min=0"`
	IPCount       int    `yaml:"IP Count" validate:"min=1"`
	Container     string `yaml:"Container" validate:"required"`
	Path          string `yaml:"Path,omitempty"`
}

// PayloadConfig describes a payload file generated locally and uploaded to
// the tester's /resources directory
type PayloadConfig struct {
	FileName string `yaml:"File Name" validate:"required,excludesall=/"`
	Size     int    `yaml:"Size" validate:"min=1"`
	Type     string `yaml:"Type" validate:"required,oneof=asterisk binary ascii"`
}

// SuperflowConfig describes a traffic template instance
type SuperflowConfig struct {
	Name     string `yaml:"Name" validate:"required"`
	Template string `yaml:"Template" validate:"required,superflow"`
	Size     int    `yaml:"Size" validate:"min=0"`
	File     string `yaml:"File,omitempty"`
}
