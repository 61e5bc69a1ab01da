package codec

import (
	"fmt"
	"io"
	"net/netip"
	"time"

	"bpauto/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export of plans
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlPlan represents the YAML structure for a plan. Objects refer to
// their container by name only.
type yamlPlan struct {
	ID        string       `yaml:"id,omitempty"`
	Network   string       `yaml:"network"`
	CreatedAt time.Time    `yaml:"created_at,omitempty"`
	Objects   []yamlObject `yaml:"objects"`
	Paths     [][]string   `yaml:"paths,omitempty"`
}

type yamlObject struct {
	Name         string `yaml:"name"`
	Class        string `yaml:"class"`
	Container    string `yaml:"container,omitempty"`
	Number       int    `yaml:"number,omitempty"`
	VLANID       int    `yaml:"vlan_id,omitempty"`
	MAC          string `yaml:"mac_address,omitempty"`
	DuplicateMAC bool   `yaml:"duplicate_mac_address,omitempty"`
	IP           string `yaml:"ip_address,omitempty"`
	Gateway      string `yaml:"gateway_ip_address,omitempty"`
	Netmask      int    `yaml:"netmask,omitempty"`
	IPCount      int    `yaml:"ip_count,omitempty"`
	Tag          string `yaml:"tag,omitempty"`
}

// Parse imports a plan from YAML, rebuilding object IDs and container
// references from declaration order and names
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Plan, error) {
	var yp yamlPlan
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yp); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	plan := &domain.Plan{
		ID:        yp.ID,
		Network:   yp.Network,
		CreatedAt: yp.CreatedAt,
	}

	ids := make(map[string]domain.ObjectID, len(yp.Objects))
	for i, yo := range yp.Objects {
		obj := domain.Object{
			ID:            domain.ObjectID(i),
			Name:          yo.Name,
			Class:         domain.Class(yo.Class),
			Container:     domain.NoObject,
			ContainerName: yo.Container,
			Number:        yo.Number,
			VLANID:        yo.VLANID,
			MAC:           yo.MAC,
			DuplicateMAC:  yo.DuplicateMAC,
			Netmask:       yo.Netmask,
			IPCount:       yo.IPCount,
			Tag:           yo.Tag,
		}
		if !obj.Class.Valid() {
			return nil, fmt.Errorf("object %q: unknown class %q", yo.Name, yo.Class)
		}
		if yo.Container != "" {
			id, ok := ids[yo.Container]
			if !ok {
				return nil, fmt.Errorf("object %q: unknown container %q", yo.Name, yo.Container)
			}
			obj.Container = id
		}

		var err error
		if obj.IP, err = parseAddr(yo.IP); err != nil {
			return nil, fmt.Errorf("object %q: %w", yo.Name, err)
		}
		if obj.Gateway, err = parseAddr(yo.Gateway); err != nil {
			return nil, fmt.Errorf("object %q: %w", yo.Name, err)
		}

		ids[obj.Name] = obj.ID
		plan.Objects = append(plan.Objects, obj)
	}

	for _, p := range yp.Paths {
		if len(p) != 2 {
			return nil, fmt.Errorf("path %v: want two endpoints", p)
		}
		plan.Paths = append(plan.Paths, domain.NewPath(p[0], p[1]))
	}

	return plan, nil
}

// Export exports a plan to YAML. The script is not included.
func (c *YAMLCodec) Export(plan *domain.Plan, w io.Writer) error {
	yp := yamlPlan{
		ID:        plan.ID,
		Network:   plan.Network,
		CreatedAt: plan.CreatedAt,
		Objects:   make([]yamlObject, 0, len(plan.Objects)),
	}

	for _, obj := range plan.Objects {
		yo := yamlObject{
			Name:         obj.Name,
			Class:        string(obj.Class),
			Container:    obj.ContainerName,
			Number:       obj.Number,
			VLANID:       obj.VLANID,
			MAC:          obj.MAC,
			DuplicateMAC: obj.DuplicateMAC,
			Netmask:      obj.Netmask,
			IPCount:      obj.IPCount,
			Tag:          obj.Tag,
		}
		if obj.IP.IsValid() {
			yo.IP = obj.IP.String()
		}
		if obj.HasGateway() {
			yo.Gateway = obj.Gateway.String()
		}
		yp.Objects = append(yp.Objects, yo)
	}

	for _, p := range plan.Paths {
		yp.Paths = append(yp.Paths, []string{p.A, p.B})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yp); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

func parseAddr(s string) (netip.Addr, error) {
	if s == "" {
		return netip.Addr{}, nil
	}
	return netip.ParseAddr(s)
}
