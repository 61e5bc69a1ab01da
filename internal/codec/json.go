package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"bpauto/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a plan from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Plan, error) {
	var plan domain.Plan
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &plan, nil
}

// Export exports a plan to JSON
func (c *JSONCodec) Export(plan *domain.Plan, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
