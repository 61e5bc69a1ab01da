package codec

import (
	"fmt"
	"io"

	"bpauto/internal/domain"
)

// TCLCodec writes the plan's script, one command per line
type TCLCodec struct{}

// NewTCLCodec creates a new TCL codec
func NewTCLCodec() *TCLCodec {
	return &TCLCodec{}
}

// Format returns the codec format identifier
func (c *TCLCodec) Format() string {
	return "tcl"
}

// Export writes the plan commands
func (c *TCLCodec) Export(plan *domain.Plan, w io.Writer) error {
	if len(plan.Commands) == 0 {
		return fmt.Errorf("plan %q has no commands", plan.Network)
	}
	for _, cmd := range plan.Commands {
		if _, err := fmt.Fprintln(w, cmd); err != nil {
			return fmt.Errorf("failed to write script: %w", err)
		}
	}
	return nil
}
