package superflow

import (
	"fmt"

	"bpauto/internal/tcl"
)

// Builder emits the commands that create and tune superflows
type Builder struct {
	prefix  string
	emitter tcl.Emitter
}

// NewBuilder creates a builder whose superflow names are prefixed with prefix
func NewBuilder(prefix string, emitter tcl.Emitter) *Builder {
	return &Builder{prefix: prefix, emitter: emitter}
}

// Create emits a superflow based on tmpl, sized for size bytes or fed from
// file, and saves it
func (b *Builder) Create(name string, tmpl Template, size int, file string) error {
	if tmpl.NeedsFile() && file == "" {
		return fmt.Errorf("superflow %q: template %s needs a payload file", name, tmpl.Name)
	}

	b.emitter.Emit(fmt.Sprintf(`set superflow [$bps createSuperflow -name "%s%s" -template "%s"]`,
		b.prefix, name, tmpl.Name))
	for _, cmd := range tmpl.ModifyCommands(size, file) {
		b.emitter.Emit(cmd)
	}
	b.emitter.Emit("$superflow save -force")
	return nil
}
