package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bpauto/internal/domain"
)

// Importer interface for reading exported plans back into the archive
type Importer interface {
	Parse(r io.Reader) (*domain.Plan, error)
	Format() string
}

// Exporter interface for exporting plans to various formats
type Exporter interface {
	Export(plan *domain.Plan, w io.Writer) error
	Format() string
}

// ForPath picks an exporter from the file extension of path
func ForPath(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	case ".json":
		return NewJSONCodec(), nil
	case ".tcl":
		return NewTCLCodec(), nil
	default:
		return nil, fmt.Errorf("no exporter for %q (want .yaml, .json or .tcl)", path)
	}
}

// ImporterForPath picks an importer from the file extension of path. TCL
// scripts carry no object model and cannot be imported.
func ImporterForPath(path string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	case ".json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("no importer for %q (want .yaml or .json)", path)
	}
}
