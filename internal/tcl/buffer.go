// Package tcl collects generated BreakingPoint TCL commands in order and
// writes them out as a script.
package tcl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Emitter receives one TCL command at a time, in execution order
type Emitter interface {
	Emit(command string)
}

// Buffer is an append-only, in-memory Emitter
type Buffer struct {
	lines []string
}

// NewBuffer creates an empty command buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Emit appends a command. Multi-line commands are kept as separate lines.
func (b *Buffer) Emit(command string) {
	b.lines = append(b.lines, strings.Split(command, "\n")...)
}

// Lines returns a copy of the buffered commands
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines
func (b *Buffer) Len() int {
	return len(b.lines)
}

// WriteTo writes the buffer, one command per line
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range b.lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes returns the serialized script
func (b *Buffer) Bytes() []byte {
	var buf bytes.Buffer
	b.WriteTo(&buf)
	return buf.Bytes()
}

// CreateScriptName returns the file name used for the create script
func CreateScriptName(prefix string) string {
	return prefix + "create.tcl"
}

// SaveCreate writes the buffer to <dir>/<prefix>create.tcl and returns the path
func (b *Buffer) SaveCreate(dir, prefix string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, CreateScriptName(prefix))
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
