package tcl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBufferOrder(t *testing.T) {
	b := NewBuffer()
	b.Emit("first")
	b.Emit("second 2")
	b.Emit("third\nfourth")

	want := []string{"first", "second 2", "third", "fourth"}
	got := b.Lines()
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if string(b.Bytes()) != "first\nsecond 2\nthird\nfourth\n" {
		t.Errorf("unexpected serialization: %q", b.Bytes())
	}
}

func TestBufferLinesIsCopy(t *testing.T) {
	b := NewBuffer()
	b.Emit("cmd")
	lines := b.Lines()
	lines[0] = "changed"
	if b.Lines()[0] != "cmd" {
		t.Error("Lines() must not expose internal storage")
	}
}

func TestSaveCreate(t *testing.T) {
	dir := t.TempDir()
	b := NewBuffer()
	b.Emit(`set n [$bps createNetwork -name "labNN"]`)

	path, err := b.SaveCreate(filepath.Join(dir, "out"), "lab")
	if err != nil {
		t.Fatalf("SaveCreate: %v", err)
	}
	if filepath.Base(path) != "labcreate.tcl" {
		t.Errorf("file name = %s, want labcreate.tcl", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(data), "createNetwork") {
		t.Errorf("script content = %q", data)
	}
}
