package payload

import (
	"bytes"
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects the content of a generated payload file
type Kind string

const (
	KindAsterisk Kind = "asterisk"
	KindBinary   Kind = "binary"
	KindASCII    Kind = "ascii"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generate writes a size-byte payload named name into dir and returns its path
func Generate(dir, name string, size int, kind Kind) (string, error) {
	if name == "" || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("invalid payload file name %q", name)
	}
	if size < 0 {
		return "", fmt.Errorf("invalid payload size %d", size)
	}

	data, err := content(size, kind)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write payload: %w", err)
	}
	return path, nil
}

func content(size int, kind Kind) ([]byte, error) {
	switch kind {
	case KindAsterisk:
		return bytes.Repeat([]byte{'*'}, size), nil
	case KindBinary:
		data := make([]byte, size)
		if _, err := rand.Read(data); err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}
		return data, nil
	case KindASCII:
		data := make([]byte, size)
		for i := range data {
			data[i] = letters[mrand.IntN(len(letters))]
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown payload type %q", kind)
	}
}
