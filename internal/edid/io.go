package edid

import (
	"fmt"
	"os"
)

// WriteFile persists the raw 128 bytes.
func (b *Block) WriteFile(path string) error {
	return os.WriteFile(path, b[:], 0o644)
}

// ReadFile loads a raw block from disk. The file must hold exactly one
// base block; nothing is decoded or validated beyond the size.
func ReadFile(path string) (Block, error) {
	var b Block
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if len(data) != BlockSize {
		return b, fmt.Errorf("%s: got %d bytes, want exactly %d", path, len(data), BlockSize)
	}
	copy(b[:], data)
	return b, nil
}
