package statestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.StateSlot = (*FileSlot)(nil)

var ErrInvalidKey = errors.New("invalid slot key")

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// A FileSlot keeps the opaque snapshot bytes of each key in
// dir/<key>.snapshot. Writes replace the file atomically via rename.
type FileSlot struct {
	dir string
}

func NewFileSlot(dir string) (FileSlot, error) {
	const op = "NewFileSlot"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileSlot{}, fmt.Errorf("%s: %w", op, err)
	}
	return FileSlot{dir}, nil
}

func (s FileSlot) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "FileSlot.Load"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", op, port.ErrSlotEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s FileSlot) Save(ctx context.Context, key string, data []byte) error {
	const op = "FileSlot.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	path, err := s.path(key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: failed to write: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: failed to replace: %w", op, err)
	}
	return nil
}

func (s FileSlot) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".snapshot"), nil
}
