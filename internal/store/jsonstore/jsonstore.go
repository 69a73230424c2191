package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tada/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

const DataFileName = "todos.json"

// Backend reads and rewrites one JSON file.
type Backend struct {
	path string
}

// New returns a backend for path, or ./todos.json when path is empty.
func New(path string) (*Backend, error) {
	if path == "" {
		p, err := dataPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Backend{path: path}, nil
}

func dataPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DataFileName), nil
}

func (b *Backend) Path() string { return b.path }

func (b *Backend) Load(context.Context) ([]*model.Item, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []*model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

// Write ignores the delta and rewrites the whole file in sort-index order.
func (b *Backend) Write(_ context.Context, all, _ []*model.Item, _ []string) error {
	data, err := json.MarshalIndent(model.Sorted(all), "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (b *Backend) Close() error { return nil }
