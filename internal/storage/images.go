package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// DirImages lists event images from a local directory tree laid out as
// <root>/<eventID>/<image>. A missing event directory is an empty list, not
// an error.
type DirImages struct {
	Root string
}

func (d DirImages) List(_ context.Context, eventID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.Root, eventID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
