package cart

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileBackend persists each cart as a JSON file under dir. It is the
// single-node default when no Redis address is configured.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) Load(_ context.Context, key string) ([]Item, error) {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeItems(raw), nil
}

func (f *FileBackend) Save(_ context.Context, key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

// path encodes the key so session identifiers stay filesystem-safe.
func (f *FileBackend) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(f.dir, name+".json")
}
