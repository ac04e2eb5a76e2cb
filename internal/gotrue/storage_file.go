package gotrue

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	dErrors "moortracker/pkg/domain-errors"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// FileStorage keeps items in a YAML document on disk, readable only by the owner.
// Every write rewrites the whole file through a temp file and rename.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file.
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *FileStorage) SetItem(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *FileStorage) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.write(items)
}

func (f *FileStorage) read() (map[string]string, error) {
	items := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read session file")
	}
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "session file is corrupt")
	}
	if items == nil {
		items = make(map[string]string)
	}
	return items, nil
}

func (f *FileStorage) write(items map[string]string) error {
	raw, err := yaml.Marshal(items)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode session file")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session file")
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session file")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session file")
	}
	if err := tmp.Close(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session file")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write session file")
	}
	return nil
}
