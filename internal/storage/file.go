package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileKV stores all keys in a single JSON document on disk. The document is
// parsed on every read and rewritten whole on every write; an absent or
// corrupt file reads as empty. Writes go through a temp file and rename so a
// crash mid-write cannot truncate the store.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a FileKV backed by the file at path. The file is created
// lazily on first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (f *FileKV) load() map[string]string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return map[string]string{}
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]string{}
	}
	return m
}

func (f *FileKV) save(m map[string]string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Get returns the value stored under key.
func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.load()[key]
	return v, ok, nil
}

// Set stores value under key, rewriting the whole document.
func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.load()
	m[key] = value
	return f.save(m)
}

// Delete removes key from the document. Deleting an absent key is a no-op.
func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.load()
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return f.save(m)
}
