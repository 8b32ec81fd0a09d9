// Package jsonstore persists whole JSON documents on disk.
//
// A Document is read in full and rewritten in full on every mutation. Updates
// within one process are serialised by a mutex and land through a temp file
// plus rename, so readers never observe a partially written file. Writers in
// other processes are not coordinated: the last rename wins.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Document is a JSON file holding one value of type T
type Document[T any] struct {
	path     string
	defaults func() T

	mu sync.Mutex
}

// New creates a document stored at path. defaults builds the value written
// when the file does not exist yet.
func New[T any](path string, defaults func() T) *Document[T] {
	return &Document[T]{path: path, defaults: defaults}
}

// Path returns the file location
func (d *Document[T]) Path() string {
	return d.path
}

// EnsureExists creates the parent directory and writes the default value if
// the file is absent. It reports whether the file was created.
func (d *Document[T]) EnsureExists() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return false, fmt.Errorf("create data dir: %w", err)
	}

	_, err := os.Stat(d.path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", d.path, err)
	}

	v := d.defaults()
	if err := d.write(&v); err != nil {
		return false, err
	}
	return true, nil
}

// Load reads the current value from disk
func (d *Document[T]) Load() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read()
}

// Update reads the document, applies fn and writes the result back. Nothing is
// written when fn returns an error.
func (d *Document[T]) Update(fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.read()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return d.write(&v)
}

// Raw returns the file bytes as stored
func (d *Document[T]) Raw() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return os.ReadFile(d.path)
}

func (d *Document[T]) read() (T, error) {
	var v T
	raw, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return d.defaults(), nil
		}
		return v, fmt.Errorf("read %s: %w", d.path, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", d.path, err)
	}
	return v, nil
}

func (d *Document[T]) write(v *T) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", d.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}
