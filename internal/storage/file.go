package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// File хранит пространство имён одним JSON-объектом в файле.
// Запись атомарная: временный файл и rename. Права 0600, так как внутри токен.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile создаёт хранилище в файле path. Отсутствующий файл — пустое пространство имён.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path возвращает путь к файлу.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	const op = "storage.File.Get"
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) SetMany(_ context.Context, values map[string]string) error {
	const op = "storage.File.SetMany"
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	maps.Copy(current, values)
	if err := f.write(current); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	const op = "storage.File.Clear"
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *File) load() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
