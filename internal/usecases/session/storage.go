package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Chaves do armazenamento de escopo de sessão, as mesmas do front original.
const (
	TokenKey   = "auth-token"
	ProfileKey = "user"
)

// Storage é o análogo do sessionStorage do navegador: um mapa chave/valor
// cujo conteúdo inteiro é descartado no sign-out.
type Storage interface {
	Set(key, value string) error
	Get(key string) (string, bool)
	Clear() error
}

// Memory vive apenas enquanto o processo vive, como o sessionStorage de uma aba.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	return value, ok
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
	return nil
}

// File persiste o mapa num arquivo JSON, permitindo que o token sobreviva a
// um restart do console dentro da mesma sessão de login. Clear remove o
// arquivo inteiro.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

func NewFile(path string) (*File, error) {
	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err = json.Unmarshal(data, &f.values); err != nil {
		// Arquivo corrompido equivale a sessão nenhuma.
		f.values = make(map[string]string)
	}

	return f, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.flush()
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.values[key]
	return value, ok
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = make(map[string]string)

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

func (f *File) flush() error {
	data, err := json.Marshal(f.values)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	if err = os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
