package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey — фиксированный ключ, под которым хранится bearer токен.
const TokenKey = "auth_token"

// Storage — долговременное key-value хранилище клиента.
//
// Чтение и запись синхронные. Реализации: FileStorage (файл в домашней
// директории) и memory.Storage (в памяти, для тестов и --ephemeral).
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage хранит пары ключ/значение в JSON-файле вида:
//
//	{ "auth_token": "..." }
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage создаёт хранилище поверх файла path. Файл может не существовать.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path возвращает путь к файлу хранилища.
func (s *FileStorage) Path() string {
	return s.path
}

// Get возвращает значение по ключу. Отсутствующий файл — пустое хранилище.
func (s *FileStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set сохраняет значение по ключу и перезаписывает файл.
func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Delete удаляет ключ. Если файла нет, ничего не делает.
func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStorage) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	// файл с null даёт nil map
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (s *FileStorage) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
