// Package memory содержит in-memory реализацию хранилища клиента.
//
// Используется как test double для config.Storage и в режиме --ephemeral,
// когда токен не должен переживать завершение процесса.
package memory

import "sync"

// Storage — потокобезопасное in-memory key-value хранилище.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStorage создаёт пустое хранилище.
func NewStorage() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get возвращает значение по ключу.
func (s *Storage) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

// Set сохраняет значение по ключу.
func (s *Storage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete удаляет ключ. Отсутствие ключа не является ошибкой.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Snapshot возвращает копию содержимого.
func (s *Storage) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
