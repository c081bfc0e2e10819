// Package storage persists the bot's "last used services" and generation
// counters in a JSON file. The store is an injected instance; nothing in
// the codebase imports a global.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Data is the persisted snapshot.
type Data struct {
	LastServices       []string   `json:"last_services"`
	LastGenerationDate *time.Time `json:"last_generation_date"`
	GenerationCount    int        `json:"generation_count"`
}

// Stats summarizes generation history for display.
type Stats struct {
	Count             int
	LastDate          *time.Time
	LastServicesCount int
}

// FileStore is a mutex-guarded JSON-file store. Every write rewrites the
// whole file; the data is a handful of strings, so durability beats cleverness.
type FileStore struct {
	mu     sync.Mutex
	path   string
	data   Data
	logger *slog.Logger
}

// defaultServices seeds a fresh store so the bot has something to offer on
// first /generate.
var defaultServices = []string{
	"Анализ и реализация инвестиционных проектов (Кракен, Citymall)",
	"Ведение проекта редомицилиации MLOne",
	"Актуализация соглашений по существующим инвестициям и анализ перспективных инвестиций в BeOnd",
	"Реализация проекта по аналитике портфельной аллокации",
}

// Open loads the store from path, creating parent directories and seeding
// defaults when the file is missing or unreadable.
func Open(path string, logger *slog.Logger) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage dir: %w", err)
		}
	}
	s := &FileStore{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.data = Data{LastServices: append([]string(nil), defaultServices...)}
	case err != nil:
		return nil, fmt.Errorf("reading storage file: %w", err)
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			logger.Warn("storage file corrupt, starting fresh", "path", path, "error", err)
			s.data = Data{LastServices: append([]string(nil), defaultServices...)}
		}
	}
	return s, nil
}

// GetLastServices returns a copy of the last used service descriptions.
func (s *FileStore) GetLastServices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.data.LastServices...)
}

// SetLastServices records the services of a completed generation run,
// stamps the time and bumps the counter.
func (s *FileStore) SetLastServices(services []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.data.LastServices = append([]string(nil), services...)
	s.data.LastGenerationDate = &now
	s.data.GenerationCount++
	return s.flushLocked()
}

// GetStats returns generation statistics.
func (s *FileStore) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Count:             s.data.GenerationCount,
		LastDate:          s.data.LastGenerationDate,
		LastServicesCount: len(s.data.LastServices),
	}
}

func (s *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
