package pricing

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML pricing document over DefaultConfig and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode pricing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}
	return cfg, nil
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config %s: %w", path, err)
	}
	return Parse(data)
}

// Store hands out the active pricing config. Readers never block on a reload.
type Store struct {
	path    string
	current atomic.Pointer[Config]

	mu       sync.Mutex
	onReload []func(*Config)
}

// NewStore loads path, or uses DefaultConfig when path is empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	s.current.Store(cfg)
	return s, nil
}

// NewStaticStore wraps a fixed config; Reload and Watch are no-ops.
func NewStaticStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

func (s *Store) Current() *Config {
	return s.current.Load()
}

// Reload re-reads the file. On error the previous config stays active.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	cfg, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	prev := s.current.Swap(cfg)
	slog.Info("pricing config reloaded", "path", s.path, "previous_version", prev.Version, "version", cfg.Version)

	s.mu.Lock()
	hooks := append([]func(*Config){}, s.onReload...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(cfg)
	}
	return nil
}

// OnReload registers fn to run with the new config after every successful reload.
func (s *Store) OnReload(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the config whenever its file changes, until ctx is cancelled.
// The parent directory is watched so editors that replace the file are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)
	slog.Info("pricing config watcher started", "path", target)

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("pricing config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := s.Reload(); err != nil {
				slog.Error("pricing config reload failed, keeping previous config", "path", target, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Error("pricing config watcher error", "error", err)
		}
	}
}
