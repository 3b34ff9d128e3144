package handlekit

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultR    *Resolver
	defaultOnce sync.Once
	defaultErr  error

	fallbackR    *Resolver
	fallbackOnce sync.Once
)

// Builder provides a way to create Resolver instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Resolver instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Resolver instance using the builder's prefix
func (b *Builder) New() (*Resolver, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global resolver instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultR, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new resolver with given config
func New(cfg *Config) (*Resolver, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return newResolver(cfg), nil
}

// newResolver builds a resolver without validation. Zero config values
// fall back to built-in defaults at their point of use.
func newResolver(cfg *Config) *Resolver {
	return &Resolver{
		ids:    NewIDMap(),
		client: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second},
		cfg:    *cfg,
	}
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.HTTPTimeoutSeconds < 0 {
		return errors.New("HTTP timeout cannot be negative")
	}
	if cfg.PollIntervalSeconds < 0 {
		return errors.New("poll interval cannot be negative")
	}
	if cfg.MaxListEntries < 0 {
		return errors.New("max list entries cannot be negative")
	}
	return nil
}

// Default returns the global resolver, initializing it from the
// environment if needed
func Default() (*Resolver, error) {
	if defaultR == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultR, nil
}

// defaultResolver backs the package-level convenience functions, which
// have no error to return. When environment loading fails, a resolver
// with the zero configuration serves instead, so identifier mapping and
// location queries keep working regardless.
func defaultResolver() *Resolver {
	if r, err := Default(); err == nil {
		return r
	}
	fallbackOnce.Do(func() {
		fallbackR = newResolver(&Config{})
	})
	return fallbackR
}

// NewFromEnv creates an instance from environment variables (convenience constructor)
func NewFromEnv() (*Resolver, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// InitFromEnv initializes the global instance from environment variables (convenience method)
func InitFromEnv() error {
	return Init()
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultR = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
	fallbackR = nil
	fallbackOnce = sync.Once{}
}
