package handlekit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// HTTP client timeout in seconds for URL-backed queries and handles.
	// 0 keeps the default of no timeout; metadata queries and transfers
	// block until the server answers, and callers needing bounded
	// latency set this.
	HTTPTimeoutSeconds int `env:"HANDLEKIT_HTTP_TIMEOUT_SECONDS,default:0"`

	// User-Agent header sent with every request; empty uses Go's default
	HTTPUserAgent string `env:"HANDLEKIT_HTTP_USER_AGENT"`

	// Polling interval in seconds for watching URL-backed locations
	PollIntervalSeconds int `env:"HANDLEKIT_POLL_INTERVAL_SECONDS,default:5"`

	// Upper bound on entries collected from a remote directory listing.
	// Each candidate entry costs an existence probe, so a cap keeps a
	// pathological listing page from turning into an unbounded request
	// storm. 0 means no bound.
	MaxListEntries int `env:"HANDLEKIT_MAX_LIST_ENTRIES,default:0"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
