package cafeclient

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by cafeclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Guard   GuardConfig
	Paging  PagingConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by cafeclient APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by cafeclient APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// StoragePrefix namespaces the session keys when a shared backend
	// (Redis) holds more than one client instance's session.
	StoragePrefix string

	// SkipStartupCheck trusts an unexpired replayed session without
	// confirming it with the backend first.
	SkipStartupCheck bool
}

/*
====================================
GUARD CONFIG
====================================
*/

// GuardConfig defines a public type used by cafeclient APIs.
//
// GuardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardConfig struct {
	// AccountRoute is where the guard sends a logged-out visitor of a
	// protected route.
	AccountRoute string
}

/*
====================================
PAGING CONFIG
====================================
*/

// PagingConfig defines a public type used by cafeclient APIs.
//
// PagingConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PagingConfig struct {
	DefaultPageSize int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by cafeclient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by cafeclient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout: 15 * time.Second,
		},
		Session: SessionConfig{
			StoragePrefix:    "cafe",
			SkipStartupCheck: false,
		},
		Guard: GuardConfig{
			AccountRoute: "/konto",
		},
		Paging: PagingConfig{
			DefaultPageSize: 10,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Session
	if c.Session.StoragePrefix == "" {
		return errors.New("Session StoragePrefix is required")
	}

	// Guard
	if c.Guard.AccountRoute == "" {
		return errors.New("Guard AccountRoute is required")
	}
	if !strings.HasPrefix(c.Guard.AccountRoute, "/") {
		return errors.New("Guard AccountRoute must start with '/'")
	}

	// Paging
	if c.Paging.DefaultPageSize <= 0 {
		return errors.New("Paging DefaultPageSize must be > 0")
	}
	if c.Paging.DefaultPageSize > 100 {
		return errors.New("Paging DefaultPageSize must be <= 100")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
