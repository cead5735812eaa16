package cafeclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rymdrosten/cafeclient/api"
	"github.com/rymdrosten/cafeclient/session"
)

// Builder defines a public type used by cafeclient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	storage    session.Storage
	redis      redis.UniversalClient
	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithStoragePrefix describes the withstorageprefix operation and its observable behavior.
//
// WithStoragePrefix does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStoragePrefix(prefix string) *Builder {
	b.config.Session.StoragePrefix = prefix
	return b
}

// WithTimeout describes the withtimeout operation and its observable behavior.
//
// WithTimeout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.API.Timeout = timeout
	return b
}

// WithDefaultPageSize describes the withdefaultpagesize operation and its observable behavior.
//
// WithDefaultPageSize does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDefaultPageSize(size int) *Builder {
	b.config.Paging.DefaultPageSize = size
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.storage != nil && b.redis != nil {
		return nil, errors.New("WithStorage and WithRedis are mutually exclusive")
	}

	// -------- SESSION STORAGE --------
	storage := b.storage
	if storage == nil {
		if b.redis != nil {
			storage = session.NewRedisStorage(b.redis, cfg.Session.StoragePrefix)
		} else {
			storage = session.NewMemoryStorage()
		}
	}

	// -------- SESSION STORE --------
	// The verifier is attached after the api client exists; see SetVerifier.
	sessions := session.NewStore(storage, nil)

	client := &Client{
		config:   cfg,
		sessions: sessions,
		metrics:  NewMetrics(cfg.Metrics),
		audit:    newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	// -------- API CLIENT --------
	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}

	backend, err := api.NewClient(api.Config{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: httpClient,
		Tokens:     sessions,
		UserAgent:  cfg.API.UserAgent,
		Observe: func(route string, d time.Duration, err error) {
			if err != nil {
				client.metrics.Inc(MetricRequestFailure)
			} else {
				client.metrics.Inc(MetricRequestSuccess)
			}
			client.metrics.Observe(MetricRequestLatency, d)
		},
	})
	if err != nil {
		client.audit.Close()
		return nil, err
	}
	client.backend = backend

	if !cfg.Session.SkipStartupCheck {
		sessions.SetVerifier(backend)
	}

	// The store announces every transition; the client attributes each
	// logout to its cause for metrics and audit.
	client.unsubscribe = sessions.Subscribe(client.onLoginChange)

	b.built = true

	return client, nil
}
