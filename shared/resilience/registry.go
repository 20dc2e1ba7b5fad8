package resilience

import (
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DependencyConfig describes how to reach one dependency.
type DependencyConfig struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	RecoveryTimeout  time.Duration
}

// Registry owns one breaker and one client per configured dependency. It is
// built once at startup and shared by all requests.
type Registry struct {
	mu      sync.RWMutex
	clients map[DependencyName]*Client
}

type registryOptions struct {
	httpClient     *http.Client
	breakerOptions []BreakerOption
}

// RegistryOption customises a Registry.
type RegistryOption func(*registryOptions)

// WithHTTPClient shares httpClient across all dependencies.
func WithHTTPClient(httpClient *http.Client) RegistryOption {
	return func(o *registryOptions) {
		o.httpClient = httpClient
	}
}

// WithBreakerOptions applies opts to every breaker the registry creates.
func WithBreakerOptions(opts ...BreakerOption) RegistryOption {
	return func(o *registryOptions) {
		o.breakerOptions = append(o.breakerOptions, opts...)
	}
}

// NewRegistry validates deps and creates their breakers and clients.
func NewRegistry(deps map[DependencyName]DependencyConfig, opts ...RegistryOption) (*Registry, error) {
	options := &registryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.httpClient == nil {
		options.httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	registry := &Registry{clients: make(map[DependencyName]*Client, len(deps))}
	for name, cfg := range deps {
		if err := cfg.validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid config for %s", name)
		}

		breaker := NewCircuitBreaker(name, BreakerSettings{
			FailureThreshold: cfg.FailureThreshold,
			RecoveryTimeout:  cfg.RecoveryTimeout,
		}, options.breakerOptions...)

		registry.clients[name] = NewClient(name, cfg.BaseURL, cfg.Timeout, breaker, options.httpClient)
	}

	return registry, nil
}

func (c DependencyConfig) validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.Wrap(err, "failed to parse base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("unsupported scheme %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// Client returns the client for name.
func (r *Registry) Client(name DependencyName) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownDependency, string(name))
	}
	return client, nil
}

// Breaker returns the breaker for name, or nil if it is not configured.
func (r *Registry) Breaker(name DependencyName) *CircuitBreaker {
	client, err := r.Client(name)
	if err != nil {
		return nil
	}
	return client.Breaker()
}

// Dependencies lists the configured dependency names in sorted order.
func (r *Registry) Dependencies() []DependencyName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]DependencyName, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Snapshot reports every breaker's state.
func (r *Registry) Snapshot() map[DependencyName]Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make(map[DependencyName]Snapshot, len(r.clients))
	for name, client := range r.clients {
		snapshots[name] = client.Breaker().Snapshot()
	}
	return snapshots
}
