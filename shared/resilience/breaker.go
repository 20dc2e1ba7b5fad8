package resilience

import (
	"sync"
	"time"

	"github.com/collabhub/platform/shared/logger"
	"go.uber.org/zap"
)

// DependencyName identifies a remote collaborator.
type DependencyName string

const (
	TeamService         DependencyName = "team-service"
	NotificationService DependencyName = "notification-service"
)

// State is the externally visible breaker state.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
	// StateProbing is reported for an open breaker whose recovery timeout has
	// elapsed, i.e. the next call will be let through.
	StateProbing State = "probing"
)

const (
	DefaultFailureThreshold = 5
	DefaultRecoveryTimeout  = 30 * time.Second
)

// circuitState is either closed{} or open{since}.
type circuitState interface {
	isCircuitState()
}

type closed struct{}

type open struct {
	since time.Time
}

func (closed) isCircuitState() {}
func (open) isCircuitState()   {}

// BreakerSettings configures a CircuitBreaker.
type BreakerSettings struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = DefaultFailureThreshold
	}
	if s.RecoveryTimeout <= 0 {
		s.RecoveryTimeout = DefaultRecoveryTimeout
	}
	return s
}

// CircuitBreaker tracks consecutive failures of one dependency. After
// FailureThreshold failures it opens and rejects calls until RecoveryTimeout
// has passed since the last failure; then every caller may probe. A probe
// success closes the breaker, a probe failure restarts the cool-down.
type CircuitBreaker struct {
	name     DependencyName
	settings BreakerSettings
	now      func() time.Time

	mu           sync.Mutex
	failureCount int
	lastFailure  time.Time
	state        circuitState
}

// BreakerOption customises a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithClock replaces the time source.
func WithClock(now func() time.Time) BreakerOption {
	return func(b *CircuitBreaker) {
		b.now = now
	}
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(name DependencyName, settings BreakerSettings, opts ...BreakerOption) *CircuitBreaker {
	b := &CircuitBreaker{
		name:     name,
		settings: settings.withDefaults(),
		now:      time.Now,
		state:    closed{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the dependency guarded by the breaker.
func (b *CircuitBreaker) Name() DependencyName {
	return b.name
}

// CanExecute reports whether a call may be attempted now.
func (b *CircuitBreaker) CanExecute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch s := b.state.(type) {
	case open:
		if b.now().Sub(s.since) >= b.settings.RecoveryTimeout {
			logger.Info("circuit probe allowed", zap.String("dependency", string(b.name)))
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess closes the breaker and resets the failure count.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	_, wasOpen := b.state.(open)
	b.failureCount = 0
	b.state = closed{}
	b.mu.Unlock()

	if wasOpen {
		logger.Info("circuit closed", zap.String("dependency", string(b.name)))
	}
}

// RecordFailure counts a failure and opens the breaker once the threshold is
// reached.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	now := b.now()
	b.failureCount++
	b.lastFailure = now

	opened := false
	count := b.failureCount
	if b.failureCount >= b.settings.FailureThreshold {
		_, opened = b.state.(closed)
		b.state = open{since: now}
	}
	b.mu.Unlock()

	if opened {
		logger.Warn("circuit opened",
			zap.String("dependency", string(b.name)),
			zap.Int("consecutive_failures", count),
		)
	}
}

// Snapshot is a point-in-time view of a breaker.
type Snapshot struct {
	State        State      `json:"state"`
	FailureCount int        `json:"failure_count"`
	LastFailure  *time.Time `json:"last_failure,omitempty"`
}

// IsOpen reports whether calls are currently being rejected.
func (s Snapshot) IsOpen() bool {
	return s.State == StateOpen
}

// Snapshot returns the current breaker state.
func (b *CircuitBreaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := Snapshot{
		State:        StateClosed,
		FailureCount: b.failureCount,
	}

	if !b.lastFailure.IsZero() {
		lastFailure := b.lastFailure
		snapshot.LastFailure = &lastFailure
	}

	if s, ok := b.state.(open); ok {
		snapshot.State = StateOpen
		if b.now().Sub(s.since) >= b.settings.RecoveryTimeout {
			snapshot.State = StateProbing
		}
	}

	return snapshot
}
