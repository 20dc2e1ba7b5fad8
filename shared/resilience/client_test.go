package resilience

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration, threshold int) (*Client, *int32) {
	t.Helper()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	breaker := NewCircuitBreaker(TeamService, BreakerSettings{
		FailureThreshold: threshold,
		RecoveryTimeout:  time.Minute,
	})

	return NewClient(TeamService, server.URL+"/", timeout, breaker, server.Client()), &hits
}

func TestClient_Call(t *testing.T) {
	tests := []struct {
		name          string
		handler       http.HandlerFunc
		timeout       time.Duration
		expectedErr   error
		expectedCount int
	}{
		{
			name: "2xx resets the breaker",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"team_id":42}`))
			},
			timeout:       time.Second,
			expectedCount: 0,
		},
		{
			name: "5xx counts as a failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			timeout:       time.Second,
			expectedErr:   ErrRemoteCallFailed,
			expectedCount: 1,
		},
		{
			name: "4xx counts as a failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad", http.StatusBadRequest)
			},
			timeout:       time.Second,
			expectedErr:   ErrRemoteCallFailed,
			expectedCount: 1,
		},
		{
			name: "timeout counts as a failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout:       50 * time.Millisecond,
			expectedErr:   ErrRemoteCallFailed,
			expectedCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, hits := newTestClient(t, tt.handler, tt.timeout, 3)

			resp, err := client.Call(context.Background(), Request{
				Method: http.MethodPost,
				Path:   "/teams",
				Body:   map[string]string{"team_name": "Demo Team"},
			})

			assert.Equal(t, int32(1), atomic.LoadInt32(hits))
			assert.Equal(t, tt.expectedCount, client.Breaker().Snapshot().FailureCount)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.False(t, errors.Is(err, ErrCircuitOpen))
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			var body struct {
				TeamID int64 `json:"team_id"`
			}
			require.NoError(t, resp.Decode(&body))
			assert.Equal(t, int64(42), body.TeamID)
		})
	}
}

func TestClient_SendsJSONBody(t *testing.T) {
	var received map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}, time.Second, 3)

	_, err := client.Call(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/teams",
		Body:   map[string]string{"team_name": "Demo Team"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Demo Team", received["team_name"])
}

func TestClient_OpenCircuitSkipsIO(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, time.Second, 2)

	for i := 0; i < 2; i++ {
		_, err := client.Call(context.Background(), Request{Method: http.MethodGet, Path: "/teams/1"})
		require.ErrorIs(t, err, ErrRemoteCallFailed)
	}

	_, err := client.Call(context.Background(), Request{Method: http.MethodGet, Path: "/teams/1"})

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, OutcomeCircuitOpen, OutcomeOf(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	assert.Equal(t, 2, client.Breaker().Snapshot().FailureCount)
}

func TestClient_CallerCancellationIsNotAFailure(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, time.Second, 1)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := client.Call(ctx, Request{Method: http.MethodPost, Path: "/teams"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, 0, client.Breaker().Snapshot().FailureCount)
	assert.True(t, client.Breaker().CanExecute())
}

func TestClient_RequestBuildErrorsSkipBreaker(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, time.Second, 1)

	_, err := client.Call(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/teams",
		Body:   map[string]interface{}{"bad": make(chan int)},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal team-service request body")
	assert.False(t, errors.Is(err, ErrRemoteCallFailed))
	var callErr *CallError
	assert.False(t, errors.As(err, &callErr))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	assert.Equal(t, 0, client.Breaker().Snapshot().FailureCount)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, OutcomeCircuitOpen, OutcomeOf(&CallError{Dependency: TeamService, CircuitOpen: true}))
	assert.Equal(t, OutcomeFailed, OutcomeOf(&CallError{Dependency: TeamService, StatusCode: 502}))
	assert.Equal(t, OutcomeFailed, OutcomeOf(errors.New("dial tcp: refused")))
}
