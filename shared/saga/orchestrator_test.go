package saga

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/collabhub/platform/shared/events"
	"github.com/collabhub/platform/shared/mocks"
	"github.com/collabhub/platform/shared/resilience"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingJournal struct {
	mu      sync.Mutex
	entries []Entry
	err     error
}

func (j *recordingJournal) Record(_ context.Context, entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return j.err
}

func (j *recordingJournal) types() []EntryType {
	j.mu.Lock()
	defer j.mu.Unlock()
	types := make([]EntryType, len(j.entries))
	for i, e := range j.entries {
		types[i] = e.Type
	}
	return types
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (tr *callLog) add(call string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.calls = append(tr.calls, call)
}

func localStep(tr *callLog, name string, actionErr, compensateErr error) Step {
	return Local(name,
		func(ctx context.Context) (interface{}, error) {
			tr.add(name)
			if actionErr != nil {
				return nil, actionErr
			}
			return name + "-result", nil
		},
		func(ctx context.Context, result interface{}) error {
			tr.add("undo " + name + " " + result.(string))
			return compensateErr
		},
	)
}

func remoteStep(tr *callLog, name string, err error) Step {
	return Remote(name, func(ctx context.Context) (interface{}, error) {
		tr.add(name)
		if err != nil {
			return nil, err
		}
		return name + "-result", nil
	})
}

func TestOrchestrator_Run(t *testing.T) {
	remoteFailure := &resilience.CallError{Dependency: resilience.TeamService, StatusCode: 500}
	circuitOpen := &resilience.CallError{Dependency: resilience.TeamService, CircuitOpen: true}

	tests := []struct {
		name            string
		definition      func(tr *callLog) Definition
		expectedCalls   []string
		expectedErr     error
		expectedReason  Reason
		expectedEntries []EntryType
		validateResult  func(t *testing.T, result *Result)
	}{
		{
			name: "all steps succeed",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "create",
					AbortOnRemoteFailure: true,
					Steps: []Step{
						localStep(tr, "insert", nil, nil),
						remoteStep(tr, "create team", nil),
					},
				}
			},
			expectedCalls:   []string{"insert", "create team"},
			expectedEntries: []EntryType{EntryStarted, EntryStepCompleted, EntryStepCompleted, EntryCompleted},
			validateResult: func(t *testing.T, result *Result) {
				assert.Equal(t, "create team-result", result.Output("create team"))
				assert.NotEmpty(t, result.RunID)
				assert.Empty(t, result.Skipped)
			},
		},
		{
			name: "remote failure compensates in reverse order",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "approve",
					AbortOnRemoteFailure: true,
					Steps: []Step{
						localStep(tr, "accept", nil, nil),
						localStep(tr, "increment", nil, nil),
						remoteStep(tr, "add member", remoteFailure),
						localStep(tr, "never", nil, nil),
					},
				}
			},
			expectedCalls: []string{
				"accept", "increment", "add member",
				"undo increment increment-result", "undo accept accept-result",
			},
			expectedErr:     ErrAborted,
			expectedReason:  ReasonRemoteCallFailed,
			expectedEntries: []EntryType{EntryStarted, EntryStepCompleted, EntryStepCompleted, EntryStepFailed, EntryCompensated},
		},
		{
			name: "open circuit aborts with circuit_open",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "create",
					AbortOnRemoteFailure: true,
					Steps: []Step{
						localStep(tr, "insert", nil, nil),
						remoteStep(tr, "create team", circuitOpen),
					},
				}
			},
			expectedCalls:  []string{"insert", "create team", "undo insert insert-result"},
			expectedErr:    ErrAborted,
			expectedReason: ReasonCircuitOpen,
		},
		{
			name: "tolerated remote failure continues",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "delete",
					AbortOnRemoteFailure: false,
					Steps: []Step{
						remoteStep(tr, "delete team", remoteFailure),
						localStep(tr, "delete project", nil, nil),
					},
				}
			},
			expectedCalls:   []string{"delete team", "delete project"},
			expectedEntries: []EntryType{EntryStarted, EntryStepFailed, EntryStepCompleted, EntryCompleted},
			validateResult: func(t *testing.T, result *Result) {
				require.Len(t, result.Skipped, 1)
				assert.Equal(t, "delete team", result.Skipped[0].Step)
				assert.ErrorIs(t, result.Skipped[0].Err, resilience.ErrRemoteCallFailed)
			},
		},
		{
			name: "local failure compensates and returns the step error",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "create",
					AbortOnRemoteFailure: true,
					Steps: []Step{
						localStep(tr, "insert", nil, nil),
						localStep(tr, "positions", errors.New("duplicate position"), nil),
						remoteStep(tr, "create team", nil),
					},
				}
			},
			expectedCalls: []string{"insert", "positions", "undo insert insert-result"},
		},
		{
			name: "compensation failure is reported",
			definition: func(tr *callLog) Definition {
				return Definition{
					Name:                 "approve",
					AbortOnRemoteFailure: true,
					Steps: []Step{
						localStep(tr, "accept", nil, nil),
						localStep(tr, "increment", nil, errors.New("connection reset")),
						remoteStep(tr, "add member", remoteFailure),
					},
				}
			},
			expectedCalls: []string{
				"accept", "increment", "add member",
				"undo increment increment-result", "undo accept accept-result",
			},
			expectedErr:     ErrCompensationFailed,
			expectedEntries: []EntryType{EntryStarted, EntryStepCompleted, EntryStepCompleted, EntryStepFailed, EntryCompensationFailed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &callLog{}
			journal := &recordingJournal{}
			orchestrator := NewOrchestrator(WithJournal(journal))

			result, err := orchestrator.Run(context.Background(), tt.definition(tr))

			assert.Equal(t, tt.expectedCalls, tr.calls)
			if tt.expectedEntries != nil {
				assert.Equal(t, tt.expectedEntries, journal.types())
			}

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, result)

				reason, ok := ReasonOf(err)
				if tt.expectedReason != "" {
					assert.True(t, ok)
					assert.Equal(t, tt.expectedReason, reason)
				} else {
					assert.False(t, ok)
				}
				return
			}

			if tt.validateResult == nil {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrAborted)
				assert.Contains(t, err.Error(), "duplicate position")
				return
			}

			require.NoError(t, err)
			tt.validateResult(t, result)
		})
	}
}

func TestOrchestrator_CompensationFailureKeepsUndoing(t *testing.T) {
	tr := &callLog{}
	def := Definition{
		Name:                 "approve",
		AbortOnRemoteFailure: true,
		Steps: []Step{
			localStep(tr, "first", nil, errors.New("first broke")),
			localStep(tr, "second", nil, errors.New("second broke")),
			remoteStep(tr, "remote", errors.New("timeout")),
		},
	}

	_, err := NewOrchestrator().Run(context.Background(), def)

	var compensationErr *CompensationFailedError
	require.True(t, errors.As(err, &compensationErr))
	assert.Equal(t, "remote", compensationErr.Step)
	assert.Contains(t, compensationErr.Err.Error(), "first broke")
	assert.Contains(t, compensationErr.Err.Error(), "second broke")
	assert.EqualError(t, compensationErr.Cause, "timeout")
}

func TestOrchestrator_JournalErrorsDoNotFailRun(t *testing.T) {
	tr := &callLog{}
	journal := &recordingJournal{err: errors.New("journal down")}

	result, err := NewOrchestrator(WithJournal(journal)).Run(context.Background(), Definition{
		Name:  "create",
		Steps: []Step{localStep(tr, "insert", nil, nil)},
	})

	require.NoError(t, err)
	assert.Equal(t, "insert-result", result.Output("insert"))
}

func TestOrchestrator_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "missing name", def: Definition{Steps: []Step{Local("a", func(context.Context) (interface{}, error) { return nil, nil }, nil)}}},
		{name: "no steps", def: Definition{Name: "empty"}},
		{name: "missing action", def: Definition{Name: "x", Steps: []Step{{Name: "a", Kind: LocalStep}}}},
		{name: "unknown kind", def: Definition{Name: "x", Steps: []Step{{Name: "a", Action: func(context.Context) (interface{}, error) { return nil, nil }}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrchestrator().Run(context.Background(), tt.def)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestEventStoreJournal_Record(t *testing.T) {
	store := mocks.NewMockEventStore(t)
	journal := NewEventStoreJournal(store)

	runID := "6f1c1d6e-9b8e-4c1a-9d7e-0a1b2c3d4e5f"
	matchesType := func(eventType string) interface{} {
		return mock.MatchedBy(func(evts []*events.Event) bool {
			return len(evts) == 1 && evts[0].EventType == eventType && evts[0].Metadata["saga"] == "create"
		})
	}

	store.EXPECT().SaveEvents(mock.Anything, runID, matchesType(events.SagaStartedEvent), 0).Return(nil).Once()
	store.EXPECT().SaveEvents(mock.Anything, runID, matchesType(events.SagaStepCompletedEvent), 1).Return(nil).Once()
	store.EXPECT().SaveEvents(mock.Anything, runID, matchesType(events.SagaCompletedEvent), 2).Return(nil).Once()

	ctx := context.Background()
	for _, entryType := range []EntryType{EntryStarted, EntryStepCompleted, EntryCompleted} {
		err := journal.Record(ctx, Entry{RunID: "6f1c1d6e-9b8e-4c1a-9d7e-0a1b2c3d4e5f", Saga: "create", Type: entryType})
		require.NoError(t, err)
	}

	assert.Empty(t, journal.versions)
}

func TestOrchestrator_CallerCancellationStillCompensates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	breaker := resilience.NewCircuitBreaker(resilience.TeamService, resilience.BreakerSettings{FailureThreshold: 5})
	client := resilience.NewClient(resilience.TeamService, server.URL, 200*time.Millisecond, breaker, server.Client())

	var (
		mu      sync.Mutex
		created bool
	)
	createProject := Local("create project",
		func(ctx context.Context) (interface{}, error) {
			mu.Lock()
			defer mu.Unlock()
			created = true
			return int64(7), nil
		},
		func(ctx context.Context, _ interface{}) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			created = false
			return nil
		},
	)
	createTeam := Remote("create team", func(ctx context.Context) (interface{}, error) {
		return client.Call(ctx, resilience.Request{Method: http.MethodPost, Path: "/teams"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := NewOrchestrator().Run(ctx, Definition{
		Name:                 "create_project_with_team",
		Steps:                []Step{createProject, createTeam},
		AbortOnRemoteFailure: true,
	})

	require.Error(t, err)
	assert.Error(t, ctx.Err())
	assert.ErrorIs(t, err, ErrAborted)
	assert.False(t, errors.Is(err, ErrCompensationFailed))
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonRemoteCallFailed, reason)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, created)
	assert.Equal(t, 1, breaker.Snapshot().FailureCount)
}

func TestEventStoreJournal_ForgetsRunOnFailedTerminalEntry(t *testing.T) {
	store := mocks.NewMockEventStore(t)
	journal := NewEventStoreJournal(store)

	runID := "0b7c6a52-3f1e-4d2a-8c9b-5e4f3a2b1c0d"
	store.EXPECT().SaveEvents(mock.Anything, runID, mock.Anything, 0).Return(nil).Once()
	store.EXPECT().SaveEvents(mock.Anything, runID, mock.Anything, 1).Return(errors.New("connection reset")).Once()

	ctx := context.Background()
	require.NoError(t, journal.Record(ctx, Entry{RunID: "0b7c6a52-3f1e-4d2a-8c9b-5e4f3a2b1c0d", Saga: "delete", Type: EntryStarted}))
	err := journal.Record(ctx, Entry{RunID: "0b7c6a52-3f1e-4d2a-8c9b-5e4f3a2b1c0d", Saga: "delete", Type: EntryCompensationFailed})

	assert.EqualError(t, err, "connection reset")
	assert.Empty(t, journal.versions)
}
