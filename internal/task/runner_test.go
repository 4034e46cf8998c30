package task_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge-api/internal/events"
	"github.com/draftforge/draftforge-api/internal/mocks"
	"github.com/draftforge/draftforge-api/internal/task"
)

// stubJob is a minimal Job implementation for runner tests.
type stubJob struct {
	id         uuid.UUID
	executeFn  func(ctx context.Context) error
	documentID uuid.UUID
}

func newStubJob() *stubJob {
	return &stubJob{id: uuid.New()}
}

func (j *stubJob) ID() uuid.UUID { return j.id }

func (j *stubJob) Type() string { return task.JobTypeDocumentGeneration }

func (j *stubJob) Payload() []byte { return []byte(`{}`) }

func (j *stubJob) Status() task.JobStatus { return task.JobStatusPending }

func (j *stubJob) DocumentID() uuid.UUID { return j.documentID }

func (j *stubJob) Execute(ctx context.Context) error {
	if j.executeFn != nil {
		return j.executeFn(ctx)
	}
	return nil
}

// stubFactory rehydrates records through a test-provided function.
type stubFactory struct {
	rehydrateFn func(record *task.JobRecord) (task.Job, error)
}

func (f *stubFactory) Rehydrate(record *task.JobRecord) (task.Job, error) {
	if f.rehydrateFn != nil {
		return f.rehydrateFn(record)
	}
	return newStubJob(), nil
}

// transitionRecorder collects UpdateJobStatus calls and signals when a
// terminal status lands.
type transitionRecorder struct {
	mu       sync.Mutex
	statuses []task.JobStatus
	errors   []string
	docIDs   []uuid.UUID
	done     chan struct{}
	once     sync.Once
}

func newTransitionRecorder() *transitionRecorder {
	return &transitionRecorder{done: make(chan struct{})}
}

func (r *transitionRecorder) record(status task.JobStatus, errMsg string, documentID uuid.UUID) {
	r.mu.Lock()
	r.statuses = append(r.statuses, status)
	r.errors = append(r.errors, errMsg)
	r.docIDs = append(r.docIDs, documentID)
	r.mu.Unlock()

	if status == task.JobStatusCompleted || status == task.JobStatusFailed {
		r.once.Do(func() { close(r.done) })
	}
}

func (r *transitionRecorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for terminal job status")
	}
}

func (r *transitionRecorder) snapshot() ([]task.JobStatus, []string, []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]task.JobStatus(nil), r.statuses...),
		append([]string(nil), r.errors...),
		append([]uuid.UUID(nil), r.docIDs...)
}

func newRecordingStore(rec *transitionRecorder) *mocks.MockJobStore {
	return &mocks.MockJobStore{
		SaveJobFn: func(ctx context.Context, job task.Job) error { return nil },
		UpdateJobStatusFn: func(ctx context.Context, jobID uuid.UUID, status task.JobStatus, errMsg string, documentID uuid.UUID) error {
			rec.record(status, errMsg, documentID)
			return nil
		},
		GetPendingJobsFn: func(ctx context.Context) ([]*task.JobRecord, error) {
			return nil, nil
		},
		GetProcessingJobsFn: func(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error) {
			return nil, nil
		},
	}
}

func TestJobRunnerProcessesSubmittedJob(t *testing.T) {
	t.Parallel()

	rec := newTransitionRecorder()
	runner := task.NewJobRunner(newRecordingStore(rec), &stubFactory{}, task.JobRunnerConfig{WorkerCount: 1}, nil)

	require.NoError(t, runner.Start())
	defer runner.Stop()

	job := newStubJob()
	job.documentID = uuid.New()
	require.NoError(t, runner.Submit(context.Background(), job))

	rec.wait(t)

	statuses, _, docIDs := rec.snapshot()
	require.Len(t, statuses, 2)
	assert.Equal(t, task.JobStatusProcessing, statuses[0])
	assert.Equal(t, task.JobStatusCompleted, statuses[1])

	// Completion records the produced document ID from the carrier.
	assert.Equal(t, job.documentID, docIDs[1])
}

func TestJobRunnerRecordsFailure(t *testing.T) {
	t.Parallel()

	rec := newTransitionRecorder()
	runner := task.NewJobRunner(newRecordingStore(rec), &stubFactory{}, task.JobRunnerConfig{WorkerCount: 1}, nil)

	require.NoError(t, runner.Start())
	defer runner.Stop()

	job := newStubJob()
	job.executeFn = func(ctx context.Context) error {
		return errors.New("session exploded")
	}
	require.NoError(t, runner.Submit(context.Background(), job))

	rec.wait(t)

	statuses, errMsgs, docIDs := rec.snapshot()
	require.Len(t, statuses, 2)
	assert.Equal(t, task.JobStatusFailed, statuses[1])
	assert.Equal(t, "session exploded", errMsgs[1])
	assert.Equal(t, uuid.Nil, docIDs[1])
}

func TestJobRunnerSubmitPersistsBeforeQueueing(t *testing.T) {
	t.Parallel()

	saveErr := errors.New("store unavailable")
	store := &mocks.MockJobStore{
		SaveJobFn: func(ctx context.Context, job task.Job) error { return saveErr },
	}

	runner := task.NewJobRunner(store, &stubFactory{}, task.JobRunnerConfig{}, nil)

	err := runner.Submit(context.Background(), newStubJob())
	assert.ErrorIs(t, err, saveErr)
}

func TestJobRunnerQueueFull(t *testing.T) {
	t.Parallel()

	store := &mocks.MockJobStore{
		SaveJobFn: func(ctx context.Context, job task.Job) error { return nil },
	}

	// One queue slot and no started workers: the second submit has nowhere
	// to go.
	runner := task.NewJobRunner(store, &stubFactory{}, task.JobRunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)

	require.NoError(t, runner.Submit(context.Background(), newStubJob()))
	err := runner.Submit(context.Background(), newStubJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestJobRunnerSubmitAfterStop(t *testing.T) {
	t.Parallel()

	saved := 0
	store := &mocks.MockJobStore{
		SaveJobFn: func(ctx context.Context, job task.Job) error {
			saved++
			return nil
		},
		GetPendingJobsFn: func(ctx context.Context) ([]*task.JobRecord, error) {
			return nil, nil
		},
		GetProcessingJobsFn: func(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error) {
			return nil, nil
		},
	}

	runner := task.NewJobRunner(store, &stubFactory{}, task.JobRunnerConfig{WorkerCount: 1}, nil)
	require.NoError(t, runner.Start())
	runner.Stop()

	// A handler may race shutdown; the submit must refuse cleanly rather
	// than panic or enqueue work no worker will pick up.
	err := runner.Submit(context.Background(), newStubJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped")
	assert.Equal(t, 0, saved)
}

func TestJobRunnerRecovery(t *testing.T) {
	t.Parallel()

	t.Run("pending and interrupted jobs are requeued", func(t *testing.T) {
		t.Parallel()

		pendingRecord := &task.JobRecord{
			ID:      uuid.New(),
			Type:    task.JobTypeDocumentGeneration,
			Payload: []byte(`{}`),
			Status:  task.JobStatusPending,
		}
		processingRecord := &task.JobRecord{
			ID:      uuid.New(),
			Type:    task.JobTypeDocumentGeneration,
			Payload: []byte(`{}`),
			Status:  task.JobStatusProcessing,
		}

		var executed sync.Map
		var wg sync.WaitGroup
		wg.Add(2)

		factory := &stubFactory{
			rehydrateFn: func(record *task.JobRecord) (task.Job, error) {
				job := newStubJob()
				job.id = record.ID
				job.executeFn = func(ctx context.Context) error {
					if _, loaded := executed.LoadOrStore(job.id, true); !loaded {
						wg.Done()
					}
					return nil
				}
				return job, nil
			},
		}

		var mu sync.Mutex
		resets := map[uuid.UUID]task.JobStatus{}
		store := &mocks.MockJobStore{
			GetPendingJobsFn: func(ctx context.Context) ([]*task.JobRecord, error) {
				return []*task.JobRecord{pendingRecord}, nil
			},
			GetProcessingJobsFn: func(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error) {
				return []*task.JobRecord{processingRecord}, nil
			},
			UpdateJobStatusFn: func(ctx context.Context, jobID uuid.UUID, status task.JobStatus, errMsg string, documentID uuid.UUID) error {
				mu.Lock()
				defer mu.Unlock()
				if _, seen := resets[jobID]; !seen && status == task.JobStatusPending {
					resets[jobID] = status
				}
				return nil
			},
		}

		runner := task.NewJobRunner(store, factory, task.JobRunnerConfig{WorkerCount: 1}, nil)
		require.NoError(t, runner.Start())
		defer runner.Stop()

		waitDone := make(chan struct{})
		go func() {
			wg.Wait()
			close(waitDone)
		}()

		select {
		case <-waitDone:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for recovered jobs to execute")
		}

		// The interrupted job was reset to pending before requeueing.
		mu.Lock()
		_, reset := resets[processingRecord.ID]
		mu.Unlock()
		assert.True(t, reset)
	})

	t.Run("unrehydratable job is marked failed", func(t *testing.T) {
		t.Parallel()

		badRecord := &task.JobRecord{
			ID:     uuid.New(),
			Type:   "unknown_type",
			Status: task.JobStatusPending,
		}

		rehydrateErr := errors.New("unknown job type")
		factory := &stubFactory{
			rehydrateFn: func(record *task.JobRecord) (task.Job, error) {
				return nil, rehydrateErr
			},
		}

		var mu sync.Mutex
		var failedID uuid.UUID
		var failedMsg string
		store := &mocks.MockJobStore{
			GetPendingJobsFn: func(ctx context.Context) ([]*task.JobRecord, error) {
				return []*task.JobRecord{badRecord}, nil
			},
			GetProcessingJobsFn: func(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error) {
				return nil, nil
			},
			UpdateJobStatusFn: func(ctx context.Context, jobID uuid.UUID, status task.JobStatus, errMsg string, documentID uuid.UUID) error {
				mu.Lock()
				defer mu.Unlock()
				if status == task.JobStatusFailed {
					failedID = jobID
					failedMsg = errMsg
				}
				return nil
			},
		}

		runner := task.NewJobRunner(store, factory, task.JobRunnerConfig{WorkerCount: 1}, nil)
		require.NoError(t, runner.Start())
		defer runner.Stop()

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, badRecord.ID, failedID)
		assert.Equal(t, rehydrateErr.Error(), failedMsg)
	})
}

func TestJobRunnerEmitsLifecycleEvents(t *testing.T) {
	t.Parallel()

	rec := newTransitionRecorder()

	var mu sync.Mutex
	var received []*events.JobLifecycleEvent
	handler := &recordingHandler{
		fn: func(ctx context.Context, event *events.JobLifecycleEvent) error {
			mu.Lock()
			received = append(received, event)
			mu.Unlock()
			return nil
		},
	}

	emitter := events.NewInMemoryEventEmitter(nil)
	emitter.RegisterHandler(handler)

	runner := task.NewJobRunner(newRecordingStore(rec), &stubFactory{}, task.JobRunnerConfig{WorkerCount: 1}, nil)
	runner.SetEventEmitter(emitter)

	require.NoError(t, runner.Start())

	job := newStubJob()
	job.documentID = uuid.New()
	require.NoError(t, runner.Submit(context.Background(), job))

	rec.wait(t)
	// Stop drains the worker so the completion event has been emitted.
	runner.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, string(task.JobStatusProcessing), received[0].Status)
	assert.Equal(t, string(task.JobStatusCompleted), received[1].Status)
	assert.Equal(t, job.ID(), received[1].JobID)
	assert.Equal(t, job.documentID, received[1].DocumentID)
}

// recordingHandler adapts a function to the events.EventHandler interface.
type recordingHandler struct {
	fn func(ctx context.Context, event *events.JobLifecycleEvent) error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *events.JobLifecycleEvent) error {
	return h.fn(ctx, event)
}
