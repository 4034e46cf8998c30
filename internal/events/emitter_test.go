package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftforge/draftforge-api/internal/events"
)

// funcHandler adapts a function to the EventHandler interface.
type funcHandler struct {
	fn func(ctx context.Context, event *events.JobLifecycleEvent) error
}

func (h *funcHandler) HandleEvent(ctx context.Context, event *events.JobLifecycleEvent) error {
	return h.fn(ctx, event)
}

func TestNewJobLifecycleEvent(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()
	event := events.NewJobLifecycleEvent(jobID, "document_generation", "processing")

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, jobID, event.JobID)
	assert.Equal(t, "document_generation", event.JobType)
	assert.Equal(t, "processing", event.Status)
	assert.WithinDuration(t, time.Now().UTC(), event.CreatedAt, time.Minute)
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to every registered handler", func(t *testing.T) {
		t.Parallel()

		var firstSeen, secondSeen *events.JobLifecycleEvent
		emitter := events.NewInMemoryEventEmitter(nil)
		emitter.RegisterHandler(&funcHandler{fn: func(ctx context.Context, e *events.JobLifecycleEvent) error {
			firstSeen = e
			return nil
		}})
		emitter.RegisterHandler(&funcHandler{fn: func(ctx context.Context, e *events.JobLifecycleEvent) error {
			secondSeen = e
			return nil
		}})

		event := events.NewJobLifecycleEvent(uuid.New(), "document_generation", "completed")
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, event, firstSeen)
		assert.Equal(t, event, secondSeen)
	})

	t.Run("handler failure does not stop delivery", func(t *testing.T) {
		t.Parallel()

		handlerErr := errors.New("handler broke")
		var laterCalled bool

		emitter := events.NewInMemoryEventEmitter(nil)
		emitter.RegisterHandler(&funcHandler{fn: func(ctx context.Context, e *events.JobLifecycleEvent) error {
			return handlerErr
		}})
		emitter.RegisterHandler(&funcHandler{fn: func(ctx context.Context, e *events.JobLifecycleEvent) error {
			laterCalled = true
			return nil
		}})

		event := events.NewJobLifecycleEvent(uuid.New(), "document_generation", "failed")
		err := emitter.EmitEvent(context.Background(), event)

		assert.ErrorIs(t, err, handlerErr)
		assert.True(t, laterCalled)
	})

	t.Run("no handlers is a no-op", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(nil)
		event := events.NewJobLifecycleEvent(uuid.New(), "document_generation", "pending")
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})
}
