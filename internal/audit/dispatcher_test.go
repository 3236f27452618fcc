package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-appointments/internal/db/dbtest"
	"github.com/BruksfildServices01/barbershop-appointments/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Write(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_DeliversToEverySink(t *testing.T) {
	failing := &memorySink{err: errors.New("down")}
	ok := &memorySink{}
	d := NewDispatcher(quietLogger(), failing, ok)

	id := uuid.New()
	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{Action: "appointment_completed", Entity: "appointment", EntityID: &id})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	require.Len(t, ok.events, 2)
	assert.Len(t, failing.events, 2)
	assert.Equal(t, "appointment_created", ok.events[0].Action)
	assert.False(t, ok.events[0].OccurredAt.IsZero())
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(quietLogger(), sink)
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()))

	d.Dispatch(Event{Action: "late"})
	assert.Empty(t, sink.events)

	var nilDispatcher *Dispatcher
	nilDispatcher.Dispatch(Event{Action: "ignored"})
}

func TestLogger_PersistsEvent(t *testing.T) {
	db := dbtest.New(t)
	d := NewDispatcher(quietLogger(), New(db))

	id := uuid.New()
	ctx := WithActor(context.Background(), "user-1")
	d.Dispatch(Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
		ActorID:  ActorFrom(ctx),
		Metadata: map[string]string{"time": "14:30"},
	})
	require.NoError(t, d.Close(context.Background()))

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_deleted", logs[0].Action)
	assert.Equal(t, "user-1", logs[0].ActorID)
	require.NotNil(t, logs[0].EntityID)
	assert.Equal(t, id, *logs[0].EntityID)
	assert.JSONEq(t, `{"time":"14:30"}`, logs[0].Metadata)
}

func TestActorFrom_Empty(t *testing.T) {
	assert.Empty(t, ActorFrom(context.Background()))
}
