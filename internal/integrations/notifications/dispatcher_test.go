package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/pkg/logger"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
	closed bool
}

func (s *recordingSink) Send(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDeliversInBackground(t *testing.T) {
	sink := &recordingSink{}
	d, err := NewDispatcher(sink, 4, nil, logger.NewNop())
	require.NoError(t, err)

	for i := int64(1); i <= 10; i++ {
		d.Notify(Event{Kind: KindPriceConfirmation, OrderItemID: i})
	}

	assert.Eventually(t, func() bool { return sink.count() == 10 }, time.Second, 5*time.Millisecond)
	require.NoError(t, d.Close(time.Second))
	assert.True(t, sink.closed)
}

func TestDispatcherSwallowsSinkErrors(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	d, err := NewDispatcher(sink, 1, nil, logger.NewNop())
	require.NoError(t, err)

	assert.NotPanics(t, func() { d.Notify(Event{Kind: KindPriceConfirmation, OrderItemID: 1}) })
	assert.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, d.Close(time.Second))
}
