package review

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr/visitreview/internal/fixtures"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestService(idle time.Duration) (*Service, *fakeClock, map[uuid.UUID]*recorder) {
	clock := &fakeClock{now: fixedNow}
	recs := map[uuid.UUID]*recorder{}
	svc := NewService(fixtures.Static(), func(id uuid.UUID) Emitter {
		r := &recorder{}
		recs[id] = r
		return r
	}, idle, zerolog.Nop())
	svc.SetClock(clock.Now)
	return svc, clock, recs
}

func TestService_Open(t *testing.T) {
	svc, _, recs := newTestService(time.Minute)

	id, view := svc.Open(Route{VisitID: "v1"})
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, StateReady, view.State)
	assert.Equal(t, 1, svc.Len())

	got, err := svc.View(id)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	_, err = svc.Do(id, func(c *Controller) error { return c.ConfirmSection(SectionOrders) })
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventSectionConfirmed}, recs[id].types())
}

func TestService_OpenNotFound(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)

	id, view := svc.Open(Route{VisitID: "missing"})
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, NotFoundView(), view)
	assert.Equal(t, 0, svc.Len())
}

func TestService_SessionsAreIndependent(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)
	a, _ := svc.Open(Route{VisitID: "v1"})
	b, _ := svc.Open(Route{VisitID: "v1"})

	_, err := svc.Do(a, func(c *Controller) error { return c.ConfirmAllSections() })
	require.NoError(t, err)

	va, _ := svc.View(a)
	vb, _ := svc.View(b)
	assert.True(t, va.AllConfirmed)
	assert.False(t, vb.AllConfirmed)
}

func TestService_DoReturnsViewOnError(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)
	id, _ := svc.Open(Route{VisitID: "v1"})

	view, err := svc.Do(id, func(c *Controller) error {
		if err := c.EditSection(SectionOrders); err != nil {
			return err
		}
		return c.ApplyEdits(SetOrderDetail{Index: 0, Field: "quantity", Value: "abc"})
	})
	assert.ErrorIs(t, err, ErrInvalidNumber)
	require.NotNil(t, view.Editing)
	assert.Equal(t, SectionOrders, view.Editing.Section)
}

func TestService_UnknownSession(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)
	_, err := svc.View(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_Close(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)
	id, _ := svc.Open(Route{VisitID: "v1"})

	svc.Close(id)
	svc.Close(id)
	_, err := svc.View(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_Sweep(t *testing.T) {
	svc, clock, _ := newTestService(10 * time.Minute)
	stale, _ := svc.Open(Route{VisitID: "v1"})
	clock.Advance(6 * time.Minute)
	fresh, _ := svc.Open(Route{VisitID: "v1"})
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, svc.Sweep())
	_, err := svc.View(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.View(fresh)
	assert.NoError(t, err)
}

func TestService_SweepDisabled(t *testing.T) {
	svc, clock, _ := newTestService(0)
	svc.Open(Route{VisitID: "v1"})
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, svc.Sweep())
	assert.Equal(t, 1, svc.Len())
}

func TestService_RunStopsOnCancel(t *testing.T) {
	svc, _, _ := newTestService(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
