package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"wtms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	msgs    [][]byte
	closed  bool
	failing bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("broken pipe")
	}
	f.msgs = append(f.msgs, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(8)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func event(id int64) models.SubmissionEvent {
	return models.SubmissionEvent{
		Type:       models.EventSubmissionCreated,
		Submission: models.Submission{ID: id, WorkID: 1, WorkerID: 1, SubmissionText: "x"},
	}
}

func TestHub_DeliversOnlyToOwner(t *testing.T) {
	hub, _ := startHub(t)

	mine := &fakeConn{}
	theirs := &fakeConn{}
	hub.Register(&Client{WorkerID: 1, Conn: mine})
	hub.Register(&Client{WorkerID: 2, Conn: theirs})

	hub.Notify(1, event(10))

	require.Eventually(t, func() bool { return mine.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, theirs.count())

	var got models.SubmissionEvent
	mine.mu.Lock()
	require.NoError(t, json.Unmarshal(mine.msgs[0], &got))
	mine.mu.Unlock()
	assert.Equal(t, int64(10), got.Submission.ID)
	assert.Equal(t, models.EventSubmissionCreated, got.Type)
}

func TestHub_RemovesFailingClient(t *testing.T) {
	hub, _ := startHub(t)

	bad := &fakeConn{failing: true}
	hub.Register(&Client{WorkerID: 1, Conn: bad})
	hub.Notify(1, event(1))

	require.Eventually(t, bad.isClosed, time.Second, 5*time.Millisecond)
}

func TestHub_UnregisterCloses(t *testing.T) {
	hub, _ := startHub(t)

	conn := &fakeConn{}
	c := &Client{WorkerID: 3, Conn: conn}
	hub.Register(c)
	hub.Unregister(c)

	require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)
}

func TestHub_NotifyDoesNotBlockWhenFull(t *testing.T) {
	hub := NewHub(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Notify(1, event(int64(i)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked without a running hub")
	}
}

func TestHub_StopClosesClients(t *testing.T) {
	hub, cancel := startHub(t)

	conn := &fakeConn{}
	hub.Register(&Client{WorkerID: 1, Conn: conn})
	cancel()

	require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)

	// Setelah berhenti, Register tidak menggantung.
	late := &fakeConn{}
	hub.Register(&Client{WorkerID: 1, Conn: late})
	assert.True(t, late.isClosed())
}

func TestHub_RegisterWaitsForRun(t *testing.T) {
	hub := NewHub(8)
	conn := &fakeConn{}
	registered := make(chan struct{})
	go func() {
		hub.Register(&Client{WorkerID: 4, Conn: conn})
		close(registered)
	}()

	select {
	case <-registered:
		t.Fatal("Register returned before Run started")
	case <-time.After(50 * time.Millisecond):
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("Register still blocked after Run started")
	}
	assert.False(t, conn.isClosed())
}
