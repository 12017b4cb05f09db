package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn records written frames and can be told to fail writes.
type fakeConn struct {
	mu        sync.Mutex
	frames    [][]byte
	failWrite bool
	closed    bool
}

func (c *fakeConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failWrite {
		return errors.New("write: broken pipe")
	}
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) frameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *fakeConn) lastFrame() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func TestHub_SubscribeSendsWelcome(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := &fakeConn{}

	id := hub.Subscribe(conn)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, hub.SubscriberCount())

	require.Equal(t, 1, conn.frameCount())

	var msg Message
	require.NoError(t, json.Unmarshal(conn.lastFrame(), &msg))
	assert.Equal(t, KindSystemNotification, msg.Kind)
	assert.Greater(t, msg.Timestamp, int64(0))
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		hub.Subscribe(c)
	}

	delivered := hub.Broadcast(NewMessage(KindNewProducts, UpdateCounts{Count: 4}))
	assert.Equal(t, 3, delivered)

	for i, c := range conns {
		// welcome + broadcast
		assert.Equal(t, 2, c.frameCount(), "conn %d should have received the broadcast", i)

		var msg Message
		require.NoError(t, json.Unmarshal(c.lastFrame(), &msg))
		assert.Equal(t, KindNewProducts, msg.Kind)
	}
}

func TestHub_BroadcastDropsFailedSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())

	healthy1 := &fakeConn{}
	broken := &fakeConn{}
	healthy2 := &fakeConn{}
	hub.Subscribe(healthy1)
	hub.Subscribe(broken)
	hub.Subscribe(healthy2)

	broken.failWrite = true

	delivered := hub.Broadcast(NewMessage(KindTrendingVideos, TrendingVideosPayload{}))

	assert.Equal(t, 2, delivered, "healthy subscribers still receive the message")
	assert.Equal(t, 2, hub.SubscriberCount(), "failed subscriber is removed")
	assert.True(t, broken.closed, "dropped connection is closed")

	assert.Equal(t, 2, healthy1.frameCount())
	assert.Equal(t, 2, healthy2.frameCount())
}

func TestHub_UnsubscribeIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := &fakeConn{}

	id := hub.Subscribe(conn)

	hub.Unsubscribe(id)
	assert.Equal(t, 0, hub.SubscriberCount())
	assert.True(t, conn.closed)

	// Second unsubscribe must not panic or disturb state
	hub.Unsubscribe(id)
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_BroadcastEmptyHub(t *testing.T) {
	hub := NewHub(zap.NewNop())

	delivered := hub.Broadcast(NewMessage(KindPriceUpdates, UpdateCounts{Count: 1}))
	assert.Equal(t, 0, delivered)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conns := []*fakeConn{{}, {}}
	for _, c := range conns {
		hub.Subscribe(c)
	}

	hub.Close()

	assert.Equal(t, 0, hub.SubscriberCount())
	for _, c := range conns {
		assert.True(t, c.closed)
	}
}

func TestHub_ConcurrentBroadcastAndSubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Subscribe(&fakeConn{})
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(NewMessage(KindSystemNotification, SystemNotification{Text: "x"}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, hub.SubscriberCount())
}
