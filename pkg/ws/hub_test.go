package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnregisterTracksOnline(t *testing.T) {
	h := NewHub()
	c1 := NewClient("u1", nil)
	c2 := NewClient("u1", nil)

	h.Register(c1)
	h.Register(c2)
	assert.True(t, h.IsOnline("u1"))

	// 同一用户多端在线，只断一端仍然在线
	h.Unregister(c1)
	assert.True(t, h.IsOnline("u1"))
	h.Unregister(c2)
	assert.False(t, h.IsOnline("u1"))
}

func TestSendReachesAllConnections(t *testing.T) {
	h := NewHub()
	c1 := NewClient("u1", nil)
	c2 := NewClient("u1", nil)
	h.Register(c1)
	h.Register(c2)

	require.True(t, h.Send("u1", []byte("hi")))
	assert.Equal(t, []byte("hi"), <-c1.send)
	assert.Equal(t, []byte("hi"), <-c2.send)
}

func TestSendToOfflineUserReturnsFalse(t *testing.T) {
	h := NewHub()
	assert.False(t, h.Send("nobody", []byte("hi")))
}

func TestClosedClientIsEvictedOnSend(t *testing.T) {
	h := NewHub()
	c := NewClient("u1", nil)
	h.Register(c)
	c.Close()

	assert.False(t, h.Send("u1", []byte("hi")))
	assert.False(t, h.IsOnline("u1"))
}

func TestDoneSignalsAfterClose(t *testing.T) {
	c := NewClient("u1", nil)
	select {
	case <-c.Done():
		t.Fatal("done closed before Close")
	default:
	}

	c.Close()
	c.Close() // 幂等
	select {
	case <-c.Done():
	default:
		t.Fatal("done not closed after Close")
	}
}
