package net

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServerAcceptsAndHandsOff(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", 8, 0, time.Second, zap.NewNop())
	require.NoError(t, err)
	defer srv.Shutdown()
	go srv.AcceptLoop()

	client, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	select {
	case sess := <-srv.NewSessions():
		require.NotNil(t, sess)
		assert.Equal(t, client.LocalAddr().String(), sess.RemoteAddr())
		sess.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("no session handed off")
	}
}

func TestServerSessionIdsAreUnique(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", 8, 0, time.Second, zap.NewNop())
	require.NoError(t, err)
	defer srv.Shutdown()
	go srv.AcceptLoop()

	seen := map[uint64]bool{}
	for i := 0; i < 3; i++ {
		client, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		defer client.Close()

		select {
		case sess := <-srv.NewSessions():
			assert.False(t, seen[sess.ID], "session id reused")
			seen[sess.ID] = true
			sess.Close()
		case <-time.After(2 * time.Second):
			t.Fatal("no session handed off")
		}
	}
}

func TestServerShutdownStopsAccepting(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", 8, 0, time.Second, zap.NewNop())
	require.NoError(t, err)
	go srv.AcceptLoop()

	addr := srv.Addr().String()
	srv.Shutdown()

	// The listener is closed; dials either fail outright or get reset.
	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err == nil {
		conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		one := make([]byte, 1)
		_, readErr := conn.Read(one)
		assert.Error(t, readErr)
		conn.Close()
	}
}
