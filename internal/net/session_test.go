package net

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwgo/server/internal/protocol"
)

func pipeSession(t *testing.T, outSize, pktPerSec int) (*Session, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	sess := NewSession(server, 1, outSize, pktPerSec, time.Second, zap.NewNop())
	t.Cleanup(func() {
		sess.Close()
		client.Close()
	})
	return sess, client
}

func TestSessionReadID(t *testing.T) {
	sess, client := pipeSession(t, 8, 0)

	go func() {
		client.Write(protocol.Frame(&protocol.ProtocolVersion{Version: 3}))
	}()

	id, err := sess.ReadID()
	require.NoError(t, err)
	assert.Equal(t, protocol.IdProtocolVersion, id)

	pkt, err := sess.ReadBody(id)
	require.NoError(t, err)
	assert.Equal(t, int32(3), pkt.(*protocol.ProtocolVersion).Version)
}

func TestSessionWriteLoopDelivers(t *testing.T) {
	sess, client := pipeSession(t, 8, 0)
	sess.Start()

	frame := protocol.Frame(&protocol.MapSeed{Seed: 42})
	require.True(t, sess.Send(frame))

	buf := make([]byte, len(frame))
	client.SetReadDeadline(time.Now().Add(time.Second))
	_, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, frame, buf)
}

func TestSessionOverflowTearsDown(t *testing.T) {
	// Writer goroutine never started: the queue only drains by capacity.
	sess, _ := pipeSession(t, 1, 0)

	assert.True(t, sess.Send([]byte{1}))
	assert.False(t, sess.Send([]byte{2}), "full queue drops the session")
	assert.True(t, sess.IsClosed())
	assert.False(t, sess.Send([]byte{3}), "closed sessions accept nothing")
}

func TestSessionRateLimit(t *testing.T) {
	sess, client := pipeSession(t, 8, 2)

	go func() {
		for i := 0; i < 8; i++ {
			client.Write(protocol.Frame(&protocol.ZoneDiscovery{}))
		}
	}()

	// Budget is 2/s; even if a second boundary resets the counter once,
	// eight rapid packets must trip the limit.
	for i := 0; i < 8; i++ {
		_, err := sess.ReadID()
		if err != nil {
			assert.ErrorIs(t, err, ErrRateLimited)
			return
		}
		if _, err := sess.ReadBody(protocol.IdZoneDiscovery); err != nil {
			t.Fatalf("read body: %v", err)
		}
	}
	t.Fatal("rate limit never tripped")
}

func TestSessionCloseWhenDrained(t *testing.T) {
	sess, client := pipeSession(t, 8, 0)
	sess.Start()

	got := make(chan []byte, 1)
	go func() {
		var buf []byte
		tmp := make([]byte, 64)
		for {
			n, err := client.Read(tmp)
			buf = append(buf, tmp[:n]...)
			if err != nil {
				got <- buf
				return
			}
		}
	}()

	frame := protocol.Frame(&protocol.ProtocolVersion{Version: 3})
	require.True(t, sess.Send(frame))
	sess.CloseWhenDrained()
	assert.True(t, sess.IsClosed())

	select {
	case buf := <-got:
		assert.Equal(t, frame, buf, "queued reply reaches the socket before close")
	case <-time.After(time.Second):
		t.Fatal("client never saw the reply")
	}
}

func TestSessionFlagDisconnect(t *testing.T) {
	sess, _ := pipeSession(t, 8, 0)
	assert.False(t, sess.ShouldDisconnect())
	sess.FlagDisconnect()
	assert.True(t, sess.ShouldDisconnect())
	assert.False(t, sess.IsClosed(), "flagging is not closing")
}
