package system

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

type fakeConn struct {
	mu       sync.Mutex
	frames   [][]byte
	failFrom int // fail sends once this many frames arrived; 0 = never
}

func (c *fakeConn) Send(d []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failFrom > 0 && len(c.frames) >= c.failFrom {
		return false
	}
	c.frames = append(c.frames, d)
	return true
}

func (c *fakeConn) FlagDisconnect() {}

func (c *fakeConn) RemoteAddr() string { return "test:0" }

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func TestRunPoisonTicksAtVictim(t *testing.T) {
	conn := &fakeConn{}
	target := world.NewPlayer(1, conn, world.Character{
		Position: protocol.Pos{protocol.SizeBlock, 0, 0},
	})

	// Duration below one interval still deals the immediate tick.
	RunPoison(target, &protocol.StatusEffect{
		Target:   1,
		Kind:     protocol.EffectPoison,
		Modifier: 15,
		Duration: 300,
	})

	require.Equal(t, 1, conn.count())

	conn.mu.Lock()
	frame := conn.frames[0]
	conn.mu.Unlock()
	pkt, err := protocol.ReadPacket(bytes.NewReader(frame))
	require.NoError(t, err)
	wu := pkt.(*protocol.WorldUpdate)
	require.Len(t, wu.Hits, 1)
	assert.Equal(t, protocol.CreatureID(0), wu.Hits[0].Attacker, "the world itself deals poison")
	assert.Equal(t, protocol.CreatureID(1), wu.Hits[0].Target)
	assert.Equal(t, float32(15), wu.Hits[0].Damage)
	assert.True(t, wu.Hits[0].Flash)
	assert.Equal(t, protocol.Pos{protocol.SizeBlock, 0, 0}, wu.Hits[0].Position)
	require.Len(t, wu.Sounds, 1)
	assert.Equal(t, protocol.SoundAbsorb, wu.Sounds[0].Kind)
}

func TestRunPoisonStopsOnDeadSession(t *testing.T) {
	conn := &fakeConn{failFrom: 1}
	target := world.NewPlayer(2, conn, world.Character{})

	RunPoison(target, &protocol.StatusEffect{
		Target:   2,
		Kind:     protocol.EffectPoison,
		Modifier: 5,
		Duration: 10_000,
	})

	assert.Equal(t, 1, conn.count(), "loop must not outlive the victim")
}
