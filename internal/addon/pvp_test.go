package addon

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
}

func (c *fakeConn) Send(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, data)
	return true
}

func (c *fakeConn) FlagDisconnect() {}

func (c *fakeConn) RemoteAddr() string { return "test:0" }

func (c *fakeConn) updates(t *testing.T) []*protocol.CreatureUpdate {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*protocol.CreatureUpdate
	for _, frame := range c.frames {
		pkt, err := protocol.ReadPacket(bytes.NewReader(frame))
		require.NoError(t, err)
		if u, ok := pkt.(*protocol.CreatureUpdate); ok {
			out = append(out, u)
		}
	}
	return out
}

func addPlayer(h *world.Hub, name string) (*world.Player, *fakeConn) {
	conn := &fakeConn{}
	p := world.NewPlayer(h.ClaimID(), conn, world.Character{Name: name})
	h.Register(p)
	return p, conn
}

func TestEnablePvP(t *testing.T) {
	u := &protocol.CreatureUpdate{ID: 1}
	EnablePvP(u)
	assert.Nil(t, u.Flags, "no flags to force")

	flags := protocol.CreatureFlags(0)
	u.Flags = &flags
	EnablePvP(u)
	require.NotNil(t, u.Flags)
	assert.True(t, u.Flags.Has(protocol.FlagFriendlyFire))
	assert.Zero(t, flags, "original flags value untouched")
}

func TestBroadcastPvPWithoutFlags(t *testing.T) {
	h := world.NewHub(zap.NewNop())
	p1, _ := addPlayer(h, "alice")
	assert.False(t, BroadcastPvP(h, p1, &protocol.CreatureUpdate{ID: p1.ID}))
}

func TestBroadcastPvPSplitsByTeam(t *testing.T) {
	h := world.NewHub(zap.NewNop())
	source, sourceConn := addPlayer(h, "alice")
	mate, mateConn := addPlayer(h, "bob")
	_, foeConn := addPlayer(h, "carol")

	source.SetTeam(7)
	mate.SetTeam(7)

	flags := protocol.CreatureFlags(0)
	u := &protocol.CreatureUpdate{ID: source.ID, Flags: &flags}
	require.True(t, BroadcastPvP(h, source, u))

	assert.Empty(t, sourceConn.updates(t), "source never hears itself")

	mateUpdates := mateConn.updates(t)
	require.Len(t, mateUpdates, 1)
	assert.False(t, mateUpdates[0].Flags.Has(protocol.FlagFriendlyFire))

	foeUpdates := foeConn.updates(t)
	require.Len(t, foeUpdates, 1)
	assert.True(t, foeUpdates[0].Flags.Has(protocol.FlagFriendlyFire))
}

func TestBroadcastPvPTeamlessIsHostileToAll(t *testing.T) {
	h := world.NewHub(zap.NewNop())
	source, _ := addPlayer(h, "alice")
	other, otherConn := addPlayer(h, "bob")
	_ = other

	flags := protocol.CreatureFlags(0)
	require.True(t, BroadcastPvP(h, source, &protocol.CreatureUpdate{ID: source.ID, Flags: &flags}))

	updates := otherConn.updates(t)
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Flags.Has(protocol.FlagFriendlyFire))
}

func TestChangeTeam(t *testing.T) {
	h := world.NewHub(zap.NewNop())
	p1, c1 := addPlayer(h, "alice")
	p2, c2 := addPlayer(h, "bob")
	p2.SetTeam(3)

	assert.False(t, ChangeTeam(h, p1, 0), "already teamless")

	require.True(t, ChangeTeam(h, p1, 3))
	assert.Equal(t, int32(3), p1.Team())

	// Joining flushes friendly flags both ways.
	u1 := c1.updates(t)
	require.Len(t, u1, 1)
	assert.Equal(t, p2.ID, u1[0].ID)
	assert.False(t, u1[0].Flags.Has(protocol.FlagFriendlyFire))

	u2 := c2.updates(t)
	require.Len(t, u2, 1)
	assert.Equal(t, p1.ID, u2[0].ID)
	assert.False(t, u2[0].Flags.Has(protocol.FlagFriendlyFire))

	// Leaving marks former teammates hostile again.
	require.True(t, ChangeTeam(h, p1, 0))
	u2 = c2.updates(t)
	require.Len(t, u2, 2)
	assert.True(t, u2[1].Flags.Has(protocol.FlagFriendlyFire))
}
