package world

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cwgo/server/internal/protocol"
)

// fakeConn records frames instead of writing to a socket.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	dead   bool
}

func (c *fakeConn) Send(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead {
		return false
	}
	c.frames = append(c.frames, data)
	return true
}

func (c *fakeConn) FlagDisconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dead = true
}

func (c *fakeConn) RemoteAddr() string { return "test:0" }

func (c *fakeConn) packets(t *testing.T) []protocol.Packet {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]protocol.Packet, 0, len(c.frames))
	for _, frame := range c.frames {
		p, err := protocol.ReadPacket(bytes.NewReader(frame))
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func addPlayer(h *Hub, name string) (*Player, *fakeConn) {
	conn := &fakeConn{}
	c := testCharacter()
	c.Name = name
	p := NewPlayer(h.ClaimID(), conn, c)
	h.Register(p)
	return p, conn
}

func TestHubBroadcastExceptSkipsSource(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1, c1 := addPlayer(h, "alice")
	_, c2 := addPlayer(h, "bob")

	h.BroadcastExcept(&protocol.IngameDatetime{Time: 1}, p1.ID)

	assert.Empty(t, c1.packets(t))
	require.Len(t, c2.packets(t), 1)
}

func TestHubBroadcastReachesEveryone(t *testing.T) {
	h := NewHub(zap.NewNop())
	_, c1 := addPlayer(h, "alice")
	_, c2 := addPlayer(h, "bob")

	h.Broadcast(&protocol.IngameDatetime{Time: 2})

	assert.Len(t, c1.packets(t), 1)
	assert.Len(t, c2.packets(t), 1)
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1, c1 := addPlayer(h, "alice")

	require.NotNil(t, h.Get(p1.ID))
	h.Unregister(p1.ID)
	assert.Nil(t, h.Get(p1.ID))
	assert.Equal(t, 0, h.Count())

	h.Broadcast(&protocol.IngameDatetime{})
	assert.Empty(t, c1.packets(t))
}

func TestHubAnnounceSendsNoticeAndChime(t *testing.T) {
	h := NewHub(zap.NewNop())
	_, conn := addPlayer(h, "alice")

	h.Announce("[+] bob")

	pkts := conn.packets(t)
	require.Len(t, pkts, 2)

	chat, ok := pkts[0].(*protocol.ChatMessageFromServer)
	require.True(t, ok)
	assert.Equal(t, protocol.CreatureID(0), chat.Source)
	assert.Equal(t, "[+] bob", chat.Text)

	wu, ok := pkts[1].(*protocol.WorldUpdate)
	require.True(t, ok)
	require.Len(t, wu.Sounds, 1)
	assert.Equal(t, protocol.SoundMenuSelect, wu.Sounds[0].Kind)
	assert.Equal(t, float32(0.5), wu.Sounds[0].Volume)
	assert.Equal(t, float32(2), wu.Sounds[0].Pitch)
}

func TestHubChatAttributesSource(t *testing.T) {
	h := NewHub(zap.NewNop())
	p1, conn := addPlayer(h, "alice")

	h.Chat(p1.ID, "hello")

	pkts := conn.packets(t)
	require.NotEmpty(t, pkts)
	chat := pkts[0].(*protocol.ChatMessageFromServer)
	assert.Equal(t, p1.ID, chat.Source)
}

func TestHubRemoveDropRace(t *testing.T) {
	h := NewHub(zap.NewNop())
	item := protocol.Item{Kind: protocol.ItemKind{Major: protocol.ItemCoin}}
	h.AddDrop(item, protocol.Pos{0, 0, 0}, 0)

	got, ok := h.RemoveDrop(protocol.Zone{0, 0}, 0)
	require.True(t, ok)
	assert.Equal(t, item, got)

	_, ok = h.RemoveDrop(protocol.Zone{0, 0}, 0)
	assert.False(t, ok)
}
