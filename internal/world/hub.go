package world

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cwgo/server/internal/protocol"
)

// Hub owns everything shared between sessions: the player roster, the
// creature id pool and the ground drops.
type Hub struct {
	log *zap.Logger
	ids *IdPool

	mu      sync.RWMutex
	players map[protocol.CreatureID]*Player

	drops *DropRegistry
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:     log,
		ids:     NewIdPool(),
		players: make(map[protocol.CreatureID]*Player),
		drops:   NewDropRegistry(),
	}
}

func (h *Hub) ClaimID() protocol.CreatureID { return h.ids.Claim() }

func (h *Hub) FreeID(id protocol.CreatureID) { h.ids.Free(id) }

// Register makes the player visible to broadcasts.
func (h *Hub) Register(p *Player) {
	h.mu.Lock()
	h.players[p.ID] = p
	h.mu.Unlock()
}

// Unregister removes the player from the roster; the caller still owns
// teardown broadcasts and id release.
func (h *Hub) Unregister(id protocol.CreatureID) *Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.players[id]
	delete(h.players, id)
	return p
}

func (h *Hub) Get(id protocol.CreatureID) *Player {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.players[id]
}

// Players snapshots the roster so callers can iterate without holding
// the lock across sends.
func (h *Hub) Players() []*Player {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Player, 0, len(h.players))
	for _, p := range h.players {
		out = append(out, p)
	}
	return out
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.players)
}

// Broadcast frames the packet once and enqueues it to every player.
func (h *Hub) Broadcast(pkt protocol.Packet) {
	h.broadcastFrame(protocol.Frame(pkt), 0)
}

// BroadcastExcept skips the named creature, typically the sender of
// the packet being relayed.
func (h *Hub) BroadcastExcept(pkt protocol.Packet, skip protocol.CreatureID) {
	h.broadcastFrame(protocol.Frame(pkt), skip)
}

func (h *Hub) broadcastFrame(frame []byte, skip protocol.CreatureID) {
	for _, p := range h.Players() {
		if p.ID == skip {
			continue
		}
		p.SendFrame(frame)
	}
}

// Chat delivers a chat line from source to everyone, with the chat
// chime played at each recipient's own position.
func (h *Hub) Chat(source protocol.CreatureID, text string) {
	chat := protocol.Frame(&protocol.ChatMessageFromServer{Source: source, Text: text})
	for _, p := range h.Players() {
		p.SendFrame(chat)
		sound := protocol.SoundAt(p.Character().Position, protocol.SoundMenuSelect)
		sound.Volume = 0.5
		sound.Pitch = 2
		p.Send(&protocol.WorldUpdate{Sounds: []protocol.Sound{sound}})
	}
}

// Announce sends a server notice to everyone. Source 0 renders as a
// system line on the client.
func (h *Hub) Announce(text string) {
	h.Chat(0, text)
}

// AddDrop puts an item on the ground and tells everyone. The stored
// droptime stays 0; only the broadcast copy animates. The item landing
// sound follows half a second later, matching the animation.
func (h *Hub) AddDrop(item protocol.Item, position protocol.Pos, rotation float32) {
	zone, snapshot := h.drops.Add(protocol.Drop{
		Item:     item,
		Position: position,
		Rotation: rotation,
		Scale:    0.1,
	})
	h.Broadcast(&protocol.WorldUpdate{
		Drops:  []protocol.ZoneDrops{{Zone: zone, Drops: snapshot}},
		Sounds: []protocol.Sound{protocol.SoundAt(position, protocol.SoundDrop)},
	})
	time.AfterFunc(500*time.Millisecond, func() {
		h.Broadcast(&protocol.WorldUpdate{
			Sounds: []protocol.Sound{protocol.SoundAt(position, protocol.SoundDropItem)},
		})
	})
}

// RemoveDrop takes a drop off the ground and rebroadcasts the zone,
// including when it became empty. ok=false means another player won
// the race for it.
func (h *Hub) RemoveDrop(zone protocol.Zone, index int) (protocol.Item, bool) {
	item, snapshot, ok := h.drops.Remove(zone, index)
	if !ok {
		return protocol.Item{}, false
	}
	h.Broadcast(&protocol.WorldUpdate{
		Drops: []protocol.ZoneDrops{{Zone: zone, Drops: snapshot}},
	})
	return item, true
}

// DropSnapshots lists every zone's drops for the join handshake.
func (h *Hub) DropSnapshots() []protocol.ZoneDrops {
	return h.drops.All()
}
