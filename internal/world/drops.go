package world

import (
	"sort"
	"sync"

	"github.com/cwgo/server/internal/protocol"
)

// ZoneOf maps a world position to the zone holding it. Positions are
// signed, so the division must floor toward negative infinity.
func ZoneOf(position protocol.Pos) protocol.Zone {
	return protocol.Zone{
		int32(floorDiv(position[0], protocol.SizeZone)),
		int32(floorDiv(position[1], protocol.SizeZone)),
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// DropRegistry shards ground items by zone. Clients replace their
// zone-local drop state wholesale on every update, so mutations return
// a snapshot of the whole zone for broadcasting.
type DropRegistry struct {
	mu    sync.RWMutex
	zones map[protocol.Zone][]protocol.Drop
}

func NewDropRegistry() *DropRegistry {
	return &DropRegistry{zones: make(map[protocol.Zone][]protocol.Drop)}
}

// Add stores the drop with droptime 0 and returns the zone plus a
// snapshot in which the new drop carries droptime 500, so clients play
// the landing animation exactly once.
func (r *DropRegistry) Add(d protocol.Drop) (protocol.Zone, []protocol.Drop) {
	zone := ZoneOf(d.Position)
	r.mu.Lock()
	defer r.mu.Unlock()
	d.Droptime = 0
	r.zones[zone] = append(r.zones[zone], d)

	snapshot := append([]protocol.Drop(nil), r.zones[zone]...)
	snapshot[len(snapshot)-1].Droptime = 500
	return zone, snapshot
}

// Remove takes the drop at index out of the zone by swap-remove and
// returns its item plus a snapshot of what is left. A stale index from
// a racing pickup returns ok=false.
func (r *DropRegistry) Remove(zone protocol.Zone, index int) (protocol.Item, []protocol.Drop, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	drops := r.zones[zone]
	if index < 0 || index >= len(drops) {
		return protocol.Item{}, nil, false
	}
	item := drops[index].Item
	drops[index] = drops[len(drops)-1]
	drops = drops[:len(drops)-1]
	if len(drops) == 0 {
		delete(r.zones, zone)
	} else {
		r.zones[zone] = drops
	}
	return item, append([]protocol.Drop(nil), drops...), true
}

// All snapshots every zone, ordered deterministically for the join
// handshake.
func (r *DropRegistry) All() []protocol.ZoneDrops {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]protocol.ZoneDrops, 0, len(r.zones))
	for zone, drops := range r.zones {
		out = append(out, protocol.ZoneDrops{
			Zone:  zone,
			Drops: append([]protocol.Drop(nil), drops...),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Zone[0] != out[j].Zone[0] {
			return out[i].Zone[0] < out[j].Zone[0]
		}
		return out[i].Zone[1] < out[j].Zone[1]
	})
	return out
}
