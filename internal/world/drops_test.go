package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwgo/server/internal/protocol"
)

func TestZoneOf(t *testing.T) {
	tests := []struct {
		name string
		pos  protocol.Pos
		want protocol.Zone
	}{
		{"origin", protocol.Pos{0, 0, 0}, protocol.Zone{0, 0}},
		{"inside first zone", protocol.Pos{protocol.SizeZone - 1, protocol.SizeZone - 1, 0}, protocol.Zone{0, 0}},
		{"second zone", protocol.Pos{protocol.SizeZone, 0, 0}, protocol.Zone{1, 0}},
		{"negative floors down", protocol.Pos{-1, -protocol.SizeZone, 0}, protocol.Zone{-1, -1}},
		{"negative boundary", protocol.Pos{-protocol.SizeZone, -protocol.SizeZone - 1, 0}, protocol.Zone{-1, -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ZoneOf(tt.pos))
		})
	}
}

func TestDropRegistryAddAnimatesLastDrop(t *testing.T) {
	r := NewDropRegistry()

	zone, snapshot := r.Add(protocol.Drop{
		Item:     protocol.Item{Kind: protocol.ItemKind{Major: protocol.ItemCoin}},
		Position: protocol.Pos{protocol.SizeZone * 2, 0, 0},
	})
	assert.Equal(t, protocol.Zone{2, 0}, zone)
	require.Len(t, snapshot, 1)
	assert.Equal(t, int32(500), snapshot[0].Droptime, "broadcast copy animates")

	_, snapshot = r.Add(protocol.Drop{Position: protocol.Pos{protocol.SizeZone * 2, 0, 0}})
	require.Len(t, snapshot, 2)
	assert.Equal(t, int32(0), snapshot[0].Droptime, "stored drops stay settled")
	assert.Equal(t, int32(500), snapshot[1].Droptime)
}

func TestDropRegistryRemove(t *testing.T) {
	r := NewDropRegistry()
	item := protocol.Item{Kind: protocol.ItemKind{Major: protocol.ItemFood}, Seed: 7}
	zone, _ := r.Add(protocol.Drop{Item: item})
	r.Add(protocol.Drop{Item: protocol.Item{Kind: protocol.ItemKind{Major: protocol.ItemCoin}}})

	got, snapshot, ok := r.Remove(zone, 0)
	require.True(t, ok)
	assert.Equal(t, item, got)
	assert.Len(t, snapshot, 1)

	_, _, ok = r.Remove(zone, 5)
	assert.False(t, ok, "out of range index")

	_, snapshot, ok = r.Remove(zone, 0)
	require.True(t, ok)
	assert.Empty(t, snapshot)

	_, _, ok = r.Remove(zone, 0)
	assert.False(t, ok, "zone is gone once empty")
}

func TestDropRegistryAllSorted(t *testing.T) {
	r := NewDropRegistry()
	r.Add(protocol.Drop{Position: protocol.Pos{protocol.SizeZone * 3, 0, 0}})
	r.Add(protocol.Drop{Position: protocol.Pos{-protocol.SizeZone, 0, 0}})
	r.Add(protocol.Drop{Position: protocol.Pos{0, protocol.SizeZone, 0}})

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, protocol.Zone{-1, 0}, all[0].Zone)
	assert.Equal(t, protocol.Zone{0, 1}, all[1].Zone)
	assert.Equal(t, protocol.Zone{3, 0}, all[2].Zone)
}
