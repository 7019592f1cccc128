package world

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwgo/server/internal/protocol"
)

func testCharacter() Character {
	return Character{
		Position:    protocol.Pos{100, 200, 300},
		Rotation:    protocol.EulerAngles{Yaw: 45},
		Affiliation: protocol.AffiliationPlayer,
		Race:        protocol.RaceElfMale,
		Animation:   protocol.AnimIdle,
		ClassMajor:  protocol.ClassWarrior,
		ClassMinor:  protocol.SpecDefault,
		Health:      500,
		Mana:        1,
		Multipliers: protocol.Multipliers{Health: 100, AttackSpeed: 1, Damage: 1, Armor: 1, Resi: 1},
		Level:       10,
		Name:        "alice",
	}
}

func TestApplyEmptyDeltaIsIdentity(t *testing.T) {
	c := testCharacter()
	before := c
	c.Apply(&protocol.CreatureUpdate{ID: 1})
	assert.Equal(t, before, c)
}

func TestApplyOverwritesOnlyPresentFields(t *testing.T) {
	c := testCharacter()
	pos := protocol.Pos{1, 2, 3}
	health := float32(250)
	c.Apply(&protocol.CreatureUpdate{ID: 1, Position: &pos, Health: &health})

	assert.Equal(t, pos, c.Position)
	assert.Equal(t, health, c.Health)
	assert.Equal(t, "alice", c.Name)
	assert.Equal(t, int32(10), c.Level)
}

func TestApplyLastValueWins(t *testing.T) {
	c := testCharacter()
	h1, h2 := float32(400), float32(350)
	c.Apply(&protocol.CreatureUpdate{ID: 1, Health: &h1})
	c.Apply(&protocol.CreatureUpdate{ID: 1, Health: &h2})
	assert.Equal(t, h2, c.Health)
}

func TestCharacterFromUpdateRequiresEveryField(t *testing.T) {
	full := testCharacter().ToUpdate(1)
	got, ok := CharacterFromUpdate(full)
	require.True(t, ok)
	assert.Equal(t, testCharacter(), got)

	partial := testCharacter().ToUpdate(1)
	partial.Health = nil
	_, ok = CharacterFromUpdate(partial)
	assert.False(t, ok)
}

func TestToUpdateIsDetachedCopy(t *testing.T) {
	c := testCharacter()
	u := c.ToUpdate(4)
	require.NotNil(t, u.Position)
	(*u.Position)[0] = 999
	assert.Equal(t, int64(100), c.Position[0])
	assert.Equal(t, protocol.CreatureID(4), u.ID)
}

func TestToUpdateSurvivesWire(t *testing.T) {
	c := testCharacter()
	frame := protocol.Frame(c.ToUpdate(2))

	pkt, err := protocol.ReadPacket(bytes.NewReader(frame))
	require.NoError(t, err)
	got, ok := CharacterFromUpdate(pkt.(*protocol.CreatureUpdate))
	require.True(t, ok)
	assert.Equal(t, c, got)
}
