package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, p Packet) Packet {
	t.Helper()
	frame := Frame(p)
	got, err := ReadPacket(bytes.NewReader(frame))
	require.NoError(t, err)
	return got
}

func TestCreatureUpdateDeltaRoundTrip(t *testing.T) {
	pos := Pos{100, -200, 300}
	health := float32(420.5)
	name := "alice"
	level := int32(17)
	p := &CreatureUpdate{
		ID:       7,
		Position: &pos,
		Health:   &health,
		Name:     &name,
		Level:    &level,
	}

	got := roundTrip(t, p).(*CreatureUpdate)
	assert.Equal(t, p.ID, got.ID)
	require.NotNil(t, got.Position)
	assert.Equal(t, pos, *got.Position)
	require.NotNil(t, got.Health)
	assert.Equal(t, health, *got.Health)
	require.NotNil(t, got.Name)
	assert.Equal(t, name, *got.Name)
	require.NotNil(t, got.Level)
	assert.Equal(t, level, *got.Level)

	// Absent fields stay absent.
	assert.Nil(t, got.Rotation)
	assert.Nil(t, got.Equipment)
	assert.Nil(t, got.SkillTree)
}

func TestCreatureUpdateEmptyDelta(t *testing.T) {
	p := &CreatureUpdate{ID: 3}
	assert.True(t, p.AllAbsent())

	got := roundTrip(t, p).(*CreatureUpdate)
	assert.Equal(t, CreatureID(3), got.ID)
	assert.True(t, got.AllAbsent())
}

func TestCreatureUpdateStructuredFields(t *testing.T) {
	var eq Equipment
	eq[SlotRightWeapon] = Item{
		Kind:     ItemKind{Major: ItemWeapon, Minor: uint8(WeaponBow)},
		Material: MaterialWood,
		Level:    5,
	}
	st := SkillTree{0, 2, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	mult := Multipliers{Health: 100, AttackSpeed: 1, Damage: 1, Armor: 1, Resi: 1}
	p := &CreatureUpdate{
		ID:          9,
		Equipment:   &eq,
		SkillTree:   &st,
		Multipliers: &mult,
	}

	got := roundTrip(t, p).(*CreatureUpdate)
	require.NotNil(t, got.Equipment)
	assert.Equal(t, eq, *got.Equipment)
	require.NotNil(t, got.SkillTree)
	assert.Equal(t, st, *got.SkillTree)
	require.NotNil(t, got.Multipliers)
	assert.Equal(t, mult, *got.Multipliers)
}

func TestAbnormalCreatureUpdateShape(t *testing.T) {
	frame := AbnormalCreatureUpdate(42)

	// id + creature id + zero tail, no length prefix, no compression
	require.Len(t, frame, 4+8+4456)
	r := NewReader(frame)
	assert.Equal(t, int32(IdCreatureUpdate), r.ReadD())
	assert.Equal(t, int64(42), r.ReadQ())
	for _, b := range frame[12:] {
		if b != 0 {
			t.Fatal("tail must be all zeroes")
		}
	}
}

func TestSkillTreeSum(t *testing.T) {
	st := SkillTree{1, 2, 3}
	assert.Equal(t, int64(6), st.Sum())
}
