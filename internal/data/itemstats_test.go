package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwgo/server/internal/protocol"
)

func TestStatsOfEmptyItem(t *testing.T) {
	var it protocol.Item
	assert.Equal(t, ItemStats{}, StatsOf(&it))
}

func TestStatsOfKindGates(t *testing.T) {
	sword := protocol.Item{
		Kind:     protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Material: protocol.MaterialIron,
		Level:    10,
	}
	s := StatsOf(&sword)
	assert.Positive(t, s.Damage)
	assert.Zero(t, s.Armor, "weapons give no armor")
	assert.Zero(t, s.Resi)
	assert.Positive(t, s.Health)

	chest := protocol.Item{
		Kind:     protocol.ItemKind{Major: protocol.ItemChest},
		Material: protocol.MaterialIron,
		Level:    10,
	}
	s = StatsOf(&chest)
	assert.Zero(t, s.Damage, "armor deals no damage")
	assert.Positive(t, s.Armor)
	assert.Positive(t, s.Resi)

	ring := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemRing},
		Level: 10,
	}
	s = StatsOf(&ring)
	assert.Zero(t, s.Damage)
	assert.Zero(t, s.Armor)
	assert.Zero(t, s.Health, "jewelry only carries crit and tempo")
	assert.Positive(t, s.Crit+s.Tempo)

	food := protocol.Item{Kind: protocol.ItemKind{Major: protocol.ItemFood}}
	assert.Equal(t, ItemStats{}, StatsOf(&food))
}

func TestStatsOfTwentyLevelsDouble(t *testing.T) {
	low := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Level: 10,
	}
	high := low
	high.Level = 30

	assert.InDelta(t, StatsOf(&low).Damage*2, StatsOf(&high).Damage, 0.001)
}

func TestStatsOfRarityDoublesEveryTwoSteps(t *testing.T) {
	normal := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Level: 5,
	}
	rare := normal
	rare.Rarity = protocol.RarityRare

	assert.InDelta(t, StatsOf(&normal).Damage*2, StatsOf(&rare).Damage, 0.001)
}

func TestStatsOfTwoHandedDoublesDamageOnly(t *testing.T) {
	sword := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Level: 12,
	}
	greatsword := sword
	greatsword.Kind.Minor = uint8(protocol.WeaponGreatsword)

	assert.InDelta(t, StatsOf(&sword).Damage*2, StatsOf(&greatsword).Damage, 0.001)
	assert.InDelta(t, StatsOf(&sword).Health, StatsOf(&greatsword).Health, 0.001)
}

func TestStatsOfOffhandHalvesDamage(t *testing.T) {
	sword := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Level: 12,
	}
	dagger := sword
	dagger.Kind.Minor = uint8(protocol.WeaponDagger)

	assert.InDelta(t, StatsOf(&sword).Damage/2, StatsOf(&dagger).Damage, 0.001)
}

func TestStatsOfSpiritsRaiseEffectiveLevel(t *testing.T) {
	plain := protocol.Item{
		Kind:  protocol.ItemKind{Major: protocol.ItemWeapon, Minor: uint8(protocol.WeaponSword)},
		Level: 12,
	}
	spirited := plain
	spirited.SpiritCounter = 32

	assert.Greater(t, StatsOf(&spirited).Damage, StatsOf(&plain).Damage)
	// Crit and tempo scale on the plain level, untouched by spirits.
	assert.Equal(t, StatsOf(&plain).Crit, StatsOf(&spirited).Crit)
}

func TestStatsOfSeedBalancesAreComplementary(t *testing.T) {
	for _, seed := range []int32{0, 1, 7, 12345, -5, 1 << 30} {
		hp := hpRegBalance(seed)
		ct := critTempoBalance(seed)
		assert.GreaterOrEqual(t, hp, 0.0)
		assert.LessOrEqual(t, hp, 1.0)
		assert.GreaterOrEqual(t, ct, 0.0)
		assert.LessOrEqual(t, ct, 1.0)
	}
}
