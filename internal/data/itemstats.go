package data

import (
	"math"

	"github.com/cwgo/server/internal/protocol"
)

// ItemStats is the derived combat contribution of one item.
type ItemStats struct {
	Damage float32
	Armor  float32
	Resi   float32
	Health float32
	Regen  float32
	Crit   float32
	Tempo  float32
}

// Per-stat bases before any multiplier.
const (
	baseDamage = 4.0
	baseArmor  = 0.5
	baseResi   = 0.5
	baseHealth = 2.5
	baseRegen  = 0.1
	baseCrit   = 1.0 / 160.0
	baseTempo  = 1.0 / 80.0
)

// materialStatMult maps a material to its (armor, resi, health, regen,
// crit, tempo) multipliers. Unlisted materials are neutral.
var materialStatMult = map[protocol.Material][6]float64{
	protocol.MaterialIron:    {1, 0.85, 2, 0, 0, 0},
	protocol.MaterialLinen:   {0.85, 0.75, 1.5, 0.5, 0, 0},
	protocol.MaterialCotton:  {0.85, 0.75, 1.75, 1, 0, 0},
	protocol.MaterialSilk:    {0.75, 1, 1, 0, 0, 0},
	protocol.MaterialLicht:   {0.75, 1, 1, 0, 0, 0},
	protocol.MaterialParrot:  {0.85, 0.85, 1, 0, 0, 0},
	protocol.MaterialSaurian: {0.8, 1, 1, 0, 0, 0},
	protocol.MaterialGold:    {1, 1, 1, 0, 1, 0},
	protocol.MaterialSilver:  {1, 1, 1, 0, 0, 1},
}

var neutralStatMult = [6]float64{1, 1, 1, 0, 0, 0}

// twoHanded lists the kinds whose stats double for taking both hands
// (or, for chests, the torso slot's inherent weight).
func twoHanded(kind protocol.ItemKind) bool {
	if kind.Major == protocol.ItemChest {
		return true
	}
	if kind.Major != protocol.ItemWeapon {
		return false
	}
	switch protocol.WeaponKind(kind.Minor) {
	case protocol.WeaponBow, protocol.WeaponCrossbow, protocol.WeaponBoomerang,
		protocol.WeaponStaff, protocol.WeaponWand,
		protocol.WeaponGreatsword, protocol.WeaponGreataxe, protocol.WeaponGreatmace,
		protocol.WeaponPitchfork:
		return true
	}
	return false
}

// offhandClass lists weapons that trade damage for a free hand.
func offhandClass(kind protocol.ItemKind) bool {
	if kind.Major != protocol.ItemWeapon {
		return false
	}
	switch protocol.WeaponKind(kind.Minor) {
	case protocol.WeaponLongsword, protocol.WeaponDagger,
		protocol.WeaponFist, protocol.WeaponShield:
		return true
	}
	return false
}

// levelFactor doubles an item's output every 20 effective levels.
func levelFactor(level float64) float64 {
	return math.Pow(2, level/20)
}

// rarityFactor doubles output every two rarity steps.
func rarityFactor(rarity protocol.Rarity) float64 {
	return math.Pow(2, float64(rarity)/2)
}

// seed balances: each item's seed splits its budget between health and
// regen, and between crit and tempo.
func hpRegBalance(seed int32) float64 {
	return float64(((uint32(seed) & 0x1FFFFFFF) * 8) % 21) / 20
}

func critTempoBalance(seed int32) float64 {
	return float64(uint32(seed)%21) / 20
}

// StatsOf derives the seven combat stats of an item. Stats whose kind
// gate is closed are zero.
func StatsOf(it *protocol.Item) ItemStats {
	var s ItemStats
	if it.IsEmpty() {
		return s
	}

	isWeapon := it.Kind.Major == protocol.ItemWeapon
	isArmor := false
	switch it.Kind.Major {
	case protocol.ItemChest, protocol.ItemGloves, protocol.ItemBoots, protocol.ItemShoulder:
		isArmor = true
	}
	isJewelry := it.Kind.Major == protocol.ItemRing || it.Kind.Major == protocol.ItemAmulet
	if !isWeapon && !isArmor && !isJewelry {
		return s
	}

	mat, ok := materialStatMult[it.Material]
	if !ok {
		mat = neutralStatMult
	}

	size := 1.0
	if twoHanded(it.Kind) {
		size = 2.0
	}
	spiritLevel := float64(it.Level) + float64(it.SpiritCounter)*0.1
	plainLevel := float64(it.Level)
	rarity := rarityFactor(it.Rarity)
	hpReg := hpRegBalance(it.Seed)
	critTempo := critTempoBalance(it.Seed)

	if isWeapon {
		classMult := 1.0
		if offhandClass(it.Kind) {
			classMult = 0.5
		}
		s.Damage = float32(baseDamage * size * classMult * levelFactor(spiritLevel) * rarity)
	}
	if isArmor {
		s.Armor = float32(baseArmor * size * mat[0] * levelFactor(spiritLevel) * rarity)
		s.Resi = float32(baseResi * size * mat[1] * levelFactor(spiritLevel) * rarity)
	}
	if isWeapon || isArmor {
		// No two-hand doubling on survivability.
		healthSize := size
		if isWeapon {
			healthSize = 1.0
		}
		s.Health = float32(baseHealth * healthSize * (mat[2] + (1 - hpReg)) * levelFactor(spiritLevel) * rarity)
		s.Regen = float32(baseRegen * healthSize * (mat[3] + hpReg) * levelFactor(plainLevel) * rarity)
	}
	s.Crit = float32(baseCrit * size * (mat[4] + (1 - critTempo)) * levelFactor(plainLevel) * rarity)
	s.Tempo = float32(baseTempo * size * (mat[5] + critTempo) * levelFactor(plainLevel) * rarity)
	return s
}
