package world

import (
	"github.com/cwgo/server/internal/protocol"
)

// Character is the authoritative full-form snapshot of one creature,
// reconstructed by merging deltas. Field meanings follow the wire
// packet; see protocol.CreatureUpdate.
type Character struct {
	Position      protocol.Pos
	Rotation      protocol.EulerAngles
	Velocity      protocol.Vec3
	Acceleration  protocol.Vec3
	VelocityExtra protocol.Vec3
	HeadTilt      float32
	PhysicsFlags  protocol.PhysicsFlags
	Affiliation   protocol.Affiliation
	Race          protocol.Race
	Animation     protocol.Animation
	AnimationTime int32
	Combo         int32
	HitTimeOut    int32
	Appearance    protocol.Appearance
	Flags         protocol.CreatureFlags
	EffectTimeDodge int32
	EffectTimeStun  int32
	EffectTimeFear  int32
	EffectTimeIce   int32
	EffectTimeWind  int32
	ShowPatchTime   int32
	ClassMajor    protocol.CombatClassMajor
	ClassMinor    protocol.CombatClassMinor
	ManaCharge    float32
	Unknown24     protocol.Vec3
	Unknown25     protocol.Vec3
	AimOffset     protocol.Vec3
	Health        float32
	Mana          float32
	BlockingGauge float32
	Multipliers   protocol.Multipliers
	Unknown31     int8
	Unknown32     int8
	Level         int32
	Experience    int32
	Master        protocol.CreatureID
	Unknown36     int64
	PowerBase     int8
	Unknown38     int32
	HomeChunk     protocol.IVec3
	Home          protocol.Pos
	ChunkToReveal protocol.IVec3
	Unknown42     int8
	Consumable    protocol.Item
	Equipment     protocol.Equipment
	Name          string
	SkillTree     protocol.SkillTree
	ManaCubes     int32
}

// Apply merges a delta into the snapshot: every present field
// overwrites, absent fields are untouched.
func (c *Character) Apply(u *protocol.CreatureUpdate) {
	if u.Position != nil {
		c.Position = *u.Position
	}
	if u.Rotation != nil {
		c.Rotation = *u.Rotation
	}
	if u.Velocity != nil {
		c.Velocity = *u.Velocity
	}
	if u.Acceleration != nil {
		c.Acceleration = *u.Acceleration
	}
	if u.VelocityExtra != nil {
		c.VelocityExtra = *u.VelocityExtra
	}
	if u.HeadTilt != nil {
		c.HeadTilt = *u.HeadTilt
	}
	if u.PhysicsFlags != nil {
		c.PhysicsFlags = *u.PhysicsFlags
	}
	if u.Affiliation != nil {
		c.Affiliation = *u.Affiliation
	}
	if u.Race != nil {
		c.Race = *u.Race
	}
	if u.Animation != nil {
		c.Animation = *u.Animation
	}
	if u.AnimationTime != nil {
		c.AnimationTime = *u.AnimationTime
	}
	if u.Combo != nil {
		c.Combo = *u.Combo
	}
	if u.HitTimeOut != nil {
		c.HitTimeOut = *u.HitTimeOut
	}
	if u.Appearance != nil {
		c.Appearance = *u.Appearance
	}
	if u.Flags != nil {
		c.Flags = *u.Flags
	}
	if u.EffectTimeDodge != nil {
		c.EffectTimeDodge = *u.EffectTimeDodge
	}
	if u.EffectTimeStun != nil {
		c.EffectTimeStun = *u.EffectTimeStun
	}
	if u.EffectTimeFear != nil {
		c.EffectTimeFear = *u.EffectTimeFear
	}
	if u.EffectTimeIce != nil {
		c.EffectTimeIce = *u.EffectTimeIce
	}
	if u.EffectTimeWind != nil {
		c.EffectTimeWind = *u.EffectTimeWind
	}
	if u.ShowPatchTime != nil {
		c.ShowPatchTime = *u.ShowPatchTime
	}
	if u.ClassMajor != nil {
		c.ClassMajor = *u.ClassMajor
	}
	if u.ClassMinor != nil {
		c.ClassMinor = *u.ClassMinor
	}
	if u.ManaCharge != nil {
		c.ManaCharge = *u.ManaCharge
	}
	if u.Unknown24 != nil {
		c.Unknown24 = *u.Unknown24
	}
	if u.Unknown25 != nil {
		c.Unknown25 = *u.Unknown25
	}
	if u.AimOffset != nil {
		c.AimOffset = *u.AimOffset
	}
	if u.Health != nil {
		c.Health = *u.Health
	}
	if u.Mana != nil {
		c.Mana = *u.Mana
	}
	if u.BlockingGauge != nil {
		c.BlockingGauge = *u.BlockingGauge
	}
	if u.Multipliers != nil {
		c.Multipliers = *u.Multipliers
	}
	if u.Unknown31 != nil {
		c.Unknown31 = *u.Unknown31
	}
	if u.Unknown32 != nil {
		c.Unknown32 = *u.Unknown32
	}
	if u.Level != nil {
		c.Level = *u.Level
	}
	if u.Experience != nil {
		c.Experience = *u.Experience
	}
	if u.Master != nil {
		c.Master = *u.Master
	}
	if u.Unknown36 != nil {
		c.Unknown36 = *u.Unknown36
	}
	if u.PowerBase != nil {
		c.PowerBase = *u.PowerBase
	}
	if u.Unknown38 != nil {
		c.Unknown38 = *u.Unknown38
	}
	if u.HomeChunk != nil {
		c.HomeChunk = *u.HomeChunk
	}
	if u.Home != nil {
		c.Home = *u.Home
	}
	if u.ChunkToReveal != nil {
		c.ChunkToReveal = *u.ChunkToReveal
	}
	if u.Unknown42 != nil {
		c.Unknown42 = *u.Unknown42
	}
	if u.Consumable != nil {
		c.Consumable = *u.Consumable
	}
	if u.Equipment != nil {
		c.Equipment = *u.Equipment
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.SkillTree != nil {
		c.SkillTree = *u.SkillTree
	}
	if u.ManaCubes != nil {
		c.ManaCubes = *u.ManaCubes
	}
}

// CharacterFromUpdate builds a full snapshot from a delta. The first
// update a client sends after the handshake must carry every field;
// anything less is a protocol violation and returns false.
func CharacterFromUpdate(u *protocol.CreatureUpdate) (Character, bool) {
	if u.Position == nil || u.Rotation == nil || u.Velocity == nil ||
		u.Acceleration == nil || u.VelocityExtra == nil || u.HeadTilt == nil ||
		u.PhysicsFlags == nil || u.Affiliation == nil || u.Race == nil ||
		u.Animation == nil || u.AnimationTime == nil || u.Combo == nil ||
		u.HitTimeOut == nil || u.Appearance == nil || u.Flags == nil ||
		u.EffectTimeDodge == nil || u.EffectTimeStun == nil || u.EffectTimeFear == nil ||
		u.EffectTimeIce == nil || u.EffectTimeWind == nil || u.ShowPatchTime == nil ||
		u.ClassMajor == nil || u.ClassMinor == nil || u.ManaCharge == nil ||
		u.Unknown24 == nil || u.Unknown25 == nil || u.AimOffset == nil ||
		u.Health == nil || u.Mana == nil || u.BlockingGauge == nil ||
		u.Multipliers == nil || u.Unknown31 == nil || u.Unknown32 == nil ||
		u.Level == nil || u.Experience == nil || u.Master == nil ||
		u.Unknown36 == nil || u.PowerBase == nil || u.Unknown38 == nil ||
		u.HomeChunk == nil || u.Home == nil || u.ChunkToReveal == nil ||
		u.Unknown42 == nil || u.Consumable == nil || u.Equipment == nil ||
		u.Name == nil || u.SkillTree == nil || u.ManaCubes == nil {
		return Character{}, false
	}
	var c Character
	c.Apply(u)
	return c, true
}

// ToUpdate renders the snapshot as a delta carrying every field, used
// to introduce existing players to a newcomer.
func (c Character) ToUpdate(id protocol.CreatureID) *protocol.CreatureUpdate {
	return &protocol.CreatureUpdate{
		ID:            id,
		Position:      &c.Position,
		Rotation:      &c.Rotation,
		Velocity:      &c.Velocity,
		Acceleration:  &c.Acceleration,
		VelocityExtra: &c.VelocityExtra,
		HeadTilt:      &c.HeadTilt,
		PhysicsFlags:  &c.PhysicsFlags,
		Affiliation:   &c.Affiliation,
		Race:          &c.Race,
		Animation:     &c.Animation,
		AnimationTime: &c.AnimationTime,
		Combo:         &c.Combo,
		HitTimeOut:    &c.HitTimeOut,
		Appearance:    &c.Appearance,
		Flags:         &c.Flags,
		EffectTimeDodge: &c.EffectTimeDodge,
		EffectTimeStun:  &c.EffectTimeStun,
		EffectTimeFear:  &c.EffectTimeFear,
		EffectTimeIce:   &c.EffectTimeIce,
		EffectTimeWind:  &c.EffectTimeWind,
		ShowPatchTime:   &c.ShowPatchTime,
		ClassMajor:    &c.ClassMajor,
		ClassMinor:    &c.ClassMinor,
		ManaCharge:    &c.ManaCharge,
		Unknown24:     &c.Unknown24,
		Unknown25:     &c.Unknown25,
		AimOffset:     &c.AimOffset,
		Health:        &c.Health,
		Mana:          &c.Mana,
		BlockingGauge: &c.BlockingGauge,
		Multipliers:   &c.Multipliers,
		Unknown31:     &c.Unknown31,
		Unknown32:     &c.Unknown32,
		Level:         &c.Level,
		Experience:    &c.Experience,
		Master:        &c.Master,
		Unknown36:     &c.Unknown36,
		PowerBase:     &c.PowerBase,
		Unknown38:     &c.Unknown38,
		HomeChunk:     &c.HomeChunk,
		Home:          &c.Home,
		ChunkToReveal: &c.ChunkToReveal,
		Unknown42:     &c.Unknown42,
		Consumable:    &c.Consumable,
		Equipment:     &c.Equipment,
		Name:          &c.Name,
		SkillTree:     &c.SkillTree,
		ManaCubes:     &c.ManaCubes,
	}
}
