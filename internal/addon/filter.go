package addon

import (
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// Filter strips fields that carry the same value the peers already
// know, cutting relay bandwidth. Returns false when nothing is left
// worth broadcasting.
func Filter(p *protocol.CreatureUpdate, previous *world.Character) bool {
	if p.Position != nil && *p.Position == previous.Position {
		p.Position = nil
	}
	if p.Rotation != nil && *p.Rotation == previous.Rotation {
		p.Rotation = nil
	}
	if p.Velocity != nil && *p.Velocity == previous.Velocity {
		p.Velocity = nil
	}
	if p.Acceleration != nil && *p.Acceleration == previous.Acceleration {
		p.Acceleration = nil
	}
	if p.VelocityExtra != nil && *p.VelocityExtra == previous.VelocityExtra {
		p.VelocityExtra = nil
	}
	if p.HeadTilt != nil && *p.HeadTilt == previous.HeadTilt {
		p.HeadTilt = nil
	}
	if p.PhysicsFlags != nil && *p.PhysicsFlags == previous.PhysicsFlags {
		p.PhysicsFlags = nil
	}
	if p.Affiliation != nil && *p.Affiliation == previous.Affiliation {
		p.Affiliation = nil
	}
	if p.Race != nil && *p.Race == previous.Race {
		p.Race = nil
	}
	if p.Animation != nil && *p.Animation == previous.Animation {
		p.Animation = nil
	}
	// animation_time advances on its own client-side; only restarts
	// matter to peers.
	if p.AnimationTime != nil && *p.AnimationTime > previous.AnimationTime {
		p.AnimationTime = nil
	}
	if p.Combo != nil && *p.Combo == previous.Combo {
		p.Combo = nil
	}
	if p.HitTimeOut != nil && *p.HitTimeOut > previous.HitTimeOut {
		p.HitTimeOut = nil
	}
	if p.Appearance != nil && *p.Appearance == previous.Appearance {
		p.Appearance = nil
	}
	if p.Flags != nil && *p.Flags == previous.Flags {
		p.Flags = nil
	}
	if p.EffectTimeDodge != nil && *p.EffectTimeDodge == previous.EffectTimeDodge {
		p.EffectTimeDodge = nil
	}
	if p.EffectTimeStun != nil && *p.EffectTimeStun == previous.EffectTimeStun {
		p.EffectTimeStun = nil
	}
	if p.EffectTimeFear != nil && *p.EffectTimeFear == previous.EffectTimeFear {
		p.EffectTimeFear = nil
	}
	if p.EffectTimeIce != nil && *p.EffectTimeIce == previous.EffectTimeIce {
		p.EffectTimeIce = nil
	}
	if p.EffectTimeWind != nil && *p.EffectTimeWind == previous.EffectTimeWind {
		p.EffectTimeWind = nil
	}
	if p.ShowPatchTime != nil && *p.ShowPatchTime == previous.ShowPatchTime {
		p.ShowPatchTime = nil
	}
	if p.ClassMajor != nil && *p.ClassMajor == previous.ClassMajor {
		p.ClassMajor = nil
	}
	if p.ClassMinor != nil && *p.ClassMinor == previous.ClassMinor {
		p.ClassMinor = nil
	}
	if p.ManaCharge != nil && *p.ManaCharge == previous.ManaCharge {
		p.ManaCharge = nil
	}
	if p.Unknown24 != nil && *p.Unknown24 == previous.Unknown24 {
		p.Unknown24 = nil
	}
	if p.Unknown25 != nil && *p.Unknown25 == previous.Unknown25 {
		p.Unknown25 = nil
	}
	if p.AimOffset != nil && *p.AimOffset == previous.AimOffset {
		p.AimOffset = nil
	}
	if p.Health != nil && *p.Health == previous.Health {
		p.Health = nil
	}
	if p.Mana != nil && *p.Mana == previous.Mana {
		p.Mana = nil
	}
	if p.BlockingGauge != nil && *p.BlockingGauge == previous.BlockingGauge {
		p.BlockingGauge = nil
	}
	if p.Multipliers != nil && *p.Multipliers == previous.Multipliers {
		p.Multipliers = nil
	}
	if p.Unknown31 != nil && *p.Unknown31 == previous.Unknown31 {
		p.Unknown31 = nil
	}
	if p.Unknown32 != nil && *p.Unknown32 == previous.Unknown32 {
		p.Unknown32 = nil
	}
	if p.Level != nil && *p.Level == previous.Level {
		p.Level = nil
	}
	if p.Experience != nil && *p.Experience == previous.Experience {
		p.Experience = nil
	}
	if p.Master != nil && *p.Master == previous.Master {
		p.Master = nil
	}
	if p.Unknown36 != nil && *p.Unknown36 == previous.Unknown36 {
		p.Unknown36 = nil
	}
	if p.PowerBase != nil && *p.PowerBase == previous.PowerBase {
		p.PowerBase = nil
	}
	if p.Unknown38 != nil && *p.Unknown38 == previous.Unknown38 {
		p.Unknown38 = nil
	}
	if p.HomeChunk != nil && *p.HomeChunk == previous.HomeChunk {
		p.HomeChunk = nil
	}
	if p.Home != nil && *p.Home == previous.Home {
		p.Home = nil
	}
	if p.ChunkToReveal != nil && *p.ChunkToReveal == previous.ChunkToReveal {
		p.ChunkToReveal = nil
	}
	if p.Unknown42 != nil && *p.Unknown42 == previous.Unknown42 {
		p.Unknown42 = nil
	}
	if p.Consumable != nil && *p.Consumable == previous.Consumable {
		p.Consumable = nil
	}
	if p.Equipment != nil && *p.Equipment == previous.Equipment {
		p.Equipment = nil
	}
	if p.Name != nil && *p.Name == previous.Name {
		p.Name = nil
	}
	if p.SkillTree != nil && *p.SkillTree == previous.SkillTree {
		p.SkillTree = nil
	}
	if p.ManaCubes != nil && *p.ManaCubes == previous.ManaCubes {
		p.ManaCubes = nil
	}
	return !p.AllAbsent()
}

// FixCutoffAnimations restarts animations whose timer did not advance,
// so peers never see an attack frozen mid-swing. Costs a little delay.
func FixCutoffAnimations(p *protocol.CreatureUpdate, previous *world.Character) {
	if p.AnimationTime != nil && *p.AnimationTime <= previous.AnimationTime {
		zero := int32(0)
		p.AnimationTime = &zero
	}
}
