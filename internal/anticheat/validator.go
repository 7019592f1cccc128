package anticheat

import (
	"fmt"
	"math"

	"github.com/cwgo/server/internal/data"
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// Validator inspects creature deltas against the game's movement,
// stat and cosmetic limits. Every rule checks only fields present in
// the delta; the reconstructed snapshots supply the context.
type Validator struct {
	appearance *data.AppearanceTable
	materials  *data.MaterialTable
}

func NewValidator(appearance *data.AppearanceTable, materials *data.MaterialTable) *Validator {
	return &Validator{appearance: appearance, materials: materials}
}

var playableRaces = map[protocol.Race]bool{
	protocol.RaceElfMale: true, protocol.RaceElfFemale: true,
	protocol.RaceHumanMale: true, protocol.RaceHumanFemale: true,
	protocol.RaceGoblinMale: true, protocol.RaceGoblinFemale: true,
	protocol.RaceLizardmanMale: true, protocol.RaceLizardmanFemale: true,
	protocol.RaceDwarfMale: true, protocol.RaceDwarfFemale: true,
	protocol.RaceOrcMale: true, protocol.RaceOrcFemale: true,
	protocol.RaceFrogmanMale: true, protocol.RaceFrogmanFemale: true,
	protocol.RaceUndeadMale: true, protocol.RaceUndeadFemale: true,
}

// Animations that legitimately run longer than ten seconds.
var timelessAnimations = map[protocol.Animation]bool{
	protocol.AnimIdle:           true,
	protocol.AnimStealth:        true,
	protocol.AnimBoat:           true,
	protocol.AnimSitting:        true,
	protocol.AnimPetFoodPresent: true,
	protocol.AnimSleeping:       true,
}

// Inspect returns a kick reason when the delta breaks a rule, nil when
// it is clean.
func (v *Validator) Inspect(p *protocol.CreatureUpdate, previous, current *world.Character) error {
	if p.Rotation != nil {
		if err := inspectRotation(p.Rotation); err != nil {
			return err
		}
	}
	if p.Acceleration != nil {
		if err := inspectAcceleration(*p.Acceleration, current); err != nil {
			return err
		}
	}
	if p.VelocityExtra != nil {
		if err := inspectVelocityExtra(*p.VelocityExtra, current); err != nil {
			return err
		}
	}
	if p.HeadTilt != nil {
		if err := ensureWithinF(*p.HeadTilt, -32.5, 45, "head_tilt"); err != nil {
			return err
		}
	}
	if p.Affiliation != nil && *p.Affiliation != protocol.AffiliationPlayer {
		return fmt.Errorf("affiliation %d is not a player", *p.Affiliation)
	}
	if p.Race != nil && !playableRaces[*p.Race] {
		return fmt.Errorf("race %d is not playable", *p.Race)
	}
	if p.Animation != nil {
		allowed := allowedAnimations(current.ClassMajor, current.ClassMinor, &current.Equipment)
		if !allowed[*p.Animation] {
			return fmt.Errorf("animation %d not available with current class and gear", *p.Animation)
		}
	}
	if p.AnimationTime != nil {
		if err := ensureNotNegative(*p.AnimationTime, "animation_time"); err != nil {
			return err
		}
		if !timelessAnimations[current.Animation] && *p.AnimationTime > 10_000 {
			return fmt.Errorf("animation_time %d exceeded 10000", *p.AnimationTime)
		}
	}
	if p.Combo != nil {
		if err := ensureNotNegative(*p.Combo, "combo"); err != nil {
			return err
		}
	}
	if p.HitTimeOut != nil {
		if err := ensureNotNegative(*p.HitTimeOut, "hit_time_out"); err != nil {
			return err
		}
	}
	if p.Appearance != nil {
		if err := v.inspectAppearance(p.Appearance, current); err != nil {
			return err
		}
	}
	if p.EffectTimeDodge != nil {
		if err := ensureWithinI(*p.EffectTimeDodge, 0, 600, "effect_time_dodge"); err != nil {
			return err
		}
	}
	if p.EffectTimeFear != nil {
		if err := ensureNotNegative(*p.EffectTimeFear, "effect_time_fear"); err != nil {
			return err
		}
	}
	if p.EffectTimeIce != nil {
		if err := ensureNotNegative(*p.EffectTimeIce, "effect_time_ice"); err != nil {
			return err
		}
	}
	if p.EffectTimeWind != nil {
		if err := ensureWithinI(*p.EffectTimeWind, 0, 5000, "effect_time_wind"); err != nil {
			return err
		}
	}
	if p.ClassMajor != nil {
		switch *p.ClassMajor {
		case protocol.ClassWarrior, protocol.ClassRanger, protocol.ClassMage, protocol.ClassRogue:
		default:
			return fmt.Errorf("combat_class_major %d is not a combat discipline", *p.ClassMajor)
		}
	}
	if p.ClassMinor != nil {
		if *p.ClassMinor != protocol.SpecDefault && *p.ClassMinor != protocol.SpecAlternative {
			return fmt.Errorf("combat_class_minor %d out of range", *p.ClassMinor)
		}
	}
	if p.ManaCharge != nil && *p.ManaCharge > current.Mana {
		return fmt.Errorf("mana_charge %v exceeded mana %v", *p.ManaCharge, current.Mana)
	}
	if p.Mana != nil {
		if err := ensureWithinF(*p.Mana, 0, 1, "mana"); err != nil {
			return err
		}
	}
	if p.BlockingGauge != nil {
		if err := inspectBlockingGauge(*p.BlockingGauge, previous); err != nil {
			return err
		}
	}
	if p.Multipliers != nil {
		if err := inspectMultipliers(p.Multipliers); err != nil {
			return err
		}
	}
	if p.Level != nil {
		if err := ensureWithinI(*p.Level, 1, 500, "level"); err != nil {
			return err
		}
	}
	if p.Experience != nil {
		if err := ensureWithinI(*p.Experience, 0, maxExperience(current.Level), "experience"); err != nil {
			return err
		}
	}
	if p.Master != nil && *p.Master != 0 {
		return fmt.Errorf("master %d must be 0", *p.Master)
	}
	if p.PowerBase != nil && *p.PowerBase != 0 {
		return fmt.Errorf("power_base %d must be 0", *p.PowerBase)
	}
	if p.Consumable != nil && !p.Consumable.IsEmpty() &&
		p.Consumable.Kind.Major != protocol.ItemFood {
		return fmt.Errorf("consumable kind %d is not food", p.Consumable.Kind.Major)
	}
	if p.Equipment != nil {
		if err := v.inspectEquipment(p.Equipment, current); err != nil {
			return err
		}
	}
	if p.Name != nil {
		if n := len(*p.Name); n < 1 || n > 15 {
			return fmt.Errorf("name length %d out of range [1, 15]", n)
		}
	}
	if p.SkillTree != nil {
		if err := inspectSkillTree(p.SkillTree, current.Level); err != nil {
			return err
		}
	}
	if p.ManaCubes != nil {
		if err := ensureNotNegative(*p.ManaCubes, "mana_cubes"); err != nil {
			return err
		}
	}
	return nil
}

func inspectRotation(r *protocol.EulerAngles) error {
	if !isFinite(r.Pitch) {
		return fmt.Errorf("rotation.pitch was not finite")
	}
	if err := ensureWithinF(r.Roll, -90, 90, "rotation.roll"); err != nil {
		return err
	}
	// Yaw over- and underflows past 180 while attacking.
	if !isFinite(r.Yaw) {
		return fmt.Errorf("rotation.yaw was not finite")
	}
	return nil
}

func inspectAcceleration(a protocol.Vec3, current *world.Character) error {
	limit := float32(math.Hypot(80, 80)) + 0.00001
	if !current.Flags.Has(protocol.FlagGliding) {
		if h := horizontal(a); h > limit {
			return fmt.Errorf("acceleration.horizontal %v exceeded %v", h, limit)
		}
	}
	switch {
	case current.PhysicsFlags.Has(protocol.PhysSwimming):
		return ensureWithinF(a[2], -80, 80, "acceleration.vertical")
	case current.Flags.Has(protocol.FlagClimbing):
		if a[2] != -16 && a[2] != 0 && a[2] != 16 {
			return fmt.Errorf("acceleration.vertical %v not in {-16, 0, 16}", a[2])
		}
		return nil
	default:
		if a[2] != 0 {
			return fmt.Errorf("acceleration.vertical %v must be 0", a[2])
		}
		return nil
	}
}

func inspectVelocityExtra(ve protocol.Vec3, current *world.Character) error {
	// 0.1 because the game never resets all the way to 0.
	maxXY, maxZ := float32(0.1), float32(0)
	if current.ClassMajor == protocol.ClassRanger {
		maxXY, maxZ = 35, 17
	}
	if h := horizontal(ve); h > maxXY {
		return fmt.Errorf("velocity_extra.horizontal %v exceeded %v", h, maxXY)
	}
	return ensureWithinF(ve[2], 0, maxZ, "velocity_extra.vertical")
}

func inspectBlockingGauge(gauge float32, previous *world.Character) error {
	// The gauge updates with one frame of delay, so the former state
	// decides whether the player was blocking.
	blockingViaShield := previous.Animation == protocol.AnimShieldM2Charging

	guardian := previous.ClassMajor == protocol.ClassWarrior &&
		previous.ClassMinor == protocol.SpecAlternative
	blockingViaPassive := guardian &&
		(previous.Animation == protocol.AnimDualWieldM2Charging ||
			previous.Animation == protocol.AnimGreatweaponM2Charging ||
			previous.Animation == protocol.AnimUnarmedM2Charging)

	max := float32(1)
	if blockingViaShield || blockingViaPassive {
		max = previous.BlockingGauge
	}
	return ensureWithinF(gauge, 0, max, "blocking_gauge")
}

func inspectMultipliers(m *protocol.Multipliers) error {
	if err := ensureExactF(m.Health, 100, "multipliers.health"); err != nil {
		return err
	}
	if err := ensureExactF(m.AttackSpeed, 1, "multipliers.attack_speed"); err != nil {
		return err
	}
	if err := ensureExactF(m.Damage, 1, "multipliers.damage"); err != nil {
		return err
	}
	if err := ensureExactF(m.Resi, 1, "multipliers.resi"); err != nil {
		return err
	}
	return ensureExactF(m.Armor, 1, "multipliers.armor")
}

func inspectSkillTree(st *protocol.SkillTree, level int32) error {
	for _, skill := range st {
		if skill < 0 {
			return fmt.Errorf("skill %d was negative", skill)
		}
	}
	if max := int64(level-1) * 2; st.Sum() > max {
		return fmt.Errorf("skill point total %d exceeded %d", st.Sum(), max)
	}
	return nil
}

func (v *Validator) inspectAppearance(a *protocol.Appearance, current *world.Character) error {
	if a.Flags != 0 {
		return fmt.Errorf("appearance.flags %#x must be empty", uint16(a.Flags))
	}

	if a.TailModel != -1 {
		return fmt.Errorf("appearance.tail_model %d must be -1", a.TailModel)
	}
	if a.Shoulder2Model != -1 {
		return fmt.Errorf("appearance.shoulder2_model %d must be -1", a.Shoulder2Model)
	}
	if a.WingModel != -1 {
		return fmt.Errorf("appearance.wing_model %d must be -1", a.WingModel)
	}

	if err := ensureExactF(a.HandSize, 1.0, "appearance.hand_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.FootSize, 0.98, "appearance.foot_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.TailSize, 0.8, "appearance.tail_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.Shoulder2Size, 1.0, "appearance.shoulder2_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.WingSize, 1.0, "appearance.wing_size"); err != nil {
		return err
	}

	rule, ok := v.appearance.Get(current.Race)
	if !ok {
		return fmt.Errorf("race %d has no appearance rule", current.Race)
	}

	if err := ensureExactV(a.BodyOffset, protocol.Vec3{0, 0, -5}, "appearance.body_offset"); err != nil {
		return err
	}
	if err := ensureExactV(a.HeadOffset, rule.HeadOffset, "appearance.head_offset"); err != nil {
		return err
	}
	if err := ensureExactV(a.HandOffset, protocol.Vec3{6, 0, 0}, "appearance.hand_offset"); err != nil {
		return err
	}
	if err := ensureExactV(a.FootOffset, protocol.Vec3{3, 1, -10.5}, "appearance.foot_offset"); err != nil {
		return err
	}
	if err := ensureExactV(a.TailOffset, protocol.Vec3{0, -8, 2}, "appearance.tail_offset"); err != nil {
		return err
	}
	if err := ensureExactV(a.WingOffset, protocol.Vec3{}, "appearance.wing_offset"); err != nil {
		return err
	}

	if err := ensureExactF(a.BodyRotation, 0, "appearance.body_rotation"); err != nil {
		return err
	}
	if err := ensureExactV(a.HandRotation, protocol.Vec3{}, "appearance.hand_rotation"); err != nil {
		return err
	}
	if err := ensureExactF(a.FeetRotation, 0, "appearance.feet_rotation"); err != nil {
		return err
	}
	if err := ensureExactF(a.WingRotation, 0, "appearance.wing_rotation"); err != nil {
		return err
	}
	if err := ensureExactF(a.TailRotation, 0, "appearance.tail_rotation"); err != nil {
		return err
	}

	size := protocol.Vec3{rule.Hitbox.Width, rule.Hitbox.Depth, rule.Hitbox.Height}
	if err := ensureExactV(a.CreatureSize, size, "appearance.creature_size"); err != nil {
		return err
	}
	if err := ensureWithinModel(a.HeadModel, rule.HeadModel, "appearance.head_model"); err != nil {
		return err
	}
	if err := ensureWithinModel(a.HairModel, rule.HairModel, "appearance.hair_model"); err != nil {
		return err
	}
	if err := ensureWithinModel(a.HandModel, rule.HandModel, "appearance.hand_model"); err != nil {
		return err
	}
	if a.FootModel != rule.FootModel {
		return fmt.Errorf("appearance.foot_model %d must be %d", a.FootModel, rule.FootModel)
	}
	if a.BodyModel != rule.BodyModel {
		return fmt.Errorf("appearance.body_model %d must be %d", a.BodyModel, rule.BodyModel)
	}
	if err := ensureExactF(a.HeadSize, rule.HeadSize, "appearance.head_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.BodySize, rule.BodySize, "appearance.body_size"); err != nil {
		return err
	}
	if err := ensureExactF(a.Shoulder1Size, rule.Shoulder1Size, "appearance.shoulder1_size"); err != nil {
		return err
	}
	return ensureExactF(a.WeaponSize, rule.WeaponSize, "appearance.weapon_size")
}

// Major kind each equipment slot accepts. Slot 0 only ever holds an
// empty item.
var slotKinds = [protocol.SlotCount]protocol.ItemKindMajor{
	protocol.SlotUnknown:     protocol.ItemNone,
	protocol.SlotNeck:        protocol.ItemAmulet,
	protocol.SlotChest:       protocol.ItemChest,
	protocol.SlotFeet:        protocol.ItemBoots,
	protocol.SlotHands:       protocol.ItemGloves,
	protocol.SlotShoulder:    protocol.ItemShoulder,
	protocol.SlotLeftWeapon:  protocol.ItemWeapon,
	protocol.SlotRightWeapon: protocol.ItemWeapon,
	protocol.SlotLeftRing:    protocol.ItemRing,
	protocol.SlotRightRing:   protocol.ItemRing,
	protocol.SlotLamp:        protocol.ItemLamp,
	protocol.SlotSpecial:     protocol.ItemSpecial,
	protocol.SlotPet:         protocol.ItemPet,
}

func (v *Validator) inspectEquipment(eq *protocol.Equipment, current *world.Character) error {
	for slot := range eq {
		item := &eq[slot]
		if item.IsEmpty() {
			continue
		}
		if item.Kind.Major != slotKinds[slot] {
			return fmt.Errorf("equipment slot %d holds kind %d, wants %d",
				slot, item.Kind.Major, slotKinds[slot])
		}
		if item.Recipe != (protocol.ItemKind{}) {
			return fmt.Errorf("equipment slot %d has a recipe", slot)
		}
		if allowed := v.materials.Allowed(item.Kind, current.ClassMajor); allowed != nil {
			found := false
			for _, m := range allowed {
				if item.Material == m {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("equipment slot %d material %d not allowed", slot, item.Material)
			}
		}
		// 2H weapons legitimately reach 32 spirits; tolerated on
		// everything due to popularity.
		if item.SpiritCounter < 0 || item.SpiritCounter > 32 {
			return fmt.Errorf("equipment slot %d spirit_counter %d out of range", slot, item.SpiritCounter)
		}
	}
	return nil
}

func maxExperience(level int32) int32 {
	_ = level
	return 9999
}

func horizontal(v protocol.Vec3) float32 {
	return float32(math.Hypot(float64(v[0]), float64(v[1])))
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func ensureWithinF(v, min, max float32, field string) error {
	if v < min || v > max || math.IsNaN(float64(v)) {
		return fmt.Errorf("%s %v out of range [%v, %v]", field, v, min, max)
	}
	return nil
}

func ensureWithinI(v, min, max int32, field string) error {
	if v < min || v > max {
		return fmt.Errorf("%s %d out of range [%d, %d]", field, v, min, max)
	}
	return nil
}

func ensureNotNegative(v int32, field string) error {
	if v < 0 {
		return fmt.Errorf("%s %d was negative", field, v)
	}
	return nil
}

func ensureExactF(v, want float32, field string) error {
	if v != want {
		return fmt.Errorf("%s %v must be %v", field, v, want)
	}
	return nil
}

func ensureExactV(v, want protocol.Vec3, field string) error {
	if v != want {
		return fmt.Errorf("%s %v must be %v", field, v, want)
	}
	return nil
}

func ensureWithinModel(v int16, r [2]int16, field string) error {
	if v < r[0] || v > r[1] {
		return fmt.Errorf("%s %d out of range [%d, %d]", field, v, r[0], r[1])
	}
	return nil
}
