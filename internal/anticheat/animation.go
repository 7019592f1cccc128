package anticheat

import (
	"github.com/cwgo/server/internal/protocol"
)

// Animations any creature may play regardless of class or gear.
var generalAnimations = []protocol.Animation{
	protocol.AnimIdle,
	protocol.AnimKick,
	protocol.AnimTeleport,
	protocol.AnimTeleportToCity,
	protocol.AnimRiding,
	protocol.AnimBoat,
	protocol.AnimDrinking,
	protocol.AnimEating,
	protocol.AnimPetFoodPresent,
	protocol.AnimSitting,
	protocol.AnimSleeping,
	protocol.AnimManaCubePickup,
	protocol.AnimUnarmedM1a,
	protocol.AnimUnarmedM1b,
	protocol.AnimUnarmedM2Charging,
	protocol.AnimUnarmedM2,
}

// allowedAnimations builds the set of animations legal for a class and
// loadout. The client picks attack animations from the equipped
// weapons, so anything outside this set means a tampered packet.
func allowedAnimations(major protocol.CombatClassMajor, minor protocol.CombatClassMinor, eq *protocol.Equipment) map[protocol.Animation]bool {
	set := make(map[protocol.Animation]bool, 48)
	add := func(anims ...protocol.Animation) {
		for _, a := range anims {
			set[a] = true
		}
	}
	add(generalAnimations...)

	switch major {
	case protocol.ClassWarrior:
		add(protocol.AnimCyclone, protocol.AnimSmash)
	case protocol.ClassMage:
		if minor == protocol.SpecAlternative {
			add(protocol.AnimSplash, protocol.AnimHealingStream)
		} else {
			add(protocol.AnimFireExplosionLong, protocol.AnimFireExplosionShort,
				protocol.AnimLava, protocol.AnimFireBeam, protocol.AnimFireRay)
		}
	case protocol.ClassRogue:
		if minor == protocol.SpecAlternative {
			add(protocol.AnimStealth, protocol.AnimShuriken, protocol.AnimClone)
		} else {
			add(protocol.AnimIntercept)
		}
	}

	for _, slot := range []int{protocol.SlotLeftWeapon, protocol.SlotRightWeapon} {
		weapon := &eq[slot]
		if weapon.Kind.Major != protocol.ItemWeapon {
			continue
		}
		switch protocol.WeaponKind(weapon.Kind.Minor) {
		case protocol.WeaponSword, protocol.WeaponAxe, protocol.WeaponMace:
			add(protocol.AnimDualWieldM1a, protocol.AnimDualWieldM1b,
				protocol.AnimDualWieldM2Charging)
		case protocol.WeaponDagger:
			add(protocol.AnimDaggersM1a, protocol.AnimDaggersM1b, protocol.AnimDaggersM2,
				protocol.AnimDualWieldM2Charging)
		case protocol.WeaponFist:
			add(protocol.AnimFistsM2, protocol.AnimDualWieldM1a, protocol.AnimDualWieldM1b,
				protocol.AnimDualWieldM2Charging)
		case protocol.WeaponLongsword:
			add(protocol.AnimLongswordM1a, protocol.AnimLongswordM1b, protocol.AnimLongswordM2)
		case protocol.WeaponShield:
			add(protocol.AnimShieldM1a, protocol.AnimShieldM1b,
				protocol.AnimShieldM2Charging, protocol.AnimShieldM2)
		case protocol.WeaponGreatsword, protocol.WeaponGreataxe,
			protocol.WeaponGreatmace, protocol.WeaponPitchfork:
			add(protocol.AnimGreatweaponM1a, protocol.AnimGreatweaponM1b,
				protocol.AnimGreatweaponM1c, protocol.AnimGreatweaponM2Charging,
				protocol.AnimSmash)
			if major == protocol.ClassWarrior {
				if minor == protocol.SpecAlternative {
					add(protocol.AnimGreatweaponM2Guardian)
				} else {
					add(protocol.AnimGreatweaponM2Berserker)
				}
			}
		case protocol.WeaponBow:
			add(protocol.AnimShootArrow, protocol.AnimBowM2Charging, protocol.AnimBowM2)
		case protocol.WeaponCrossbow:
			add(protocol.AnimShootArrow, protocol.AnimCrossbowM2Charging, protocol.AnimCrossbowM2)
		case protocol.WeaponBoomerang:
			add(protocol.AnimBoomerangM1, protocol.AnimBoomerangM2Charging)
		case protocol.WeaponStaff:
			if minor == protocol.SpecAlternative {
				add(protocol.AnimStaffWaterM1, protocol.AnimStaffWaterM2, protocol.AnimHealingStream)
			} else {
				add(protocol.AnimStaffFireM1, protocol.AnimStaffFireM2)
			}
		case protocol.WeaponWand:
			if minor == protocol.SpecAlternative {
				add(protocol.AnimWandWaterM1, protocol.AnimWandWaterM2, protocol.AnimHealingStream)
			} else {
				add(protocol.AnimWandFireM1, protocol.AnimWandFireM2)
			}
		case protocol.WeaponBracelet:
			add(protocol.AnimBeamDraining)
			if minor == protocol.SpecAlternative {
				add(protocol.AnimBraceletsWaterM1a, protocol.AnimBraceletsWaterM1b,
					protocol.AnimBraceletWaterM2)
			} else {
				add(protocol.AnimBraceletsFireM1a, protocol.AnimBraceletsFireM1b,
					protocol.AnimBraceletFireM2)
			}
		}
	}

	return set
}
