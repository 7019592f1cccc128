package handler

import (
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/system"
	"github.com/cwgo/server/internal/world"
)

// HandleHit forwards a hit to its target, who is the only peer that
// acts on it. Healing yourself by hitting yourself with negative
// damage is silently dropped.
func HandleHit(deps *Deps, player *world.Player, h *protocol.Hit) {
	if h.Target == h.Attacker && h.Damage < 0 {
		return
	}
	target := deps.Hub.Get(h.Target)
	if target == nil {
		// Target disconnected in this moment.
		return
	}
	hit := *h
	hit.Flash = true
	target.Send(&protocol.WorldUpdate{
		Hits:   []protocol.Hit{hit},
		Sounds: impactSounds(&hit, target.Character().Race),
	})
}

// impactSounds picks the sounds the victim hears at the point of
// impact. Landed hits add the victim's own groan.
func impactSounds(h *protocol.Hit, race protocol.Race) []protocol.Sound {
	var kinds []protocol.SoundKind
	switch h.Kind {
	case protocol.HitBlock, protocol.HitMiss:
		kinds = []protocol.SoundKind{protocol.SoundBlock}
	case protocol.HitAbsorb:
		kinds = []protocol.SoundKind{protocol.SoundAbsorb}
	case protocol.HitDodge, protocol.HitInvisible:
		return nil
	default:
		kinds = []protocol.SoundKind{protocol.SoundPunch1}
		if groan, ok := groanOf(race); ok {
			kinds = append(kinds, groan)
		}
	}
	sounds := make([]protocol.Sound, 0, len(kinds))
	for _, kind := range kinds {
		sounds = append(sounds, protocol.SoundAt(h.Position, kind))
	}
	return sounds
}

func groanOf(race protocol.Race) (protocol.SoundKind, bool) {
	switch race {
	case protocol.RaceElfMale:
		return protocol.SoundMaleGroan, true
	case protocol.RaceElfFemale:
		return protocol.SoundFemaleGroan, true
	case protocol.RaceHumanMale:
		return protocol.SoundMaleGroan2, true
	case protocol.RaceHumanFemale:
		return protocol.SoundFemaleGroan2, true
	case protocol.RaceGoblinMale:
		return protocol.SoundGoblinMaleGroan, true
	case protocol.RaceGoblinFemale:
		return protocol.SoundGoblinFemaleGroan, true
	case protocol.RaceLizardmanMale:
		return protocol.SoundLizardMaleGroan, true
	case protocol.RaceLizardmanFemale:
		return protocol.SoundLizardFemaleGroan, true
	case protocol.RaceDwarfMale:
		return protocol.SoundDwarfMaleGroan, true
	case protocol.RaceDwarfFemale:
		return protocol.SoundDwarfFemaleGroan, true
	case protocol.RaceOrcMale:
		return protocol.SoundOrcMaleGroan, true
	case protocol.RaceOrcFemale:
		return protocol.SoundOrcFemaleGroan, true
	case protocol.RaceFrogmanMale:
		return protocol.SoundFrogmanMaleGroan, true
	case protocol.RaceFrogmanFemale:
		return protocol.SoundFrogmanFemaleGroan, true
	case protocol.RaceUndeadMale:
		return protocol.SoundUndeadMaleGroan, true
	case protocol.RaceUndeadFemale:
		return protocol.SoundUndeadFemaleGroan, true
	default:
		return 0, false
	}
}

// HandleStatusEffect relays an applied effect; poison additionally
// starts a server-side damage tick against the target.
func HandleStatusEffect(deps *Deps, player *world.Player, e *protocol.StatusEffect) {
	deps.Hub.BroadcastExcept(&protocol.WorldUpdate{
		StatusEffects: []protocol.StatusEffect{*e},
	}, player.ID)

	if e.Kind == protocol.EffectPoison {
		if target := deps.Hub.Get(e.Target); target != nil {
			go system.RunPoison(target, e)
		}
	}
}

// HandleProjectile relays a fired projectile to everyone else.
func HandleProjectile(deps *Deps, player *world.Player, p *protocol.Projectile) {
	deps.Hub.BroadcastExcept(&protocol.WorldUpdate{
		Projectiles: []protocol.Projectile{*p},
	}, player.ID)
}
