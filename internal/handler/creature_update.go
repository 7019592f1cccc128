package handler

import (
	"github.com/cwgo/server/internal/addon"
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// HandleCreatureUpdate applies a state delta to the sender's character,
// runs it through anti-cheat and relays it to everyone else. Kicked
// players still had their state applied; the session dies before the
// next packet.
func HandleCreatureUpdate(deps *Deps, player *world.Player, u *protocol.CreatureUpdate) {
	if u.ID != player.ID {
		kick(deps, player, "creature id spoofing")
		return
	}

	previous, current := player.ApplyUpdate(u)

	if err := deps.Validator.Inspect(u, &previous, &current); err != nil {
		kick(deps, player, err.Error())
		return
	}

	if deps.Config.World.TrafficFilter {
		if !addon.Filter(u, &previous) {
			return
		}
	}
	if deps.Config.World.FixCutoffAnims {
		addon.FixCutoffAnimations(u, &previous)
	}

	if deps.Config.World.PvPEnabled {
		if addon.BroadcastPvP(deps.Hub, player, u) {
			return
		}
	}
	deps.Hub.BroadcastExcept(u, player.ID)
}
