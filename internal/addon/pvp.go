package addon

import (
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// EnablePvP forces the friendly-fire flag on a delta so clients treat
// the creature as attackable. No-op when the delta carries no flags.
func EnablePvP(p *protocol.CreatureUpdate) {
	if p.Flags == nil {
		return
	}
	flags := *p.Flags | protocol.FlagFriendlyFire
	p.Flags = &flags
}

// BroadcastPvP relays a delta with team awareness: teammates receive
// it untouched, everyone else sees the creature with friendly fire
// forced on. Returns false when the delta carries no flags, in which
// case the caller broadcasts normally.
func BroadcastPvP(hub *world.Hub, source *world.Player, p *protocol.CreatureUpdate) bool {
	if p.Flags == nil {
		return false
	}

	hostile := *p
	EnablePvP(&hostile)

	ownTeam := source.Team()
	plain := protocol.Frame(p)
	flagged := protocol.Frame(&hostile)

	for _, other := range hub.Players() {
		if other.ID == source.ID {
			continue
		}
		if ownTeam != 0 && other.Team() == ownTeam {
			other.SendFrame(plain)
		} else {
			other.SendFrame(flagged)
		}
	}
	return true
}

// ChangeTeam moves a player to a team (0 leaves all teams) and pushes
// flag updates both ways so former and new teammates re-render each
// other. Returns false when nothing changed.
func ChangeTeam(hub *world.Hub, player *world.Player, newTeam int32) bool {
	oldTeam := player.Team()
	if oldTeam == newTeam {
		return false
	}
	if oldTeam != 0 {
		updateTeamFlags(hub, player, oldTeam, true)
	}
	player.SetTeam(newTeam)
	if newTeam != 0 {
		updateTeamFlags(hub, player, newTeam, false)
	}
	return true
}

func updateTeamFlags(hub *world.Hub, player *world.Player, team int32, friendlyFire bool) {
	selfUpdate := flagUpdate(player, friendlyFire)
	for _, other := range hub.Players() {
		if other.ID == player.ID || other.Team() != team {
			continue
		}
		player.Send(flagUpdate(other, friendlyFire))
		other.Send(selfUpdate)
	}
}

func flagUpdate(p *world.Player, friendlyFire bool) *protocol.CreatureUpdate {
	flags := p.Character().Flags
	if friendlyFire {
		flags |= protocol.FlagFriendlyFire
	} else {
		flags &^= protocol.FlagFriendlyFire
	}
	return &protocol.CreatureUpdate{ID: p.ID, Flags: &flags}
}
