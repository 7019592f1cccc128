package handler

import (
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// HandleCreatureAction services world interaction requests. Most kinds
// are declined with a notice; only dropping and picking up items are
// live.
func HandleCreatureAction(deps *Deps, player *world.Player, a *protocol.CreatureAction) {
	switch a.Kind {
	case protocol.ActionBomb:
		notify(player, "bombs are disabled")
		reimburse(player, a.Item)

	case protocol.ActionTalk:
		notify(player, "quests coming soon(tm)")

	case protocol.ActionObjectInteraction:
		notify(player, "object interactions are disabled")

	case protocol.ActionPickUp:
		item, ok := deps.Hub.RemoveDrop(a.Zone, int(a.ItemIndex))
		if !ok {
			// Somebody else grabbed it first.
			return
		}
		position := player.Character().Position
		player.Send(&protocol.WorldUpdate{
			Pickups: []protocol.Pickup{{Interactor: player.ID, Item: item}},
			Sounds:  []protocol.Sound{protocol.SoundAt(position, protocol.SoundPickup)},
		})

	case protocol.ActionDrop:
		c := player.Character()
		position := c.Position
		position[2] -= protocol.SizeBlock
		deps.Hub.AddDrop(a.Item, position, c.Rotation.Yaw)

	case protocol.ActionCallPet:
		notify(player, "pets are not implemented yet")
	}
}

// reimburse hands a consumed item back via a self-pickup, so declining
// an action never costs the player anything.
func reimburse(player *world.Player, item protocol.Item) {
	player.Send(&protocol.WorldUpdate{
		Pickups: []protocol.Pickup{{Interactor: player.ID, Item: item}},
	})
}

// HandleZoneDiscovery acknowledges zone exploration. The relay keeps
// no terrain state, so there is nothing to do.
func HandleZoneDiscovery(deps *Deps, player *world.Player, d *protocol.ZoneDiscovery) {
}

// HandleRegionDiscovery acknowledges region exploration.
func HandleRegionDiscovery(deps *Deps, player *world.Player, d *protocol.RegionDiscovery) {
}
