package handler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwgo/server/internal/anticheat"
	"github.com/cwgo/server/internal/config"
	"github.com/cwgo/server/internal/persist"
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/scripting"
	"github.com/cwgo/server/internal/world"
)

// Deps holds shared dependencies injected into all packet handlers.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Hub       *world.Hub
	Validator *anticheat.Validator
	Scripting *scripting.Engine
	Audit     *persist.AuditStore
}

// Func handles one decoded packet from an in-world player.
type Func func(deps *Deps, player *world.Player, pkt protocol.Packet)

// Registry maps packet ids to their handlers. Ids absent from the
// registry are a protocol violation; the session is torn down.
type Registry map[protocol.Id]Func

// NewRegistry registers all packet handlers a connected client may send.
func NewRegistry() Registry {
	return Registry{
		protocol.IdCreatureUpdate: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleCreatureUpdate(deps, player, pkt.(*protocol.CreatureUpdate))
		},
		protocol.IdCreatureAction: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleCreatureAction(deps, player, pkt.(*protocol.CreatureAction))
		},
		protocol.IdHit: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleHit(deps, player, pkt.(*protocol.Hit))
		},
		protocol.IdStatusEffect: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleStatusEffect(deps, player, pkt.(*protocol.StatusEffect))
		},
		protocol.IdProjectile: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleProjectile(deps, player, pkt.(*protocol.Projectile))
		},
		protocol.IdChatMessageFromClient: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleChat(deps, player, pkt.(*protocol.ChatMessageFromClient))
		},
		protocol.IdZoneDiscovery: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleZoneDiscovery(deps, player, pkt.(*protocol.ZoneDiscovery))
		},
		protocol.IdRegionDiscovery: func(deps *Deps, player *world.Player, pkt protocol.Packet) {
			HandleRegionDiscovery(deps, player, pkt.(*protocol.RegionDiscovery))
		},
	}
}

// Dispatch routes a packet to its handler, recovering from panics so a
// malformed packet never takes the whole server down. Reports false
// when the id has no handler.
func (r Registry) Dispatch(deps *Deps, player *world.Player, id protocol.Id, pkt protocol.Packet) bool {
	fn, ok := r[id]
	if !ok {
		return false
	}
	safeCall(deps.Log, id, func() { fn(deps, player, pkt) })
	return true
}

func safeCall(log *zap.Logger, id protocol.Id, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("封包處理崩潰",
				zap.String("packet", id.String()),
				zap.String("panic", fmt.Sprint(rec)),
			)
		}
	}()
	fn()
}

// notify sends a server notice to a single player.
func notify(player *world.Player, text string) {
	player.Send(&protocol.ChatMessageFromServer{Source: 0, Text: text})
}

// kick notifies the player why, records the event and flags the
// session for teardown.
func kick(deps *Deps, player *world.Player, reason string) {
	deps.Log.Warn("踢出玩家",
		zap.Int64("creature", int64(player.ID)),
		zap.String("reason", reason),
	)
	notify(player, "kicked: "+reason)
	deps.Audit.RecordKick(player.Character().Name, player.RemoteAddr(), reason)
	player.Disconnect()
}

// playerContext snapshots a player for the lua hook API.
func playerContext(player *world.Player) scripting.PlayerContext {
	c := player.Character()
	return scripting.PlayerContext{
		ID:    int64(player.ID),
		Name:  c.Name,
		Level: c.Level,
		X:     c.Position[0],
		Y:     c.Position[1],
		Z:     c.Position[2],
	}
}
