package handler

import (
	"go.uber.org/zap"

	"github.com/cwgo/server/internal/addon"
	"github.com/cwgo/server/internal/net"
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// RunSession drives one client connection from handshake to teardown.
// Runs in the connection's own goroutine.
func RunSession(deps *Deps, reg Registry, sess *net.Session) {
	// Drain the out-queue on the way out so kick notices and other
	// queued frames reach the client.
	defer sess.CloseWhenDrained()

	if !handshake(deps, sess) {
		return
	}

	creatureID := deps.Hub.ClaimID()
	defer deps.Hub.FreeID(creatureID)

	sess.SendPacket(&protocol.ConnectionAcceptance{})
	// Forces the client to send its full creature state next.
	sess.Send(protocol.AbnormalCreatureUpdate(creatureID))

	player, ok := awaitCharacter(deps, sess, creatureID)
	if !ok {
		return
	}

	if !onJoin(deps, player) {
		return
	}

	deps.Hub.Register(player)
	readLoop(deps, reg, sess, player)
	onLeave(deps, player)
}

// handshake expects a ProtocolVersion frame before anything else. On
// version mismatch the server echoes its own version and hangs up.
func handshake(deps *Deps, sess *net.Session) bool {
	id, err := sess.ReadID()
	if err != nil || id != protocol.IdProtocolVersion {
		return false
	}
	pkt, err := sess.ReadBody(id)
	if err != nil {
		return false
	}
	version := pkt.(*protocol.ProtocolVersion).Version
	if version != protocol.Version {
		deps.Log.Info("協議版本不符",
			zap.Int32("client", version),
			zap.Int32("server", protocol.Version),
		)
		sess.SendPacket(&protocol.ProtocolVersion{Version: protocol.Version})
		// The reply must reach the socket before teardown.
		sess.CloseWhenDrained()
		return false
	}
	return true
}

// awaitCharacter reads the client's answer to the abnormal update: a
// CreatureUpdate carrying every field. Partial state means a broken or
// hostile client.
func awaitCharacter(deps *Deps, sess *net.Session, creatureID protocol.CreatureID) (*world.Player, bool) {
	id, err := sess.ReadID()
	if err != nil || id != protocol.IdCreatureUpdate {
		return nil, false
	}
	pkt, err := sess.ReadBody(id)
	if err != nil {
		return nil, false
	}
	u := pkt.(*protocol.CreatureUpdate)
	character, ok := world.CharacterFromUpdate(u)
	if !ok {
		deps.Log.Warn("初始狀態不完整", zap.String("ip", sess.RemoteAddr()))
		return nil, false
	}

	player := world.NewPlayer(creatureID, sess, character)

	// The first update passes through anti-cheat like any other, with
	// itself as the baseline.
	if err := deps.Validator.Inspect(u, &character, &character); err != nil {
		kick(deps, player, err.Error())
		return nil, false
	}
	return player, true
}

// onJoin sends the newcomer the world: seed, greeting, everyone else's
// state and the ground items. The newcomer is not yet registered, so
// the join announcement excludes them.
func onJoin(deps *Deps, player *world.Player) bool {
	c := player.Character()

	player.Send(&protocol.MapSeed{Seed: deps.Config.World.MapSeed})
	notify(player, deps.Config.Server.Welcome)

	for _, other := range deps.Hub.Players() {
		snapshot := other.Character().ToUpdate(other.ID)
		if deps.Config.World.PvPEnabled {
			addon.EnablePvP(snapshot)
		}
		if !player.Send(snapshot) {
			return false
		}
	}

	player.Send(&protocol.WorldUpdate{Drops: deps.Hub.DropSnapshots()})

	deps.Hub.Announce("[+] " + c.Name)
	deps.Log.Info("玩家進入世界",
		zap.Int64("creature", int64(player.ID)),
		zap.String("name", c.Name),
		zap.String("ip", player.RemoteAddr()),
	)
	deps.Scripting.OnJoin(playerContext(player))
	deps.Audit.RecordJoin(c.Name, player.RemoteAddr())
	return true
}

func readLoop(deps *Deps, reg Registry, sess *net.Session, player *world.Player) {
	for !sess.ShouldDisconnect() {
		id, err := sess.ReadID()
		if err != nil {
			return
		}
		pkt, err := sess.ReadBody(id)
		if err != nil {
			deps.Log.Debug("封包解碼失敗",
				zap.String("packet", id.String()),
				zap.Error(err),
			)
			return
		}
		if !reg.Dispatch(deps, player, id, pkt) {
			deps.Log.Warn("未預期的封包",
				zap.String("packet", id.String()),
				zap.Int64("creature", int64(player.ID)),
			)
			return
		}
	}
}

// onLeave removes the player and tells the survivors. The removal
// update zeroes health so the corpse despawns client-side.
func onLeave(deps *Deps, player *world.Player) {
	deps.Hub.Unregister(player.ID)

	name := player.Character().Name
	health := float32(0)
	affiliation := protocol.AffiliationNeutral
	deps.Hub.Broadcast(&protocol.CreatureUpdate{
		ID:          player.ID,
		Health:      &health,
		Affiliation: &affiliation,
	})
	deps.Hub.Announce("[-] " + name)
	deps.Log.Info("玩家離線",
		zap.Int64("creature", int64(player.ID)),
		zap.String("name", name),
	)
	deps.Scripting.OnLeave(playerContext(player))
	deps.Audit.RecordLeave(name, player.RemoteAddr())
}
