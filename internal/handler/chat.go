package handler

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cwgo/server/internal/addon"
	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// HandleChat relays a chat line to everyone, including the sender.
// Lines starting with "/" are commands and never reach other players.
func HandleChat(deps *Deps, player *world.Player, msg *protocol.ChatMessageFromClient) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		handleCommand(deps, player, text)
		return
	}

	if deps.Scripting.OnChat(playerContext(player), text) {
		return
	}

	deps.Log.Info("聊天",
		zap.String("name", player.Character().Name),
		zap.String("text", text),
	)
	deps.Hub.Chat(player.ID, text)
}

func handleCommand(deps *Deps, player *world.Player, line string) {
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "admin":
		cmdAdmin(deps, player, fields[1:])
	case "team":
		cmdTeam(deps, player, fields[1:])
	case "who":
		cmdWho(deps, player)
	default:
		notify(player, "unknown command: /"+fields[0])
	}
}

// cmdAdmin grants admin after a bcrypt check against the configured
// hash. An empty hash disables the command entirely.
func cmdAdmin(deps *Deps, player *world.Player, args []string) {
	hash := deps.Config.Admin.PasswordHash
	if hash == "" || len(args) != 1 {
		notify(player, "usage: /admin <password>")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(args[0])); err != nil {
		deps.Log.Warn("管理員密碼錯誤",
			zap.String("name", player.Character().Name),
			zap.String("ip", player.RemoteAddr()),
		)
		notify(player, "wrong password")
		return
	}
	player.SetAdmin(true)
	notify(player, "admin enabled")
}

// cmdTeam joins a pvp team; teammates never see the hostility flag.
// Team 0 leaves the team.
func cmdTeam(deps *Deps, player *world.Player, args []string) {
	if !deps.Config.World.PvPEnabled {
		notify(player, "pvp is disabled on this server")
		return
	}
	if len(args) != 1 {
		notify(player, "usage: /team <number>")
		return
	}
	team, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || team < 0 {
		notify(player, "usage: /team <number>")
		return
	}
	if !addon.ChangeTeam(deps.Hub, player, int32(team)) {
		return
	}
	if team == 0 {
		notify(player, "left team")
	} else {
		notify(player, "joined team "+args[0])
	}
}

func cmdWho(deps *Deps, player *world.Player) {
	players := deps.Hub.Players()
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Character().Name)
	}
	notify(player, strconv.Itoa(len(names))+" online: "+strings.Join(names, ", "))
}
