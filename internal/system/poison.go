package system

import (
	"time"

	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

const poisonTickInterval = 500 * time.Millisecond

// RunPoison applies a poison effect's damage over time. Clients do not
// simulate poison themselves; the server sends one hit per tick at the
// victim's current position. Runs in its own goroutine and stops when
// the victim's session dies.
func RunPoison(target *world.Player, effect *protocol.StatusEffect) {
	tickCount := effect.Duration / 500
	for i := int32(0); i <= tickCount; i++ {
		if i > 0 {
			time.Sleep(poisonTickInterval)
		}
		position := target.Character().Position
		tick := &protocol.WorldUpdate{
			Hits: []protocol.Hit{{
				Attacker: 0,
				Target:   target.ID,
				Damage:   effect.Modifier,
				Flash:    true,
				Position: position,
			}},
			Sounds: []protocol.Sound{protocol.SoundAt(position, protocol.SoundAbsorb)},
		}
		if !target.Send(tick) {
			return
		}
	}
}
