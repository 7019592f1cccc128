package system

import (
	"time"

	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

// Clients advance their clock locally and only resync on IngameDatetime,
// so pinning the time means re-sending it faster than the drift shows.
const (
	freezeInterval = 6 * time.Second
	noonMillis     = 12 * 60 * 60 * 1000
)

// FreezeTime pins the in-game clock to noon for every player until
// stop closes. Runs in its own goroutine.
func FreezeTime(stop <-chan struct{}, hub *world.Hub) {
	ticker := time.NewTicker(freezeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			hub.Broadcast(&protocol.IngameDatetime{Day: 0, Time: noonMillis})
		case <-stop:
			return
		}
	}
}
