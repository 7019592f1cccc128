package addon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwgo/server/internal/protocol"
	"github.com/cwgo/server/internal/world"
)

func baseCharacter() world.Character {
	return world.Character{
		Position:      protocol.Pos{100, 200, 300},
		Health:        500,
		Animation:     protocol.AnimIdle,
		AnimationTime: 1000,
		Name:          "alice",
	}
}

func TestFilterDropsUnchangedFields(t *testing.T) {
	previous := baseCharacter()

	pos := previous.Position
	health := float32(400)
	u := &protocol.CreatureUpdate{ID: 1, Position: &pos, Health: &health}

	require.True(t, Filter(u, &previous))
	assert.Nil(t, u.Position, "echoed position is noise")
	require.NotNil(t, u.Health)
	assert.Equal(t, health, *u.Health)
}

func TestFilterEmptyResult(t *testing.T) {
	previous := baseCharacter()

	pos := previous.Position
	name := previous.Name
	u := &protocol.CreatureUpdate{ID: 1, Position: &pos, Name: &name}

	assert.False(t, Filter(u, &previous), "nothing left to relay")
	assert.True(t, u.AllAbsent())
}

func TestFilterKeepsAnimationRestarts(t *testing.T) {
	previous := baseCharacter()

	progressed := int32(1500)
	u := &protocol.CreatureUpdate{ID: 1, AnimationTime: &progressed}
	assert.False(t, Filter(u, &previous), "normal progression is client-side")

	restarted := int32(0)
	u = &protocol.CreatureUpdate{ID: 1, AnimationTime: &restarted}
	require.True(t, Filter(u, &previous))
	require.NotNil(t, u.AnimationTime)
}

func TestFixCutoffAnimations(t *testing.T) {
	previous := baseCharacter()

	stuck := previous.AnimationTime
	u := &protocol.CreatureUpdate{ID: 1, AnimationTime: &stuck}
	FixCutoffAnimations(u, &previous)
	require.NotNil(t, u.AnimationTime)
	assert.Equal(t, int32(0), *u.AnimationTime, "stalled timer restarts the animation")

	progressed := previous.AnimationTime + 100
	u = &protocol.CreatureUpdate{ID: 1, AnimationTime: &progressed}
	FixCutoffAnimations(u, &previous)
	assert.Equal(t, progressed, *u.AnimationTime)

	u = &protocol.CreatureUpdate{ID: 1}
	FixCutoffAnimations(u, &previous)
	assert.Nil(t, u.AnimationTime)
}
