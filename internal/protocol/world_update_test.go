package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldUpdateEmpty(t *testing.T) {
	got := roundTrip(t, &WorldUpdate{}).(*WorldUpdate)
	assert.Empty(t, got.Blocks)
	assert.Empty(t, got.Hits)
	assert.Empty(t, got.Sounds)
	assert.Empty(t, got.Projectiles)
	assert.Empty(t, got.Drops)
	assert.Empty(t, got.Pickups)
	assert.Empty(t, got.Kills)
	assert.Empty(t, got.StatusEffects)
}

func TestWorldUpdateRoundTrip(t *testing.T) {
	p := &WorldUpdate{
		Hits: []Hit{{
			Attacker: 1,
			Target:   2,
			Damage:   13.5,
			Position: Pos{10, 20, 30},
			Flash:    true,
		}},
		Sounds: []Sound{SoundAt(Pos{SizeBlock, 2 * SizeBlock, 3 * SizeBlock}, SoundPickup)},
		Drops: []ZoneDrops{{
			Zone: Zone{-1, 4},
			Drops: []Drop{{
				Item:     Item{Kind: ItemKind{Major: ItemFood, Minor: 2}, Seed: 8},
				Position: Pos{1, 2, 3},
				Rotation: 90,
				Scale:    0.1,
				Droptime: 500,
			}},
		}},
		Pickups: []Pickup{{
			Interactor: 7,
			Item:       Item{Kind: ItemKind{Major: ItemCoin}},
		}},
		StatusEffects: []StatusEffect{{
			Source:   1,
			Target:   2,
			Kind:     EffectPoison,
			Modifier: 12,
			Duration: 5000,
		}},
	}

	got := roundTrip(t, p).(*WorldUpdate)
	require.Len(t, got.Hits, 1)
	assert.Equal(t, p.Hits[0], got.Hits[0])
	require.Len(t, got.Sounds, 1)
	assert.Equal(t, p.Sounds[0], got.Sounds[0])
	require.Len(t, got.Drops, 1)
	assert.Equal(t, p.Drops[0], got.Drops[0])
	require.Len(t, got.Pickups, 1)
	assert.Equal(t, p.Pickups[0], got.Pickups[0])
	require.Len(t, got.StatusEffects, 1)
	assert.Equal(t, p.StatusEffects[0], got.StatusEffects[0])
}

func TestSoundAt(t *testing.T) {
	s := SoundAt(Pos{2 * SizeBlock, 4 * SizeBlock, 6 * SizeBlock}, SoundMenuSelect)
	assert.Equal(t, Vec3{2, 4, 6}, s.Position)
	assert.Equal(t, float32(1), s.Volume)
	assert.Equal(t, float32(1), s.Pitch)
	assert.Equal(t, SoundMenuSelect, s.Kind)
}
