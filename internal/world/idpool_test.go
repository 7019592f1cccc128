package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwgo/server/internal/protocol"
)

func TestIdPoolClaimsSequentially(t *testing.T) {
	p := NewIdPool()
	assert.Equal(t, protocol.CreatureID(1), p.Claim())
	assert.Equal(t, protocol.CreatureID(2), p.Claim())
	assert.Equal(t, protocol.CreatureID(3), p.Claim())
}

func TestIdPoolReusesLowestFreedFirst(t *testing.T) {
	p := NewIdPool()
	for i := 0; i < 5; i++ {
		p.Claim()
	}
	p.Free(4)
	p.Free(2)

	assert.Equal(t, protocol.CreatureID(2), p.Claim())
	assert.Equal(t, protocol.CreatureID(4), p.Claim())
	assert.Equal(t, protocol.CreatureID(6), p.Claim())
}

func TestIdPoolIgnoresZeroAndDoubleFree(t *testing.T) {
	p := NewIdPool()
	p.Claim()
	p.Free(0)
	p.Free(1)
	p.Free(1)

	assert.Equal(t, protocol.CreatureID(1), p.Claim())
	assert.Equal(t, protocol.CreatureID(2), p.Claim())
}
