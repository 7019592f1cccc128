package world

import (
	"sync"

	"github.com/cwgo/server/internal/protocol"
)

// Conn is the transport a player is attached to. Send enqueues a
// framed packet and reports false when the connection is gone or its
// queue overflowed.
type Conn interface {
	Send(frame []byte) bool
	FlagDisconnect()
	RemoteAddr() string
}

// Player couples a connection with its authoritative character state.
type Player struct {
	ID   protocol.CreatureID
	conn Conn

	mu        sync.RWMutex
	character Character

	addonMu sync.RWMutex
	team    int32
	admin   bool
}

func NewPlayer(id protocol.CreatureID, conn Conn, character Character) *Player {
	return &Player{ID: id, conn: conn, character: character}
}

// Character returns a copy of the current snapshot.
func (p *Player) Character() Character {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.character
}

// ApplyUpdate merges a delta and returns the snapshots before and
// after, for validators that compare transitions.
func (p *Player) ApplyUpdate(u *protocol.CreatureUpdate) (previous, current Character) {
	p.mu.Lock()
	defer p.mu.Unlock()
	previous = p.character
	p.character.Apply(u)
	return previous, p.character
}

// SetCharacter replaces the snapshot wholesale.
func (p *Player) SetCharacter(c Character) {
	p.mu.Lock()
	p.character = c
	p.mu.Unlock()
}

func (p *Player) Send(pkt protocol.Packet) bool {
	return p.conn.Send(protocol.Frame(pkt))
}

func (p *Player) SendFrame(frame []byte) bool {
	return p.conn.Send(frame)
}

func (p *Player) Disconnect() {
	p.conn.FlagDisconnect()
}

func (p *Player) RemoteAddr() string {
	return p.conn.RemoteAddr()
}

// Team is the PvP team id, 0 when unassigned.
func (p *Player) Team() int32 {
	p.addonMu.RLock()
	defer p.addonMu.RUnlock()
	return p.team
}

func (p *Player) SetTeam(team int32) {
	p.addonMu.Lock()
	p.team = team
	p.addonMu.Unlock()
}

func (p *Player) Admin() bool {
	p.addonMu.RLock()
	defer p.addonMu.RUnlock()
	return p.admin
}

func (p *Player) SetAdmin(admin bool) {
	p.addonMu.Lock()
	p.admin = admin
	p.addonMu.Unlock()
}
