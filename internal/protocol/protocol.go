// Package protocol implements the Cube World wire protocol: packet
// framing, the compressed bitfield-delta CreatureUpdate codec, and the
// fixed-layout records the vanilla client reads by raw memory copy.
package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// Id is the 4-byte little-endian packet identifier leading every frame.
type Id int32

const (
	IdProtocolVersion Id = iota
	IdConnectionAcceptance
	IdCreatureUpdate
	IdCreatureAction
	IdHit
	IdStatusEffect
	IdProjectile
	IdWorldUpdate
	IdIngameDatetime
	IdChatMessageFromClient
	IdChatMessageFromServer
	IdZoneDiscovery
	IdRegionDiscovery
	IdMapSeed
)

func (id Id) String() string {
	switch id {
	case IdProtocolVersion:
		return "ProtocolVersion"
	case IdConnectionAcceptance:
		return "ConnectionAcceptance"
	case IdCreatureUpdate:
		return "CreatureUpdate"
	case IdCreatureAction:
		return "CreatureAction"
	case IdHit:
		return "Hit"
	case IdStatusEffect:
		return "StatusEffect"
	case IdProjectile:
		return "Projectile"
	case IdWorldUpdate:
		return "WorldUpdate"
	case IdIngameDatetime:
		return "IngameDatetime"
	case IdChatMessageFromClient:
		return "ChatMessageFromClient"
	case IdChatMessageFromServer:
		return "ChatMessageFromServer"
	case IdZoneDiscovery:
		return "ZoneDiscovery"
	case IdRegionDiscovery:
		return "RegionDiscovery"
	case IdMapSeed:
		return "MapSeed"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(id))
	}
}

var (
	ErrTruncated     = errors.New("truncated packet")
	ErrTrailing      = errors.New("trailing bytes after packet")
	ErrUnknownPacket = errors.New("unknown packet id")
	ErrInvalidString = errors.New("invalid string data")
)

// CreatureID identifies one creature in the world. 0 is reserved for
// the server itself.
type CreatureID int64

// Vec3 is a float triple (velocities, offsets, sound coordinates).
type Vec3 [3]float32

// Pos is a world position in 1/65536-block units.
type Pos [3]int64

// IVec3 is an int32 triple (chunk coordinates).
type IVec3 [3]int32

// Zone is a 2D drop-shard index.
type Zone [2]int32

// EulerAngles is a creature orientation in degrees.
type EulerAngles struct {
	Pitch float32
	Roll  float32
	Yaw   float32
}

// Packet is any frame the server can serialize onto the wire.
type Packet interface {
	PacketID() Id
	writeBody(w *Writer)
}

// Frame serializes a complete wire frame (id + body), ready for a
// session send queue.
func Frame(p Packet) []byte {
	w := NewWriter()
	w.WriteD(int32(p.PacketID()))
	p.writeBody(w)
	return w.Bytes()
}

// ReadId reads the leading 4-byte packet id from the stream.
func ReadId(r io.Reader) (Id, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return Id(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)), nil
}

// ReadPacket reads one complete frame from the stream and decodes it.
// Unknown ids are a protocol error; the caller closes the connection.
func ReadPacket(r io.Reader) (Packet, error) {
	id, err := ReadId(r)
	if err != nil {
		return nil, err
	}
	return ReadPacketBody(r, id)
}

// ReadPacketBody decodes the body of a frame whose id has already been
// consumed.
func ReadPacketBody(r io.Reader, id Id) (Packet, error) {
	switch id {
	case IdProtocolVersion:
		return readProtocolVersion(r)
	case IdConnectionAcceptance:
		return &ConnectionAcceptance{}, nil
	case IdCreatureUpdate:
		return readCreatureUpdate(r)
	case IdCreatureAction:
		return readFixed(r, creatureActionSize, decodeCreatureAction)
	case IdHit:
		return readFixed(r, hitSize, decodeHit)
	case IdStatusEffect:
		return readFixed(r, statusEffectSize, decodeStatusEffect)
	case IdProjectile:
		return readFixed(r, projectileSize, decodeProjectile)
	case IdWorldUpdate:
		return readWorldUpdate(r)
	case IdIngameDatetime:
		return readFixed(r, 8, decodeIngameDatetime)
	case IdChatMessageFromClient:
		return readChatFromClient(r)
	case IdChatMessageFromServer:
		return readChatFromServer(r)
	case IdZoneDiscovery:
		return readFixed(r, 8, decodeZoneDiscovery)
	case IdRegionDiscovery:
		return readFixed(r, 8, decodeRegionDiscovery)
	case IdMapSeed:
		return readFixed(r, 4, decodeMapSeed)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPacket, int32(id))
	}
}

// readFixed reads exactly size bytes and decodes them with fn, failing
// on any leftover.
func readFixed[P Packet](r io.Reader, size int, fn func(*Reader) (P, error)) (Packet, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	rd := NewReader(buf)
	p, err := fn(rd)
	if err != nil {
		return nil, err
	}
	if rd.Err() != nil {
		return nil, rd.Err()
	}
	if rd.Remaining() != 0 {
		return nil, ErrTrailing
	}
	return p, nil
}

// readCompressed reads an i32-length-prefixed zlib stream and inflates
// it fully.
func readCompressed(r io.Reader) ([]byte, error) {
	var lb [4]byte
	if _, err := io.ReadFull(r, lb[:]); err != nil {
		return nil, err
	}
	size := int32(uint32(lb[0]) | uint32(lb[1])<<8 | uint32(lb[2])<<16 | uint32(lb[3])<<24)
	if size < 0 || size > maxCompressedSize {
		return nil, fmt.Errorf("compressed payload size %d out of range", size)
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// writeCompressed appends an i32 length prefix plus the zlib-deflated
// payload at default level.
func writeCompressed(w *Writer, payload []byte) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(payload) //nolint:errcheck // bytes.Buffer cannot fail
	zw.Close()        //nolint:errcheck
	w.WriteD(int32(buf.Len()))
	w.WriteBytes(buf.Bytes())
}

// maxCompressedSize bounds hostile length prefixes. A full creature
// update deflates to a few KiB; 16 MiB leaves room for giant world
// updates without letting a peer allocate unbounded memory.
const maxCompressedSize = 16 << 20
