package protocol

import "io"

// Version is the protocol revision this server speaks.
const Version int32 = 3

// ProtocolVersion opens the handshake; the server echoes its own
// version back on mismatch.
type ProtocolVersion struct {
	Version int32
}

func (p *ProtocolVersion) PacketID() Id { return IdProtocolVersion }

func (p *ProtocolVersion) writeBody(w *Writer) {
	w.WriteD(p.Version)
}

func readProtocolVersion(rd io.Reader) (*ProtocolVersion, error) {
	var b [4]byte
	if _, err := io.ReadFull(rd, b[:]); err != nil {
		return nil, err
	}
	r := NewReader(b[:])
	return &ProtocolVersion{Version: r.ReadD()}, nil
}

// ConnectionAcceptance is the empty frame confirming the handshake.
type ConnectionAcceptance struct{}

func (p *ConnectionAcceptance) PacketID() Id { return IdConnectionAcceptance }

func (p *ConnectionAcceptance) writeBody(*Writer) {}

// MapSeed publishes the world generation seed on join.
type MapSeed struct {
	Seed int32
}

func (p *MapSeed) PacketID() Id { return IdMapSeed }

func (p *MapSeed) writeBody(w *Writer) {
	w.WriteD(p.Seed)
}

func decodeMapSeed(r *Reader) (*MapSeed, error) {
	return &MapSeed{Seed: r.ReadD()}, nil
}

// IngameDatetime sets the client's in-game clock. Time is milliseconds
// since midnight.
type IngameDatetime struct {
	Day  int32
	Time int32
}

func (p *IngameDatetime) PacketID() Id { return IdIngameDatetime }

func (p *IngameDatetime) writeBody(w *Writer) {
	w.WriteD(p.Day)
	w.WriteD(p.Time)
}

func decodeIngameDatetime(r *Reader) (*IngameDatetime, error) {
	return &IngameDatetime{Day: r.ReadD(), Time: r.ReadD()}, nil
}

// ZoneDiscovery reports the zone a player entered. The server does not
// partition players spatially and ignores it.
type ZoneDiscovery struct {
	Zone Zone
}

func (p *ZoneDiscovery) PacketID() Id { return IdZoneDiscovery }

func (p *ZoneDiscovery) writeBody(w *Writer) {
	w.WriteD(p.Zone[0])
	w.WriteD(p.Zone[1])
}

func decodeZoneDiscovery(r *Reader) (*ZoneDiscovery, error) {
	return &ZoneDiscovery{Zone: Zone{r.ReadD(), r.ReadD()}}, nil
}

// RegionDiscovery reports the region a player entered. Ignored like
// ZoneDiscovery.
type RegionDiscovery struct {
	Region Zone
}

func (p *RegionDiscovery) PacketID() Id { return IdRegionDiscovery }

func (p *RegionDiscovery) writeBody(w *Writer) {
	w.WriteD(p.Region[0])
	w.WriteD(p.Region[1])
}

func decodeRegionDiscovery(r *Reader) (*RegionDiscovery, error) {
	return &RegionDiscovery{Region: Zone{r.ReadD(), r.ReadD()}}, nil
}
