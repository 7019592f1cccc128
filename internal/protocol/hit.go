package protocol

// HitKind is the damage presentation type.
type HitKind uint8

const (
	HitNormal HitKind = iota
	HitBlock
	HitMiss
	HitDodge
	HitAbsorb
	HitInvisible
)

// Hit is a single damage event, relayed from attacker to target.
type Hit struct {
	Attacker  CreatureID
	Target    CreatureID
	Damage    float32
	Critical  bool
	StunTime  int32
	UnknownA  int32
	Position  Pos
	Direction Vec3
	IsYellow  bool
	Kind      HitKind
	Flash     bool
}

const hitSize = 72

func (p *Hit) PacketID() Id { return IdHit }

func (p *Hit) writeBody(w *Writer) {
	w.WriteQ(int64(p.Attacker))
	w.WriteQ(int64(p.Target))
	w.WriteF(p.Damage)
	w.WriteC(boolByte(p.Critical))
	w.Pad(3)
	w.WriteD(p.StunTime)
	w.WriteD(p.UnknownA)
	writePos(w, p.Position)
	writeVec3(w, p.Direction)
	w.WriteC(boolByte(p.IsYellow))
	w.WriteC(byte(p.Kind))
	w.WriteC(boolByte(p.Flash))
	w.Pad(1)
}

func decodeHit(r *Reader) (*Hit, error) {
	p := &Hit{}
	p.Attacker = CreatureID(r.ReadQ())
	p.Target = CreatureID(r.ReadQ())
	p.Damage = r.ReadF()
	p.Critical = r.ReadC() != 0
	r.Skip(3)
	p.StunTime = r.ReadD()
	p.UnknownA = r.ReadD()
	p.Position = readPos(r)
	p.Direction = readVec3(r)
	p.IsYellow = r.ReadC() != 0
	p.Kind = HitKind(r.ReadC())
	p.Flash = r.ReadC() != 0
	r.Skip(1)
	return p, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
