package protocol

// ProjectileKind is the projectile model.
type ProjectileKind int32

const (
	ProjectileArrow ProjectileKind = iota
	ProjectileMagic
	ProjectileBoomerang
	ProjectileUnknown
	ProjectileBoulder
)

// Projectile is a fired projectile, relayed to peers unmodified.
type Projectile struct {
	Attacker CreatureID
	Chunk    [2]int32
	UnknownA int32
	Position Pos
	UnknownV IVec3
	Velocity Vec3
	LegacyDamage float32
	UnknownB     float32
	Scale        float32
	Mana         float32
	Particles    float32
	IsYellow     bool
	Kind         ProjectileKind
	UnknownC     float32
}

const projectileSize = 104

func (p *Projectile) PacketID() Id { return IdProjectile }

func (p *Projectile) writeBody(w *Writer) {
	w.WriteQ(int64(p.Attacker))
	w.WriteD(p.Chunk[0])
	w.WriteD(p.Chunk[1])
	w.WriteD(p.UnknownA)
	w.Pad(4)
	writePos(w, p.Position)
	writeIVec3(w, p.UnknownV)
	writeVec3(w, p.Velocity)
	w.WriteF(p.LegacyDamage)
	w.WriteF(p.UnknownB)
	w.WriteF(p.Scale)
	w.WriteF(p.Mana)
	w.WriteF(p.Particles)
	w.WriteC(boolByte(p.IsYellow))
	w.Pad(3)
	w.WriteD(int32(p.Kind))
	w.WriteF(p.UnknownC)
}

func decodeProjectile(r *Reader) (*Projectile, error) {
	p := &Projectile{}
	p.Attacker = CreatureID(r.ReadQ())
	p.Chunk[0] = r.ReadD()
	p.Chunk[1] = r.ReadD()
	p.UnknownA = r.ReadD()
	r.Skip(4)
	p.Position = readPos(r)
	p.UnknownV = readIVec3(r)
	p.Velocity = readVec3(r)
	p.LegacyDamage = r.ReadF()
	p.UnknownB = r.ReadF()
	p.Scale = r.ReadF()
	p.Mana = r.ReadF()
	p.Particles = r.ReadF()
	p.IsYellow = r.ReadC() != 0
	r.Skip(3)
	p.Kind = ProjectileKind(r.ReadD())
	p.UnknownC = r.ReadF()
	return p, nil
}
