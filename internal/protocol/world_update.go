package protocol

import (
	"fmt"
	"io"
)

// SoundKind indexes the client's sound bank.
type SoundKind int32

const (
	SoundHit SoundKind = iota
	SoundBlade1
	SoundBlade2
	SoundLongBlade1
	SoundLongBlade2
	SoundHit1
	SoundHit2
	SoundPunch1
	SoundPunch2
	SoundHitArrow
	SoundHitArrowCritical
	SoundSmash1
	SoundSlamGround
	SoundSmashHit2
	SoundSmashJump
	SoundSwing
	SoundShieldSwing
	SoundSwingSlow
	SoundSwingSlow2
	SoundArrowDestroy
	SoundBlade3
	SoundPunch3
	SoundSalvo2
	SoundSwordHit03
	SoundBlock
	SoundShieldSlam
	SoundRoll
	SoundDestroy2
	SoundCry
	SoundLevelup2
	SoundMissioncomplete
	SoundWatersplash01
	SoundStep2
	SoundStepWater
	SoundStepWater2
	SoundStepWater3
	SoundChannel2
	SoundChannelHit
	SoundFireball
	SoundFireHit
	SoundMagic01
	SoundWatersplash
	SoundWatersplashHit
	SoundLichScream
	SoundDrink2
	SoundPickup
	SoundDisenchant2
	SoundUpgrade2
	SoundSwirl
	SoundHumanVoice01
	SoundHumanVoice02
	SoundGate
	SoundSpikeTrap
	SoundFireTrap
	SoundLever
	SoundCharge2
	SoundMagic02
	SoundDrop
	SoundDropCoin
	SoundDropItem
	SoundMaleGroan
	SoundFemaleGroan
	SoundMaleGroan2
	SoundFemaleGroan2
	SoundGoblinMaleGroan
	SoundGoblinFemaleGroan
	SoundLizardMaleGroan
	SoundLizardFemaleGroan
	SoundDwarfMaleGroan
	SoundDwarfFemaleGroan
	SoundOrcMaleGroan
	SoundOrcFemaleGroan
	SoundUndeadMaleGroan
	SoundUndeadFemaleGroan
	SoundFrogmanMaleGroan
	SoundFrogmanFemaleGroan
	SoundMonsterGroan
	SoundTrollGroan
	SoundMoleGroan
	SoundSlimeGroan
	SoundZombieGroan
	SoundExplosion
	SoundPunch4
	SoundMenuOpen2
	SoundMenuClose2
	SoundMenuSelect
	SoundMenuTab
	SoundMenuGrabItem
	SoundMenuDropItem
	SoundCraft
	SoundCraftProc
	SoundAbsorb
	SoundManashield
	SoundBulwark
	SoundBird1
	SoundBird2
	SoundBird3
	SoundCricket1
	SoundCricket2
	SoundOwl1
	SoundOwl2
)

// Sound is a positional sound effect. Position is in block units, not
// the 1/65536 world units creatures use.
type Sound struct {
	Position Vec3
	Kind     SoundKind
	Volume   float32
	Pitch    float32
}

// SoundAt places a sound at a world position with default volume and
// pitch.
func SoundAt(position Pos, kind SoundKind) Sound {
	return Sound{
		Position: SoundPosition(position),
		Kind:     kind,
		Volume:   1,
		Pitch:    1,
	}
}

// SoundPosition converts a world position to sound coordinates.
func SoundPosition(position Pos) Vec3 {
	return Vec3{
		float32(position[0]) / float32(SizeBlock),
		float32(position[1]) / float32(SizeBlock),
		float32(position[2]) / float32(SizeBlock),
	}
}

// World coordinate granularity. Creature positions are i64s measured in
// 1/65536 of a block; a zone spans 256 blocks.
const (
	SizeBlock int64 = 0x10000
	SizeChunk int64 = SizeBlock * 32
	SizeZone  int64 = SizeChunk * 8
)

// BlockKind is the block delta type byte.
type BlockKind uint8

const (
	BlockAir BlockKind = iota
	BlockSolid
	BlockLiquid
	BlockWet
)

// Block is a single block edit pushed to clients.
type Block struct {
	Position IVec3
	Color    [3]uint8
	Kind     BlockKind
	Padding  int32
}

// Drop is one item lying on the ground.
type Drop struct {
	Item     Item
	Position Pos
	Rotation float32
	Scale    float32
	UnknownA uint8
	Droptime int32
	UnknownB int32
}

// ZoneDrops is the full drop list of one zone; clients replace their
// zone-local state with it wholesale.
type ZoneDrops struct {
	Zone  Zone
	Drops []Drop
}

// Pickup tells a client its creature received an item.
type Pickup struct {
	Interactor CreatureID
	Item       Item
}

// Kill credits a kill for experience display.
type Kill struct {
	Killer  CreatureID
	Victim  CreatureID
	Unknown int32
	Experience int32
}

// WorldUpdate carries batched world deltas. All slices may be empty;
// empty sections still serialize their zero counts. The payload is
// zlib-compressed with an i32 length prefix, like CreatureUpdate.
type WorldUpdate struct {
	Blocks        []Block
	Hits          []Hit
	Sounds        []Sound
	Projectiles   []Projectile
	Drops         []ZoneDrops
	Pickups       []Pickup
	Kills         []Kill
	StatusEffects []StatusEffect
}

func (p *WorldUpdate) PacketID() Id { return IdWorldUpdate }

func (p *WorldUpdate) writeBody(w *Writer) {
	body := NewWriter()

	body.WriteD(int32(len(p.Blocks)))
	for i := range p.Blocks {
		b := &p.Blocks[i]
		writeIVec3(body, b.Position)
		body.WriteC(b.Color[0])
		body.WriteC(b.Color[1])
		body.WriteC(b.Color[2])
		body.WriteC(byte(b.Kind))
		body.WriteD(b.Padding)
	}

	body.WriteD(int32(len(p.Hits)))
	for i := range p.Hits {
		p.Hits[i].writeBody(body)
	}

	body.WriteD(int32(len(p.Sounds)))
	for i := range p.Sounds {
		s := &p.Sounds[i]
		writeVec3(body, s.Position)
		body.WriteD(int32(s.Kind))
		body.WriteF(s.Volume)
		body.WriteF(s.Pitch)
	}

	body.WriteD(int32(len(p.Projectiles)))
	for i := range p.Projectiles {
		p.Projectiles[i].writeBody(body)
	}

	body.WriteD(int32(len(p.Drops)))
	for i := range p.Drops {
		zd := &p.Drops[i]
		body.WriteD(zd.Zone[0])
		body.WriteD(zd.Zone[1])
		body.WriteD(int32(len(zd.Drops)))
		for j := range zd.Drops {
			writeDrop(body, &zd.Drops[j])
		}
	}

	body.WriteD(int32(len(p.Pickups)))
	for i := range p.Pickups {
		pk := &p.Pickups[i]
		body.WriteQ(int64(pk.Interactor))
		pk.Item.encodeTo(body)
	}

	body.WriteD(int32(len(p.Kills)))
	for i := range p.Kills {
		k := &p.Kills[i]
		body.WriteQ(int64(k.Killer))
		body.WriteQ(int64(k.Victim))
		body.WriteD(k.Unknown)
		body.WriteD(k.Experience)
	}

	body.WriteD(int32(len(p.StatusEffects)))
	for i := range p.StatusEffects {
		p.StatusEffects[i].writeBody(body)
	}

	writeCompressed(w, body.Bytes())
}

func writeDrop(w *Writer, d *Drop) {
	d.Item.encodeTo(w)
	writePos(w, d.Position)
	w.WriteF(d.Rotation)
	w.WriteF(d.Scale)
	w.WriteC(d.UnknownA)
	w.Pad(3)
	w.WriteD(d.Droptime)
	w.WriteD(d.UnknownB)
	w.Pad(4)
}

func readDrop(r *Reader) Drop {
	var d Drop
	d.Item = decodeItem(r)
	d.Position = readPos(r)
	d.Rotation = r.ReadF()
	d.Scale = r.ReadF()
	d.UnknownA = r.ReadC()
	r.Skip(3)
	d.Droptime = r.ReadD()
	d.UnknownB = r.ReadD()
	r.Skip(4)
	return d
}

// maxSectionLen bounds hostile element counts before allocation.
const maxSectionLen = 1 << 20

func readCount(r *Reader) (int, error) {
	n := r.ReadD()
	if n < 0 || n > maxSectionLen {
		return 0, fmt.Errorf("section length %d out of range", n)
	}
	return int(n), nil
}

func readWorldUpdate(rd io.Reader) (*WorldUpdate, error) {
	payload, err := readCompressed(rd)
	if err != nil {
		return nil, err
	}
	r := NewReader(payload)
	p := &WorldUpdate{}

	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var b Block
		b.Position = readIVec3(r)
		b.Color[0] = r.ReadC()
		b.Color[1] = r.ReadC()
		b.Color[2] = r.ReadC()
		b.Kind = BlockKind(r.ReadC())
		b.Padding = r.ReadD()
		p.Blocks = append(p.Blocks, b)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		h, _ := decodeHit(r)
		p.Hits = append(p.Hits, *h)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var s Sound
		s.Position = readVec3(r)
		s.Kind = SoundKind(r.ReadD())
		s.Volume = r.ReadF()
		s.Pitch = r.ReadF()
		p.Sounds = append(p.Sounds, s)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		pr, _ := decodeProjectile(r)
		p.Projectiles = append(p.Projectiles, *pr)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var zd ZoneDrops
		zd.Zone[0] = r.ReadD()
		zd.Zone[1] = r.ReadD()
		m, err := readCount(r)
		if err != nil {
			return nil, err
		}
		for j := 0; j < m; j++ {
			zd.Drops = append(zd.Drops, readDrop(r))
		}
		p.Drops = append(p.Drops, zd)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var pk Pickup
		pk.Interactor = CreatureID(r.ReadQ())
		pk.Item = decodeItem(r)
		p.Pickups = append(p.Pickups, pk)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var k Kill
		k.Killer = CreatureID(r.ReadQ())
		k.Victim = CreatureID(r.ReadQ())
		k.Unknown = r.ReadD()
		k.Experience = r.ReadD()
		p.Kills = append(p.Kills, k)
	}

	if n, err = readCount(r); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		se, _ := decodeStatusEffect(r)
		p.StatusEffects = append(p.StatusEffects, *se)
	}

	if r.Err() != nil {
		return nil, r.Err()
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left in world update", ErrTrailing, r.Remaining())
	}
	return p, nil
}
