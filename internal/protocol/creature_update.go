package protocol

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Equipment is the fixed 13-slot gear array.
type Equipment [13]Item

// Equipment slot indices, in client layout order.
const (
	SlotUnknown = iota
	SlotNeck
	SlotChest
	SlotFeet
	SlotHands
	SlotShoulder
	SlotLeftWeapon
	SlotRightWeapon
	SlotLeftRing
	SlotRightRing
	SlotLamp
	SlotSpecial
	SlotPet

	SlotCount = 13
)

// SkillTree is the fixed 11-slot skill point array.
type SkillTree [11]int32

// Skill tree indices.
const (
	SkillPetMaster = iota
	SkillPetRiding
	SkillSailing
	SkillClimbing
	SkillHangGliding
	SkillSwimming
	SkillAbility1
	SkillAbility2
	SkillAbility3
	SkillAbility4
	SkillAbility5
)

// Sum returns the total of all allocated skill points.
func (s SkillTree) Sum() int64 {
	var sum int64
	for _, v := range s {
		sum += int64(v)
	}
	return sum
}

// Multipliers are the creature's combat stat multipliers.
type Multipliers struct {
	Health      float32
	AttackSpeed float32
	Damage      float32
	Armor       float32
	Resi        float32
}

// Appearance is the creature's model, sizing and skeleton offset block.
type Appearance struct {
	Unknown   int16
	HairColor [3]uint8
	Flags     AppearanceFlags

	// Hitbox; also scales the creature visually.
	CreatureSize Vec3

	HeadModel      int16
	HairModel      int16
	HandModel      int16
	FootModel      int16
	BodyModel      int16
	TailModel      int16
	Shoulder2Model int16
	WingModel      int16

	HeadSize      float32
	BodySize      float32
	HandSize      float32
	FootSize      float32
	Shoulder2Size float32
	WeaponSize    float32
	TailSize      float32
	Shoulder1Size float32
	WingSize      float32

	BodyRotation float32
	HandRotation Vec3
	FeetRotation float32
	WingRotation float32
	TailRotation float32

	BodyOffset Vec3
	HeadOffset Vec3
	HandOffset Vec3
	FootOffset Vec3
	TailOffset Vec3
	WingOffset Vec3
}

func (a *Appearance) encodeTo(w *Writer) {
	w.WriteH(uint16(a.Unknown))
	w.WriteC(a.HairColor[0])
	w.WriteC(a.HairColor[1])
	w.WriteC(a.HairColor[2])
	w.Pad(1)
	w.WriteH(uint16(a.Flags))
	writeVec3(w, a.CreatureSize)
	w.WriteH(uint16(a.HeadModel))
	w.WriteH(uint16(a.HairModel))
	w.WriteH(uint16(a.HandModel))
	w.WriteH(uint16(a.FootModel))
	w.WriteH(uint16(a.BodyModel))
	w.WriteH(uint16(a.TailModel))
	w.WriteH(uint16(a.Shoulder2Model))
	w.WriteH(uint16(a.WingModel))
	w.WriteF(a.HeadSize)
	w.WriteF(a.BodySize)
	w.WriteF(a.HandSize)
	w.WriteF(a.FootSize)
	w.WriteF(a.Shoulder2Size)
	w.WriteF(a.WeaponSize)
	w.WriteF(a.TailSize)
	w.WriteF(a.Shoulder1Size)
	w.WriteF(a.WingSize)
	w.WriteF(a.BodyRotation)
	writeVec3(w, a.HandRotation)
	w.WriteF(a.FeetRotation)
	w.WriteF(a.WingRotation)
	w.WriteF(a.TailRotation)
	writeVec3(w, a.BodyOffset)
	writeVec3(w, a.HeadOffset)
	writeVec3(w, a.HandOffset)
	writeVec3(w, a.FootOffset)
	writeVec3(w, a.TailOffset)
	writeVec3(w, a.WingOffset)
}

func decodeAppearance(r *Reader) Appearance {
	var a Appearance
	a.Unknown = int16(r.ReadH())
	a.HairColor[0] = r.ReadC()
	a.HairColor[1] = r.ReadC()
	a.HairColor[2] = r.ReadC()
	r.Skip(1)
	a.Flags = AppearanceFlags(r.ReadH())
	a.CreatureSize = readVec3(r)
	a.HeadModel = int16(r.ReadH())
	a.HairModel = int16(r.ReadH())
	a.HandModel = int16(r.ReadH())
	a.FootModel = int16(r.ReadH())
	a.BodyModel = int16(r.ReadH())
	a.TailModel = int16(r.ReadH())
	a.Shoulder2Model = int16(r.ReadH())
	a.WingModel = int16(r.ReadH())
	a.HeadSize = r.ReadF()
	a.BodySize = r.ReadF()
	a.HandSize = r.ReadF()
	a.FootSize = r.ReadF()
	a.Shoulder2Size = r.ReadF()
	a.WeaponSize = r.ReadF()
	a.TailSize = r.ReadF()
	a.Shoulder1Size = r.ReadF()
	a.WingSize = r.ReadF()
	a.BodyRotation = r.ReadF()
	a.HandRotation = readVec3(r)
	a.FeetRotation = r.ReadF()
	a.WingRotation = r.ReadF()
	a.TailRotation = r.ReadF()
	a.BodyOffset = readVec3(r)
	a.HeadOffset = readVec3(r)
	a.HandOffset = readVec3(r)
	a.FootOffset = readVec3(r)
	a.TailOffset = readVec3(r)
	a.WingOffset = readVec3(r)
	return a
}

func writeVec3(w *Writer, v Vec3) {
	w.WriteF(v[0])
	w.WriteF(v[1])
	w.WriteF(v[2])
}

func readVec3(r *Reader) Vec3 {
	return Vec3{r.ReadF(), r.ReadF(), r.ReadF()}
}

func writePos(w *Writer, p Pos) {
	w.WriteQ(p[0])
	w.WriteQ(p[1])
	w.WriteQ(p[2])
}

func readPos(r *Reader) Pos {
	return Pos{r.ReadQ(), r.ReadQ(), r.ReadQ()}
}

func writeIVec3(w *Writer, v IVec3) {
	w.WriteD(v[0])
	w.WriteD(v[1])
	w.WriteD(v[2])
}

func readIVec3(r *Reader) IVec3 {
	return IVec3{r.ReadD(), r.ReadD(), r.ReadD()}
}

// CreatureUpdate is the sparse creature state delta. Each nil field is
// absent from the wire; the presence bitfield assigns bits 0..47 to the
// fields in declaration order.
type CreatureUpdate struct {
	ID CreatureID

	Position      *Pos          // bit 0
	Rotation      *EulerAngles  // bit 1
	Velocity      *Vec3         // bit 2
	Acceleration  *Vec3         // bit 3
	VelocityExtra *Vec3         // bit 4, used by the retreat ability
	HeadTilt      *float32      // bit 5
	PhysicsFlags  *PhysicsFlags // bit 6
	Affiliation   *Affiliation  // bit 7
	Race          *Race         // bit 8
	Animation     *Animation    // bit 9
	AnimationTime *int32        // bit 10
	Combo         *int32        // bit 11
	HitTimeOut    *int32        // bit 12
	Appearance    *Appearance   // bit 13
	Flags         *CreatureFlags // bit 14
	EffectTimeDodge *int32 // bit 15
	EffectTimeStun  *int32 // bit 16
	EffectTimeFear  *int32 // bit 17
	EffectTimeIce   *int32 // bit 18
	EffectTimeWind  *int32 // bit 19
	ShowPatchTime   *int32 // bit 20
	ClassMajor    *CombatClassMajor // bit 21
	ClassMinor    *CombatClassMinor // bit 22
	ManaCharge    *float32          // bit 23
	Unknown24     *Vec3             // bit 24
	Unknown25     *Vec3             // bit 25
	AimOffset     *Vec3             // bit 26, relative to own position
	Health        *float32          // bit 27
	Mana          *float32          // bit 28
	BlockingGauge *float32          // bit 29
	Multipliers   *Multipliers      // bit 30
	Unknown31     *int8             // bit 31
	Unknown32     *int8             // bit 32
	Level         *int32            // bit 33
	Experience    *int32            // bit 34
	Master        *CreatureID       // bit 35, owner for pets
	Unknown36     *int64            // bit 36
	PowerBase     *int8             // bit 37
	Unknown38     *int32            // bit 38
	HomeChunk     *IVec3            // bit 39
	Home          *Pos              // bit 40
	ChunkToReveal *IVec3            // bit 41
	Unknown42     *int8             // bit 42
	Consumable    *Item             // bit 43
	Equipment     *Equipment        // bit 44
	Name          *string           // bit 45, 16 bytes null-padded
	SkillTree     *SkillTree        // bit 46
	ManaCubes     *int32            // bit 47
}

func (p *CreatureUpdate) PacketID() Id { return IdCreatureUpdate }

// AllAbsent reports whether the delta carries no fields at all.
func (p *CreatureUpdate) AllAbsent() bool { return p.mask() == 0 }

// mask computes the presence bitfield.
func (p *CreatureUpdate) mask() uint64 {
	var m uint64
	set := func(bit uint, present bool) {
		if present {
			m |= 1 << bit
		}
	}
	set(0, p.Position != nil)
	set(1, p.Rotation != nil)
	set(2, p.Velocity != nil)
	set(3, p.Acceleration != nil)
	set(4, p.VelocityExtra != nil)
	set(5, p.HeadTilt != nil)
	set(6, p.PhysicsFlags != nil)
	set(7, p.Affiliation != nil)
	set(8, p.Race != nil)
	set(9, p.Animation != nil)
	set(10, p.AnimationTime != nil)
	set(11, p.Combo != nil)
	set(12, p.HitTimeOut != nil)
	set(13, p.Appearance != nil)
	set(14, p.Flags != nil)
	set(15, p.EffectTimeDodge != nil)
	set(16, p.EffectTimeStun != nil)
	set(17, p.EffectTimeFear != nil)
	set(18, p.EffectTimeIce != nil)
	set(19, p.EffectTimeWind != nil)
	set(20, p.ShowPatchTime != nil)
	set(21, p.ClassMajor != nil)
	set(22, p.ClassMinor != nil)
	set(23, p.ManaCharge != nil)
	set(24, p.Unknown24 != nil)
	set(25, p.Unknown25 != nil)
	set(26, p.AimOffset != nil)
	set(27, p.Health != nil)
	set(28, p.Mana != nil)
	set(29, p.BlockingGauge != nil)
	set(30, p.Multipliers != nil)
	set(31, p.Unknown31 != nil)
	set(32, p.Unknown32 != nil)
	set(33, p.Level != nil)
	set(34, p.Experience != nil)
	set(35, p.Master != nil)
	set(36, p.Unknown36 != nil)
	set(37, p.PowerBase != nil)
	set(38, p.Unknown38 != nil)
	set(39, p.HomeChunk != nil)
	set(40, p.Home != nil)
	set(41, p.ChunkToReveal != nil)
	set(42, p.Unknown42 != nil)
	set(43, p.Consumable != nil)
	set(44, p.Equipment != nil)
	set(45, p.Name != nil)
	set(46, p.SkillTree != nil)
	set(47, p.ManaCubes != nil)
	return m
}

func (p *CreatureUpdate) writeBody(w *Writer) {
	body := NewWriter()
	body.WriteQ(int64(p.ID))
	body.WriteQ(int64(p.mask()))

	if p.Position != nil {
		writePos(body, *p.Position)
	}
	if p.Rotation != nil {
		body.WriteF(p.Rotation.Pitch)
		body.WriteF(p.Rotation.Roll)
		body.WriteF(p.Rotation.Yaw)
	}
	if p.Velocity != nil {
		writeVec3(body, *p.Velocity)
	}
	if p.Acceleration != nil {
		writeVec3(body, *p.Acceleration)
	}
	if p.VelocityExtra != nil {
		writeVec3(body, *p.VelocityExtra)
	}
	if p.HeadTilt != nil {
		body.WriteF(*p.HeadTilt)
	}
	if p.PhysicsFlags != nil {
		body.WriteD(int32(*p.PhysicsFlags))
	}
	if p.Affiliation != nil {
		body.WriteC(byte(*p.Affiliation))
	}
	if p.Race != nil {
		body.WriteD(int32(*p.Race))
	}
	if p.Animation != nil {
		body.WriteC(byte(*p.Animation))
	}
	if p.AnimationTime != nil {
		body.WriteD(*p.AnimationTime)
	}
	if p.Combo != nil {
		body.WriteD(*p.Combo)
	}
	if p.HitTimeOut != nil {
		body.WriteD(*p.HitTimeOut)
	}
	if p.Appearance != nil {
		p.Appearance.encodeTo(body)
	}
	if p.Flags != nil {
		body.WriteH(uint16(*p.Flags))
	}
	if p.EffectTimeDodge != nil {
		body.WriteD(*p.EffectTimeDodge)
	}
	if p.EffectTimeStun != nil {
		body.WriteD(*p.EffectTimeStun)
	}
	if p.EffectTimeFear != nil {
		body.WriteD(*p.EffectTimeFear)
	}
	if p.EffectTimeIce != nil {
		body.WriteD(*p.EffectTimeIce)
	}
	if p.EffectTimeWind != nil {
		body.WriteD(*p.EffectTimeWind)
	}
	if p.ShowPatchTime != nil {
		body.WriteD(*p.ShowPatchTime)
	}
	if p.ClassMajor != nil {
		body.WriteC(byte(*p.ClassMajor))
	}
	if p.ClassMinor != nil {
		body.WriteC(byte(*p.ClassMinor))
	}
	if p.ManaCharge != nil {
		body.WriteF(*p.ManaCharge)
	}
	if p.Unknown24 != nil {
		writeVec3(body, *p.Unknown24)
	}
	if p.Unknown25 != nil {
		writeVec3(body, *p.Unknown25)
	}
	if p.AimOffset != nil {
		writeVec3(body, *p.AimOffset)
	}
	if p.Health != nil {
		body.WriteF(*p.Health)
	}
	if p.Mana != nil {
		body.WriteF(*p.Mana)
	}
	if p.BlockingGauge != nil {
		body.WriteF(*p.BlockingGauge)
	}
	if p.Multipliers != nil {
		body.WriteF(p.Multipliers.Health)
		body.WriteF(p.Multipliers.AttackSpeed)
		body.WriteF(p.Multipliers.Damage)
		body.WriteF(p.Multipliers.Armor)
		body.WriteF(p.Multipliers.Resi)
	}
	if p.Unknown31 != nil {
		body.WriteC(byte(*p.Unknown31))
	}
	if p.Unknown32 != nil {
		body.WriteC(byte(*p.Unknown32))
	}
	if p.Level != nil {
		body.WriteD(*p.Level)
	}
	if p.Experience != nil {
		body.WriteD(*p.Experience)
	}
	if p.Master != nil {
		body.WriteQ(int64(*p.Master))
	}
	if p.Unknown36 != nil {
		body.WriteQ(*p.Unknown36)
	}
	if p.PowerBase != nil {
		body.WriteC(byte(*p.PowerBase))
	}
	if p.Unknown38 != nil {
		body.WriteD(*p.Unknown38)
	}
	if p.HomeChunk != nil {
		writeIVec3(body, *p.HomeChunk)
	}
	if p.Home != nil {
		writePos(body, *p.Home)
	}
	if p.ChunkToReveal != nil {
		writeIVec3(body, *p.ChunkToReveal)
	}
	if p.Unknown42 != nil {
		body.WriteC(byte(*p.Unknown42))
	}
	if p.Consumable != nil {
		p.Consumable.encodeTo(body)
	}
	if p.Equipment != nil {
		for i := range p.Equipment {
			p.Equipment[i].encodeTo(body)
		}
	}
	if p.Name != nil {
		var buf [16]byte
		i := 0
		for _, ch := range *p.Name {
			if i >= len(buf) {
				break
			}
			// The client stores names as 8-bit characters.
			buf[i] = byte(ch)
			i++
		}
		body.WriteBytes(buf[:])
	}
	if p.SkillTree != nil {
		for _, v := range p.SkillTree {
			body.WriteD(v)
		}
	}
	if p.ManaCubes != nil {
		body.WriteD(*p.ManaCubes)
	}

	writeCompressed(w, body.Bytes())
}

func readCreatureUpdate(rd io.Reader) (*CreatureUpdate, error) {
	payload, err := readCompressed(rd)
	if err != nil {
		return nil, err
	}
	r := NewReader(payload)

	p := &CreatureUpdate{ID: CreatureID(r.ReadQ())}
	mask := uint64(r.ReadQ())
	has := func(bit uint) bool { return mask&(1<<bit) != 0 }

	if has(0) {
		v := readPos(r)
		p.Position = &v
	}
	if has(1) {
		v := EulerAngles{Pitch: r.ReadF(), Roll: r.ReadF(), Yaw: r.ReadF()}
		p.Rotation = &v
	}
	if has(2) {
		v := readVec3(r)
		p.Velocity = &v
	}
	if has(3) {
		v := readVec3(r)
		p.Acceleration = &v
	}
	if has(4) {
		v := readVec3(r)
		p.VelocityExtra = &v
	}
	if has(5) {
		v := r.ReadF()
		p.HeadTilt = &v
	}
	if has(6) {
		v := PhysicsFlags(r.ReadD())
		p.PhysicsFlags = &v
	}
	if has(7) {
		v := Affiliation(r.ReadC())
		p.Affiliation = &v
	}
	if has(8) {
		v := Race(r.ReadD())
		p.Race = &v
	}
	if has(9) {
		v := Animation(r.ReadC())
		p.Animation = &v
	}
	if has(10) {
		v := r.ReadD()
		p.AnimationTime = &v
	}
	if has(11) {
		v := r.ReadD()
		p.Combo = &v
	}
	if has(12) {
		v := r.ReadD()
		p.HitTimeOut = &v
	}
	if has(13) {
		v := decodeAppearance(r)
		p.Appearance = &v
	}
	if has(14) {
		v := CreatureFlags(r.ReadH())
		p.Flags = &v
	}
	if has(15) {
		v := r.ReadD()
		p.EffectTimeDodge = &v
	}
	if has(16) {
		v := r.ReadD()
		p.EffectTimeStun = &v
	}
	if has(17) {
		v := r.ReadD()
		p.EffectTimeFear = &v
	}
	if has(18) {
		v := r.ReadD()
		p.EffectTimeIce = &v
	}
	if has(19) {
		v := r.ReadD()
		p.EffectTimeWind = &v
	}
	if has(20) {
		v := r.ReadD()
		p.ShowPatchTime = &v
	}
	if has(21) {
		v := CombatClassMajor(r.ReadC())
		p.ClassMajor = &v
	}
	if has(22) {
		v := CombatClassMinor(r.ReadC())
		p.ClassMinor = &v
	}
	if has(23) {
		v := r.ReadF()
		p.ManaCharge = &v
	}
	if has(24) {
		v := readVec3(r)
		p.Unknown24 = &v
	}
	if has(25) {
		v := readVec3(r)
		p.Unknown25 = &v
	}
	if has(26) {
		v := readVec3(r)
		p.AimOffset = &v
	}
	if has(27) {
		v := r.ReadF()
		p.Health = &v
	}
	if has(28) {
		v := r.ReadF()
		p.Mana = &v
	}
	if has(29) {
		v := r.ReadF()
		p.BlockingGauge = &v
	}
	if has(30) {
		v := Multipliers{
			Health:      r.ReadF(),
			AttackSpeed: r.ReadF(),
			Damage:      r.ReadF(),
			Armor:       r.ReadF(),
			Resi:        r.ReadF(),
		}
		p.Multipliers = &v
	}
	if has(31) {
		v := int8(r.ReadC())
		p.Unknown31 = &v
	}
	if has(32) {
		v := int8(r.ReadC())
		p.Unknown32 = &v
	}
	if has(33) {
		v := r.ReadD()
		p.Level = &v
	}
	if has(34) {
		v := r.ReadD()
		p.Experience = &v
	}
	if has(35) {
		v := CreatureID(r.ReadQ())
		p.Master = &v
	}
	if has(36) {
		v := r.ReadQ()
		p.Unknown36 = &v
	}
	if has(37) {
		v := int8(r.ReadC())
		p.PowerBase = &v
	}
	if has(38) {
		v := r.ReadD()
		p.Unknown38 = &v
	}
	if has(39) {
		v := readIVec3(r)
		p.HomeChunk = &v
	}
	if has(40) {
		v := readPos(r)
		p.Home = &v
	}
	if has(41) {
		v := readIVec3(r)
		p.ChunkToReveal = &v
	}
	if has(42) {
		v := int8(r.ReadC())
		p.Unknown42 = &v
	}
	if has(43) {
		v := decodeItem(r)
		p.Consumable = &v
	}
	if has(44) {
		var eq Equipment
		for i := range eq {
			eq[i] = decodeItem(r)
		}
		p.Equipment = &eq
	}
	if has(45) {
		raw := r.ReadBytes(16)
		name, err := decodeName(raw)
		if err != nil {
			return nil, err
		}
		p.Name = &name
	}
	if has(46) {
		var st SkillTree
		for i := range st {
			st[i] = r.ReadD()
		}
		p.SkillTree = &st
	}
	if has(47) {
		v := r.ReadD()
		p.ManaCubes = &v
	}

	if r.Err() != nil {
		return nil, r.Err()
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left in creature update", ErrTrailing, r.Remaining())
	}
	return p, nil
}

// abnormalZeroes is the truncated zero block of the join-time creature
// update. It falls 8 bytes short of a full record; the client only
// reads the id, so the missing tail never mattered. The byte count is
// load-bearing for client compatibility.
const abnormalZeroes = 4456

// AbnormalCreatureUpdate builds the raw join-time CreatureUpdate frame:
// packet id, creature id, then 4456 zero bytes. No length prefix, no
// compression, no bitfield.
func AbnormalCreatureUpdate(id CreatureID) []byte {
	w := NewWriter()
	w.WriteD(int32(IdCreatureUpdate))
	w.WriteQ(int64(id))
	w.Pad(abnormalZeroes)
	return w.Bytes()
}

// decodeName extracts the null-terminated name from its fixed 16-byte
// field. A missing terminator or non-UTF-8 content is a protocol error.
func decodeName(raw []byte) (string, error) {
	end := -1
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated name", ErrInvalidString)
	}
	name := raw[:end]
	if !utf8.Valid(name) {
		return "", fmt.Errorf("%w: name is not valid utf-8", ErrInvalidString)
	}
	return string(name), nil
}
