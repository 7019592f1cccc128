package protocol

// StatusEffectKind identifies the buff or debuff being applied.
type StatusEffectKind uint8

const (
	EffectBulwark    StatusEffectKind = 1
	EffectWarFrenzy  StatusEffectKind = 2
	EffectCamouflage StatusEffectKind = 3
	EffectPoison     StatusEffectKind = 4
	EffectManaShield StatusEffectKind = 6
	EffectFireSpark  StatusEffectKind = 8
	EffectIntuition  StatusEffectKind = 9
	EffectElusiveness StatusEffectKind = 10
	EffectSwiftness   StatusEffectKind = 11
)

// StatusEffect applies a timed effect from source to target.
// Duration is in milliseconds; Modifier is effect-specific (poison
// damage per tick, shield strength, ...).
type StatusEffect struct {
	Source   CreatureID
	Target   CreatureID
	Kind     StatusEffectKind
	Modifier float32
	Duration int32
	CreatureID3 CreatureID
}

const statusEffectSize = 40

func (p *StatusEffect) PacketID() Id { return IdStatusEffect }

func (p *StatusEffect) writeBody(w *Writer) {
	w.WriteQ(int64(p.Source))
	w.WriteQ(int64(p.Target))
	w.WriteC(byte(p.Kind))
	w.Pad(3)
	w.WriteF(p.Modifier)
	w.WriteD(p.Duration)
	w.Pad(4)
	w.WriteQ(int64(p.CreatureID3))
}

func decodeStatusEffect(r *Reader) (*StatusEffect, error) {
	p := &StatusEffect{}
	p.Source = CreatureID(r.ReadQ())
	p.Target = CreatureID(r.ReadQ())
	p.Kind = StatusEffectKind(r.ReadC())
	r.Skip(3)
	p.Modifier = r.ReadF()
	p.Duration = r.ReadD()
	r.Skip(4)
	p.CreatureID3 = CreatureID(r.ReadQ())
	return p, nil
}
