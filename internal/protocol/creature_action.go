package protocol

// CreatureActionKind discriminates the CreatureAction packet.
type CreatureActionKind uint8

const (
	ActionBomb CreatureActionKind = 1
	ActionTalk CreatureActionKind = 2
	ActionObjectInteraction CreatureActionKind = 3
	ActionPickUp CreatureActionKind = 5
	ActionDrop   CreatureActionKind = 6
	ActionCallPet CreatureActionKind = 8
)

// CreatureAction is a world interaction request from the client.
// Zone and ItemIndex address a ground drop for pick-ups; Item carries
// the payload for drops and bombs.
type CreatureAction struct {
	Item      Item
	Zone      Zone
	ItemIndex int32
	UnknownA  int32
	Kind      CreatureActionKind
}

const creatureActionSize = ItemSize + 20

func (p *CreatureAction) PacketID() Id { return IdCreatureAction }

func (p *CreatureAction) writeBody(w *Writer) {
	p.Item.encodeTo(w)
	w.WriteD(p.Zone[0])
	w.WriteD(p.Zone[1])
	w.WriteD(p.ItemIndex)
	w.WriteD(p.UnknownA)
	w.WriteC(byte(p.Kind))
	w.Pad(3)
}

func decodeCreatureAction(r *Reader) (*CreatureAction, error) {
	p := &CreatureAction{}
	p.Item = decodeItem(r)
	p.Zone[0] = r.ReadD()
	p.Zone[1] = r.ReadD()
	p.ItemIndex = r.ReadD()
	p.UnknownA = r.ReadD()
	p.Kind = CreatureActionKind(r.ReadC())
	r.Skip(3)
	return p, nil
}
