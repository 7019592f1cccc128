package protocol

// ItemKindMajor is the item category byte.
type ItemKindMajor uint8

const (
	ItemNone ItemKindMajor = iota
	ItemFood
	ItemFormula
	ItemWeapon
	ItemChest
	ItemGloves
	ItemBoots
	ItemShoulder
	ItemAmulet
	ItemRing
	ItemBlock
	ItemResource
	ItemCoin
	ItemPlatinumCoin
	ItemLeftovers
	ItemBeak
	ItemPainting
	ItemVase
	ItemCandle
	ItemPet
	ItemPetFood
	ItemQuest
	ItemUnknown
	ItemSpecial
	ItemLamp
	ItemManaCube
)

// WeaponKind is the minor byte for ItemWeapon.
type WeaponKind uint8

const (
	WeaponSword WeaponKind = iota
	WeaponAxe
	WeaponMace
	WeaponDagger
	WeaponFist
	WeaponLongsword
	WeaponBow
	WeaponCrossbow
	WeaponBoomerang
	WeaponArrow
	WeaponStaff
	WeaponWand
	WeaponBracelet
	WeaponShield
	WeaponQuiver
	WeaponGreatsword
	WeaponGreataxe
	WeaponGreatmace
	WeaponPitchfork
	WeaponPickaxe
	WeaponTorch
)

// Rarity is the item rarity byte.
type Rarity uint8

const (
	RarityNormal Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// Material is the item material. Signed; elemental spirit materials sit
// at the negative end.
type Material int8

const (
	MaterialNone Material = 0
	MaterialIron Material = 1
	MaterialWood Material = 2
	MaterialObsidian Material = 5
	MaterialUnknown  Material = 6
	MaterialBone     Material = 7
	MaterialCopper    Material = 10
	MaterialGold      Material = 11
	MaterialSilver    Material = 12
	MaterialEmerald   Material = 13
	MaterialSapphire  Material = 14
	MaterialRuby      Material = 15
	MaterialDiamond   Material = 16
	MaterialSandstone Material = 17
	MaterialSaurian   Material = 18
	MaterialParrot    Material = 19
	MaterialMammoth   Material = 20
	MaterialPlant     Material = 21
	MaterialIce       Material = 22
	MaterialLicht     Material = 23
	MaterialGlass     Material = 24
	MaterialSilk      Material = 25
	MaterialLinen     Material = 26
	MaterialCotton    Material = 27

	MaterialFire      Material = -128
	MaterialUnholy    Material = -127
	MaterialIceSpirit Material = -126
	MaterialWind      Material = -125
)

// ItemFlags is the 8-bit item flagset.
type ItemFlags uint8

const (
	ItemFlagAdapted ItemFlags = 1 << 0
)

// ItemKind is an item category with its subtype byte.
type ItemKind struct {
	Major ItemKindMajor
	Minor uint8
}

// Spirit is one stackable item modifier cube.
type Spirit struct {
	Position [3]int8
	Material Material
	Level    int16
}

// Item is the fixed 288-byte item record, bit-identical to the client's
// memory layout (offsets are normative, see encode).
type Item struct {
	Kind          ItemKind
	Seed          int32
	Recipe        ItemKind
	MinusModifier int16
	Rarity        Rarity
	Material      Material
	Flags         ItemFlags
	Level         int16
	Spirits       [32]Spirit
	SpiritCounter int32
}

// ItemSize is the on-wire size of one Item record.
const ItemSize = 288

// IsEmpty reports whether the slot holds no item.
func (it *Item) IsEmpty() bool {
	return it.Kind.Major == ItemNone
}

// composed reports whether the item overloads the kind-minor byte with
// the composed recipe's minor (the historical Formula/Leftovers quirk).
func (it *Item) composed() bool {
	return it.Kind.Major == ItemFormula || it.Kind.Major == ItemLeftovers
}

// encodeTo writes the raw 288-byte record. For composed items the wire
// carries the recipe's minor at offset 1 and a zero at offset 9; the
// in-memory form keeps it in Recipe.Minor instead.
func (it *Item) encodeTo(w *Writer) {
	kindMinor := it.Kind.Minor
	recipeMinor := it.Recipe.Minor
	if it.composed() {
		kindMinor = it.Recipe.Minor
		recipeMinor = 0
	}
	w.WriteC(byte(it.Kind.Major)) // 0
	w.WriteC(kindMinor)           // 1
	w.Pad(2)                      // 2
	w.WriteD(it.Seed)             // 4
	w.WriteC(byte(it.Recipe.Major)) // 8
	w.WriteC(recipeMinor)           // 9
	w.WriteH(uint16(it.MinusModifier)) // 10
	w.WriteC(byte(it.Rarity))          // 12
	w.WriteC(byte(it.Material))        // 13
	w.WriteC(byte(it.Flags))           // 14
	w.Pad(1)                           // 15
	w.WriteH(uint16(it.Level))         // 16
	w.Pad(2)                           // 18
	for i := range it.Spirits { // 20 + 8i
		sp := &it.Spirits[i]
		w.WriteC(byte(sp.Position[0]))
		w.WriteC(byte(sp.Position[1]))
		w.WriteC(byte(sp.Position[2]))
		w.WriteC(byte(sp.Material))
		w.WriteH(uint16(sp.Level))
		w.Pad(2)
	}
	w.WriteD(it.SpiritCounter) // 276
	w.Pad(8)                   // 280
}

// decodeItem reads one 288-byte record. For composed items the minor
// byte at offset 1 moves into Recipe.Minor and Kind.Minor normalizes
// to 0, so re-encoding a decoded item is byte-stable.
func decodeItem(r *Reader) Item {
	var it Item
	it.Kind.Major = ItemKindMajor(r.ReadC())
	it.Kind.Minor = r.ReadC()
	r.Skip(2)
	it.Seed = r.ReadD()
	it.Recipe.Major = ItemKindMajor(r.ReadC())
	it.Recipe.Minor = r.ReadC()
	it.MinusModifier = int16(r.ReadH())
	it.Rarity = Rarity(r.ReadC())
	it.Material = Material(r.ReadC())
	it.Flags = ItemFlags(r.ReadC())
	r.Skip(1)
	it.Level = int16(r.ReadH())
	r.Skip(2)
	for i := range it.Spirits {
		sp := &it.Spirits[i]
		sp.Position[0] = int8(r.ReadC())
		sp.Position[1] = int8(r.ReadC())
		sp.Position[2] = int8(r.ReadC())
		sp.Material = Material(r.ReadC())
		sp.Level = int16(r.ReadH())
		r.Skip(2)
	}
	it.SpiritCounter = r.ReadD()
	r.Skip(8)
	if it.composed() {
		it.Recipe.Minor = it.Kind.Minor
		it.Kind.Minor = 0
	}
	return it
}

// EncodeItem serializes a single item record (exported for tests and
// addon tooling; packets embed items via encodeTo).
func EncodeItem(it *Item) []byte {
	w := NewWriter()
	it.encodeTo(w)
	return w.Bytes()
}

// DecodeItem parses a single 288-byte item record.
func DecodeItem(buf []byte) (Item, error) {
	r := NewReader(buf)
	it := decodeItem(r)
	if r.Err() != nil {
		return Item{}, r.Err()
	}
	if r.Remaining() != 0 {
		return Item{}, ErrTrailing
	}
	return it, nil
}
