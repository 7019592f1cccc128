package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwgo/server/internal/protocol"
)

//go:embed materials.yaml
var materialsYAML []byte

var materialNames = map[string]protocol.Material{
	"none":      protocol.MaterialNone,
	"iron":      protocol.MaterialIron,
	"wood":      protocol.MaterialWood,
	"obsidian":  protocol.MaterialObsidian,
	"bone":      protocol.MaterialBone,
	"gold":      protocol.MaterialGold,
	"silver":    protocol.MaterialSilver,
	"saurian":   protocol.MaterialSaurian,
	"parrot":    protocol.MaterialParrot,
	"licht":     protocol.MaterialLicht,
	"silk":      protocol.MaterialSilk,
	"linen":     protocol.MaterialLinen,
	"cotton":    protocol.MaterialCotton,
	"fire":      protocol.MaterialFire,
	"unholy":    protocol.MaterialUnholy,
	"icespirit": protocol.MaterialIceSpirit,
	"wind":      protocol.MaterialWind,
}

type materialsFile struct {
	Armor struct {
		Warrior []string `yaml:"warrior"`
		Ranger  []string `yaml:"ranger"`
		Mage    []string `yaml:"mage"`
		Rogue   []string `yaml:"rogue"`
		Any     []string `yaml:"any"`
	} `yaml:"armor"`
	MeleeWeapon []string `yaml:"melee_weapon"`
	WoodWeapon  []string `yaml:"wood_weapon"`
	Bracelet    []string `yaml:"bracelet"`
	Jewelry     []string `yaml:"jewelry"`
	Lamp        []string `yaml:"lamp"`
	Special     []string `yaml:"special"`
	Coin        []string `yaml:"coin"`
}

// MaterialTable answers which materials an item may legally be made
// of, given the wearer's combat class.
type MaterialTable struct {
	armorByClass map[protocol.CombatClassMajor][]protocol.Material
	meleeWeapon  []protocol.Material
	woodWeapon   []protocol.Material
	bracelet     []protocol.Material
	jewelry      []protocol.Material
	lamp         []protocol.Material
	special      []protocol.Material
	coin         []protocol.Material
}

// Allowed returns the whitelist for an item kind, or nil when the kind
// carries no material restriction.
func (t *MaterialTable) Allowed(kind protocol.ItemKind, class protocol.CombatClassMajor) []protocol.Material {
	switch kind.Major {
	case protocol.ItemChest, protocol.ItemGloves, protocol.ItemBoots, protocol.ItemShoulder:
		return t.armorByClass[class]
	case protocol.ItemAmulet, protocol.ItemRing:
		return t.jewelry
	case protocol.ItemLamp:
		return t.lamp
	case protocol.ItemSpecial:
		return t.special
	case protocol.ItemCoin:
		return t.coin
	case protocol.ItemWeapon:
		switch protocol.WeaponKind(kind.Minor) {
		case protocol.WeaponBow, protocol.WeaponCrossbow, protocol.WeaponBoomerang,
			protocol.WeaponStaff, protocol.WeaponWand:
			return t.woodWeapon
		case protocol.WeaponBracelet:
			return t.bracelet
		default:
			return t.meleeWeapon
		}
	default:
		return nil
	}
}

// Count reports how many whitelists are loaded.
func (t *MaterialTable) Count() int {
	n := len(t.armorByClass)
	for _, list := range [][]protocol.Material{
		t.meleeWeapon, t.woodWeapon, t.bracelet, t.jewelry, t.lamp, t.special, t.coin,
	} {
		if len(list) > 0 {
			n++
		}
	}
	return n
}

// LoadMaterialTable parses the embedded material whitelist.
func LoadMaterialTable() (*MaterialTable, error) {
	var f materialsFile
	if err := yaml.Unmarshal(materialsYAML, &f); err != nil {
		return nil, fmt.Errorf("parse material table: %w", err)
	}
	t := &MaterialTable{armorByClass: make(map[protocol.CombatClassMajor][]protocol.Material, 4)}
	var err error
	resolveArmor := func(class protocol.CombatClassMajor, names []string) {
		if err != nil {
			return
		}
		var ms []protocol.Material
		if ms, err = resolveMaterials(append(names, f.Armor.Any...)); err == nil {
			t.armorByClass[class] = ms
		}
	}
	resolveArmor(protocol.ClassWarrior, f.Armor.Warrior)
	resolveArmor(protocol.ClassRanger, f.Armor.Ranger)
	resolveArmor(protocol.ClassMage, f.Armor.Mage)
	resolveArmor(protocol.ClassRogue, f.Armor.Rogue)
	if err != nil {
		return nil, fmt.Errorf("material table: %w", err)
	}
	for _, e := range []struct {
		names []string
		dst   *[]protocol.Material
	}{
		{f.MeleeWeapon, &t.meleeWeapon},
		{f.WoodWeapon, &t.woodWeapon},
		{f.Bracelet, &t.bracelet},
		{f.Jewelry, &t.jewelry},
		{f.Lamp, &t.lamp},
		{f.Special, &t.special},
		{f.Coin, &t.coin},
	} {
		if *e.dst, err = resolveMaterials(e.names); err != nil {
			return nil, fmt.Errorf("material table: %w", err)
		}
	}
	return t, nil
}

func resolveMaterials(names []string) ([]protocol.Material, error) {
	out := make([]protocol.Material, 0, len(names))
	for _, name := range names {
		m, ok := materialNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", name)
		}
		out = append(out, m)
	}
	return out, nil
}
