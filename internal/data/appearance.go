package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwgo/server/internal/protocol"
)

//go:embed appearance.yaml
var appearanceYAML []byte

// Hitbox is the creature collision box the client renders for a race.
type Hitbox struct {
	Width  float32
	Depth  float32
	Height float32
}

// The three hitboxes playable races come in. The medium width matches
// the client's float32 constant bit-for-bit.
var hitboxes = map[string]Hitbox{
	"small":  {0.80, 0.80, 1.80},
	"medium": {0.96000004, 0.96000004, 2.16},
	"large":  {1.04, 1.04, 2.34},
}

// AppearanceRule pins what a race is allowed to look like. Model
// ranges are inclusive; everything else must match exactly.
type AppearanceRule struct {
	Hitbox        Hitbox
	HeadModel     [2]int16
	HairModel     [2]int16
	HandModel     [2]int16
	FootModel     int16
	BodyModel     int16
	HeadSize      float32
	BodySize      float32
	Shoulder1Size float32
	WeaponSize    float32
	HeadOffset    protocol.Vec3
}

type appearanceEntry struct {
	Race          string    `yaml:"race"`
	Hitbox        string    `yaml:"hitbox"`
	HeadModel     []int16   `yaml:"head_model"`
	HairModel     []int16   `yaml:"hair_model"`
	HandModel     []int16   `yaml:"hand_model"`
	FootModel     int16     `yaml:"foot_model"`
	BodyModel     int16     `yaml:"body_model"`
	HeadSize      float32   `yaml:"head_size"`
	BodySize      float32   `yaml:"body_size"`
	Shoulder1Size float32   `yaml:"shoulder1_size"`
	WeaponSize    float32   `yaml:"weapon_size"`
	HeadOffset    []float32 `yaml:"head_offset"`
}

type appearanceFile struct {
	Races []appearanceEntry `yaml:"races"`
}

var raceNames = map[string]protocol.Race{
	"elf_male":         protocol.RaceElfMale,
	"elf_female":       protocol.RaceElfFemale,
	"human_male":       protocol.RaceHumanMale,
	"human_female":     protocol.RaceHumanFemale,
	"goblin_male":      protocol.RaceGoblinMale,
	"goblin_female":    protocol.RaceGoblinFemale,
	"lizardman_male":   protocol.RaceLizardmanMale,
	"lizardman_female": protocol.RaceLizardmanFemale,
	"dwarf_male":       protocol.RaceDwarfMale,
	"dwarf_female":     protocol.RaceDwarfFemale,
	"orc_male":         protocol.RaceOrcMale,
	"orc_female":       protocol.RaceOrcFemale,
	"frogman_male":     protocol.RaceFrogmanMale,
	"frogman_female":   protocol.RaceFrogmanFemale,
	"undead_male":      protocol.RaceUndeadMale,
	"undead_female":    protocol.RaceUndeadFemale,
}

// AppearanceTable holds the per-race appearance rules the validator
// enforces.
type AppearanceTable struct {
	rules map[protocol.Race]AppearanceRule
}

// Get returns the rule for a race, or false for non-playable races.
func (t *AppearanceTable) Get(race protocol.Race) (AppearanceRule, bool) {
	r, ok := t.rules[race]
	return r, ok
}

// Count returns the number of races with rules.
func (t *AppearanceTable) Count() int {
	return len(t.rules)
}

// LoadAppearanceTable parses the embedded per-race appearance rules.
func LoadAppearanceTable() (*AppearanceTable, error) {
	var f appearanceFile
	if err := yaml.Unmarshal(appearanceYAML, &f); err != nil {
		return nil, fmt.Errorf("parse appearance table: %w", err)
	}
	t := &AppearanceTable{rules: make(map[protocol.Race]AppearanceRule, len(f.Races))}
	for _, e := range f.Races {
		race, ok := raceNames[e.Race]
		if !ok {
			return nil, fmt.Errorf("appearance table: unknown race %q", e.Race)
		}
		hitbox, ok := hitboxes[e.Hitbox]
		if !ok {
			return nil, fmt.Errorf("appearance table: %s: unknown hitbox %q", e.Race, e.Hitbox)
		}
		rule := AppearanceRule{
			Hitbox:        hitbox,
			HeadSize:      e.HeadSize,
			BodySize:      e.BodySize,
			Shoulder1Size: e.Shoulder1Size,
			WeaponSize:    e.WeaponSize,
			FootModel:     e.FootModel,
			BodyModel:     e.BodyModel,
			HeadOffset:    protocol.Vec3{0, 0.5, 5},
		}
		var err error
		if rule.HeadModel, err = modelRange(e.HeadModel); err != nil {
			return nil, fmt.Errorf("appearance table: %s: head_model: %w", e.Race, err)
		}
		if rule.HairModel, err = modelRange(e.HairModel); err != nil {
			return nil, fmt.Errorf("appearance table: %s: hair_model: %w", e.Race, err)
		}
		if rule.HandModel, err = modelRange(e.HandModel); err != nil {
			return nil, fmt.Errorf("appearance table: %s: hand_model: %w", e.Race, err)
		}
		if len(e.HeadOffset) == 3 {
			rule.HeadOffset = protocol.Vec3{e.HeadOffset[0], e.HeadOffset[1], e.HeadOffset[2]}
		}
		t.rules[race] = rule
	}
	return t, nil
}

func modelRange(r []int16) ([2]int16, error) {
	switch len(r) {
	case 1:
		return [2]int16{r[0], r[0]}, nil
	case 2:
		if r[1] < r[0] {
			return [2]int16{}, fmt.Errorf("empty range [%d, %d]", r[0], r[1])
		}
		return [2]int16{r[0], r[1]}, nil
	default:
		return [2]int16{}, fmt.Errorf("expected [min, max], got %v", r)
	}
}
