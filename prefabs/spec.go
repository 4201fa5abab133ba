package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PartyFile is the default party prefab.
const PartyFile = "party.yaml"

var (
	ErrNoCharacters   = errors.New("prefabs: party needs at least two characters")
	ErrDuplicateName  = errors.New("prefabs: duplicate character name")
	ErrUnknownOwner   = errors.New("prefabs: anchor owner is not a party character")
	ErrNoController   = errors.New("prefabs: exactly one character must start with control")
	ErrBadMaxHealth   = errors.New("prefabs: max_health must be positive")
	ErrUnknownTrigger = errors.New("prefabs: trigger targets an unknown animation")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PartySpec describes the party, its respawn anchors and the level around it.
type PartySpec struct {
	Name       string          `yaml:"name"`
	Death      DeathSpec       `yaml:"death"`
	Characters []CharacterSpec `yaml:"characters"`
	Anchors    []AnchorSpec    `yaml:"anchors"`
	Hazards    []HazardSpec    `yaml:"hazards"`
	Platforms  []PlatformSpec  `yaml:"platforms"`
}

// DeathSpec tunes the death presentation wait shared by every character.
type DeathSpec struct {
	Tag            string        `yaml:"tag"`
	DieTrigger     string        `yaml:"die_trigger"`
	RespawnTrigger string        `yaml:"respawn_trigger"`
	EnterTimeout   time.Duration `yaml:"enter_timeout"`
	Fallback       time.Duration `yaml:"fallback"`
}

type CharacterSpec struct {
	Name             string        `yaml:"name"`
	MaxHealth        float64       `yaml:"max_health"`
	RegenDelay       time.Duration `yaml:"regen_delay"`
	RegenPerSecond   float64       `yaml:"regen_per_second"`
	MoveSpeed        float64       `yaml:"move_speed"`
	JumpSpeed        float64       `yaml:"jump_speed"`
	StartWithControl bool          `yaml:"start_with_control"`
	Color            *YAMLColor    `yaml:"color"`
	Transform        TransformSpec `yaml:"transform"`
	Collider         ColliderSpec  `yaml:"collider"`
	Animation        AnimationSpec `yaml:"animation"`
}

type AnchorSpec struct {
	Name      string        `yaml:"name"`
	Owner     string        `yaml:"owner"`
	Transform TransformSpec `yaml:"transform"`
}

type HazardSpec struct {
	Name            string        `yaml:"name"`
	Damage          float64       `yaml:"damage"`
	PreventMultiHit bool          `yaml:"prevent_multi_hit"`
	DestroyOnHit    bool          `yaml:"destroy_on_hit"`
	Transform       TransformSpec `yaml:"transform"`
	Collider        ColliderSpec  `yaml:"collider"`
}

type PlatformSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type AnimationSpec struct {
	Initial  string                      `yaml:"initial"`
	Defs     map[string]AnimationDefSpec `yaml:"defs"`
	Triggers map[string]string           `yaml:"triggers"`
}

type AnimationDefSpec struct {
	Tag        string  `yaml:"tag"`
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
	Next       string  `yaml:"next"`
}

// LoadPartySpec loads and validates a party prefab.
func LoadPartySpec(filename string) (*PartySpec, error) {
	if filename == "" {
		filename = PartyFile
	}
	spec, err := LoadSpec[PartySpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate checks the structural rules a party needs to run.
func (s *PartySpec) Validate() error {
	if s == nil || len(s.Characters) < 2 {
		return ErrNoCharacters
	}

	names := make(map[string]bool, len(s.Characters))
	controllers := 0
	for _, c := range s.Characters {
		if names[c.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
		}
		names[c.Name] = true
		if c.MaxHealth <= 0 {
			return fmt.Errorf("%w: %q", ErrBadMaxHealth, c.Name)
		}
		if c.StartWithControl {
			controllers++
		}
		for trigger, target := range c.Animation.Triggers {
			if _, ok := c.Animation.Defs[target]; !ok {
				return fmt.Errorf("%w: %s -> %s on %q", ErrUnknownTrigger, trigger, target, c.Name)
			}
		}
	}
	if controllers != 1 {
		return ErrNoController
	}

	for _, a := range s.Anchors {
		if !names[a.Owner] {
			return fmt.Errorf("%w: %q owned by %q", ErrUnknownOwner, a.Name, a.Owner)
		}
	}
	return nil
}

// Character returns the character spec with name.
func (s *PartySpec) Character(name string) (CharacterSpec, bool) {
	if s == nil {
		return CharacterSpec{}, false
	}
	for _, c := range s.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return CharacterSpec{}, false
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
