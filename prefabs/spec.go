package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is returned when a prefab decodes but holds unusable values.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpecFrom[T any](l *Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

func (c ColliderSpec) Params() collision.HitboxParams {
	return collision.HitboxParams{
		Size:   cp.Vector{X: c.Width, Y: c.Height},
		Offset: cp.Vector{X: c.OffsetX, Y: c.OffsetY},
	}
}

type AnimationSpec struct {
	FrameW        int     `yaml:"frame_w"`
	FrameH        int     `yaml:"frame_h"`
	FrameCount    int     `yaml:"frame_count"`
	FrameDuration float64 `yaml:"frame_duration"`
}

type PlayerSpec struct {
	Name      string        `yaml:"name"`
	MoveSpeed float64       `yaml:"move_speed"`
	Health    int           `yaml:"health"`
	IFrames   int           `yaml:"iframes"`
	Collider  ColliderSpec  `yaml:"collider"`
	Animation AnimationSpec `yaml:"animation"`
	Color     *YAMLColor    `yaml:"color"`
}

func (s PlayerSpec) Validate() error {
	if s.MoveSpeed <= 0 || s.Health <= 0 {
		return fmt.Errorf("%w: player %q needs positive move_speed and health", ErrInvalidSpec, s.Name)
	}
	return validateCollider(s.Name, s.Collider)
}

type EnemySpec struct {
	Name          string        `yaml:"name"`
	MoveSpeed     float64       `yaml:"move_speed"`
	Health        int           `yaml:"health"`
	ContactDamage int           `yaml:"contact_damage"`
	Score         int           `yaml:"score"`
	Collider      ColliderSpec  `yaml:"collider"`
	Animation     AnimationSpec `yaml:"animation"`
	Color         *YAMLColor    `yaml:"color"`
}

func (s EnemySpec) Validate() error {
	if s.MoveSpeed < 0 || s.Health <= 0 || s.ContactDamage < 0 {
		return fmt.Errorf("%w: enemy %q has negative speed, damage or non-positive health", ErrInvalidSpec, s.Name)
	}
	return validateCollider(s.Name, s.Collider)
}

type SpriteSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type WeaponHitboxSpec struct {
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	WidthRatio  float64 `yaml:"width_ratio"`
	HeightRatio float64 `yaml:"height_ratio"`
}

// WeaponSpec covers both the orbiting sword and thrown daggers. Speed,
// Cooldown and MaxActive only apply to thrown weapons.
type WeaponSpec struct {
	Name       string           `yaml:"name"`
	Sprite     SpriteSpec       `yaml:"sprite"`
	Hitbox     WeaponHitboxSpec `yaml:"hitbox"`
	SizeRatio  float64          `yaml:"size_ratio"`
	SwingSpeed float64          `yaml:"swing_speed"`
	Speed      float64          `yaml:"speed"`
	Cooldown   float64          `yaml:"cooldown"`
	MaxActive  int              `yaml:"max_active"`
	DrawOffset VectorSpec       `yaml:"draw_offset"`
	Color      *YAMLColor       `yaml:"color"`
}

func (s WeaponSpec) Params() collision.WeaponHitboxParams {
	return collision.WeaponHitboxParams{
		Base: collision.HitboxParams{
			Size:   cp.Vector{X: s.Sprite.Width, Y: s.Sprite.Height},
			Offset: cp.Vector{X: s.Hitbox.OffsetX, Y: s.Hitbox.OffsetY},
		},
		WidthRatio:  s.Hitbox.WidthRatio,
		HeightRatio: s.Hitbox.HeightRatio,
	}
}

func (s WeaponSpec) Validate() error {
	if err := s.Params().Validate(); err != nil {
		return fmt.Errorf("%w: weapon %q: %w", ErrInvalidSpec, s.Name, err)
	}
	if s.SizeRatio <= 0 {
		return fmt.Errorf("%w: weapon %q size_ratio %v", ErrInvalidSpec, s.Name, s.SizeRatio)
	}
	if s.Speed < 0 || s.Cooldown < 0 || s.MaxActive < 0 {
		return fmt.Errorf("%w: weapon %q has negative speed, cooldown or max_active", ErrInvalidSpec, s.Name)
	}
	return nil
}

type AuraSpec struct {
	Name    string     `yaml:"name"`
	Enabled bool       `yaml:"enabled"`
	Radius  float64    `yaml:"radius"`
	Opacity float64    `yaml:"opacity"`
	Color   *YAMLColor `yaml:"color"`
}

func (s AuraSpec) Validate() error {
	if s.Radius < 0 || s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("%w: aura radius %v opacity %v", ErrInvalidSpec, s.Radius, s.Opacity)
	}
	return nil
}

type DirectorSpec struct {
	Name        string  `yaml:"name"`
	Script      string  `yaml:"script"`
	MaxEnemies  int     `yaml:"max_enemies"`
	EnemySpeed  float64 `yaml:"enemy_speed"`
	SpawnMargin float64 `yaml:"spawn_margin"`
}

func (s DirectorSpec) Validate() error {
	if s.MaxEnemies < 0 || s.EnemySpeed < 0 || s.SpawnMargin < 0 {
		return fmt.Errorf("%w: director values must not be negative", ErrInvalidSpec)
	}
	return nil
}

func validateCollider(name string, c ColliderSpec) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: %q collider %vx%v", ErrInvalidSpec, name, c.Width, c.Height)
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns the spec color, or fallback when none was set.
func ColorOr(c *YAMLColor, fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
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
