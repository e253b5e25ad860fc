// internal/defs/types.go
package defs

import (
	"image/color"

	"glyph-defense/pkg/geom"
)

// Behavior defines how a tower attacks (or supports).
type Behavior string

const (
	BehaviorBolt      Behavior = "BOLT"      // прямой снаряд в цель
	BehaviorChain     Behavior = "CHAIN"     // цепная молния по ближайшим
	BehaviorPendulum  Behavior = "PENDULUM"  // двойной маятник, урон плечом
	BehaviorOrbital   Behavior = "ORBITAL"   // орбитеры, лазер при выравнивании
	BehaviorNeedle    Behavior = "NEEDLE"    // самонаводящаяся игла, втыкается
	BehaviorTriangle  Behavior = "TRIANGLE"  // липучка с треугольным возвратом
	BehaviorFrost     Behavior = "FROST"     // снаряд с замедлением
	BehaviorAmplify   Behavior = "AMPLIFY"   // снаряд с усилителем урона
	BehaviorNova      Behavior = "NOVA"      // расширяющееся кольцо
	BehaviorStar      Behavior = "STAR"      // вращающаяся звезда навылет
	BehaviorSplit     Behavior = "SPLIT"     // снаряд дробится при попадании
	BehaviorRail      Behavior = "RAIL"      // мгновенный прошивающий луч
	BehaviorMine      Behavior = "MINE"      // закладывает заряды на маршруте
	BehaviorBeam      Behavior = "BEAM"      // вращающийся луч с сектором
	BehaviorRings     Behavior = "RINGS"     // орбитальные кольца сфер
	BehaviorSupply    Behavior = "SUPPLY"    // производитель для линий снабжения
	BehaviorCollector Behavior = "COLLECTOR" // копит заряд, бьёт спиральными волнами
	BehaviorThrall    Behavior = "THRALL"    // убийства обращают врагов
	BehaviorAura      Behavior = "AURA"      // не стреляет, усиливает соседей
	BehaviorBounce    Behavior = "BOUNCE"    // рикошет между врагами
)

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Glyph          string          `json:"glyph"`
	Behavior       Behavior        `json:"behavior"`
	Tier           int             `json:"tier"`
	Damage         float64         `json:"damage"`
	FireRate       float64         `json:"fire_rate"` // Shots per second
	Range          float64         `json:"range"`     // Пиксели
	BaseCost       float64         `json:"base_cost"`
	NextTierID     string          `json:"next_tier_id,omitempty"`
	PreviousTierID string          `json:"previous_tier_id,omitempty"`
	Prestige       bool            `json:"prestige,omitempty"`
	// DefaultPriority — политика выбора цели при постройке:
	// "first" (пусто) или "strongest".
	DefaultPriority string `json:"default_priority,omitempty"`
	Params         *BehaviorParams `json:"params,omitempty"`
	Visuals        Visuals         `json:"visuals"`
}

// BehaviorParams holds parameters for the different behaviors.
// Omitempty keeps the JSON catalogs readable: each tower carries only
// the fields its behavior reads.
type BehaviorParams struct {
	ProjectileSpeed float64 `json:"projectile_speed,omitempty"`
	BoltCount       int     `json:"bolt_count,omitempty"`

	// CHAIN
	ChainBudget int     `json:"chain_budget,omitempty"`
	ChainRadius float64 `json:"chain_radius,omitempty"`

	// FROST / AMPLIFY
	SlowMultiplier float64 `json:"slow_multiplier,omitempty"`
	SlowDuration   float64 `json:"slow_duration,omitempty"`
	AmpStrength    float64 `json:"amp_strength,omitempty"`
	AmpDuration    float64 `json:"amp_duration,omitempty"`

	// BOUNCE
	BounceCount  int     `json:"bounce_count,omitempty"`
	BounceDecay  float64 `json:"bounce_decay,omitempty"`
	BounceRadius float64 `json:"bounce_radius,omitempty"`

	// SPLIT
	SplitCount        int     `json:"split_count,omitempty"`
	SplitRadius       float64 `json:"split_radius,omitempty"`
	SplitDamageFactor float64 `json:"split_damage_factor,omitempty"`

	// NEEDLE
	TurnRate       float64 `json:"turn_rate,omitempty"` // рад/с
	HitBudget      int     `json:"hit_budget,omitempty"`
	RetickInterval float64 `json:"retick_interval,omitempty"`

	// PENDULUM
	ArmLength     float64 `json:"arm_length,omitempty"`
	ArmLength2    float64 `json:"arm_length_2,omitempty"`
	PendulumDrive float64 `json:"pendulum_drive,omitempty"` // подкачка, рад/с²

	// ORBITAL
	OrbitRadius    float64   `json:"orbit_radius,omitempty"`
	OrbitSpeeds    []float64 `json:"orbit_speeds,omitempty"` // рад/с на орбитер
	AlignTolerance float64   `json:"align_tolerance,omitempty"`

	// NOVA
	PulseGrowRate  float64 `json:"pulse_grow_rate,omitempty"`
	PulseThickness float64 `json:"pulse_thickness,omitempty"`

	// STAR
	SweepAmplitude float64 `json:"sweep_amplitude,omitempty"`
	SweepFrequency float64 `json:"sweep_frequency,omitempty"`

	// MINE
	MaxMines   int     `json:"max_mines,omitempty"`
	MineRadius float64 `json:"mine_radius,omitempty"`

	// BEAM
	RotationSpeed float64 `json:"rotation_speed,omitempty"`
	ArcAngle      float64 `json:"arc_angle,omitempty"`
	TickInterval  float64 `json:"tick_interval,omitempty"`

	// RINGS
	MaxRings      int     `json:"max_rings,omitempty"`
	OrbsPerRing   int     `json:"orbs_per_ring,omitempty"`
	RingSpacing   float64 `json:"ring_spacing,omitempty"`
	RingSpinSpeed float64 `json:"ring_spin_speed,omitempty"`

	// TRIANGLE
	AttachTicks    int     `json:"attach_ticks,omitempty"`
	AttachInterval float64 `json:"attach_interval,omitempty"`
	TriangleSize   float64 `json:"triangle_size,omitempty"`

	// COLLECTOR
	WaveCount   int     `json:"wave_count,omitempty"` // волн за залп
	ChargeCost  float64 `json:"charge_cost,omitempty"`
	WaveAngular float64 `json:"wave_angular,omitempty"` // рад/с
	WaveRadial  float64 `json:"wave_radial,omitempty"`  // пикс/с

	// SUPPLY
	PayloadFactor float64 `json:"payload_factor,omitempty"` // множитель груза сгустка

	// THRALL
	ThrallChance   float64 `json:"thrall_chance,omitempty"`
	ThrallDuration float64 `json:"thrall_duration,omitempty"`

	// AURA
	AuraRadius       float64 `json:"aura_radius,omitempty"`
	DamageMultiplier float64 `json:"damage_multiplier,omitempty"`
	RateMultiplier   float64 `json:"rate_multiplier,omitempty"`
}

// Visuals contains parameters for rendering a tower or an enemy.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
	StrokeWidth  float64    `json:"stroke_width"`
}

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Symbol     string   `json:"symbol"`
	Health     float64  `json:"health"`
	Speed      float64  `json:"speed"` // пикс/с вдоль маршрута
	Reward     float64  `json:"reward"`
	MoteFactor float64  `json:"mote_factor"` // множитель выпадающих сгустков
	Defense    *float64 `json:"defense,omitempty"`
	Boss       bool     `json:"boss,omitempty"`
	Direct     bool     `json:"direct,omitempty"` // идёт по прямой вход→выход
	Visuals    Visuals  `json:"visuals"`
}

// EnemyGroup — группа врагов внутри волны, спавнится последовательно.
type EnemyGroup struct {
	EnemyID      string  `json:"enemy_id"`
	Count        int     `json:"count"`
	Interval     float64 `json:"interval"` // секунд между врагами
	HealthFactor float64 `json:"health_factor,omitempty"`
	SpeedFactor  float64 `json:"speed_factor,omitempty"`
}

// BossSpec — босс волны. Спавнится строго после всех групп.
type BossSpec struct {
	EnemyID      string  `json:"enemy_id"`
	HealthFactor float64 `json:"health_factor,omitempty"`
}

// WaveDefinition описывает состав одной волны.
type WaveDefinition struct {
	Groups []EnemyGroup `json:"groups"`
	Boss   *BossSpec    `json:"boss,omitempty"`
}

// StageDefinition — карта: опорные точки маршрута врагов.
type StageDefinition struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Waypoints []geom.Vec2 `json:"waypoints"`
}
