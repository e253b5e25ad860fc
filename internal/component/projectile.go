// internal/component/projectile.go
package component

import (
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// ProjectileKind различает паттерны движения и столкновений снарядов.
// Общие поля лежат в Projectile, состояние конкретного паттерна — в
// отдельной карте компонентов с тем же EntityID.
type ProjectileKind string

const (
	ProjSimple        ProjectileKind = "simple"
	ProjSupplyMote    ProjectileKind = "supplyMote"
	ProjOmegaWave     ProjectileKind = "omegaWave"
	ProjEtaLaser      ProjectileKind = "etaLaser"
	ProjIotaPulse     ProjectileKind = "iotaPulse"
	ProjGammaStar     ProjectileKind = "gammaStar"
	ProjBetaTriangle  ProjectileKind = "betaTriangle"
	ProjEpsilonNeedle ProjectileKind = "epsilonNeedle"
	ProjArc           ProjectileKind = "arc" // чисто визуальная дуга
)

// SlowSpec — замедление, которое снаряд вешает при попадании.
type SlowSpec struct {
	Multiplier float64
	Duration   float64
}

// AmpSpec — усилитель урона, который снаряд вешает при попадании.
type AmpSpec struct {
	Strength float64
	Duration float64
}

// Projectile — общая часть любого летящего эффекта.
type Projectile struct {
	Kind      ProjectileKind
	Source    types.EntityID // башня-источник (может быть уже продана)
	SourceDef string         // тип башни для леджера урона
	Target    types.EntityID // 0 — паттерн живёт без цели
	Damage    float64
	Speed     float64
	Prev      geom.Vec2 // позиция прошлого кадра для проверки по отрезку
	Age       float64
	MaxAge    float64

	Slow *SlowSpec
	Amp  *AmpSpec

	// BOUNCE: оставшиеся рикошеты и затухание урона.
	BouncesLeft  int
	BounceDecay  float64
	BounceRadius float64
	// SPLIT: сколько осколков породить при попадании.
	SplitCount        int
	SplitRadius       float64
	SplitDamageFactor float64
	// Visited — уже поражённые цели (рикошет не возвращается).
	Visited map[types.EntityID]bool
}
