// internal/component/archetype.go
package component

import (
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// Pendulum — состояние двойного маятника дзеты. Урон наносит второе
// плечо, столкновения считаются геометрически по его отрезку.
type Pendulum struct {
	Theta1, Theta2 float64 // углы плеч от вертикали
	Omega1, Omega2 float64 // угловые скорости
	L1, L2         float64
	// HitCooldown не даёт плечу молотить одного врага каждый кадр.
	HitCooldown map[types.EntityID]float64
}

// Orbital — три орбитера эты на разных угловых скоростях. Лазер бьёт,
// когда любые два орбитера выравниваются по углу в пределах допуска.
type Orbital struct {
	Angles        [3]float64
	Speeds        [3]float64
	Radius        float64
	AlignCooldown float64 // пауза между лазерами, пока орбитеры расходятся
}

// BeamSpinner — вращающийся сектор пси. Урон тикает врагам внутри дуги.
type BeamSpinner struct {
	Angle         float64
	RotationSpeed float64
	Arc           float64
	TickTimer     float64
}

// RingSpinner — кольца сфер фи. Число колец задаёт RingTier башни,
// сферы вредят при контакте с личным кулдауном на врага.
type RingSpinner struct {
	Angle       float64
	HitCooldown map[types.EntityID]float64
}

// Mine — заложенный заряд мю на маршруте.
type Mine struct {
	Pos    geom.Vec2
	Damage float64
	Radius float64
}

// MineLayer — состояние минёра: заложенные заряды. Пока мин меньше
// лимита, башня по кулдауну докладывает новые на ближайшую точку маршрута.
type MineLayer struct {
	Mines []Mine
}
