// internal/component/movement.go
package component

import "glyph-defense/pkg/geom"

// Position — позиция сущности в мировых координатах.
type Position struct {
	Pos geom.Vec2
}

// Velocity — базовая скорость движения вдоль маршрута, пикс/с.
// Эффективная скорость считается каждый кадр из активных замедлений.
type Velocity struct {
	Base float64
}

// PathFollow — прогресс врага по маршруту, доля длины в [0, 1].
// Direct-враги игнорируют изгибы и идут по прямой вход→выход.
type PathFollow struct {
	Progress float64
	Direct   bool
}
