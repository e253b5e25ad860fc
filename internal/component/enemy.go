// internal/component/enemy.go
package component

import "glyph-defense/internal/types"

// Enemy представляет вражескую сущность.
type Enemy struct {
	DefID      string
	Symbol     string
	Reward     float64
	MoteFactor float64
	Boss       bool
	// DefenseOverride перекрывает защиту из определения для конкретного
	// экземпляра (спавнер выставляет её для особых врагов волны).
	DefenseOverride *float64

	// Последний ударивший — для награды за убийство и шанса обращения.
	LastHitBy  types.EntityID
	LastHitDef string
}

// Health — здоровье сущности. Дробное: усилители и квадратичные иглы
// оперируют нецелым уроном.
type Health struct {
	Value float64
	Max   float64
}
