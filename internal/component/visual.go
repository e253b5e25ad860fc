// internal/component/visual.go
package component

import "glyph-defense/pkg/geom"

// Swirl — вектор вспышки попадания для отрисовщика. Каждый удар
// добавляет нормаль от источника к цели с силой от доли снятого
// здоровья; вектор затухает со временем.
type Swirl struct {
	Vec geom.Vec2
}
