// internal/component/thrall.go
package component

import "glyph-defense/internal/types"

// Thrall — обращённый враг: стоит на месте своей смерти и стреляет по
// бывшим союзникам, пока не истечёт срок. Source хранит башню кси для
// зачёта урона в её леджер.
type Thrall struct {
	Damage    float64
	FireRate  float64
	Range     float64
	Cooldown  float64
	Remaining float64
	Source    types.EntityID
	SourceDef string
}
