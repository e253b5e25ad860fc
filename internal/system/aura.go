// internal/system/aura.go
package system

import (
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/event"
)

// AuraSystem пересчитывает боевые характеристики башен под аурами
// омикрона. Пересчёт событийный: только когда башни ставятся, продаются
// или меняют тип, а не каждый кадр.
type AuraSystem struct {
	ecs *entity.ECS
}

func NewAuraSystem(ecs *entity.ECS, dispatcher *event.Dispatcher) *AuraSystem {
	s := &AuraSystem{ecs: ecs}
	dispatcher.Subscribe(event.TowerPlaced, s)
	dispatcher.Subscribe(event.TowerRemoved, s)
	dispatcher.Subscribe(event.TowerRekeyed, s)
	return s
}

func (s *AuraSystem) OnEvent(event.Event) {
	s.Recalculate()
}

// Recalculate сбрасывает все башни к базовым характеристикам и заново
// накладывает множители каждой ауры. Несколько аур перемножаются, но
// никогда не накапливаются между пересчётами.
func (s *AuraSystem) Recalculate() {
	for _, tower := range s.ecs.Towers {
		tower.Damage = tower.BaseDamage
		tower.FireRate = tower.BaseFireRate
		tower.Range = tower.BaseRange
	}

	for auraID, aura := range s.ecs.Towers {
		def, ok := defs.TowerDefs[aura.DefID]
		if !ok || def.Behavior != defs.BehaviorAura || def.Params == nil {
			continue
		}
		auraPos, ok := s.ecs.Positions[auraID]
		if !ok {
			continue
		}
		radius := def.Params.AuraRadius
		if radius <= 0 {
			radius = aura.BaseRange
		}

		for targetID, target := range s.ecs.Towers {
			if targetID == auraID {
				continue
			}
			targetDef, ok := defs.TowerDefs[target.DefID]
			if !ok || targetDef.Behavior == defs.BehaviorAura {
				continue
			}
			targetPos, ok := s.ecs.Positions[targetID]
			if !ok {
				continue
			}
			if auraPos.Pos.Distance(targetPos.Pos) > radius {
				continue
			}
			if def.Params.DamageMultiplier > 0 {
				target.Damage *= def.Params.DamageMultiplier
			}
			if def.Params.RateMultiplier > 0 {
				target.FireRate *= def.Params.RateMultiplier
			}
		}
	}
}
