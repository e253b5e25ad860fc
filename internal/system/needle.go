// internal/system/needle.go
package system

import (
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
)

// fireNeedle выпускает самонаводящуюся иглу. Игла докручивается к цели с
// ограниченной угловой скоростью, втыкается и тикает уроном: каждый тик
// даёт квадратично растущий урон, пока не выйдет бюджет тиков.
func (s *CombatSystem) fireNeedle(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return
	}
	to, ok := s.ecs.Positions[target]
	if !ok {
		return
	}

	speed := config.DefaultProjectileSpeed
	turnRate := 4.0
	budget := 3
	retick := 0.5
	if params := def.Params; params != nil {
		if params.ProjectileSpeed > 0 {
			speed = params.ProjectileSpeed
		}
		if params.TurnRate > 0 {
			turnRate = params.TurnRate
		}
		if params.HitBudget > 0 {
			budget = params.HitBudget
		}
		if params.RetickInterval > 0 {
			retick = params.RetickInterval
		}
	}

	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: from.Pos}
	s.ecs.Projectiles[pid] = &component.Projectile{
		Kind:      component.ProjEpsilonNeedle,
		Source:    id,
		SourceDef: tower.DefID,
		Target:    target,
		Damage:    s.shotDamage(tower),
		Speed:     speed,
		Prev:      from.Pos,
		MaxAge:    config.ProjectileLifetime,
	}
	s.ecs.EpsilonNeedles[pid] = &component.EpsilonNeedle{
		Heading:      math.Atan2(to.Pos.Y-from.Pos.Y, to.Pos.X-from.Pos.X),
		TurnRate:     turnRate,
		TicksLeft:    budget,
		RetickTimer:  retick,
		RetickPeriod: retick,
	}
}
