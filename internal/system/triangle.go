// internal/system/triangle.go
package system

import (
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// fireTriangle выпускает липучку беты: снаряд догоняет цель, прилипает и
// тикает уроном заданное число раз, после чего облетает равносторонний
// треугольник обратно к башне, задевая врагов по дороге.
func (s *CombatSystem) fireTriangle(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	speed := config.DefaultProjectileSpeed
	ticks := 3
	interval := 0.4
	if params := def.Params; params != nil {
		if params.ProjectileSpeed > 0 {
			speed = params.ProjectileSpeed
		}
		if params.AttachTicks > 0 {
			ticks = params.AttachTicks
		}
		if params.AttachInterval > 0 {
			interval = params.AttachInterval
		}
	}

	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: from.Pos}
	s.ecs.Projectiles[pid] = &component.Projectile{
		Kind:      component.ProjBetaTriangle,
		Source:    id,
		SourceDef: tower.DefID,
		Target:    target,
		Damage:    s.shotDamage(tower),
		Speed:     speed,
		Prev:      from.Pos,
		MaxAge:    config.ProjectileLifetime * 2,
	}
	s.ecs.BetaTriangles[pid] = &component.BetaTriangle{
		Phase:      component.BetaSeek,
		TickTimer:  interval,
		TickPeriod: interval,
		TicksLeft:  ticks,
		Hit:        map[types.EntityID]bool{},
	}
}

// triangleWaypoints строит вершины равностороннего треугольника возврата:
// точка отрыва, вершина в стороне и позиция башни-источника.
func triangleWaypoints(detach, home geom.Vec2, size float64) [3]geom.Vec2 {
	base := home.Sub(detach)
	if base.LenSq() == 0 {
		base = geom.Vec2{X: 1}
	}
	side := base.Len()
	if size > 0 && size > side {
		side = size
	}
	dir := base.Normalize()
	apex := detach.Add(dir.Scale(side / 2)).Add(dir.Perp().Scale(side * math.Sqrt(3) / 2))
	return [3]geom.Vec2{detach, apex, home}
}
