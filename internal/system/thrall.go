// internal/system/thrall.go
package system

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// ThrallSystem ведёт обращённых врагов: таймер жизни, перезарядка и
// стрельба простыми болтами по ближайшему живому врагу.
type ThrallSystem struct {
	ecs *entity.ECS
}

func NewThrallSystem(ecs *entity.ECS) *ThrallSystem {
	return &ThrallSystem{ecs: ecs}
}

func (s *ThrallSystem) Update(deltaTime float64) {
	var expired []types.EntityID

	for id, thrall := range s.ecs.Thralls {
		thrall.Remaining -= deltaTime
		if thrall.Remaining <= 0 {
			expired = append(expired, id)
			continue
		}

		if thrall.Cooldown > 0 {
			thrall.Cooldown -= deltaTime
			continue
		}

		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		target := s.nearestEnemy(pos.Pos, thrall.Range)
		if target == 0 {
			continue
		}

		pid := s.ecs.NewEntity()
		s.ecs.Positions[pid] = &component.Position{Pos: pos.Pos}
		s.ecs.Projectiles[pid] = &component.Projectile{
			Kind:      component.ProjSimple,
			Source:    thrall.Source,
			SourceDef: thrall.SourceDef,
			Target:    target,
			Damage:    thrall.Damage,
			Speed:     config.DefaultProjectileSpeed,
			Prev:      pos.Pos,
			MaxAge:    config.ProjectileLifetime,
		}
		if thrall.FireRate > 0 {
			thrall.Cooldown = 1.0 / thrall.FireRate
		}
	}

	for _, id := range expired {
		s.ecs.RemoveEntity(id)
	}
}

func (s *ThrallSystem) nearestEnemy(from geom.Vec2, rangeRadius float64) types.EntityID {
	var best types.EntityID
	bestDist := rangeRadius
	for enemyID := range s.ecs.Enemies {
		health, ok := s.ecs.Healths[enemyID]
		if !ok || health.Value <= 0 {
			continue
		}
		pos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if d := from.Distance(pos.Pos); d <= bestDist {
			best = enemyID
			bestDist = d
		}
	}
	return best
}
