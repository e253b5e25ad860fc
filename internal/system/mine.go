// internal/system/mine.go
package system

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// updateMiner — мю не целится во врагов: на кулдауне она закладывает
// заряд на ближайшей точке маршрута, пока не упрётся в лимит. Детонация
// проверяется каждый боевой тик по близости врага к любому заряду.
func (s *CombatSystem) updateMiner(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	maxMines := 4
	mineRadius := 45.0
	if params := def.Params; params != nil {
		if params.MaxMines > 0 {
			maxMines = params.MaxMines
		}
		if params.MineRadius > 0 {
			mineRadius = params.MineRadius
		}
	}

	layer, ok := s.ecs.MineLayers[id]
	if !ok {
		layer = &component.MineLayer{}
		s.ecs.MineLayers[id] = layer
	}

	s.detonateMines(id, tower, layer)

	if tower.Cooldown > 0 || len(layer.Mines) >= maxMines {
		return
	}

	spot := s.minePlacement(pos.Pos, tower.Range, layer)
	layer.Mines = append(layer.Mines, component.Mine{
		Pos:    spot,
		Damage: s.shotDamage(tower),
		Radius: mineRadius,
	})
	s.resetCooldown(tower)
}

// minePlacement выбирает точку на маршруте в радиусе башни, разводя
// новые заряды от уже лежащих. Вне радиуса заряд ложится у башни.
func (s *CombatSystem) minePlacement(from geom.Vec2, rangeRadius float64, layer *component.MineLayer) geom.Vec2 {
	progress, _ := s.path.ClosestProgress(from)
	best := s.path.PointAt(progress).Pos
	bestScore := -1.0

	// Пробуем несколько сдвигов вдоль маршрута вокруг ближайшей точки.
	const probes = 7
	if s.path.TotalLength > 0 {
		span := rangeRadius / s.path.TotalLength
		for i := 0; i < probes; i++ {
			p := progress + span*(float64(i)/(probes-1)*2-1)
			if p < 0 {
				p = 0
			}
			if p > 1 {
				p = 1
			}
			candidate := s.path.PointAt(p).Pos
			if from.Distance(candidate) > rangeRadius {
				continue
			}
			score := rangeRadius * 2
			for _, mine := range layer.Mines {
				if d := candidate.Distance(mine.Pos); d < score {
					score = d
				}
			}
			if score > bestScore {
				best = candidate
				bestScore = score
			}
		}
	}
	if bestScore < 0 && from.Distance(best) > rangeRadius {
		return from
	}
	return best
}

func (s *CombatSystem) detonateMines(id types.EntityID, tower *component.Tower, layer *component.MineLayer) {
	if len(layer.Mines) == 0 {
		return
	}

	remaining := layer.Mines[:0]
	for _, mine := range layer.Mines {
		trigger := types.None
		for enemyID := range s.ecs.Enemies {
			health, ok := s.ecs.Healths[enemyID]
			if !ok || health.Value <= 0 {
				continue
			}
			pos, ok := s.ecs.Positions[enemyID]
			if !ok {
				continue
			}
			if geom.CirclesOverlap(mine.Pos, mine.Radius, pos.Pos, config.EnemyRadius) {
				trigger = enemyID
				break
			}
		}
		if trigger == types.None {
			remaining = append(remaining, mine)
			continue
		}
		// Взрыв бьёт всех в радиусе заряда.
		for enemyID := range s.ecs.Enemies {
			pos, ok := s.ecs.Positions[enemyID]
			if !ok {
				continue
			}
			if pos.Pos.Distance(mine.Pos) <= mine.Radius+config.EnemyRadius {
				s.damage.Apply(enemyID, mine.Damage, id, tower.DefID)
			}
		}
	}
	layer.Mines = remaining
}
