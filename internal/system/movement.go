// internal/system/movement.go
package system

import (
	"math"

	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/event"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// MovementSystem двигает врагов вдоль маршрута. Прогресс живого врага
// только растёт; на прогрессе 1.0 враг прорывается: наносит урон базе
// и исчезает.
type MovementSystem struct {
	ecs        *entity.ECS
	path       *geom.Path
	dispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, path *geom.Path, dispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{ecs: ecs, path: path, dispatcher: dispatcher}
}

func (s *MovementSystem) Update(deltaTime float64) {
	for id, follow := range s.ecs.PathFollow {
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		if !hasPos || !hasVel {
			continue
		}
		if health, ok := s.ecs.Healths[id]; ok && health.Value <= 0 {
			continue // добитых снимет фаза зачистки
		}

		speed := vel.Base
		if slow, ok := s.ecs.SlowContainers[id]; ok {
			speed *= slow.MinMultiplier()
		}

		length := s.path.TotalLength
		if follow.Direct {
			length = s.path.End().Sub(s.path.Start()).Len()
		}
		if length <= 0 {
			follow.Progress = 1
		} else {
			follow.Progress += speed * deltaTime / length
		}

		if follow.Progress >= 1 {
			follow.Progress = 1
			pos.Pos = s.path.End()
			s.breach(id)
			continue
		}

		if follow.Direct {
			pos.Pos = s.path.Start().Lerp(s.path.End(), follow.Progress)
		} else {
			pos.Pos = s.path.PointAt(follow.Progress).Pos
		}
	}
}

// breach снимает врага с поля и сообщает игре урон по базе:
// max(1, ceil(остаток здоровья) − защита). Защита берётся первой
// ненулевой из: переопределение экземпляра, поле определения,
// глобальная из конфигурации.
func (s *MovementSystem) breach(id types.EntityID) {
	damage := 1
	if health, ok := s.ecs.Healths[id]; ok {
		defense := config.GlobalBreachDefense
		if enemy, ok := s.ecs.Enemies[id]; ok {
			if enemy.DefenseOverride != nil {
				defense = *enemy.DefenseOverride
			} else if def, ok := defs.EnemyDefs[enemy.DefID]; ok && def.Defense != nil {
				defense = *def.Defense
			}
		}
		damage = int(math.Ceil(health.Value) - defense)
		if damage < 1 {
			damage = 1
		}
	}

	// Слушатели читают компоненты врага, поэтому событие уходит до удаления.
	s.dispatcher.Dispatch(event.Event{
		Type: event.EnemyBreached,
		Data: event.BreachData{ID: id, Damage: damage},
	})
	s.ecs.RemoveEntity(id)
}
