// internal/system/status_effect.go
package system

import (
	"glyph-defense/internal/config"
	"glyph-defense/internal/entity"
)

// StatusEffectSystem ведёт таймеры замедлений и усилителей и гасит
// вспышки попаданий. Эффект с истёкшим таймером удаляется из контейнера,
// пустой контейнер — из ECS.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, container := range s.ecs.SlowContainers {
		for source, inst := range container.Sources {
			inst.Remaining -= deltaTime
			if inst.Remaining <= 0 {
				delete(container.Sources, source)
			} else {
				container.Sources[source] = inst
			}
		}
		if len(container.Sources) == 0 {
			delete(s.ecs.SlowContainers, id)
		}
	}

	for id, container := range s.ecs.AmpContainers {
		for source, inst := range container.Sources {
			inst.Remaining -= deltaTime
			if inst.Remaining <= 0 {
				delete(container.Sources, source)
			} else {
				container.Sources[source] = inst
			}
		}
		if len(container.Sources) == 0 {
			delete(s.ecs.AmpContainers, id)
		}
	}

	for id, swirl := range s.ecs.Swirls {
		l := swirl.Vec.Len()
		l -= config.ImpactDecay * deltaTime
		if l <= 0.01 {
			delete(s.ecs.Swirls, id)
			continue
		}
		swirl.Vec = swirl.Vec.Normalize().Scale(l)
	}
}
