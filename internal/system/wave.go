// internal/system/wave.go
package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/event"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// WaveSystem выпускает врагов волны: группы строго в объявленном
// порядке, каждая на собственном интервале, босс — после всех групп.
// Когда всё заспавнено и поле зачищено, волна закрывается событием.
type WaveSystem struct {
	ecs        *entity.ECS
	path       *geom.Path
	dispatcher *event.Dispatcher
}

func NewWaveSystem(ecs *entity.ECS, path *geom.Path, dispatcher *event.Dispatcher) *WaveSystem {
	return &WaveSystem{ecs: ecs, path: path, dispatcher: dispatcher}
}

// Begin переводит волну с данным индексом таблицы в фазу спавна.
// Множители цикла фиксируются на всю волну.
func (s *WaveSystem) Begin(index, cycle int) {
	wave := s.ecs.Wave
	wave.Index = index
	wave.Cycle = cycle
	wave.Number = cycle*len(defs.Waves) + index + 1
	wave.Phase = component.WaveSpawning
	wave.GroupIndex = 0
	wave.SpawnedInGroup = 0
	wave.BossSpawned = false
	wave.SpawnTimer = 0
	wave.HealthFactor = math.Pow(config.CycleHealthFactor, float64(cycle))
	wave.RewardFactor = math.Pow(config.CycleRewardFactor, float64(cycle))
	wave.SpeedFactor = 1 + config.CycleSpeedBonus*float64(cycle)

	logger.Log.WithFields(logrus.Fields{
		"wave":  wave.Number,
		"index": index,
		"cycle": cycle,
	}).Info("wave started")
	s.dispatcher.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Number: wave.Number, Cycle: cycle},
	})
}

func (s *WaveSystem) Update(deltaTime float64) {
	wave := s.ecs.Wave
	switch wave.Phase {
	case component.WaveSpawning:
		s.advanceSpawner(wave, deltaTime)
	case component.WaveExhausted:
		if len(s.ecs.Enemies) == 0 {
			wave.Phase = component.WaveIdle
			s.dispatcher.Dispatch(event.Event{
				Type: event.WaveEnded,
				Data: event.WaveData{Number: wave.Number, Cycle: wave.Cycle},
			})
		}
	}
}

func (s *WaveSystem) advanceSpawner(wave *component.Wave, deltaTime float64) {
	def := s.waveDef(wave.Index)
	wave.SpawnTimer += deltaTime

	for wave.GroupIndex < len(def.Groups) && wave.SpawnedInGroup >= def.Groups[wave.GroupIndex].Count {
		wave.GroupIndex++
		wave.SpawnedInGroup = 0
	}

	if wave.GroupIndex < len(def.Groups) {
		group := def.Groups[wave.GroupIndex]
		interval := group.Interval
		if interval <= 0 {
			interval = config.DefaultSpawnGap
		}
		if wave.SpawnTimer < interval {
			return
		}
		wave.SpawnTimer = 0
		s.spawn(group.EnemyID, wave, group.HealthFactor, group.SpeedFactor)
		wave.SpawnedInGroup++
		return
	}

	if def.Boss != nil && !wave.BossSpawned {
		if wave.SpawnTimer < config.BossSpawnGap {
			return
		}
		wave.SpawnTimer = 0
		s.spawn(def.Boss.EnemyID, wave, def.Boss.HealthFactor, 0)
		wave.BossSpawned = true
		return
	}

	wave.Phase = component.WaveExhausted
}

// waveDef достаёт определение волны, заворачивая индекс по кругу.
func (s *WaveSystem) waveDef(index int) defs.WaveDefinition {
	if len(defs.Waves) == 0 {
		return defs.WaveDefinition{}
	}
	return defs.Waves[index%len(defs.Waves)]
}

func (s *WaveSystem) spawn(enemyID string, wave *component.Wave, healthFactor, speedFactor float64) {
	def, ok := defs.EnemyDefs[enemyID]
	if !ok {
		logger.Log.WithField("enemy", enemyID).Warn("enemy definition not found, skipping spawn")
		return
	}
	if healthFactor <= 0 {
		healthFactor = 1
	}
	if speedFactor <= 0 {
		speedFactor = 1
	}

	health := def.Health * wave.HealthFactor * healthFactor
	speed := def.Speed * wave.SpeedFactor * speedFactor
	reward := def.Reward * wave.RewardFactor

	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{Pos: s.path.Start()}
	s.ecs.Velocities[id] = &component.Velocity{Base: speed}
	s.ecs.PathFollow[id] = &component.PathFollow{Direct: def.Direct}
	s.ecs.Healths[id] = &component.Health{Value: health, Max: health}
	s.ecs.Enemies[id] = &component.Enemy{
		DefID:      def.ID,
		Symbol:     def.Symbol,
		Reward:     reward,
		MoteFactor: def.MoteFactor,
		Boss:       def.Boss,
	}
}
