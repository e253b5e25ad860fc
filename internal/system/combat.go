// internal/system/combat.go
package system

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/types"
	"glyph-defense/internal/utils"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// CombatSystem управляет стрельбой башен. Каждая башня за тик находится
// ровно в одном из двух режимов: поставщик (есть исходящая линия
// снабжения) или боевой (ищет цель и стреляет по архетипу). Непрерывные
// архетипы (маятник, орбитеры, луч, кольца) живут в UpdateContinuous,
// который игра зовёт и на паузе.
type CombatSystem struct {
	ecs        *entity.ECS
	path       *geom.Path
	damage     *Damage
	rng        *utils.PRNG
	linkTarget func(types.EntityID) types.EntityID

	focusEnemy types.EntityID
}

func NewCombatSystem(ecs *entity.ECS, path *geom.Path, damage *Damage, rng *utils.PRNG, linkTarget func(types.EntityID) types.EntityID) *CombatSystem {
	return &CombatSystem{
		ecs:        ecs,
		path:       path,
		damage:     damage,
		rng:        rng,
		linkTarget: linkTarget,
	}
}

// SetFocusEnemy выставляет общий фокус: башни предпочитают эту цель,
// пока она жива и в радиусе. Ноль снимает фокус.
func (s *CombatSystem) SetFocusEnemy(id types.EntityID) {
	s.focusEnemy = id
}

// FocusEnemy возвращает текущий общий фокус.
func (s *CombatSystem) FocusEnemy() types.EntityID { return s.focusEnemy }

func (s *CombatSystem) Update(deltaTime float64) {
	// Протухший фокус снимается сам.
	if s.focusEnemy != 0 {
		if health, ok := s.ecs.Healths[s.focusEnemy]; !ok || health.Value <= 0 {
			s.focusEnemy = 0
		}
	}

	for id, tower := range s.ecs.Towers {
		def, ok := defs.TowerDefs[tower.DefID]
		if !ok {
			logger.Log.WithField("def", tower.DefID).Warn("tower definition missing, tower inert")
			continue
		}

		switch def.Behavior {
		case defs.BehaviorAura:
			continue // аура событийная, см. AuraSystem
		case defs.BehaviorPendulum, defs.BehaviorOrbital, defs.BehaviorBeam, defs.BehaviorRings:
			continue // непрерывные архетипы, см. UpdateContinuous
		}

		if tower.Cooldown > 0 {
			tower.Cooldown -= deltaTime
		}

		if target := s.linkTarget(id); target != 0 {
			s.updateSupplier(id, tower, &def, target)
			continue
		}

		if def.Behavior == defs.BehaviorMine {
			s.updateMiner(id, tower, &def)
			continue
		}

		s.updateAttacker(id, tower, &def, deltaTime)
	}
}

func (s *CombatSystem) updateAttacker(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, deltaTime float64) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	target := s.selectTarget(id, tower, pos.Pos)
	if target == 0 {
		tower.IdleTime += deltaTime
		// Простаивающая башня подкармливает ближайший коллектор.
		if def.Behavior != defs.BehaviorCollector && tower.IdleTime >= config.IdleFeedDelay && tower.Cooldown <= 0 {
			if omega := s.nearestCollector(id, pos.Pos, tower.Range); omega != 0 {
				s.launchMote(id, omega, config.MotePayloadPerShot)
				s.resetCooldown(tower)
			}
		}
		return
	}

	tower.IdleTime = 0
	s.damage.AddActiveTime(tower.DefID, id, deltaTime)
	if tower.Cooldown > 0 {
		return
	}

	if s.fire(id, tower, def, target) {
		s.resetCooldown(tower)
	}
}

// fire выпускает эффект архетипа по цели. Возвращает false, если
// выстрел не состоялся (например, коллектору не хватило заряда).
func (s *CombatSystem) fire(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) bool {
	switch def.Behavior {
	case defs.BehaviorBolt, defs.BehaviorFrost, defs.BehaviorAmplify,
		defs.BehaviorSplit, defs.BehaviorBounce, defs.BehaviorThrall,
		defs.BehaviorSupply:
		s.fireBolt(id, tower, def, target)
	case defs.BehaviorChain:
		s.fireChain(id, tower, def, target)
	case defs.BehaviorStar:
		s.fireStar(id, tower, def, target)
	case defs.BehaviorNova:
		s.fireNova(id, tower, def)
	case defs.BehaviorRail:
		s.fireRail(id, tower, def, target)
	case defs.BehaviorNeedle:
		s.fireNeedle(id, tower, def, target)
	case defs.BehaviorTriangle:
		s.fireTriangle(id, tower, def, target)
	case defs.BehaviorCollector:
		return s.fireCollectorVolley(id, tower, def)
	default:
		return false
	}
	return true
}

func (s *CombatSystem) resetCooldown(tower *component.Tower) {
	if tower.FireRate <= 0 {
		return
	}
	tower.Cooldown = 1.0 / tower.FireRate
}

// shotDamage — урон одного выстрела с учётом накопленного заряда:
// часть заряда сгорает и даёт процентный бонус.
func (s *CombatSystem) shotDamage(tower *component.Tower) float64 {
	damage := tower.Damage
	if tower.Charge > 0 {
		spend := min(tower.Charge, config.ChargeSpendPerShot)
		tower.Charge -= spend
		damage *= 1 + config.ChargeDamageBonus*spend
	}
	return damage
}

// selectTarget реализует порядок выбора цели: ручное перенацеливание,
// общий фокус, фокус на кристалле, затем скан радиуса по политике башни.
func (s *CombatSystem) selectTarget(id types.EntityID, tower *component.Tower, from geom.Vec2) types.EntityID {
	if tower.ManualTarget != 0 {
		if s.aliveInRange(tower.ManualTarget, from, tower.Range) {
			return tower.ManualTarget
		}
		tower.ManualTarget = 0
	}

	if s.focusEnemy != 0 && s.aliveInRange(s.focusEnemy, from, tower.Range) {
		return s.focusEnemy
	}

	if tower.FocusCrystal != 0 {
		if _, ok := s.ecs.Crystals[tower.FocusCrystal]; ok && s.aliveInRange(tower.FocusCrystal, from, tower.Range) {
			return tower.FocusCrystal
		}
		tower.FocusCrystal = 0
	}

	return s.scan(from, tower.Range, tower.Priority)
}

func (s *CombatSystem) aliveInRange(id types.EntityID, from geom.Vec2, rangeRadius float64) bool {
	health, ok := s.ecs.Healths[id]
	if !ok || health.Value <= 0 {
		return false
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return false
	}
	return from.Distance(pos.Pos) <= rangeRadius
}

// scan обходит врагов в радиусе. "first" берёт максимальный прогресс по
// маршруту, "strongest" — максимум здоровья с прогрессом как тай-брейком.
func (s *CombatSystem) scan(from geom.Vec2, rangeRadius float64, priority component.TargetPriority) types.EntityID {
	var best types.EntityID
	bestProgress := -1.0
	bestHealth := -1.0

	for enemyID := range s.ecs.Enemies {
		health, ok := s.ecs.Healths[enemyID]
		if !ok || health.Value <= 0 {
			continue
		}
		pos, ok := s.ecs.Positions[enemyID]
		if !ok || from.Distance(pos.Pos) > rangeRadius {
			continue
		}
		progress := 0.0
		if follow, ok := s.ecs.PathFollow[enemyID]; ok {
			progress = follow.Progress
		}

		switch priority {
		case component.PriorityStrongest:
			if health.Value > bestHealth || (health.Value == bestHealth && progress > bestProgress) {
				best = enemyID
				bestHealth = health.Value
				bestProgress = progress
			}
		default: // first
			if progress > bestProgress {
				best = enemyID
				bestProgress = progress
			}
		}
	}
	return best
}

func (s *CombatSystem) nearestCollector(self types.EntityID, from geom.Vec2, rangeRadius float64) types.EntityID {
	var best types.EntityID
	bestDist := rangeRadius
	for id, tower := range s.ecs.Towers {
		if id == self {
			continue
		}
		def, ok := defs.TowerDefs[tower.DefID]
		if !ok || def.Behavior != defs.BehaviorCollector {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if d := from.Distance(pos.Pos); d <= bestDist {
			best = id
			bestDist = d
		}
	}
	return best
}

// predictTargetPos упреждает цель: итеративно сводит время подлёта,
// моделируя её дальнейшее движение по маршруту.
func (s *CombatSystem) predictTargetPos(target types.EntityID, from geom.Vec2, projSpeed float64) geom.Vec2 {
	pos, ok := s.ecs.Positions[target]
	if !ok {
		return from
	}
	follow, hasFollow := s.ecs.PathFollow[target]
	vel, hasVel := s.ecs.Velocities[target]
	if !hasFollow || !hasVel || projSpeed <= 0 {
		return pos.Pos
	}

	speed := vel.Base
	if slow, ok := s.ecs.SlowContainers[target]; ok {
		speed *= slow.MinMultiplier()
	}

	const maxIterations = 5
	timeToHit := 0.0
	predicted := pos.Pos
	for iter := 0; iter < maxIterations; iter++ {
		predicted = s.futurePoint(follow, speed, timeToHit)
		newTime := from.Distance(predicted) / projSpeed
		if abs(newTime-timeToHit) < 0.01 {
			break
		}
		timeToHit = newTime
	}
	return predicted
}

func (s *CombatSystem) futurePoint(follow *component.PathFollow, speed, dt float64) geom.Vec2 {
	length := s.path.TotalLength
	if follow.Direct {
		length = s.path.End().Sub(s.path.Start()).Len()
	}
	progress := follow.Progress
	if length > 0 {
		progress += speed * dt / length
	}
	if progress > 1 {
		progress = 1
	}
	if follow.Direct {
		return s.path.Start().Lerp(s.path.End(), progress)
	}
	return s.path.PointAt(progress).Pos
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
