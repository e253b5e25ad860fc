// internal/system/bolt.go
package system

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// fireBolt покрывает всё семейство самонаводящихся снарядов: простой
// болт, замедляющий, усиливающий, дробящийся, рикошетящий и болт
// подчинителя. Разница только в подвешенных на снаряд эффектах.
func (s *CombatSystem) fireBolt(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	params := def.Params
	speed := config.DefaultProjectileSpeed
	count := 1
	if params != nil {
		if params.ProjectileSpeed > 0 {
			speed = params.ProjectileSpeed
		}
		if params.BoltCount > 1 {
			count = params.BoltCount
		}
	}

	damage := s.shotDamage(tower)
	for i := 0; i < count; i++ {
		s.spawnBolt(id, tower, def, target, damage, speed)
	}
}

func (s *CombatSystem) spawnBolt(source types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID, damage, speed float64) {
	pos, ok := s.ecs.Positions[source]
	if !ok {
		return
	}

	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: pos.Pos}
	proj := &component.Projectile{
		Kind:      component.ProjSimple,
		Source:    source,
		SourceDef: tower.DefID,
		Target:    target,
		Damage:    damage,
		Speed:     speed,
		Prev:      pos.Pos,
		MaxAge:    config.ProjectileLifetime,
	}

	if params := def.Params; params != nil {
		if params.SlowMultiplier > 0 && params.SlowMultiplier < 1 {
			proj.Slow = &component.SlowSpec{
				Multiplier: params.SlowMultiplier,
				Duration:   params.SlowDuration,
			}
		}
		if params.AmpStrength > 0 {
			proj.Amp = &component.AmpSpec{
				Strength: params.AmpStrength,
				Duration: params.AmpDuration,
			}
		}
		if params.BounceCount > 0 {
			proj.BouncesLeft = params.BounceCount
			proj.BounceDecay = params.BounceDecay
			proj.BounceRadius = params.BounceRadius
			proj.Visited = map[types.EntityID]bool{}
		}
		if params.SplitCount > 0 {
			proj.SplitCount = params.SplitCount
			proj.SplitRadius = params.SplitRadius
			proj.SplitDamageFactor = params.SplitDamageFactor
		}
	}

	s.ecs.Projectiles[pid] = proj
}

// fireRail бьёт мгновенно: без снаряда, урон прикладывается в момент
// выстрела. Луч рисуется один кадр через короткоживущий Beam.
// fireRail бьёт мгновенным лучом от башни сквозь цель до края радиуса.
// Луч прошивает: достаётся каждому врагу в коридоре, не только цели.
func (s *CombatSystem) fireRail(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return
	}
	to, ok := s.ecs.Positions[target]
	if !ok {
		return
	}
	dir := to.Pos.Sub(from.Pos).Normalize()
	if dir.LenSq() == 0 {
		return
	}
	end := from.Pos.Add(dir.Scale(tower.Range))

	damage := s.shotDamage(tower)
	for enemyID := range s.ecs.Enemies {
		pos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if geom.DistancePointToSegment(pos.Pos, from.Pos, end) <= config.EnemyRadius {
			s.damage.Apply(enemyID, damage, id, tower.DefID)
		}
	}

	bid := s.ecs.NewEntity()
	s.ecs.Projectiles[bid] = &component.Projectile{
		Kind:      component.ProjArc,
		Source:    id,
		SourceDef: tower.DefID,
		MaxAge:    0.08,
	}
	s.ecs.Beams[bid] = &component.Beam{From: from.Pos, To: end}
}

// fireChain мгновенно прыгает по цепочке ближайших врагов, пока не
// исчерпает бюджет прыжков или радиус очередного прыжка.
func (s *CombatSystem) fireChain(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	budget := 3
	radius := 100.0
	if params := def.Params; params != nil {
		if params.ChainBudget > 0 {
			budget = params.ChainBudget
		}
		if params.ChainRadius > 0 {
			radius = params.ChainRadius
		}
	}

	damage := s.shotDamage(tower)
	visited := map[types.EntityID]bool{}
	current := target
	prevPos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}
	from := prevPos.Pos

	for hop := 0; hop < budget; hop++ {
		if current == 0 || visited[current] {
			break
		}
		targetPos, ok := s.ecs.Positions[current]
		if !ok {
			break
		}
		visited[current] = true
		s.damage.Apply(current, damage, id, tower.DefID)

		bid := s.ecs.NewEntity()
		s.ecs.Projectiles[bid] = &component.Projectile{
			Kind:      component.ProjArc,
			Source:    id,
			SourceDef: tower.DefID,
			MaxAge:    0.12,
		}
		s.ecs.Beams[bid] = &component.Beam{From: from, To: targetPos.Pos}

		from = targetPos.Pos
		current = s.nearestEnemyExcluding(from, radius, visited)
	}
}

func (s *CombatSystem) nearestEnemyExcluding(from geom.Vec2, radius float64, visited map[types.EntityID]bool) types.EntityID {
	var best types.EntityID
	bestDist := radius
	for enemyID := range s.ecs.Enemies {
		if visited[enemyID] {
			continue
		}
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

// fireStar выпускает вихляющую звезду в сторону цели. Звезда летит по
// синусоиде вокруг курса и пробивает всех на пути.
func (s *CombatSystem) fireStar(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return
	}
	to, ok := s.ecs.Positions[target]
	if !ok {
		return
	}

	speed := config.DefaultProjectileSpeed
	sweepAmp := 26.0
	sweepFreq := 6.0
	if params := def.Params; params != nil {
		if params.ProjectileSpeed > 0 {
			speed = params.ProjectileSpeed
		}
		if params.SweepAmplitude > 0 {
			sweepAmp = params.SweepAmplitude
		}
		if params.SweepFrequency > 0 {
			sweepFreq = params.SweepFrequency
		}
	}

	heading := to.Pos.Sub(from.Pos).Normalize()
	if heading.LenSq() == 0 {
		heading = geom.Vec2{X: 1}
	}
	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: from.Pos}
	s.ecs.Projectiles[pid] = &component.Projectile{
		Kind:      component.ProjGammaStar,
		Source:    id,
		SourceDef: tower.DefID,
		Damage:    s.shotDamage(tower),
		Speed:     speed,
		Prev:      from.Pos,
		MaxAge:    tower.Range/speed + 0.5,
	}
	s.ecs.GammaStars[pid] = &component.GammaStar{
		Origin:    from.Pos,
		Heading:   heading,
		SweepAmp:  sweepAmp,
		SweepFreq: sweepFreq,
		Hit:       map[types.EntityID]bool{},
	}
}

// fireNova запускает расширяющееся кольцо вокруг башни. Кольцо бьёт
// каждого врага один раз при пересечении фронта.
func (s *CombatSystem) fireNova(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition) {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	growRate := 200.0
	thickness := 14.0
	if params := def.Params; params != nil {
		if params.PulseGrowRate > 0 {
			growRate = params.PulseGrowRate
		}
		if params.PulseThickness > 0 {
			thickness = params.PulseThickness
		}
	}

	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: from.Pos}
	s.ecs.Projectiles[pid] = &component.Projectile{
		Kind:      component.ProjIotaPulse,
		Source:    id,
		SourceDef: tower.DefID,
		Damage:    s.shotDamage(tower),
		MaxAge:    tower.Range/growRate + 0.25,
	}
	s.ecs.IotaPulses[pid] = &component.IotaPulse{
		Origin:    from.Pos,
		Radius:    0,
		MaxRadius: tower.Range,
		GrowRate:  growRate,
		Thickness: thickness,
		Hit:       map[types.EntityID]bool{},
	}
}
