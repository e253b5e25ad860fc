// internal/system/projectile.go
package system

import (
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// ProjectileSystem двигает все летящие эффекты и разрешает столкновения.
// Столкновения считаются по отрезку от прошлой позиции к новой, поэтому
// быстрый снаряд не перепрыгивает врага между кадрами.
type ProjectileSystem struct {
	ecs    *entity.ECS
	damage *Damage
}

func NewProjectileSystem(ecs *entity.ECS, damage *Damage) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, damage: damage}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	var toRemove []types.EntityID

	for id, proj := range s.ecs.Projectiles {
		proj.Age += deltaTime
		if proj.MaxAge > 0 && proj.Age >= proj.MaxAge {
			toRemove = append(toRemove, id)
			continue
		}

		var done bool
		switch proj.Kind {
		case component.ProjSimple:
			done = s.updateSimple(id, proj, deltaTime)
		case component.ProjSupplyMote:
			done = s.updateMote(id, proj, deltaTime)
		case component.ProjOmegaWave:
			done = s.updateOmegaWave(id, proj, deltaTime)
		case component.ProjIotaPulse:
			done = s.updateIotaPulse(id, proj, deltaTime)
		case component.ProjGammaStar:
			done = s.updateGammaStar(id, proj, deltaTime)
		case component.ProjBetaTriangle:
			done = s.updateBetaTriangle(id, proj, deltaTime)
		case component.ProjEpsilonNeedle:
			done = s.updateEpsilonNeedle(id, proj, deltaTime)
		case component.ProjEtaLaser, component.ProjArc:
			// Чисто визуальные, живут до MaxAge.
		}
		if done {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toRemove {
		s.ecs.RemoveEntity(id)
	}
}

// updateSimple — самонаводящийся болт. Потеряв цель, летит по прямой до
// истечения срока и бьёт первого, кого пересечёт.
func (s *ProjectileSystem) updateSimple(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}

	dir, hasDir := s.headingFor(proj, pos.Pos)
	if !hasDir {
		return true // некуда лететь: цели нет и курса нет
	}
	proj.Prev = pos.Pos
	pos.Pos = pos.Pos.Add(dir.Scale(proj.Speed * deltaTime))

	hit := s.firstEnemyOnSegment(proj.Prev, pos.Pos, proj.Visited)
	if hit == 0 {
		return false
	}

	s.applyPayload(proj, hit)

	// Рикошет: перенацелиться на ближайшего ещё не тронутого врага.
	if proj.BouncesLeft > 0 {
		if proj.Visited == nil {
			proj.Visited = map[types.EntityID]bool{}
		}
		proj.Visited[hit] = true
		hitPos, ok := s.ecs.Positions[hit]
		if ok {
			pos.Pos = hitPos.Pos
		}
		next := s.nearestLivingEnemy(pos.Pos, proj.BounceRadius, proj.Visited)
		if next != 0 {
			proj.Target = next
			proj.BouncesLeft--
			if proj.BounceDecay > 0 {
				proj.Damage *= proj.BounceDecay
			}
			return false
		}
	}

	// Дробление: осколки разлетаются по соседям со сниженным уроном.
	if proj.SplitCount > 0 {
		s.spawnSplinters(proj, pos.Pos, hit)
	}
	return true
}

func (s *ProjectileSystem) spawnSplinters(parent *component.Projectile, from geom.Vec2, hit types.EntityID) {
	exclude := map[types.EntityID]bool{hit: true}
	factor := parent.SplitDamageFactor
	if factor <= 0 {
		factor = 0.5
	}

	for i := 0; i < parent.SplitCount; i++ {
		next := s.nearestLivingEnemy(from, parent.SplitRadius, exclude)
		if next == 0 {
			return
		}
		exclude[next] = true

		pid := s.ecs.NewEntity()
		s.ecs.Positions[pid] = &component.Position{Pos: from}
		s.ecs.Projectiles[pid] = &component.Projectile{
			Kind:      component.ProjSimple,
			Source:    parent.Source,
			SourceDef: parent.SourceDef,
			Target:    next,
			Damage:    parent.Damage * factor,
			Speed:     parent.Speed,
			Prev:      from,
			MaxAge:    config.ProjectileLifetime,
			// Осколок рождается внутри круга столкновения жертвы,
			// без исключения он ударил бы её же на нулевом параметре.
			Visited: map[types.EntityID]bool{hit: true},
		}
	}
}

// updateMote — сгусток снабжения. Доставка конвертирует груз в заряд
// получателя; исчезновение получателя тихо гасит сгусток.
func (s *ProjectileSystem) updateMote(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}
	receiver, ok := s.ecs.Towers[proj.Target]
	if !ok {
		return true
	}
	targetPos, ok := s.ecs.Positions[proj.Target]
	if !ok {
		return true
	}

	delta := targetPos.Pos.Sub(pos.Pos)
	step := proj.Speed * deltaTime
	if delta.Len() <= step+config.ProjectileRadius {
		if mote, ok := s.ecs.SupplyMotes[id]; ok {
			receiver.Charge += mote.Payload * config.ChargePerMote
		}
		return true
	}
	pos.Pos = pos.Pos.Add(delta.Normalize().Scale(step))
	return false
}

// updateOmegaWave — точка спиральной волны: угол и радиус растут
// одновременно, каждого врага волна задевает один раз.
func (s *ProjectileSystem) updateOmegaWave(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	wave, ok := s.ecs.OmegaWaves[id]
	if !ok {
		return true
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}

	proj.Prev = pos.Pos
	wave.Phase += wave.AngularVel * deltaTime
	wave.Radius += wave.RadialVel * deltaTime
	pos.Pos = wave.Origin.Add(geom.FromAngle(wave.Phase, wave.Radius))

	s.sweepPiercing(proj, wave.Hit, proj.Prev, pos.Pos)
	return false
}

// updateIotaPulse — расширяющееся кольцо: бьёт врага, когда фронт кольца
// проходит через него.
func (s *ProjectileSystem) updateIotaPulse(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	pulse, ok := s.ecs.IotaPulses[id]
	if !ok {
		return true
	}

	prevRadius := pulse.Radius
	pulse.Radius += pulse.GrowRate * deltaTime
	if pulse.Radius >= pulse.MaxRadius {
		pulse.Radius = pulse.MaxRadius
	}

	reach := pulse.Thickness/2 + config.EnemyRadius
	for enemyID := range s.ecs.Enemies {
		if pulse.Hit[enemyID] {
			continue
		}
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		d := enemyPos.Pos.Distance(pulse.Origin)
		if d <= pulse.Radius+reach && d >= prevRadius-reach {
			pulse.Hit[enemyID] = true
			s.applyPayload(proj, enemyID)
		}
	}

	return pulse.Radius >= pulse.MaxRadius
}

// updateGammaStar — звезда вихляет вокруг курса по синусоиде и прошивает
// всех на своём пути.
func (s *ProjectileSystem) updateGammaStar(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	star, ok := s.ecs.GammaStars[id]
	if !ok {
		return true
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}

	proj.Prev = pos.Pos
	star.Spin += deltaTime * 9
	along := proj.Speed * proj.Age
	sway := math.Sin(star.SweepFreq*proj.Age) * star.SweepAmp
	pos.Pos = star.Origin.
		Add(star.Heading.Scale(along)).
		Add(star.Heading.Perp().Scale(sway))

	s.sweepPiercing(proj, star.Hit, proj.Prev, pos.Pos)
	return false
}

// updateBetaTriangle — липучка: догоняет цель, тикает на ней уроном,
// затем облетает треугольник домой, по дороге снова кусаясь.
func (s *ProjectileSystem) updateBetaTriangle(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	tri, ok := s.ecs.BetaTriangles[id]
	if !ok {
		return true
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}

	switch tri.Phase {
	case component.BetaSeek:
		targetPos, alive := s.livingTargetPos(proj.Target)
		if !alive {
			s.detachTriangle(proj, tri, pos.Pos)
			return false
		}
		delta := targetPos.Sub(pos.Pos)
		step := proj.Speed * deltaTime
		if delta.Len() <= step+config.EnemyRadius {
			pos.Pos = targetPos
			tri.Phase = component.BetaAttached
			return false
		}
		pos.Pos = pos.Pos.Add(delta.Normalize().Scale(step))

	case component.BetaAttached:
		targetPos, alive := s.livingTargetPos(proj.Target)
		if !alive || tri.TicksLeft <= 0 {
			s.detachTriangle(proj, tri, pos.Pos)
			return false
		}
		pos.Pos = targetPos
		tri.TickTimer -= deltaTime
		if tri.TickTimer <= 0 {
			tri.TickTimer = tri.TickPeriod
			tri.TicksLeft--
			s.applyPayload(proj, proj.Target)
		}

	case component.BetaReturning:
		proj.Prev = pos.Pos
		waypoint := tri.Waypoints[tri.Corner]
		delta := waypoint.Sub(pos.Pos)
		step := proj.Speed * deltaTime
		if delta.Len() <= step {
			pos.Pos = waypoint
			tri.Corner++
			if tri.Corner >= len(tri.Waypoints) {
				return true
			}
		} else {
			pos.Pos = pos.Pos.Add(delta.Normalize().Scale(step))
		}
		s.sweepPiercing(proj, tri.Hit, proj.Prev, pos.Pos)
	}
	return false
}

func (s *ProjectileSystem) detachTriangle(proj *component.Projectile, tri *component.BetaTriangle, from geom.Vec2) {
	home := from
	if srcPos, ok := s.ecs.Positions[proj.Source]; ok {
		home = srcPos.Pos
	}
	tri.Waypoints = triangleWaypoints(from, home, 0)
	tri.Corner = 1
	tri.Phase = component.BetaReturning
}

// updateEpsilonNeedle — игла доворачивает на цель с ограниченной угловой
// скоростью, втыкается и тикает нарастающим уроном.
func (s *ProjectileSystem) updateEpsilonNeedle(id types.EntityID, proj *component.Projectile, deltaTime float64) bool {
	needle, ok := s.ecs.EpsilonNeedles[id]
	if !ok {
		return true
	}
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return true
	}

	if needle.Embedded != 0 {
		host, ok := s.ecs.Positions[needle.Embedded]
		health, alive := s.ecs.Healths[needle.Embedded]
		if !ok || !alive || health.Value <= 0 {
			return true
		}
		pos.Pos = host.Pos.Add(needle.Offset)

		needle.RetickTimer -= deltaTime
		if needle.RetickTimer <= 0 {
			needle.RetickTimer = needle.RetickPeriod
			needle.Stacks++
			needle.TicksLeft--
			stack := float64(needle.Stacks)
			s.applyTickDamage(proj, needle.Embedded, proj.Damage*stack*stack)
			if needle.TicksLeft <= 0 {
				return true
			}
		}
		return false
	}

	// Поиск: докрутка курса к цели, затем шаг вперёд.
	if targetPos, alive := s.livingTargetPos(proj.Target); alive {
		desired := math.Atan2(targetPos.Y-pos.Pos.Y, targetPos.X-pos.Pos.X)
		diff := geom.NormalizeAngle(desired - needle.Heading)
		maxTurn := needle.TurnRate * deltaTime
		if diff > maxTurn {
			diff = maxTurn
		}
		if diff < -maxTurn {
			diff = -maxTurn
		}
		needle.Heading = geom.NormalizeAngle(needle.Heading + diff)
	}

	proj.Prev = pos.Pos
	pos.Pos = pos.Pos.Add(geom.FromAngle(needle.Heading, proj.Speed*deltaTime))

	hit := s.firstEnemyOnSegment(proj.Prev, pos.Pos, nil)
	if hit == 0 {
		return false
	}
	hostPos, ok := s.ecs.Positions[hit]
	if !ok {
		return true
	}
	needle.Embedded = hit
	needle.Offset = pos.Pos.Sub(hostPos.Pos)
	if needle.Offset.Len() > config.EnemyRadius {
		needle.Offset = needle.Offset.Normalize().Scale(config.EnemyRadius)
	}
	needle.RetickTimer = 0 // первый тик сразу
	return false
}

// headingFor возвращает направление полёта: на живую цель либо по
// прежнему курсу, если цель исчезла.
func (s *ProjectileSystem) headingFor(proj *component.Projectile, from geom.Vec2) (geom.Vec2, bool) {
	if targetPos, alive := s.livingTargetPos(proj.Target); alive {
		d := targetPos.Sub(from)
		if d.LenSq() > 0 {
			return d.Normalize(), true
		}
	}
	proj.Target = 0
	d := from.Sub(proj.Prev)
	if d.LenSq() == 0 {
		return geom.Vec2{}, false
	}
	return d.Normalize(), true
}

func (s *ProjectileSystem) livingTargetPos(target types.EntityID) (geom.Vec2, bool) {
	if target == 0 {
		return geom.Vec2{}, false
	}
	health, ok := s.ecs.Healths[target]
	if !ok || health.Value <= 0 {
		return geom.Vec2{}, false
	}
	pos, ok := s.ecs.Positions[target]
	if !ok {
		return geom.Vec2{}, false
	}
	return pos.Pos, true
}

// firstEnemyOnSegment находит врага с минимальным параметром пересечения
// отрезка полёта. Пропускает мёртвых и уже посещённых.
func (s *ProjectileSystem) firstEnemyOnSegment(from, to geom.Vec2, exclude map[types.EntityID]bool) types.EntityID {
	var best types.EntityID
	bestT := math.MaxFloat64

	for enemyID := range s.ecs.Enemies {
		if exclude[enemyID] {
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
		t, hit := geom.SegmentCircleHit(from, to, pos.Pos, config.EnemyRadius+config.ProjectileRadius)
		if hit && t < bestT {
			best = enemyID
			bestT = t
		}
	}
	return best
}

// sweepPiercing бьёт всех врагов на отрезке, каждого один раз за жизнь
// снаряда.
func (s *ProjectileSystem) sweepPiercing(proj *component.Projectile, hitSet map[types.EntityID]bool, from, to geom.Vec2) {
	for enemyID := range s.ecs.Enemies {
		if hitSet[enemyID] {
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
		if _, hit := geom.SegmentCircleHit(from, to, pos.Pos, config.EnemyRadius+config.ProjectileRadius); hit {
			hitSet[enemyID] = true
			s.applyPayload(proj, enemyID)
		}
	}
}

func (s *ProjectileSystem) nearestLivingEnemy(from geom.Vec2, radius float64, exclude map[types.EntityID]bool) types.EntityID {
	var best types.EntityID
	bestDist := radius
	for enemyID := range s.ecs.Enemies {
		if exclude[enemyID] {
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

// applyPayload наносит урон и вешает сопутствующие эффекты снаряда.
func (s *ProjectileSystem) applyPayload(proj *component.Projectile, target types.EntityID) {
	s.applyTickDamage(proj, target, proj.Damage)
}

func (s *ProjectileSystem) applyTickDamage(proj *component.Projectile, target types.EntityID, amount float64) {
	s.damage.Apply(target, amount, proj.Source, proj.SourceDef)

	health, ok := s.ecs.Healths[target]
	if !ok || health.Value <= 0 {
		return // эффекты не липнут к мёртвым
	}

	if proj.Slow != nil {
		container, ok := s.ecs.SlowContainers[target]
		if !ok {
			container = &component.SlowContainer{Sources: map[types.EntityID]component.SlowInstance{}}
			s.ecs.SlowContainers[target] = container
		}
		container.Sources[proj.Source] = component.SlowInstance{
			Multiplier: proj.Slow.Multiplier,
			Remaining:  proj.Slow.Duration,
		}
	}

	if proj.Amp != nil {
		container, ok := s.ecs.AmpContainers[target]
		if !ok {
			container = &component.AmpContainer{Sources: map[types.EntityID]component.AmpInstance{}}
			s.ecs.AmpContainers[target] = container
		}
		container.Sources[proj.Source] = component.AmpInstance{
			Strength:  proj.Amp.Strength,
			Remaining: proj.Amp.Duration,
		}
	}
}
