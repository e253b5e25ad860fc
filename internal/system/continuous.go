// internal/system/continuous.go
package system

import (
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

const (
	pendulumGravity = 9.0
	pendulumDamping = 0.12
	pendulumCouple  = 2.2
	armHalfWidth    = 6.0
	contactCooldown = 0.45
	laserHalfWidth  = 6.0
	laserCooldown   = 0.5
	ringOrbRadius   = 7.0
)

// UpdateContinuous тикает архетипы с собственной физикой: маятник,
// орбитеры, луч и кольца. Физика идёт и на паузе, урон прикладывается
// только при активном бое.
func (s *CombatSystem) UpdateContinuous(deltaTime float64, combatActive bool) {
	for id, tower := range s.ecs.Towers {
		def, ok := defs.TowerDefs[tower.DefID]
		if !ok {
			continue
		}
		switch def.Behavior {
		case defs.BehaviorPendulum:
			s.updatePendulum(id, tower, &def, deltaTime, combatActive)
		case defs.BehaviorOrbital:
			s.updateOrbital(id, tower, &def, deltaTime, combatActive)
		case defs.BehaviorBeam:
			s.updateBeamSpinner(id, tower, &def, deltaTime, combatActive)
		case defs.BehaviorRings:
			s.updateRings(id, tower, &def, deltaTime, combatActive)
		}
	}
}

func (s *CombatSystem) updatePendulum(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, deltaTime float64, combatActive bool) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	p, ok := s.ecs.Pendulums[id]
	if !ok {
		l1, l2 := 60.0, 48.0
		if params := def.Params; params != nil {
			if params.ArmLength > 0 {
				l1 = params.ArmLength
			}
			if params.ArmLength2 > 0 {
				l2 = params.ArmLength2
			}
		}
		p = &component.Pendulum{
			Theta1: 0.35, Omega1: 1.4,
			Theta2: -0.2,
			L1:     l1, L2: l2,
			HitCooldown: map[types.EntityID]float64{},
		}
		s.ecs.Pendulums[id] = p
	}

	drive := 1.5
	if params := def.Params; params != nil && params.PendulumDrive > 0 {
		drive = params.PendulumDrive
	}

	// Подкачка по направлению качания держит амплитуду против трения,
	// второе плечо волочится за первым через вязкую связь.
	alpha1 := -pendulumGravity*math.Sin(p.Theta1) - pendulumDamping*p.Omega1 + drive*math.Copysign(1, p.Omega1)
	alpha2 := -pendulumGravity*math.Sin(p.Theta2) - pendulumDamping*p.Omega2 + pendulumCouple*(p.Omega1-p.Omega2)
	p.Omega1 += alpha1 * deltaTime
	p.Omega2 += alpha2 * deltaTime
	p.Theta1 += p.Omega1 * deltaTime
	p.Theta2 += p.Omega2 * deltaTime

	for enemyID, left := range p.HitCooldown {
		left -= deltaTime
		if left <= 0 {
			delete(p.HitCooldown, enemyID)
			continue
		}
		p.HitCooldown[enemyID] = left
	}

	if !combatActive {
		return
	}

	elbow, tip := pendulumArms(pos.Pos, p)

	for enemyID := range s.ecs.Enemies {
		if _, onCooldown := p.HitCooldown[enemyID]; onCooldown {
			continue
		}
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if geom.DistancePointToSegment(enemyPos.Pos, elbow, tip) <= config.EnemyRadius+armHalfWidth {
			if s.damage.Apply(enemyID, tower.Damage, id, tower.DefID) {
				delete(p.HitCooldown, enemyID)
				continue
			}
			p.HitCooldown[enemyID] = contactCooldown
		}
	}
}

func (s *CombatSystem) updateOrbital(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, deltaTime float64, combatActive bool) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	orb, ok := s.ecs.Orbitals[id]
	if !ok {
		orb = &component.Orbital{
			Angles: [3]float64{0, 2.1, 4.2},
			Speeds: [3]float64{1.9, 2.6, 3.4},
			Radius: 46,
		}
		if params := def.Params; params != nil {
			if params.OrbitRadius > 0 {
				orb.Radius = params.OrbitRadius
			}
			for i := 0; i < 3 && i < len(params.OrbitSpeeds); i++ {
				orb.Speeds[i] = params.OrbitSpeeds[i]
			}
		}
		s.ecs.Orbitals[id] = orb
	}

	for i := range orb.Angles {
		orb.Angles[i] = geom.NormalizeAngle(orb.Angles[i] + orb.Speeds[i]*deltaTime)
	}
	if orb.AlignCooldown > 0 {
		orb.AlignCooldown -= deltaTime
	}

	if !combatActive || orb.AlignCooldown > 0 {
		return
	}

	tolerance := 0.12
	if params := def.Params; params != nil && params.AlignTolerance > 0 {
		tolerance = params.AlignTolerance
	}

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(geom.NormalizeAngle(orb.Angles[i]-orb.Angles[j])) > tolerance {
				continue
			}
			mid := orb.Angles[i] + geom.NormalizeAngle(orb.Angles[j]-orb.Angles[i])/2
			s.fireAlignmentLaser(id, tower, pos.Pos, mid)
			orb.AlignCooldown = laserCooldown
			return
		}
	}
}

// fireAlignmentLaser бьёт лучом от башни вдоль направления выравнивания
// на всю дальность, задевая каждого врага на линии.
func (s *CombatSystem) fireAlignmentLaser(id types.EntityID, tower *component.Tower, from geom.Vec2, angle float64) {
	to := from.Add(geom.FromAngle(angle, tower.Range))

	for enemyID := range s.ecs.Enemies {
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if geom.DistancePointToSegment(enemyPos.Pos, from, to) <= config.EnemyRadius+laserHalfWidth {
			s.damage.Apply(enemyID, tower.Damage, id, tower.DefID)
		}
	}

	bid := s.ecs.NewEntity()
	s.ecs.Projectiles[bid] = &component.Projectile{
		Kind:      component.ProjEtaLaser,
		Source:    id,
		SourceDef: tower.DefID,
		MaxAge:    0.15,
	}
	s.ecs.Beams[bid] = &component.Beam{From: from, To: to}
}

func (s *CombatSystem) updateBeamSpinner(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, deltaTime float64, combatActive bool) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	spinner, ok := s.ecs.BeamSpinners[id]
	if !ok {
		spinner = &component.BeamSpinner{RotationSpeed: 1.8, Arc: 0.5}
		if params := def.Params; params != nil {
			if params.RotationSpeed > 0 {
				spinner.RotationSpeed = params.RotationSpeed
			}
			if params.ArcAngle > 0 {
				spinner.Arc = params.ArcAngle
			}
		}
		s.ecs.BeamSpinners[id] = spinner
	}

	spinner.Angle = geom.NormalizeAngle(spinner.Angle + spinner.RotationSpeed*deltaTime)
	if spinner.TickTimer > 0 {
		spinner.TickTimer -= deltaTime
	}

	if !combatActive || spinner.TickTimer > 0 {
		return
	}

	interval := 0.4
	if params := def.Params; params != nil && params.TickInterval > 0 {
		interval = params.TickInterval
	}
	spinner.TickTimer = interval

	// Сектор: враг в радиусе и в пределах половины дуги от текущего угла.
	for enemyID := range s.ecs.Enemies {
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		delta := enemyPos.Pos.Sub(pos.Pos)
		if delta.Len() > tower.Range+config.EnemyRadius {
			continue
		}
		bearing := math.Atan2(delta.Y, delta.X)
		if math.Abs(geom.NormalizeAngle(bearing-spinner.Angle)) <= spinner.Arc/2 {
			s.damage.Apply(enemyID, tower.Damage, id, tower.DefID)
		}
	}
}

func (s *CombatSystem) updateRings(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, deltaTime float64, combatActive bool) {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return
	}

	ring, ok := s.ecs.RingSpinners[id]
	if !ok {
		ring = &component.RingSpinner{HitCooldown: map[types.EntityID]float64{}}
		s.ecs.RingSpinners[id] = ring
	}

	spin := 1.6
	if params := def.Params; params != nil && params.RingSpinSpeed > 0 {
		spin = params.RingSpinSpeed
	}
	orbsPerRing, spacing := ringLayout(def)

	ring.Angle = geom.NormalizeAngle(ring.Angle + spin*deltaTime)

	for enemyID, left := range ring.HitCooldown {
		left -= deltaTime
		if left <= 0 {
			delete(ring.HitCooldown, enemyID)
			continue
		}
		ring.HitCooldown[enemyID] = left
	}

	if !combatActive {
		return
	}

	tiers := tower.RingTier
	if tiers < 1 {
		tiers = 1
	}

	for tier := 1; tier <= tiers; tier++ {
		for k := 0; k < orbsPerRing; k++ {
			orbPos := pos.Pos.Add(ringOrbOffset(ring.Angle, tier, k, orbsPerRing, spacing))
			for enemyID := range s.ecs.Enemies {
				if _, onCooldown := ring.HitCooldown[enemyID]; onCooldown {
					continue
				}
				enemyPos, ok := s.ecs.Positions[enemyID]
				if !ok {
					continue
				}
				if geom.CirclesOverlap(orbPos, ringOrbRadius, enemyPos.Pos, config.EnemyRadius) {
					if s.damage.Apply(enemyID, tower.Damage, id, tower.DefID) {
						delete(ring.HitCooldown, enemyID)
						continue
					}
					ring.HitCooldown[enemyID] = contactCooldown
				}
			}
		}
	}
}

// pendulumArms возвращает точки локтя и кончика плеч маятника. Углы
// отсчитываются от вертикали вниз, как у настоящего маятника.
func pendulumArms(base geom.Vec2, p *component.Pendulum) (elbow, tip geom.Vec2) {
	elbow = base.Add(geom.Vec2{X: math.Sin(p.Theta1), Y: math.Cos(p.Theta1)}.Scale(p.L1))
	tip = elbow.Add(geom.Vec2{X: math.Sin(p.Theta2), Y: math.Cos(p.Theta2)}.Scale(p.L2))
	return elbow, tip
}

// ringLayout читает параметры колец с дефолтами каталога.
func ringLayout(def *defs.TowerDefinition) (orbsPerRing int, spacing float64) {
	orbsPerRing, spacing = 4, 34.0
	if params := def.Params; params != nil {
		if params.OrbsPerRing > 0 {
			orbsPerRing = params.OrbsPerRing
		}
		if params.RingSpacing > 0 {
			spacing = params.RingSpacing
		}
	}
	return orbsPerRing, spacing
}

// ringOrbOffset возвращает смещение сферы k кольца tier от центра башни.
// Соседние кольца крутятся в противофазе.
func ringOrbOffset(angle float64, tier, k, orbsPerRing int, spacing float64) geom.Vec2 {
	dir := 1.0
	if tier%2 == 0 {
		dir = -1
	}
	a := angle*dir + 2*math.Pi*float64(k)/float64(orbsPerRing)
	return geom.FromAngle(a, spacing*float64(tier))
}
