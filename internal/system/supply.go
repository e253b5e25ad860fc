// internal/system/supply.go
package system

import (
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
)

// updateSupplier — башня с исходящей линией снабжения не стреляет, а
// отправляет получателю сгусток энергии на каждом своём кулдауне.
func (s *CombatSystem) updateSupplier(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, target types.EntityID) {
	if tower.Cooldown > 0 {
		return
	}
	if _, ok := s.ecs.Towers[target]; !ok {
		// Висячую линию чистит сеть снабжения, здесь просто не стреляем.
		return
	}

	payload := config.MotePayloadPerShot
	if params := def.Params; params != nil && params.PayloadFactor > 0 {
		payload *= params.PayloadFactor
	}
	s.launchMote(id, target, payload)
	s.resetCooldown(tower)
}

// launchMote создаёт сгусток, летящий к башне-получателю. Сгусток не
// взаимодействует с врагами, при доставке конвертируется в заряд.
func (s *CombatSystem) launchMote(from, to types.EntityID, payload float64) {
	fromPos, ok := s.ecs.Positions[from]
	if !ok {
		return
	}

	pid := s.ecs.NewEntity()
	s.ecs.Positions[pid] = &component.Position{Pos: fromPos.Pos}
	s.ecs.Projectiles[pid] = &component.Projectile{
		Kind:   component.ProjSupplyMote,
		Source: from,
		Target: to,
		Speed:  config.MoteSpeed,
		Prev:   fromPos.Pos,
		MaxAge: config.ProjectileLifetime,
	}
	s.ecs.SupplyMotes[pid] = &component.SupplyMote{Payload: payload}
}

// fireCollectorVolley — омега обменивает накопленный заряд на залп
// спиральных волн. Без заряда залп не происходит и кулдаун не тратится.
func (s *CombatSystem) fireCollectorVolley(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition) bool {
	from, ok := s.ecs.Positions[id]
	if !ok {
		return false
	}

	waveCount := 3
	chargeCost := 6.0
	angular := 7.0
	radial := 130.0
	if params := def.Params; params != nil {
		if params.WaveCount > 0 {
			waveCount = params.WaveCount
		}
		if params.ChargeCost > 0 {
			chargeCost = params.ChargeCost
		}
		if params.WaveAngular > 0 {
			angular = params.WaveAngular
		}
		if params.WaveRadial > 0 {
			radial = params.WaveRadial
		}
	}

	if tower.Charge < chargeCost {
		return false
	}
	tower.Charge -= chargeCost

	for i := 0; i < waveCount; i++ {
		pid := s.ecs.NewEntity()
		s.ecs.Positions[pid] = &component.Position{Pos: from.Pos}
		s.ecs.Projectiles[pid] = &component.Projectile{
			Kind:      component.ProjOmegaWave,
			Source:    id,
			SourceDef: tower.DefID,
			Damage:    tower.Damage,
			MaxAge:    tower.Range/radial + 0.25,
		}
		s.ecs.OmegaWaves[pid] = &component.OmegaWave{
			Origin:     from.Pos,
			Phase:      2 * math.Pi * float64(i) / float64(waveCount),
			AngularVel: angular,
			RadialVel:  radial,
			Hit:        map[types.EntityID]bool{},
		}
	}
	return true
}
