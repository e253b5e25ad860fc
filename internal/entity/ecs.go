// internal/entity/ecs.go
package entity

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/types"
)

// ECS — контейнер всех компонентов, по карте на тип. Системы держат
// указатель на него и обходят нужные карты напрямую.
type ECS struct {
	GameTime float64
	NextID   types.EntityID

	Positions  map[types.EntityID]*component.Position
	Velocities map[types.EntityID]*component.Velocity
	PathFollow map[types.EntityID]*component.PathFollow
	Healths    map[types.EntityID]*component.Health
	Enemies    map[types.EntityID]*component.Enemy
	Towers     map[types.EntityID]*component.Tower
	Thralls    map[types.EntityID]*component.Thrall
	Crystals   map[types.EntityID]*component.Crystal

	SlowContainers map[types.EntityID]*component.SlowContainer
	AmpContainers  map[types.EntityID]*component.AmpContainer
	DamageLedgers  map[types.EntityID]*component.DamageLedger
	Swirls         map[types.EntityID]*component.Swirl

	// Состояния архетипов башен: заполняются лениво при первом тике.
	Pendulums    map[types.EntityID]*component.Pendulum
	Orbitals     map[types.EntityID]*component.Orbital
	BeamSpinners map[types.EntityID]*component.BeamSpinner
	RingSpinners map[types.EntityID]*component.RingSpinner
	MineLayers   map[types.EntityID]*component.MineLayer

	// Снаряды: общая часть плюс карта на паттерн.
	Projectiles    map[types.EntityID]*component.Projectile
	SupplyMotes    map[types.EntityID]*component.SupplyMote
	OmegaWaves     map[types.EntityID]*component.OmegaWave
	Beams          map[types.EntityID]*component.Beam
	IotaPulses     map[types.EntityID]*component.IotaPulse
	GammaStars     map[types.EntityID]*component.GammaStar
	BetaTriangles  map[types.EntityID]*component.BetaTriangle
	EpsilonNeedles map[types.EntityID]*component.EpsilonNeedle

	Wave *component.Wave
}

// NewECS создаёт пустой контейнер. Волна начинается в покое: первый
// StartWave переводит её в спавн.
func NewECS() *ECS {
	return &ECS{
		NextID: 1,

		Positions:  make(map[types.EntityID]*component.Position),
		Velocities: make(map[types.EntityID]*component.Velocity),
		PathFollow: make(map[types.EntityID]*component.PathFollow),
		Healths:    make(map[types.EntityID]*component.Health),
		Enemies:    make(map[types.EntityID]*component.Enemy),
		Towers:     make(map[types.EntityID]*component.Tower),
		Thralls:    make(map[types.EntityID]*component.Thrall),
		Crystals:   make(map[types.EntityID]*component.Crystal),

		SlowContainers: make(map[types.EntityID]*component.SlowContainer),
		AmpContainers:  make(map[types.EntityID]*component.AmpContainer),
		DamageLedgers:  make(map[types.EntityID]*component.DamageLedger),
		Swirls:         make(map[types.EntityID]*component.Swirl),

		Pendulums:    make(map[types.EntityID]*component.Pendulum),
		Orbitals:     make(map[types.EntityID]*component.Orbital),
		BeamSpinners: make(map[types.EntityID]*component.BeamSpinner),
		RingSpinners: make(map[types.EntityID]*component.RingSpinner),
		MineLayers:   make(map[types.EntityID]*component.MineLayer),

		Projectiles:    make(map[types.EntityID]*component.Projectile),
		SupplyMotes:    make(map[types.EntityID]*component.SupplyMote),
		OmegaWaves:     make(map[types.EntityID]*component.OmegaWave),
		Beams:          make(map[types.EntityID]*component.Beam),
		IotaPulses:     make(map[types.EntityID]*component.IotaPulse),
		GammaStars:     make(map[types.EntityID]*component.GammaStar),
		BetaTriangles:  make(map[types.EntityID]*component.BetaTriangle),
		EpsilonNeedles: make(map[types.EntityID]*component.EpsilonNeedle),

		Wave: &component.Wave{
			Phase:        component.WaveIdle,
			HealthFactor: 1,
			RewardFactor: 1,
			SpeedFactor:  1,
		},
	}
}

// NewEntity выделяет следующий идентификатор.
func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity выбрасывает сущность из всех карт компонентов.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.PathFollow, id)
	delete(ecs.Healths, id)
	delete(ecs.Enemies, id)
	delete(ecs.Towers, id)
	delete(ecs.Thralls, id)
	delete(ecs.Crystals, id)
	delete(ecs.SlowContainers, id)
	delete(ecs.AmpContainers, id)
	delete(ecs.DamageLedgers, id)
	delete(ecs.Swirls, id)
	delete(ecs.Pendulums, id)
	delete(ecs.Orbitals, id)
	delete(ecs.BeamSpinners, id)
	delete(ecs.RingSpinners, id)
	delete(ecs.MineLayers, id)
	delete(ecs.Projectiles, id)
	delete(ecs.SupplyMotes, id)
	delete(ecs.OmegaWaves, id)
	delete(ecs.Beams, id)
	delete(ecs.IotaPulses, id)
	delete(ecs.GammaStars, id)
	delete(ecs.BetaTriangles, id)
	delete(ecs.EpsilonNeedles, id)
}
