// internal/system/damage.go
package system

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/types"
)

// Damage — единая воронка урона. Любой боевой эффект, от снаряда до
// плеча маятника, наносит урон только через Apply: здесь учитываются
// усилители, леджер, рекордер и вспышка попадания.
type Damage struct {
	ecs      *entity.ECS
	recorder stats.Recorder
}

func NewDamage(ecs *entity.ECS, recorder stats.Recorder) *Damage {
	return &Damage{ecs: ecs, recorder: recorder}
}

// AddActiveTime копит боевое время башни в накопителях рекордера.
func (d *Damage) AddActiveTime(towerDef string, tower types.EntityID, dt float64) {
	d.recorder.RecordActiveTime(towerDef, tower, dt)
}

// Apply наносит base урона цели от башни source типа sourceDef.
// Возвращает true, если цель этим ударом добита. Урон по мёртвой или
// отсутствующей цели — тихий no-op.
func (d *Damage) Apply(target types.EntityID, base float64, source types.EntityID, sourceDef string) bool {
	health, ok := d.ecs.Healths[target]
	if !ok || health.Value <= 0 || base <= 0 {
		return false
	}

	amount := base
	if amp, ok := d.ecs.AmpContainers[target]; ok {
		amount *= amp.Multiplier()
	}

	health.Value -= amount
	if health.Value < 0 {
		health.Value = 0
	}

	if enemy, isEnemy := d.ecs.Enemies[target]; isEnemy {
		ledger, ok := d.ecs.DamageLedgers[target]
		if !ok {
			ledger = &component.DamageLedger{ByTowerDef: make(map[string]float64)}
			d.ecs.DamageLedgers[target] = ledger
		}
		ledger.ByTowerDef[sourceDef] += amount
		enemy.LastHitBy = source
		enemy.LastHitDef = sourceDef
	}

	d.addSwirl(target, source, amount, health.Value)
	d.recorder.RecordDamage(d.ecs.GameTime, sourceDef, source, target, amount)

	return health.Value <= 0
}

// addSwirl копит вектор вспышки на цели: нормаль от источника к цели с
// силой от доли снятого здоровья, зажатой в конфигурационные пределы.
func (d *Damage) addSwirl(target, source types.EntityID, amount, remaining float64) {
	targetPos, ok := d.ecs.Positions[target]
	if !ok {
		return
	}
	sourcePos, ok := d.ecs.Positions[source]
	if !ok {
		return
	}
	dir := targetPos.Pos.Sub(sourcePos.Pos).Normalize()
	if dir.LenSq() == 0 {
		return
	}

	power := amount / max(remaining, 1)
	if power < config.ImpactPowerMin {
		power = config.ImpactPowerMin
	} else if power > config.ImpactPowerMax {
		power = config.ImpactPowerMax
	}

	swirl, ok := d.ecs.Swirls[target]
	if !ok {
		swirl = &component.Swirl{}
		d.ecs.Swirls[target] = swirl
	}
	swirl.Vec = swirl.Vec.Add(dir.Scale(power))
	if l := swirl.Vec.Len(); l > config.ImpactPowerMax {
		swirl.Vec = swirl.Vec.Scale(config.ImpactPowerMax / l)
	}
}
