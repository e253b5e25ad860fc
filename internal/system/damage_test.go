// internal/system/damage_test.go
package system

import (
	"testing"

	"glyph-defense/internal/component"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

func TestDamageApplyKillsAndFillsLedger(t *testing.T) {
	w := newWorld()
	tower := w.placeTower("TOWER_ALPHA", geom.Vec2{X: 400, Y: 400})
	enemy := w.spawnEnemy(geom.Vec2{X: 400, Y: 300}, 10, 0.4)

	killed := w.damage.Apply(enemy, 12, tower, "TOWER_ALPHA")
	if !killed {
		t.Fatal("Apply() = false, want kill")
	}
	if got := w.health(enemy); got != 0 {
		t.Errorf("health after lethal hit = %f, want 0", got)
	}

	ledger, ok := w.ecs.DamageLedgers[enemy]
	if !ok {
		t.Fatal("damage ledger was not created")
	}
	if got := ledger.ByTowerDef["TOWER_ALPHA"]; got != 12 {
		t.Errorf("ledger entry = %f, want 12", got)
	}
	if w.ecs.Enemies[enemy].LastHitBy != tower {
		t.Errorf("LastHitBy = %d, want %d", w.ecs.Enemies[enemy].LastHitBy, tower)
	}
	if len(w.attacksOn(enemy)) != 1 {
		t.Errorf("recorded attacks = %d, want 1", len(w.attacksOn(enemy)))
	}
}

func TestDamageApplySilentNoOps(t *testing.T) {
	w := newWorld()
	tower := w.placeTower("TOWER_ALPHA", geom.Vec2{X: 400, Y: 400})
	dead := w.spawnEnemy(geom.Vec2{X: 300, Y: 300}, 50, 0.3)
	w.ecs.Healths[dead].Value = 0

	cases := map[string]types.EntityID{
		"missing target": types.EntityID(9999),
		"dead target":    dead,
	}
	for name, target := range cases {
		if w.damage.Apply(target, 10, tower, "TOWER_ALPHA") {
			t.Errorf("%s: Apply() = true, want false", name)
		}
	}
	if n := len(w.recorder.Attacks()); n != 0 {
		t.Errorf("attacks recorded on no-ops = %d, want 0", n)
	}
}

func TestDamageAmplifiersStackAdditively(t *testing.T) {
	w := newWorld()
	tower := w.placeTower("TOWER_ALPHA", geom.Vec2{X: 400, Y: 400})
	enemy := w.spawnEnemy(geom.Vec2{X: 400, Y: 300}, 100, 0.4)

	w.ecs.AmpContainers[enemy] = &component.AmpContainer{
		Sources: map[types.EntityID]component.AmpInstance{
			101: {Strength: 0.2, Remaining: 5},
			102: {Strength: 0.3, Remaining: 5},
		},
	}

	w.damage.Apply(enemy, 10, tower, "TOWER_ALPHA")
	if got := w.health(enemy); !almostEqual(got, 85) {
		t.Errorf("health after amplified hit = %f, want 85 (10 * 1.5 taken)", got)
	}
}

func TestDamageLedgerAccumulatesPerDef(t *testing.T) {
	w := newWorld()
	alpha := w.placeTower("TOWER_ALPHA", geom.Vec2{X: 400, Y: 400})
	rho := w.placeTower("TOWER_RHO", geom.Vec2{X: 450, Y: 400})
	enemy := w.spawnEnemy(geom.Vec2{X: 400, Y: 300}, 500, 0.4)

	w.damage.Apply(enemy, 10, alpha, "TOWER_ALPHA")
	w.damage.Apply(enemy, 15, alpha, "TOWER_ALPHA")
	w.damage.Apply(enemy, 20, rho, "TOWER_RHO")

	ledger := w.ecs.DamageLedgers[enemy]
	if got := ledger.ByTowerDef["TOWER_ALPHA"]; got != 25 {
		t.Errorf("alpha ledger = %f, want 25", got)
	}
	if got := ledger.ByTowerDef["TOWER_RHO"]; got != 20 {
		t.Errorf("rho ledger = %f, want 20", got)
	}
	if w.ecs.Enemies[enemy].LastHitDef != "TOWER_RHO" {
		t.Errorf("LastHitDef = %q, want TOWER_RHO", w.ecs.Enemies[enemy].LastHitDef)
	}
}

func TestDamageAddsImpactSwirl(t *testing.T) {
	w := newWorld()
	tower := w.placeTower("TOWER_ALPHA", geom.Vec2{X: 400, Y: 400})
	enemy := w.spawnEnemy(geom.Vec2{X: 400, Y: 300}, 100, 0.4)

	w.damage.Apply(enemy, 10, tower, "TOWER_ALPHA")

	swirl, ok := w.ecs.Swirls[enemy]
	if !ok {
		t.Fatal("no swirl after hit")
	}
	// Источник ниже цели, нормаль должна смотреть вверх.
	if swirl.Vec.Y >= 0 {
		t.Errorf("swirl.Vec.Y = %f, want negative (away from source)", swirl.Vec.Y)
	}
}
