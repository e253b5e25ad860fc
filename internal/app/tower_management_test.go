// internal/app/tower_management_test.go
package app

import (
	"testing"

	"glyph-defense/internal/component"
	"glyph-defense/pkg/geom"
)

func TestPlacementGeometryReasons(t *testing.T) {
	g := newTestGame(t, Options{})

	cases := []struct {
		name string
		pos  geom.Vec2
		want string
	}{
		{"buildable spot", geom.Vec2{X: 640, Y: 360}, ""},
		{"hugging the route", geom.Vec2{X: 640, Y: 310}, "too close to the route"},
		{"beyond build radius", geom.Vec2{X: 640, Y: 780}, "outside the build area"},
		{"off the field", geom.Vec2{X: -5, Y: 400}, "outside the field"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.PlacementReason(tc.pos); got != tc.want {
				t.Errorf("PlacementReason(%v) = %q, want %q", tc.pos, got, tc.want)
			}
		})
	}

	mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	if got := g.PlacementReason(geom.Vec2{X: 650, Y: 360}); got != "too close to another tower" {
		t.Errorf("PlacementReason next to tower = %q, want occupied", got)
	}
	if _, ok, reason := g.PlaceTower("TOWER_ALPHA", geom.Vec2{X: 650, Y: 360}); ok || reason != "too close to another tower" {
		t.Errorf("PlaceTower next to tower = (%v, %q)", ok, reason)
	}
}

func TestPlaceTowerSpendsEnergyAndTracksInvestment(t *testing.T) {
	g := newTestGame(t, Options{})

	chi := mustPlace(t, g, "TOWER_CHI", geom.Vec2{X: 640, Y: 360})
	if !almostEqual(g.Energy(), 100) {
		t.Fatalf("energy after chi = %v, want 100", g.Energy())
	}
	if got := g.ECS.Towers[chi].Priority; got != component.PriorityStrongest {
		t.Errorf("chi priority = %q, want catalog default strongest", got)
	}

	alpha := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 700, Y: 360})
	tower := g.ECS.Towers[alpha]
	if !almostEqual(g.Energy(), 75) {
		t.Errorf("energy after alpha = %v, want 75", g.Energy())
	}
	if tower.Priority != component.PriorityFirst {
		t.Errorf("alpha priority = %q, want first", tower.Priority)
	}
	if len(tower.Invested) != 1 || !almostEqual(tower.Invested[0], 25) {
		t.Errorf("alpha invested = %v, want [25]", tower.Invested)
	}

	// На фи не хватает: 90 > 75. Отказ не трогает ни энергию, ни поле.
	if _, ok, reason := g.PlaceTower("TOWER_PHI", geom.Vec2{X: 760, Y: 360}); ok || reason != "insufficient energy" {
		t.Fatalf("broke placement = (%v, %q)", ok, reason)
	}
	if !almostEqual(g.Energy(), 75) || len(g.ECS.Towers) != 2 {
		t.Errorf("refused placement changed state: energy %v, towers %d", g.Energy(), len(g.ECS.Towers))
	}

	g.energy = 200
	phi := mustPlace(t, g, "TOWER_PHI", geom.Vec2{X: 760, Y: 360})
	if g.ECS.Towers[phi].RingTier != 1 {
		t.Errorf("fresh ring tower RingTier = %d, want 1", g.ECS.Towers[phi].RingTier)
	}
}

func TestPlaceTowerRefusesUnknownAndPrestige(t *testing.T) {
	g := newTestGame(t, Options{})

	if _, ok, reason := g.PlaceTower("TOWER_NONESUCH", geom.Vec2{X: 640, Y: 360}); ok || reason != "unknown tower type" {
		t.Errorf("unknown def = (%v, %q)", ok, reason)
	}
	if _, ok, reason := g.PlaceTower("TOWER_PHI_PRIME", geom.Vec2{X: 640, Y: 360}); ok || reason != "prestige tower cannot be built directly" {
		t.Errorf("prestige def = (%v, %q)", ok, reason)
	}
	if len(g.ECS.Towers) != 0 || !almostEqual(g.Energy(), 250) {
		t.Errorf("refusals left traces: towers %d, energy %v", len(g.ECS.Towers), g.Energy())
	}
}

func TestSellTowerRefundsEverythingInvested(t *testing.T) {
	g := newTestGame(t, Options{})

	id := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	g.energy = 500
	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("upgrade: %s", reason)
	}

	refund, ok, _ := g.SellTower(id)
	if !ok || !almostEqual(refund, 85) {
		t.Fatalf("sell refund = (%v, %v), want 85", refund, ok)
	}
	if !almostEqual(g.Energy(), 525) {
		t.Errorf("energy after sell = %v, want 525", g.Energy())
	}
	if len(g.ECS.Towers) != 0 || len(g.ECS.Positions) != 0 {
		t.Errorf("sold tower left components behind")
	}

	if _, ok, reason := g.SellTower(id); ok || reason != "no such tower" {
		t.Errorf("double sell = (%v, %q)", ok, reason)
	}
}

func TestSellTowerDropsSupplyLines(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 500

	sigma := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 400, Y: 360})
	omega := mustPlace(t, g, "TOWER_OMEGA", geom.Vec2{X: 600, Y: 360})
	if ok, reason := g.ConnectTowers(sigma, omega); !ok {
		t.Fatalf("connect: %s", reason)
	}

	// Продажа получателя рвёт и входящие линии.
	if _, ok, _ := g.SellTower(omega); !ok {
		t.Fatal("sell omega refused")
	}
	if links := g.Network().Links(); len(links) != 0 {
		t.Errorf("links after selling receiver = %v, want none", links)
	}
}

func TestUpgradeTowerWalksTierChain(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	id := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[id]
	tower.Cooldown = 3

	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("alpha→nu: %s", reason)
	}
	if tower.DefID != "TOWER_NU" || !almostEqual(tower.Damage, 20) || !almostEqual(tower.Range, 160) {
		t.Errorf("after first upgrade: %s dmg %v range %v", tower.DefID, tower.Damage, tower.Range)
	}
	if tower.Cooldown != 0 {
		t.Errorf("cooldown survived rekey: %v", tower.Cooldown)
	}
	if tower.Priority != component.PriorityFirst {
		t.Errorf("priority lost on rekey: %q", tower.Priority)
	}

	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("nu→chi: %s", reason)
	}
	if tower.DefID != "TOWER_CHI" || !almostEqual(tower.Damage, 85) {
		t.Errorf("after second upgrade: %s dmg %v", tower.DefID, tower.Damage)
	}
	if !almostEqual(g.Energy(), 1000-25-60-150) {
		t.Errorf("energy after chain = %v, want 765", g.Energy())
	}
	want := []float64{25, 60, 150}
	if len(tower.Invested) != len(want) {
		t.Fatalf("invested = %v, want %v", tower.Invested, want)
	}
	for i := range want {
		if !almostEqual(tower.Invested[i], want[i]) {
			t.Fatalf("invested = %v, want %v", tower.Invested, want)
		}
	}

	if ok, reason := g.UpgradeTower(id); ok || reason != "no further tier" {
		t.Errorf("chi upgrade = (%v, %q)", ok, reason)
	}
	if !almostEqual(g.Energy(), 765) {
		t.Errorf("refused upgrade touched energy: %v", g.Energy())
	}
}

func TestUpgradeRingsFillBeforePrestige(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	id := mustPlace(t, g, "TOWER_PHI", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[id]

	for want := 2; want <= 3; want++ {
		if ok, reason := g.UpgradeTower(id); !ok {
			t.Fatalf("ring %d: %s", want, reason)
		}
		if tower.RingTier != want || tower.DefID != "TOWER_PHI" {
			t.Fatalf("after ring upgrade: tier %d def %s", tower.RingTier, tower.DefID)
		}
	}
	if !almostEqual(g.Energy(), 1000-3*90) {
		t.Errorf("energy after rings = %v, want 730", g.Energy())
	}

	// Кольца добраны — следующий шаг уводит в престиж за ноль.
	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("phi→prestige: %s", reason)
	}
	if tower.DefID != "TOWER_PHI_PRIME" || tower.RingTier != 3 {
		t.Errorf("after prestige: def %s tier %d", tower.DefID, tower.RingTier)
	}
	if !almostEqual(g.Energy(), 730) {
		t.Errorf("prestige cost energy: %v", g.Energy())
	}

	// У престижа потолок колец выше, апгрейды снова добирают кольца.
	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("prestige ring: %s", reason)
	}
	if tower.RingTier != 4 {
		t.Errorf("prestige ring tier = %d, want 4", tower.RingTier)
	}
	if ok, reason := g.UpgradeTower(id); ok || reason != "no further tier" {
		t.Errorf("maxed prestige upgrade = (%v, %q)", ok, reason)
	}
}

func TestDemoteTowerRollsBackLastStep(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	id := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[id]
	g.UpgradeTower(id)
	g.UpgradeTower(id)

	if ok, reason := g.DemoteTower(id); !ok {
		t.Fatalf("chi→nu: %s", reason)
	}
	if tower.DefID != "TOWER_NU" || !almostEqual(g.Energy(), 915) {
		t.Errorf("after demote: %s energy %v", tower.DefID, g.Energy())
	}
	if ok, reason := g.DemoteTower(id); !ok {
		t.Fatalf("nu→alpha: %s", reason)
	}
	if tower.DefID != "TOWER_ALPHA" || len(tower.Invested) != 1 {
		t.Errorf("after second demote: %s invested %v", tower.DefID, tower.Invested)
	}
	if ok, reason := g.DemoteTower(id); ok || reason != "already at base tier" {
		t.Errorf("base demote = (%v, %q)", ok, reason)
	}
}

func TestDemoteRingsComeOffBeforeTier(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	id := mustPlace(t, g, "TOWER_PHI", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[id]
	g.UpgradeTower(id)

	before := g.Energy()
	if ok, reason := g.DemoteTower(id); !ok {
		t.Fatalf("ring demote: %s", reason)
	}
	if tower.RingTier != 1 || tower.DefID != "TOWER_PHI" {
		t.Errorf("after ring demote: tier %d def %s", tower.RingTier, tower.DefID)
	}
	if !almostEqual(g.Energy(), before+90) {
		t.Errorf("ring demote refund: %v, want %v", g.Energy(), before+90)
	}
	if ok, reason := g.DemoteTower(id); ok || reason != "already at base tier" {
		t.Errorf("single-ring demote = (%v, %q)", ok, reason)
	}
}

func TestRekeyDropsStaleArchetypeState(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	id := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 640, Y: 360})
	g.ECS.Pendulums[id] = &component.Pendulum{}
	g.ECS.Orbitals[id] = &component.Orbital{}
	g.ECS.BeamSpinners[id] = &component.BeamSpinner{}
	g.ECS.RingSpinners[id] = &component.RingSpinner{}
	g.ECS.MineLayers[id] = &component.MineLayer{}

	if ok, reason := g.UpgradeTower(id); !ok {
		t.Fatalf("sigma→tau: %s", reason)
	}

	if _, ok := g.ECS.Pendulums[id]; ok {
		t.Error("pendulum state survived rekey")
	}
	if _, ok := g.ECS.Orbitals[id]; ok {
		t.Error("orbital state survived rekey")
	}
	if _, ok := g.ECS.BeamSpinners[id]; ok {
		t.Error("beam spinner state survived rekey")
	}
	if _, ok := g.ECS.RingSpinners[id]; ok {
		t.Error("ring spinner state survived rekey")
	}
	if _, ok := g.ECS.MineLayers[id]; ok {
		t.Error("mine layer state survived rekey")
	}
}

func TestConnectTowersValidations(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	a := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 200, Y: 360})
	b := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 400, Y: 360})
	c := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 600, Y: 360})
	far := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 900, Y: 360})

	if ok, reason := g.ConnectTowers(a, a); ok || reason != "tower cannot feed itself" {
		t.Errorf("self link = (%v, %q)", ok, reason)
	}
	if ok, reason := g.ConnectTowers(a, 9999); ok || reason != "no such receiving tower" {
		t.Errorf("missing receiver = (%v, %q)", ok, reason)
	}
	if ok, reason := g.ConnectTowers(9999, a); ok || reason != "no such source tower" {
		t.Errorf("missing source = (%v, %q)", ok, reason)
	}
	if ok, reason := g.ConnectTowers(a, far); ok || reason != "towers too far apart" {
		t.Errorf("long link = (%v, %q)", ok, reason)
	}

	if ok, reason := g.ConnectTowers(a, b); !ok {
		t.Fatalf("a→b: %s", reason)
	}
	g.ECS.Towers[b].IdleTime = 5
	if ok, reason := g.ConnectTowers(b, c); !ok {
		t.Fatalf("b→c: %s", reason)
	}
	if g.ECS.Towers[b].IdleTime != 0 {
		t.Errorf("idle timer kept after linking: %v", g.ECS.Towers[b].IdleTime)
	}

	if ok, reason := g.ConnectTowers(c, a); ok || reason != "link would close a cycle" {
		t.Errorf("cycle link = (%v, %q)", ok, reason)
	}

	// Разрыв середины цепи открывает прежде запретное направление.
	g.DisconnectTower(b)
	if got := g.Network().Target(b); got != 0 {
		t.Fatalf("b still feeds %d after disconnect", got)
	}
	if ok, reason := g.ConnectTowers(c, b); !ok {
		t.Errorf("c→b after disconnect: %s", reason)
	}
}

func TestManualOrdersValidateTheirTargets(t *testing.T) {
	g := newTestGame(t, Options{})

	id := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[id]

	if g.SetTargetPriority(id, component.TargetPriority("weirdest")) {
		t.Error("unknown priority accepted")
	}
	if tower.Priority != component.PriorityFirst {
		t.Errorf("priority changed by refused call: %q", tower.Priority)
	}
	if !g.SetTargetPriority(id, component.PriorityStrongest) {
		t.Error("strongest priority refused")
	}

	if g.SetManualTarget(id, 9999) {
		t.Error("manual target accepted a ghost")
	}
	enemy := spawnEnemy(t, g, "ENEMY_MOTE", 0.5, 40)
	if !g.SetManualTarget(id, enemy) {
		t.Error("manual target refused a live enemy")
	}
	if !g.SetManualTarget(id, 0) || tower.ManualTarget != 0 {
		t.Error("zero did not clear the manual target")
	}

	crystal := g.SpawnCrystal(geom.Vec2{X: 700, Y: 360})
	if g.FocusCrystalTower(id, enemy) {
		t.Error("crystal focus accepted an enemy")
	}
	if !g.FocusCrystalTower(id, crystal) || tower.FocusCrystal != crystal {
		t.Error("crystal focus refused a crystal")
	}
}
