// internal/app/game_test.go
package app

import (
	"testing"

	"glyph-defense/internal/defs"
	"glyph-defense/internal/event"
	"glyph-defense/internal/stats"
	"glyph-defense/pkg/geom"
)

func TestUpdateClampsFrameDelta(t *testing.T) {
	g := newTestGame(t, Options{})

	g.Update(10)
	if !almostEqual(g.GameTime(), 0.12) {
		t.Errorf("game time after huge delta = %v, want clamp 0.12", g.GameTime())
	}
	g.Update(0)
	g.Update(-1)
	if !almostEqual(g.GameTime(), 0.12) {
		t.Errorf("zero and negative deltas advanced time: %v", g.GameTime())
	}
}

func TestSpeedLevelScalesTimeAndClamps(t *testing.T) {
	g := newTestGame(t, Options{})

	g.SetSpeedLevel(7)
	if g.SpeedLevel() != 2 {
		t.Fatalf("speed level = %d, want clamp to 2", g.SpeedLevel())
	}
	g.Update(0.1)
	if !almostEqual(g.GameTime(), 0.4) {
		t.Errorf("game time at x4 = %v, want 0.4", g.GameTime())
	}

	g.SetSpeedLevel(-3)
	if g.SpeedLevel() != 0 {
		t.Fatalf("speed level = %d, want clamp to 0", g.SpeedLevel())
	}
	g.Update(0.1)
	if !almostEqual(g.GameTime(), 0.5) {
		t.Errorf("game time back at x1 = %v, want 0.5", g.GameTime())
	}
}

func TestPauseFreezesCombatButNotClock(t *testing.T) {
	g := newTestGame(t, Options{})
	id := spawnEnemy(t, g, "ENEMY_MOTE", 0.5, 40)

	g.SetCombatActive(false)
	g.Update(0.1)
	if got := g.ECS.PathFollow[id].Progress; !almostEqual(got, 0.5) {
		t.Errorf("enemy moved while paused: %v", got)
	}
	if g.GameTime() <= 0 {
		t.Error("clock frozen while paused")
	}

	g.SetCombatActive(true)
	g.Update(0.1)
	if got := g.ECS.PathFollow[id].Progress; got <= 0.5 {
		t.Errorf("enemy stuck after unpause: %v", got)
	}
}

func TestBreachSubtractsRemainderMinusDefense(t *testing.T) {
	cases := []struct {
		name      string
		enemy     string
		health    float64
		wantLives int
	}{
		{"plain remainder", "ENEMY_MOTE", 10, 10},
		{"defense absorbs part", "ENEMY_TANK", 10, 12},
		{"never below one", "ENEMY_TANK", 0.5, 19},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := stats.NewMemoryRecorder()
			g := newTestGame(t, Options{Recorder: rec})
			spawnEnemy(t, g, tc.enemy, 0.999, tc.health)

			for i := 0; i < 4; i++ {
				g.Update(0.1)
			}

			if g.Lives() != tc.wantLives {
				t.Errorf("lives = %d, want %d", g.Lives(), tc.wantLives)
			}
			if len(g.ECS.Enemies) != 0 {
				t.Error("breached enemy still on the field")
			}
			hist := rec.History()
			if len(hist) != 1 || !hist[0].Breached || hist[0].DefID != tc.enemy {
				t.Errorf("history = %+v, want one breached %s", hist, tc.enemy)
			}
		})
	}
}

func TestDefeatLocksTheGame(t *testing.T) {
	g := newTestGame(t, Options{})

	var defeats int
	g.EventDispatcher.Subscribe(event.GameDefeat, event.ListenerFunc(func(event.Event) {
		defeats++
	}))

	// Полный прорыв: 40 здоровья против 20 жизней.
	spawnEnemy(t, g, "ENEMY_MOTE", 0.999, 40)
	for i := 0; i < 4; i++ {
		g.Update(0.1)
	}

	if !g.Defeated() || g.Lives() != 0 {
		t.Fatalf("defeated=%v lives=%d, want true/0", g.Defeated(), g.Lives())
	}
	if g.CombatActive() {
		t.Error("combat still active after defeat")
	}
	if defeats != 1 {
		t.Errorf("defeat events = %d, want 1", defeats)
	}

	if _, ok := g.StartWave(); ok {
		t.Error("wave started after defeat")
	}
	g.SetCombatActive(true)
	if g.CombatActive() {
		t.Error("combat reactivated after defeat")
	}
}

func TestVictoryAfterFinalWaveCleared(t *testing.T) {
	installWaves(t, []defs.WaveDefinition{
		{Groups: []defs.EnemyGroup{{EnemyID: "ENEMY_MOTE", Count: 1, Interval: 0.1}}},
	})
	g := newTestGame(t, Options{})

	var victories int
	g.EventDispatcher.Subscribe(event.GameVictory, event.ListenerFunc(func(event.Event) {
		victories++
	}))

	number, ok := g.StartWave()
	if !ok || number != 1 {
		t.Fatalf("StartWave = (%d, %v)", number, ok)
	}
	if _, again := g.StartWave(); again {
		t.Error("second StartWave accepted mid-wave")
	}

	g.Update(0.1)
	id := anyEnemy(g)
	if id == 0 {
		t.Fatal("wave spawned nothing")
	}
	g.ECS.Healths[id].Value = 0
	g.Update(0.01)
	g.Update(0.01)

	if !g.Victorious() {
		t.Fatal("last wave cleared, no victory")
	}
	if victories != 1 {
		t.Errorf("victory events = %d, want 1", victories)
	}
	if g.WaveInProgress() {
		t.Error("wave still marked in progress")
	}
	if !almostEqual(g.Energy(), 254) {
		t.Errorf("energy = %v, want 250 + 4 reward", g.Energy())
	}
	if _, ok := g.StartWave(); ok {
		t.Error("wave started after victory")
	}
}

func TestNonEndlessStopsAtTableEnd(t *testing.T) {
	g := newTestGame(t, Options{})
	g.nextWaveIndex = len(defs.Waves)

	if _, ok := g.StartWave(); ok {
		t.Fatal("non-endless game rolled past the wave table")
	}
	if g.Cycle() != 0 || g.HasCheckpoint() {
		t.Errorf("refused start changed state: cycle %d checkpoint %v", g.Cycle(), g.HasCheckpoint())
	}
}

func TestSettlePaysRewardAndFeedsCollectors(t *testing.T) {
	rec := stats.NewMemoryRecorder()
	g := newTestGame(t, Options{Recorder: rec})

	omega := mustPlace(t, g, "TOWER_OMEGA", geom.Vec2{X: 640, Y: 360})
	id := spawnEnemy(t, g, "ENEMY_MOTE", 0.5, 40)

	var kills []event.KillData
	g.EventDispatcher.Subscribe(event.EnemyKilled, event.ListenerFunc(func(e event.Event) {
		if data, ok := e.Data.(event.KillData); ok {
			kills = append(kills, data)
		}
	}))

	g.ECS.Healths[id].Value = 0
	g.Update(0.01)

	if !almostEqual(g.Energy(), 250-110+4) {
		t.Errorf("energy = %v, want reward added", g.Energy())
	}
	if got := g.ECS.Towers[omega].Charge; !almostEqual(got, 1) {
		t.Errorf("collector charge = %v, want mote factor 1", got)
	}
	if len(kills) != 1 || kills[0].ID != id || !almostEqual(kills[0].Reward, 4) {
		t.Errorf("kill events = %+v", kills)
	}
	if len(g.ECS.Enemies) != 0 {
		t.Error("settled enemy still present")
	}
	if hist := rec.History(); len(hist) != 1 || hist[0].Breached {
		t.Errorf("history = %+v, want one clean kill", hist)
	}
}

func TestEnergyNeverExceedsCap(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 9998

	id := spawnEnemy(t, g, "ENEMY_SIGIL", 0.5, 400) // награда 20
	g.ECS.Healths[id].Value = 0
	g.Update(0.01)

	if !almostEqual(g.Energy(), 9999) {
		t.Errorf("energy = %v, want cap 9999", g.Energy())
	}
}

func TestXiKillsRaiseThralls(t *testing.T) {
	g := newTestGame(t, Options{})

	// Гарантированное обращение вместо каталожных 20%.
	def := defs.TowerDefs["TOWER_XI"]
	params := *def.Params
	params.ThrallChance = 1
	def.Params = &params
	defs.TowerDefs["TOWER_XI"] = def

	xi := mustPlace(t, g, "TOWER_XI", geom.Vec2{X: 640, Y: 360})

	id := spawnEnemy(t, g, "ENEMY_MOTE", 0.5, 40)
	enemy := g.ECS.Enemies[id]
	enemy.LastHitBy = xi
	enemy.LastHitDef = "TOWER_XI"
	g.ECS.Healths[id].Value = 0
	g.Update(0.01)

	if len(g.ECS.Thralls) != 1 {
		t.Fatalf("thralls = %d, want 1", len(g.ECS.Thralls))
	}
	for tid, thrall := range g.ECS.Thralls {
		killer := g.ECS.Towers[xi]
		if !almostEqual(thrall.Damage, killer.Damage) || !almostEqual(thrall.Range, killer.Range) {
			t.Errorf("thrall stats %+v, want inherited from xi", thrall)
		}
		if !almostEqual(thrall.Remaining, 8) {
			t.Errorf("thrall duration = %v, want 8", thrall.Remaining)
		}
		if thrall.Source != xi || thrall.SourceDef != "TOWER_XI" {
			t.Errorf("thrall attribution = %d/%s", thrall.Source, thrall.SourceDef)
		}
		pos := g.ECS.Positions[tid]
		if pos == nil || !almostEqual(pos.Pos.Y, 300) {
			t.Errorf("thrall not at death position: %+v", pos)
		}
	}

	// Боссы обращению не поддаются.
	boss := spawnEnemy(t, g, "BOSS_GLYPH", 0.5, 2500)
	g.ECS.Enemies[boss].LastHitBy = xi
	g.ECS.Enemies[boss].LastHitDef = "TOWER_XI"
	g.ECS.Healths[boss].Value = 0
	g.Update(0.01)

	if len(g.ECS.Thralls) != 1 {
		t.Errorf("boss kill raised a thrall")
	}
}

func TestAuraMultipliesNeighborsAndReverts(t *testing.T) {
	g := newTestGame(t, Options{})
	g.energy = 1000

	alpha := mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 640, Y: 360})
	tower := g.ECS.Towers[alpha]

	o1 := mustPlace(t, g, "TOWER_OMICRON", geom.Vec2{X: 640, Y: 440})
	if !almostEqual(tower.Damage, 15) || !almostEqual(tower.FireRate, 1.2*1.15) {
		t.Fatalf("one aura: dmg %v rate %v", tower.Damage, tower.FireRate)
	}

	o2 := mustPlace(t, g, "TOWER_OMICRON", geom.Vec2{X: 560, Y: 440})
	if !almostEqual(tower.Damage, 18.75) {
		t.Fatalf("two auras: dmg %v, want multiplied 18.75", tower.Damage)
	}
	if !almostEqual(tower.Range, 140) {
		t.Errorf("aura touched range: %v", tower.Range)
	}

	// Повторный пересчёт идёт от базы и ничего не накапливает.
	g.AuraSystem.Recalculate()
	g.AuraSystem.Recalculate()
	if !almostEqual(tower.Damage, 18.75) {
		t.Errorf("recalculate accumulated: %v", tower.Damage)
	}

	g.SellTower(o2)
	if !almostEqual(tower.Damage, 15) {
		t.Errorf("after selling one aura: %v, want 15", tower.Damage)
	}
	g.SellTower(o1)
	if !almostEqual(tower.Damage, 12) || !almostEqual(tower.FireRate, 1.2) {
		t.Errorf("after selling both: dmg %v rate %v, want base", tower.Damage, tower.FireRate)
	}
}

func TestCrystalDummyDiesThroughTheSameFunnel(t *testing.T) {
	g := newTestGame(t, Options{})

	crystal := g.SpawnCrystal(geom.Vec2{X: 700, Y: 360})
	g.Update(0.01)
	if _, ok := g.ECS.Crystals[crystal]; !ok {
		t.Fatal("healthy crystal removed")
	}

	g.ECS.Healths[crystal].Value = 0
	g.Update(0.01)
	if _, ok := g.ECS.Crystals[crystal]; ok {
		t.Error("dead crystal still on the field")
	}
	if _, ok := g.ECS.Positions[crystal]; ok {
		t.Error("dead crystal left components behind")
	}
}

func TestNewGameRejectsUnknownStage(t *testing.T) {
	if _, err := NewGame("STAGE_NONESUCH", Options{Seed: 1}); err == nil {
		t.Fatal("unknown stage accepted")
	}
}
