// internal/app/checkpoint_test.go
package app

import (
	"reflect"
	"testing"

	"glyph-defense/internal/component"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/event"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// clearWave запускает следующую волну и зачищает её единственного врага.
// Таблица волн теста: одна волна, одна группа из одного врага.
func clearWave(t *testing.T, g *Game) {
	t.Helper()
	if _, ok := g.StartWave(); !ok {
		t.Fatal("StartWave refused")
	}
	g.Update(0.1)
	id := anyEnemy(g)
	if id == 0 {
		t.Fatal("wave spawned nothing")
	}
	g.ECS.Healths[id].Value = 0
	g.Update(0.01)
	g.Update(0.01)
	if g.WaveInProgress() {
		t.Fatal("wave did not close")
	}
}

// endlessGameWithBoard собирает бесконечную партию: таблица из одной
// волны на одного врага, на доске связка сигма→омега.
func endlessGameWithBoard(t *testing.T) *Game {
	t.Helper()
	installWaves(t, []defs.WaveDefinition{
		{Groups: []defs.EnemyGroup{{EnemyID: "ENEMY_MOTE", Count: 1, Interval: 0.1}}},
	})
	g := newTestGame(t, Options{Endless: true})

	sigma := mustPlace(t, g, "TOWER_SIGMA", geom.Vec2{X: 200, Y: 360})
	omega := mustPlace(t, g, "TOWER_OMEGA", geom.Vec2{X: 400, Y: 360})
	if ok, reason := g.ConnectTowers(sigma, omega); !ok {
		t.Fatalf("connect: %s", reason)
	}
	return g
}

func TestEndlessWrapOpensCycleAndCapturesCheckpoint(t *testing.T) {
	g := endlessGameWithBoard(t)

	clearWave(t, g)
	if g.HasCheckpoint() {
		t.Fatal("checkpoint before the cycle boundary")
	}

	number, ok := g.StartWave()
	if !ok || number != 2 {
		t.Fatalf("wrapped StartWave = (%d, %v), want (2, true)", number, ok)
	}
	if g.Cycle() != 1 {
		t.Fatalf("cycle = %d, want 1", g.Cycle())
	}
	if !g.HasCheckpoint() {
		t.Fatal("no checkpoint at cycle boundary")
	}

	cp, ok := g.Checkpoint()
	if !ok {
		t.Fatal("Checkpoint() empty")
	}
	if cp.Stage != testStageID || cp.Cycle != 1 || cp.WaveIndex != 0 {
		t.Errorf("checkpoint header = %s/%d/%d", cp.Stage, cp.Cycle, cp.WaveIndex)
	}
	if cp.Lives != 20 || !almostEqual(cp.Energy, 250-30-110+4) {
		t.Errorf("checkpoint economy = %d lives, %v energy", cp.Lives, cp.Energy)
	}
	if len(cp.Towers) != 2 {
		t.Fatalf("checkpoint towers = %d, want 2", len(cp.Towers))
	}
	if cp.Towers[0].DefID != "TOWER_SIGMA" || !almostEqual(cp.Towers[0].X, 200) {
		t.Errorf("first checkpoint tower = %+v", cp.Towers[0])
	}
	if cp.Towers[1].DefID != "TOWER_OMEGA" || len(cp.Towers[1].Invested) != 1 || !almostEqual(cp.Towers[1].Invested[0], 110) {
		t.Errorf("second checkpoint tower = %+v", cp.Towers[1])
	}
	if len(cp.Links) != 1 || cp.Links[0].From != 0 || cp.Links[0].To != 1 {
		t.Errorf("checkpoint links = %+v, want [{0 1}]", cp.Links)
	}

	// Волны нового цикла спавнят усиленных врагов: x10 здоровье,
	// x10 награда, +10% скорость.
	g.Update(0.1)
	id := anyEnemy(g)
	if id == 0 {
		t.Fatal("cycle wave spawned nothing")
	}
	if got := g.ECS.Healths[id].Max; !almostEqual(got, 400) {
		t.Errorf("cycled enemy health = %v, want 400", got)
	}
	if got := g.ECS.Enemies[id].Reward; !almostEqual(got, 40) {
		t.Errorf("cycled enemy reward = %v, want 40", got)
	}
	if got := g.ECS.Velocities[id].Base; !almostEqual(got, 70*1.1) {
		t.Errorf("cycled enemy speed = %v, want 77", got)
	}
}

func TestCheckpointCapturedEventFiresOncePerCycle(t *testing.T) {
	g := endlessGameWithBoard(t)

	var cycles []int
	g.EventDispatcher.Subscribe(event.CheckpointCaptured, event.ListenerFunc(func(e event.Event) {
		if cycle, ok := e.Data.(int); ok {
			cycles = append(cycles, cycle)
		}
	}))

	clearWave(t, g) // волна 1, цикл 0
	clearWave(t, g) // волна 2 открывает цикл 1
	clearWave(t, g) // волна 3 открывает цикл 2

	if len(cycles) != 2 || cycles[0] != 1 || cycles[1] != 2 {
		t.Errorf("captured cycles = %v, want [1 2]", cycles)
	}
}

func TestRetryRestoresBoardAndEconomy(t *testing.T) {
	g := endlessGameWithBoard(t)

	clearWave(t, g)
	if _, ok := g.StartWave(); !ok {
		t.Fatal("wrap StartWave refused")
	}
	cp, _ := g.Checkpoint()

	// Портим доску: продаём поставщика, строим лишнее, пропускаем прорыв.
	g.Update(0.1)
	for id, tower := range g.ECS.Towers {
		if tower.DefID == "TOWER_SIGMA" {
			g.SellTower(id)
		}
	}
	mustPlace(t, g, "TOWER_ALPHA", geom.Vec2{X: 800, Y: 360})
	spawnEnemy(t, g, "ENEMY_MOTE", 0.999, 10)
	for i := 0; i < 4; i++ {
		g.Update(0.1)
	}
	if g.Lives() != 10 {
		t.Fatalf("setup breach: lives = %d, want 10", g.Lives())
	}

	ok, reason := g.RetryFromCheckpoint()
	if !ok {
		t.Fatalf("retry refused: %s", reason)
	}

	if g.Cycle() != 1 || g.Lives() != 20 || !almostEqual(g.Energy(), cp.Energy) {
		t.Errorf("restored economy: cycle %d lives %d energy %v", g.Cycle(), g.Lives(), g.Energy())
	}
	if len(g.ECS.Enemies) != 0 || len(g.ECS.Projectiles) != 0 {
		t.Error("battlefield not cleared on retry")
	}
	if g.WaveInProgress() {
		t.Error("wave still running after retry")
	}
	if g.ECS.Wave.Number != 1 {
		t.Errorf("wave counter = %d, want cycle base 1", g.ECS.Wave.Number)
	}

	if len(g.ECS.Towers) != 2 {
		t.Fatalf("restored towers = %d, want 2", len(g.ECS.Towers))
	}
	var sigmaID, omegaID types.EntityID
	for id, tower := range g.ECS.Towers {
		switch tower.DefID {
		case "TOWER_SIGMA":
			sigmaID = id
			if len(tower.Invested) != 1 || !almostEqual(tower.Invested[0], 30) {
				t.Errorf("sigma invested = %v, want [30]", tower.Invested)
			}
		case "TOWER_OMEGA":
			omegaID = id
		default:
			t.Errorf("unexpected restored tower %s", tower.DefID)
		}
	}
	if sigmaID == 0 || omegaID == 0 {
		t.Fatal("restored board missing sigma or omega")
	}
	if pos := g.ECS.Positions[sigmaID]; pos == nil || !almostEqual(pos.Pos.X, 200) {
		t.Errorf("sigma position = %+v, want x 200", pos)
	}
	links := g.Network().Links()
	if len(links) != 1 || links[0].From != sigmaID || links[0].To != omegaID {
		t.Errorf("restored links = %v, want sigma feeding omega", links)
	}

	if g.HasCheckpoint() {
		t.Error("checkpoint reusable after retry")
	}
	if ok, reason := g.RetryFromCheckpoint(); ok || reason != "checkpoint already spent" {
		t.Errorf("second retry = (%v, %q)", ok, reason)
	}

	// Партия играбельна: волна цикла стартует заново с того же номера.
	number, ok := g.StartWave()
	if !ok || number != 2 {
		t.Errorf("restart after retry = (%d, %v), want (2, true)", number, ok)
	}
}

func TestRetryWithoutCheckpointRefused(t *testing.T) {
	g := newTestGame(t, Options{Endless: true})
	if ok, reason := g.RetryFromCheckpoint(); ok || reason != "no checkpoint" {
		t.Errorf("retry on fresh game = (%v, %q)", ok, reason)
	}
}

func TestRetrySkipsUnknownTowersAndDanglingLinks(t *testing.T) {
	g := newTestGame(t, Options{Endless: true})
	g.checkpoint = &Checkpoint{
		Stage: testStageID, Cycle: 1, WaveIndex: 0, Energy: 300, Lives: 15,
		Towers: []CheckpointTower{
			{DefID: "TOWER_GONE", X: 200, Y: 360, Invested: []float64{10}},
			{DefID: "TOWER_ALPHA", X: 400, Y: 360, Priority: component.PriorityFirst, Invested: []float64{25}},
		},
		Links: []CheckpointLink{{From: 0, To: 1}, {From: 5, To: 1}},
	}

	if ok, reason := g.RetryFromCheckpoint(); !ok {
		t.Fatalf("retry: %s", reason)
	}
	if len(g.ECS.Towers) != 1 {
		t.Fatalf("towers = %d, want unknown def skipped", len(g.ECS.Towers))
	}
	for _, tower := range g.ECS.Towers {
		if tower.DefID != "TOWER_ALPHA" || !almostEqual(tower.Damage, 12) {
			t.Errorf("restored tower = %+v", tower)
		}
	}
	if links := g.Network().Links(); len(links) != 0 {
		t.Errorf("dangling links restored: %v", links)
	}
	if !almostEqual(g.Energy(), 300) || g.Lives() != 15 {
		t.Errorf("economy = %v/%d, want 300/15", g.Energy(), g.Lives())
	}
}

func TestCheckpointSurvivesEncodeDecode(t *testing.T) {
	cp := Checkpoint{
		Stage: "STAGE_SERPENT", Cycle: 2, WaveIndex: 0, Energy: 512.5, Lives: 7,
		Towers: []CheckpointTower{
			{DefID: "TOWER_ALPHA", X: 100, Y: 200, Priority: component.PriorityFirst, Invested: []float64{25, 60}},
			{DefID: "TOWER_PHI", X: 300, Y: 400, Priority: component.PriorityStrongest, RingTier: 3, Charge: 1.5, Invested: []float64{90, 90, 90}},
		},
		Links: []CheckpointLink{{From: 0, To: 1}},
	}

	data, err := EncodeCheckpoint(cp)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeCheckpoint(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(cp, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, cp)
	}

	if _, err := DecodeCheckpoint([]byte("{boom")); err == nil {
		t.Error("malformed checkpoint accepted")
	}
}
