// internal/app/setup_test.go
package app

import (
	"os"
	"testing"

	"glyph-defense/internal/component"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitSilent()
	os.Exit(m.Run())
}

// testStageID — прямой горизонтальный маршрут y=300 длиной 1360.
// На прямой Катмулл-Ром вырождается в отрезок, поэтому геометрия
// построек считается точно: расстояние до маршрута равно |y−300|.
const testStageID = "STAGE_TESTLINE"

func installTestStage(t *testing.T) {
	t.Helper()
	defs.StageDefs[testStageID] = defs.StageDefinition{
		ID: testStageID, Name: "Testline",
		Waypoints: []geom.Vec2{{X: -40, Y: 300}, {X: 1320, Y: 300}},
	}
	t.Cleanup(defs.ResetDefaults)
}

// installWaves подменяет таблицу волн на время теста.
func installWaves(t *testing.T, waves []defs.WaveDefinition) {
	t.Helper()
	defs.Waves = waves
	t.Cleanup(defs.ResetDefaults)
}

// newTestGame собирает партию на прямом маршруте с фиксированным сидом.
func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	installTestStage(t)
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	g, err := NewGame(testStageID, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// spawnEnemy ставит врага на маршрут напрямую, минуя спавнер волн.
func spawnEnemy(t *testing.T, g *Game, defID string, progress, health float64) types.EntityID {
	t.Helper()
	def, ok := defs.EnemyDefs[defID]
	if !ok {
		t.Fatalf("unknown enemy def %s", defID)
	}
	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{Pos: g.Path.PointAt(progress).Pos}
	g.ECS.Velocities[id] = &component.Velocity{Base: def.Speed}
	g.ECS.PathFollow[id] = &component.PathFollow{Progress: progress, Direct: def.Direct}
	g.ECS.Healths[id] = &component.Health{Value: health, Max: health}
	g.ECS.Enemies[id] = &component.Enemy{
		DefID:      def.ID,
		Symbol:     def.Symbol,
		Reward:     def.Reward,
		MoteFactor: def.MoteFactor,
		Boss:       def.Boss,
	}
	return id
}

// mustPlace ставит башню и валит тест при отказе.
func mustPlace(t *testing.T, g *Game, defID string, pos geom.Vec2) types.EntityID {
	t.Helper()
	id, ok, reason := g.PlaceTower(defID, pos)
	if !ok {
		t.Fatalf("PlaceTower(%s, %v) refused: %s", defID, pos, reason)
	}
	return id
}

// anyEnemy возвращает произвольного живого врага, ноль — если поле пусто.
func anyEnemy(g *Game) types.EntityID {
	for id := range g.ECS.Enemies {
		return id
	}
	return 0
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
