// internal/system/setup_test.go
package system

import (
	"os"
	"testing"

	"glyph-defense/internal/component"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/types"
	"glyph-defense/internal/utils"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitSilent()
	os.Exit(m.Run())
}

// world собирает системы над прямым горизонтальным маршрутом y=300
// длиной 1000: прогресс 0.5 соответствует точке (500, 300).
type world struct {
	ecs         *entity.ECS
	path        *geom.Path
	recorder    *stats.MemoryRecorder
	damage      *Damage
	combat      *CombatSystem
	projectiles *ProjectileSystem
	links       map[types.EntityID]types.EntityID
}

func newWorld() *world {
	ecs := entity.NewECS()
	path := geom.BuildPath([]geom.Vec2{{X: 0, Y: 300}, {X: 1000, Y: 300}}, 4)
	recorder := stats.NewMemoryRecorder()
	damage := NewDamage(ecs, recorder)

	w := &world{
		ecs:         ecs,
		path:        path,
		recorder:    recorder,
		damage:      damage,
		projectiles: NewProjectileSystem(ecs, damage),
		links:       map[types.EntityID]types.EntityID{},
	}
	w.combat = NewCombatSystem(ecs, path, damage, utils.NewPRNG(1), func(id types.EntityID) types.EntityID {
		return w.links[id]
	})
	return w
}

func (w *world) spawnEnemy(pos geom.Vec2, health, progress float64) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{Pos: pos}
	w.ecs.Velocities[id] = &component.Velocity{Base: 0}
	w.ecs.PathFollow[id] = &component.PathFollow{Progress: progress}
	w.ecs.Healths[id] = &component.Health{Value: health, Max: health}
	w.ecs.Enemies[id] = &component.Enemy{DefID: "ENEMY_MOTE", Symbol: "·", Reward: 4, MoteFactor: 1}
	return id
}

// placeTower ставит башню напрямую, без экономики: боевые характеристики
// берутся из каталога по defID.
func (w *world) placeTower(defID string, pos geom.Vec2) types.EntityID {
	def, ok := defs.TowerDefs[defID]
	if !ok {
		panic("unknown tower def " + defID)
	}
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{Pos: pos}
	w.ecs.Towers[id] = &component.Tower{
		DefID:        defID,
		BaseDamage:   def.Damage,
		BaseFireRate: def.FireRate,
		BaseRange:    def.Range,
		Damage:       def.Damage,
		FireRate:     def.FireRate,
		Range:        def.Range,
		Priority:     component.PriorityFirst,
		Invested:     []float64{def.BaseCost},
	}
	if def.Behavior == defs.BehaviorRings {
		w.ecs.Towers[id].RingTier = 1
	}
	return id
}

func (w *world) health(id types.EntityID) float64 {
	h, ok := w.ecs.Healths[id]
	if !ok {
		return -1
	}
	return h.Value
}

// attacksOn возвращает записи журнала попаданий по конкретной цели.
func (w *world) attacksOn(target types.EntityID) []stats.AttackRecord {
	var out []stats.AttackRecord
	for _, a := range w.recorder.Attacks() {
		if a.Target == target {
			out = append(out, a)
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
