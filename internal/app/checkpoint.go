// internal/app/checkpoint.go
package app

import (
	"encoding/json"
	"fmt"
	"sort"

	"glyph-defense/internal/component"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/event"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// CheckpointTower — башня в чекпоинте. Идентификаторы сущностей между
// партиями не живут, поэтому линии ссылаются на индексы в этом срезе.
type CheckpointTower struct {
	DefID    string                   `json:"def_id"`
	X        float64                  `json:"x"`
	Y        float64                  `json:"y"`
	Priority component.TargetPriority `json:"priority"`
	RingTier int                      `json:"ring_tier,omitempty"`
	Charge   float64                  `json:"charge,omitempty"`
	Invested []float64                `json:"invested"`
}

// CheckpointLink — линия снабжения по индексам башен чекпоинта.
type CheckpointLink struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Checkpoint — снимок партии на границе цикла бесконечного режима.
// Используется один раз: повторный откат требует дожить до нового цикла.
type Checkpoint struct {
	Stage     string            `json:"stage"`
	Cycle     int               `json:"cycle"`
	WaveIndex int               `json:"wave_index"`
	Energy    float64           `json:"energy"`
	Lives     int               `json:"lives"`
	Towers    []CheckpointTower `json:"towers"`
	Links     []CheckpointLink  `json:"links"`

	used bool
}

// captureCheckpoint снимает состояние в момент перехода на новый цикл:
// деньги, жизни и все башни с линиями. Враги и снаряды не сохраняются,
// переход через цикл случается только между волнами.
func (g *Game) captureCheckpoint() {
	cp := &Checkpoint{
		Stage:     g.stageID,
		Cycle:     g.cycle,
		WaveIndex: g.nextWaveIndex,
		Energy:    g.energy,
		Lives:     g.lives,
	}

	index := map[types.EntityID]int{}
	for _, id := range g.sortedTowerIDs() {
		tower := g.ECS.Towers[id]
		pos, ok := g.ECS.Positions[id]
		if !ok {
			continue
		}
		index[id] = len(cp.Towers)
		invested := make([]float64, len(tower.Invested))
		copy(invested, tower.Invested)
		cp.Towers = append(cp.Towers, CheckpointTower{
			DefID:    tower.DefID,
			X:        pos.Pos.X,
			Y:        pos.Pos.Y,
			Priority: tower.Priority,
			RingTier: tower.RingTier,
			Charge:   tower.Charge,
			Invested: invested,
		})
	}

	for _, link := range g.network.Links() {
		fromIdx, okF := index[link.From]
		toIdx, okT := index[link.To]
		if okF && okT {
			cp.Links = append(cp.Links, CheckpointLink{From: fromIdx, To: toIdx})
		}
	}

	g.checkpoint = cp
	logger.Log.WithField("cycle", cp.Cycle).WithField("towers", len(cp.Towers)).Info("checkpoint captured")
	g.EventDispatcher.Dispatch(event.Event{Type: event.CheckpointCaptured, Data: cp.Cycle})
}

func (g *Game) sortedTowerIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(g.ECS.Towers))
	for id := range g.ECS.Towers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RetryFromCheckpoint откатывает партию к началу текущего цикла. Чекпоинт
// одноразовый: после отката нужно дожить до следующего цикла за новым.
func (g *Game) RetryFromCheckpoint() (bool, string) {
	cp := g.checkpoint
	if cp == nil {
		return false, "no checkpoint"
	}
	if cp.used {
		return false, "checkpoint already spent"
	}
	cp.used = true

	g.clearBattlefield()

	g.energy = cp.Energy
	g.lives = cp.Lives
	g.cycle = cp.Cycle
	g.nextWaveIndex = cp.WaveIndex
	g.defeated = false
	g.victorious = false
	g.combatActive = true
	g.ECS.Wave = &component.Wave{Phase: component.WaveIdle, Number: g.cycle * len(defs.Waves), HealthFactor: 1, RewardFactor: 1, SpeedFactor: 1}

	restored := make([]types.EntityID, 0, len(cp.Towers))
	for _, ct := range cp.Towers {
		restored = append(restored, g.restoreTower(ct))
	}
	for _, link := range cp.Links {
		if link.From < 0 || link.From >= len(restored) || link.To < 0 || link.To >= len(restored) {
			continue
		}
		from, to := restored[link.From], restored[link.To]
		if from == 0 || to == 0 {
			continue
		}
		g.network.Connect(from, to)
	}

	g.AuraSystem.Recalculate()
	logger.Log.WithField("cycle", cp.Cycle).Info("restored from checkpoint")
	return true, ""
}

// clearBattlefield убирает все сущности партии перед откатом.
func (g *Game) clearBattlefield() {
	ids := map[types.EntityID]bool{}
	for id := range g.ECS.Positions {
		ids[id] = true
	}
	for id := range g.ECS.Towers {
		ids[id] = true
	}
	for id := range g.ECS.Projectiles {
		ids[id] = true
	}
	for id := range g.ECS.Enemies {
		ids[id] = true
	}
	for id := range g.ECS.Thralls {
		ids[id] = true
	}
	for id := range g.ECS.Crystals {
		ids[id] = true
	}
	for id := range ids {
		g.ECS.RemoveEntity(id)
	}
	g.network = NewSupplyNetwork()
	g.network.BindAliveCheck(func(id types.EntityID) bool {
		_, ok := g.ECS.Towers[id]
		return ok
	})
	g.CombatSystem.SetFocusEnemy(0)
}

// restoreTower ставит башню из чекпоинта напрямую, минуя валидации и
// списание энергии: вложения уже оплачены прошлой жизнью партии.
func (g *Game) restoreTower(ct CheckpointTower) types.EntityID {
	def, ok := defs.TowerDefs[ct.DefID]
	if !ok {
		logger.Log.WithField("def", ct.DefID).Warn("checkpoint references unknown tower, skipped")
		return 0
	}

	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{Pos: geom.Vec2{X: ct.X, Y: ct.Y}}
	invested := make([]float64, len(ct.Invested))
	copy(invested, ct.Invested)
	g.ECS.Towers[id] = &component.Tower{
		DefID:        ct.DefID,
		BaseDamage:   def.Damage,
		BaseFireRate: def.FireRate,
		BaseRange:    def.Range,
		Damage:       def.Damage,
		FireRate:     def.FireRate,
		Range:        def.Range,
		Priority:     ct.Priority,
		Charge:       ct.Charge,
		RingTier:     ct.RingTier,
		Invested:     invested,
	}
	return id
}

// Checkpoint возвращает копию текущего чекпоинта для сериализации.
func (g *Game) Checkpoint() (Checkpoint, bool) {
	if g.checkpoint == nil {
		return Checkpoint{}, false
	}
	return *g.checkpoint, true
}

// EncodeCheckpoint сериализует чекпоинт в JSON.
func EncodeCheckpoint(cp Checkpoint) ([]byte, error) {
	data, err := json.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	return data, nil
}

// DecodeCheckpoint разбирает чекпоинт из JSON.
func DecodeCheckpoint(data []byte) (Checkpoint, error) {
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("decode checkpoint: %w", err)
	}
	return cp, nil
}
