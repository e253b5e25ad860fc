// internal/server/runner.go
package server

import (
	"sync/atomic"
	"time"

	"glyph-defense/internal/app"
	"glyph-defense/internal/component"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// Command — команда клиента в симуляцию. Клиенты пишут их в очередь,
// поток симуляции разбирает очередь на границе кадра: внутрь кадра
// команды не попадают.
type Command struct {
	Action   string         `json:"action"`
	Def      string         `json:"def,omitempty"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	Tower    types.EntityID `json:"tower,omitempty"`
	Target   types.EntityID `json:"target,omitempty"`
	Priority string         `json:"priority,omitempty"`
	Level    int            `json:"level,omitempty"`
	Active   bool           `json:"active,omitempty"`
}

// CommandResult — ответ на команду.
type CommandResult struct {
	Action string         `json:"action"`
	OK     bool           `json:"ok"`
	Reason string         `json:"reason,omitempty"`
	ID     types.EntityID `json:"id,omitempty"`
	Refund float64        `json:"refund,omitempty"`
	Wave   int            `json:"wave,omitempty"`
}

// Frame — кадр трансляции: снимок симуляции или результат команды.
type Frame struct {
	Type     string         `json:"type"` // snapshot | result
	Snapshot *app.Snapshot  `json:"snapshot,omitempty"`
	Result   *CommandResult `json:"result,omitempty"`
}

// statsView — срез статистики для HTTP, обновляется атомарно из потока
// симуляции, читается хендлерами без блокировок. Копия по значению:
// живые структуры рекордера наружу не выходят.
type statsView struct {
	Totals  map[types.EntityID]stats.TowerTotals `json:"totals"`
	History []stats.EnemyRecord                  `json:"history"`
}

// Runner крутит симуляцию с фиксированным шагом и транслирует снимки.
// Единственный владелец *app.Game: никто другой его не трогает.
type Runner struct {
	game     *app.Game
	recorder *stats.MemoryRecorder
	hub      *Hub
	commands chan Command
	stop     chan struct{}

	tickRate      time.Duration
	framesPerSnap int

	lastSnapshot atomic.Value // app.Snapshot
	lastStats    atomic.Value // statsView
}

// NewRunner собирает раннер поверх готовой партии. recorder может быть
// nil, тогда /stats отдаёт пустой срез.
func NewRunner(game *app.Game, recorder *stats.MemoryRecorder) *Runner {
	r := &Runner{
		game:          game,
		recorder:      recorder,
		hub:           NewHub(),
		commands:      make(chan Command, 256),
		stop:          make(chan struct{}),
		tickRate:      time.Second / 60,
		framesPerSnap: 3, // 20 снимков в секунду
	}
	r.lastSnapshot.Store(game.Snapshot())
	r.lastStats.Store(statsView{})
	return r
}

func (r *Runner) Hub() *Hub { return r.hub }

// Enqueue ставит команду в очередь. Полная очередь роняет команду с
// предупреждением, но не блокирует читателя сокета.
func (r *Runner) Enqueue(cmd Command) {
	select {
	case r.commands <- cmd:
	default:
		logger.Log.WithField("action", cmd.Action).Warn("command queue full, dropped")
	}
}

// LastSnapshot — последний опубликованный снимок, для новых подключений
// и для /state.
func (r *Runner) LastSnapshot() app.Snapshot {
	return r.lastSnapshot.Load().(app.Snapshot)
}

func (r *Runner) statsSnapshot() statsView {
	return r.lastStats.Load().(statsView)
}

// Run блокируется до Stop: фиксированный тик, на каждом кадре сперва
// команды, затем шаг симуляции, затем трансляция.
func (r *Runner) Run() {
	ticker := time.NewTicker(r.tickRate)
	defer ticker.Stop()

	frame := 0
	last := time.Now()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			r.drainCommands()
			r.game.Update(dt)

			frame++
			if frame%r.framesPerSnap == 0 {
				r.publish()
			}
		}
	}
}

// Stop останавливает цикл симуляции.
func (r *Runner) Stop() {
	close(r.stop)
}

func (r *Runner) publish() {
	snap := r.game.Snapshot()
	r.lastSnapshot.Store(snap)
	if r.recorder != nil {
		totals := make(map[types.EntityID]stats.TowerTotals, len(r.recorder.Totals()))
		for id, t := range r.recorder.Totals() {
			totals[id] = *t
		}
		history := append([]stats.EnemyRecord(nil), r.recorder.History()...)
		r.lastStats.Store(statsView{Totals: totals, History: history})
	}
	r.hub.Broadcast(Frame{Type: "snapshot", Snapshot: &snap})
}

func (r *Runner) drainCommands() {
	for {
		select {
		case cmd := <-r.commands:
			result := r.apply(cmd)
			r.hub.Broadcast(Frame{Type: "result", Result: &result})
		default:
			return
		}
	}
}

// apply выполняет одну команду над игрой. Неизвестное действие — отказ,
// не ошибка сервера.
func (r *Runner) apply(cmd Command) CommandResult {
	res := CommandResult{Action: cmd.Action}
	switch cmd.Action {
	case "start_wave":
		wave, ok := r.game.StartWave()
		res.OK = ok
		res.Wave = wave
		if !ok {
			res.Reason = "wave already running or game over"
		}
	case "place_tower":
		id, ok, reason := r.game.PlaceTower(cmd.Def, geom.Vec2{X: cmd.X, Y: cmd.Y})
		res.OK, res.Reason, res.ID = ok, reason, id
	case "sell_tower":
		refund, ok, reason := r.game.SellTower(cmd.Tower)
		res.OK, res.Reason, res.Refund = ok, reason, refund
	case "upgrade_tower":
		ok, reason := r.game.UpgradeTower(cmd.Tower)
		res.OK, res.Reason = ok, reason
	case "demote_tower":
		ok, reason := r.game.DemoteTower(cmd.Tower)
		res.OK, res.Reason = ok, reason
	case "connect":
		ok, reason := r.game.ConnectTowers(cmd.Tower, cmd.Target)
		res.OK, res.Reason = ok, reason
	case "disconnect":
		r.game.DisconnectTower(cmd.Tower)
		res.OK = true
	case "set_priority":
		res.OK = r.game.SetTargetPriority(cmd.Tower, component.TargetPriority(cmd.Priority))
		if !res.OK {
			res.Reason = "unknown tower or priority"
		}
	case "set_target":
		res.OK = r.game.SetManualTarget(cmd.Tower, cmd.Target)
		if !res.OK {
			res.Reason = "unknown tower or target"
		}
	case "focus_enemy":
		r.game.FocusEnemy(cmd.Target)
		res.OK = true
	case "spawn_crystal":
		res.ID = r.game.SpawnCrystal(geom.Vec2{X: cmd.X, Y: cmd.Y})
		res.OK = true
	case "focus_crystal":
		res.OK = r.game.FocusCrystalTower(cmd.Tower, cmd.Target)
		if !res.OK {
			res.Reason = "unknown tower or crystal"
		}
	case "set_speed":
		r.game.SetSpeedLevel(cmd.Level)
		res.OK = true
	case "set_combat":
		r.game.SetCombatActive(cmd.Active)
		res.OK = true
	case "retry_checkpoint":
		ok, reason := r.game.RetryFromCheckpoint()
		res.OK, res.Reason = ok, reason
	default:
		res.Reason = "unknown action"
	}
	return res
}
