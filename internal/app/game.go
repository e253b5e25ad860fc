// internal/app/game.go
package app

import (
	"fmt"
	"math"

	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/event"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/system"
	"glyph-defense/internal/types"
	"glyph-defense/internal/utils"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// Options настраивают новую партию.
type Options struct {
	Endless  bool
	Seed     int64
	Recorder stats.Recorder // nil — статистика пишется во встроенный рекордер
}

// Game — оркестратор симуляции: владеет ECS, системами и экономикой
// партии. Все методы зовутся из одного потока, снаружи гуляют только
// снимки по значению.
type Game struct {
	ECS  *entity.ECS
	Path *geom.Path

	MovementSystem     *system.MovementSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	ThrallSystem       *system.ThrallSystem
	StatusEffectSystem *system.StatusEffectSystem
	WaveSystem         *system.WaveSystem
	AuraSystem         *system.AuraSystem
	EventDispatcher    *event.Dispatcher
	Recorder           stats.Recorder
	Rng                *utils.PRNG

	stageID string
	endless bool

	gameTime        float64
	energy          float64
	lives           int
	nextWaveIndex   int
	cycle           int
	combatActive    bool
	speedLevel      int
	speedMultiplier float64
	defeated        bool
	victorious      bool

	network    *SupplyNetwork
	checkpoint *Checkpoint
}

// NewGame собирает партию на указанной сцене. Неизвестная сцена — ошибка.
func NewGame(stageID string, opts Options) (*Game, error) {
	stage, ok := defs.StageDefs[stageID]
	if !ok {
		return nil, fmt.Errorf("unknown stage %q", stageID)
	}
	path := geom.BuildPath(stage.Waypoints, config.PathSubdivisions)
	if path.TotalLength <= 0 {
		return nil, fmt.Errorf("stage %q has degenerate route", stageID)
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = stats.NewMemoryRecorder()
	}

	ecs := entity.NewECS()
	dispatcher := event.NewDispatcher()
	g := &Game{
		ECS:             ecs,
		Path:            path,
		EventDispatcher: dispatcher,
		Recorder:        recorder,
		Rng:             utils.NewPRNG(opts.Seed),
		stageID:         stageID,
		endless:         opts.Endless,
		energy:          config.StartingEnergy,
		lives:           config.StartingLives,
		combatActive:    true,
		speedMultiplier: 1.0,
		network:         NewSupplyNetwork(),
	}
	g.network.BindAliveCheck(func(id types.EntityID) bool {
		_, ok := ecs.Towers[id]
		return ok
	})

	damage := system.NewDamage(ecs, recorder)
	g.MovementSystem = system.NewMovementSystem(ecs, path, dispatcher)
	g.CombatSystem = system.NewCombatSystem(ecs, path, damage, g.Rng, g.network.Target)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, damage)
	g.ThrallSystem = system.NewThrallSystem(ecs)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.WaveSystem = system.NewWaveSystem(ecs, path, dispatcher)
	g.AuraSystem = system.NewAuraSystem(ecs, dispatcher)

	listener := &gameEventListener{game: g}
	dispatcher.Subscribe(event.EnemyBreached, listener)
	dispatcher.Subscribe(event.WaveEnded, listener)

	logger.Log.WithField("stage", stageID).Info("game created")
	return g, nil
}

// Update продвигает симуляцию на один кадр. Дельта зажимается сверху,
// затем масштабируется уровнем скорости. Непрерывная физика башен тикает
// и на паузе, всё боевое — только при активном бое.
func (g *Game) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	dt := deltaTime * g.speedMultiplier

	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	g.CombatSystem.UpdateContinuous(dt, g.combatActive)
	if !g.combatActive {
		return
	}

	g.StatusEffectSystem.Update(dt)
	g.MovementSystem.Update(dt)
	g.CombatSystem.Update(dt)
	g.ThrallSystem.Update(dt)
	g.ProjectileSystem.Update(dt)
	g.settleDefeatedEnemies()
	g.WaveSystem.Update(dt)
}

// settleDefeatedEnemies закрывает всех врагов с нулевым здоровьем:
// награда, событие, посмертная запись, бросок на обращение и подпитка
// коллекторов, затем удаление сущности.
func (g *Game) settleDefeatedEnemies() {
	for id, enemy := range g.ECS.Enemies {
		health, ok := g.ECS.Healths[id]
		if !ok || health.Value > 0 {
			continue
		}

		reward := enemy.Reward
		g.addEnergy(reward)
		g.Recorder.RecordKill(g.gameTime, enemy.LastHitDef, enemy.LastHitBy, id, reward)
		g.captureEnemyRecord(id, enemy, health, false)
		g.feedCollectorsOnKill(id, enemy)
		g.rollThrall(id, enemy)

		g.EventDispatcher.Dispatch(event.Event{
			Type: event.EnemyKilled,
			Data: event.KillData{ID: id, Reward: reward, Killer: enemy.LastHitBy},
		})
		g.ECS.RemoveEntity(id)
	}

	// Кристаллы-манекены тоже умирают через воронку урона.
	for id := range g.ECS.Crystals {
		if health, ok := g.ECS.Healths[id]; ok && health.Value <= 0 {
			g.ECS.RemoveEntity(id)
		}
	}
}

func (g *Game) captureEnemyRecord(id types.EntityID, enemy *component.Enemy, health *component.Health, breached bool) {
	rec := stats.EnemyRecord{
		At:        g.gameTime,
		ID:        id,
		DefID:     enemy.DefID,
		Symbol:    enemy.Symbol,
		MaxHealth: health.Max,
		Reward:    enemy.Reward,
		Breached:  breached,
	}
	if ledger, ok := g.ECS.DamageLedgers[id]; ok {
		rec.Contributors = stats.TopContributors(ledger.ByTowerDef)
	}
	g.Recorder.CaptureEnemyHistory(rec)
}

// feedCollectorsOnKill — пассивный ручеёк заряда: смерть врага подпитывает
// каждый коллектор, в чей радиус попала точка смерти.
func (g *Game) feedCollectorsOnKill(id types.EntityID, enemy *component.Enemy) {
	if enemy.MoteFactor <= 0 {
		return
	}
	deathPos, ok := g.ECS.Positions[id]
	if !ok {
		return
	}
	for towerID, tower := range g.ECS.Towers {
		def, ok := defs.TowerDefs[tower.DefID]
		if !ok || def.Behavior != defs.BehaviorCollector {
			continue
		}
		pos, ok := g.ECS.Positions[towerID]
		if !ok {
			continue
		}
		if pos.Pos.Distance(deathPos.Pos) <= tower.Range {
			tower.Charge += enemy.MoteFactor
		}
	}
}

// rollThrall бросает кость обращения, если добивала башня кси: на месте
// смерти встаёт обращённый и стреляет по бывшим союзникам.
func (g *Game) rollThrall(id types.EntityID, enemy *component.Enemy) {
	if enemy.Boss || enemy.LastHitDef == "" {
		return
	}
	def, ok := defs.TowerDefs[enemy.LastHitDef]
	if !ok || def.Behavior != defs.BehaviorThrall || def.Params == nil {
		return
	}
	if !g.Rng.Chance(def.Params.ThrallChance) {
		return
	}
	pos, ok := g.ECS.Positions[id]
	if !ok {
		return
	}

	killer, ok := g.ECS.Towers[enemy.LastHitBy]
	if !ok {
		return
	}
	duration := def.Params.ThrallDuration
	if duration <= 0 {
		duration = 8
	}

	tid := g.ECS.NewEntity()
	g.ECS.Positions[tid] = &component.Position{Pos: pos.Pos}
	g.ECS.Thralls[tid] = &component.Thrall{
		Damage:    killer.Damage,
		FireRate:  killer.FireRate,
		Range:     killer.Range,
		Remaining: duration,
		Source:    enemy.LastHitBy,
		SourceDef: enemy.LastHitDef,
	}
}

type gameEventListener struct {
	game *Game
}

func (l *gameEventListener) OnEvent(e event.Event) {
	g := l.game
	switch e.Type {
	case event.EnemyBreached:
		data, ok := e.Data.(event.BreachData)
		if !ok {
			return
		}
		// Диспетчеризация идёт до удаления сущности, компоненты ещё на месте.
		if enemy, okE := g.ECS.Enemies[data.ID]; okE {
			if health, okH := g.ECS.Healths[data.ID]; okH {
				g.captureEnemyRecord(data.ID, enemy, health, true)
			}
		}
		g.lives -= data.Damage
		if g.lives <= 0 {
			g.lives = 0
			if !g.defeated {
				g.defeated = true
				g.combatActive = false
				logger.Log.WithField("wave", g.WaveNumber()).Info("defense breached, game over")
				g.EventDispatcher.Dispatch(event.Event{Type: event.GameDefeat})
			}
		}
	case event.WaveEnded:
		data, ok := e.Data.(event.WaveData)
		if !ok {
			return
		}
		if !g.endless && !g.victorious && data.Number >= len(defs.Waves) {
			g.victorious = true
			logger.Log.WithField("waves", data.Number).Info("all waves cleared")
			g.EventDispatcher.Dispatch(event.Event{Type: event.GameVictory})
		}
	}
}

// StartWave запускает следующую волну. Отказывает, пока текущая не
// закончена, после поражения и после победы. В бесконечном режиме переход
// через конец списка волн открывает новый цикл и снимает чекпоинт.
func (g *Game) StartWave() (int, bool) {
	if g.defeated || g.victorious {
		return 0, false
	}
	if g.ECS.Wave.Phase != component.WaveIdle {
		return 0, false
	}
	if g.nextWaveIndex >= len(defs.Waves) {
		if !g.endless {
			return 0, false
		}
		g.cycle++
		g.nextWaveIndex = 0
		g.captureCheckpoint()
	}

	index := g.nextWaveIndex
	g.nextWaveIndex++
	g.WaveSystem.Begin(index, g.cycle)
	return g.ECS.Wave.Number, true
}

func (g *Game) addEnergy(amount float64) {
	g.energy += amount
	if g.energy > config.EnergyCap {
		g.energy = config.EnergyCap
	}
}

// SetCombatActive включает и выключает боевую часть симуляции. Выключение
// замораживает спавн, движение и стрельбу, но не физику маятников и колец.
func (g *Game) SetCombatActive(active bool) {
	if g.defeated {
		active = false
	}
	g.combatActive = active
}

// SetSpeedLevel выбирает уровень скорости: 0 — x1, 1 — x2, 2 — x4.
// Значение вне диапазона зажимается.
func (g *Game) SetSpeedLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > config.SpeedLevels-1 {
		level = config.SpeedLevels - 1
	}
	g.speedLevel = level
	g.speedMultiplier = math.Pow(2, float64(level))
}

// SpawnCrystal ставит кристалл-манекен: неподвижную цель с огромным
// запасом здоровья для замера урона.
func (g *Game) SpawnCrystal(pos geom.Vec2) types.EntityID {
	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{Pos: pos}
	g.ECS.Healths[id] = &component.Health{Value: 1e9, Max: 1e9}
	g.ECS.Crystals[id] = &component.Crystal{}
	return id
}

// FocusEnemy наводит общий фокус всех башен на врага. Ноль снимает фокус.
func (g *Game) FocusEnemy(id types.EntityID) {
	g.CombatSystem.SetFocusEnemy(id)
}

// --- Доступ к состоянию партии ---

func (g *Game) GameTime() float64     { return g.gameTime }
func (g *Game) Energy() float64       { return g.energy }
func (g *Game) Lives() int            { return g.lives }
func (g *Game) Cycle() int            { return g.cycle }
func (g *Game) Endless() bool         { return g.endless }
func (g *Game) CombatActive() bool    { return g.combatActive }
func (g *Game) SpeedLevel() int       { return g.speedLevel }
func (g *Game) Defeated() bool        { return g.defeated }
func (g *Game) Victorious() bool      { return g.victorious }
func (g *Game) StageID() string       { return g.stageID }
func (g *Game) WaveNumber() int       { return g.ECS.Wave.Number }
func (g *Game) WaveInProgress() bool  { return g.ECS.Wave.Phase != component.WaveIdle }
func (g *Game) HasCheckpoint() bool   { return g.checkpoint != nil && !g.checkpoint.used }
func (g *Game) Network() *SupplyNetwork { return g.network }
