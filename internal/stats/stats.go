// internal/stats/stats.go
package stats

import (
	"sort"

	"glyph-defense/internal/config"
	"glyph-defense/internal/types"
)

// Recorder — внешний потребитель боевой статистики. Симуляция зовёт его
// из воронки урона; все вызовы происходят в потоке симуляции.
type Recorder interface {
	RecordDamage(at float64, towerDef string, tower, target types.EntityID, amount float64)
	RecordKill(at float64, towerDef string, tower, target types.EntityID, reward float64)
	RecordActiveTime(towerDef string, tower types.EntityID, dt float64)
	CaptureEnemyHistory(rec EnemyRecord)
}

// AttackRecord — одна запись журнала попаданий.
type AttackRecord struct {
	At       float64        `json:"at"`
	TowerDef string         `json:"tower_def"`
	Tower    types.EntityID `json:"tower"`
	Target   types.EntityID `json:"target"`
	Amount   float64        `json:"amount"`
}

// Contribution — вклад типа башни в смерть врага.
type Contribution struct {
	TowerDef string  `json:"tower_def"`
	Amount   float64 `json:"amount"`
}

// EnemyRecord — посмертная запись врага с главными участниками убийства.
type EnemyRecord struct {
	At           float64        `json:"at"`
	ID           types.EntityID `json:"id"`
	DefID        string         `json:"def_id"`
	Symbol       string         `json:"symbol"`
	MaxHealth    float64        `json:"max_health"`
	Reward       float64        `json:"reward"`
	Breached     bool           `json:"breached"`
	Contributors []Contribution `json:"contributors"`
}

// TowerTotals — накопители по одной башне.
type TowerTotals struct {
	DefID      string  `json:"def_id"`
	Damage     float64 `json:"damage"`
	Kills      int     `json:"kills"`
	ActiveTime float64 `json:"active_time"` // секунды с целью в радиусе
}

// MemoryRecorder хранит статистику в памяти с жёсткими потолками:
// бесконечный режим не должен растить журналы без предела.
type MemoryRecorder struct {
	attackLimit  int
	historyLimit int

	attacks []AttackRecord
	history []EnemyRecord
	totals  map[types.EntityID]*TowerTotals
}

// NewMemoryRecorder создаёт рекордер с лимитами из конфигурации.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		attackLimit:  config.StatsAttackLogLimit,
		historyLimit: config.StatsHistoryLimit,
		totals:       make(map[types.EntityID]*TowerTotals),
	}
}

func (r *MemoryRecorder) RecordDamage(at float64, towerDef string, tower, target types.EntityID, amount float64) {
	r.attacks = append(r.attacks, AttackRecord{
		At: at, TowerDef: towerDef, Tower: tower, Target: target, Amount: amount,
	})
	if len(r.attacks) > r.attackLimit {
		r.attacks = r.attacks[len(r.attacks)-r.attackLimit:]
	}
	t := r.totalsFor(tower, towerDef)
	t.Damage += amount
}

func (r *MemoryRecorder) RecordKill(at float64, towerDef string, tower, target types.EntityID, reward float64) {
	t := r.totalsFor(tower, towerDef)
	t.Kills++
}

func (r *MemoryRecorder) RecordActiveTime(towerDef string, tower types.EntityID, dt float64) {
	t := r.totalsFor(tower, towerDef)
	t.ActiveTime += dt
}

func (r *MemoryRecorder) CaptureEnemyHistory(rec EnemyRecord) {
	r.history = append(r.history, rec)
	if len(r.history) > r.historyLimit {
		r.history = r.history[len(r.history)-r.historyLimit:]
	}
}

func (r *MemoryRecorder) totalsFor(tower types.EntityID, towerDef string) *TowerTotals {
	t, ok := r.totals[tower]
	if !ok {
		t = &TowerTotals{DefID: towerDef}
		r.totals[tower] = t
	}
	return t
}

// Attacks возвращает журнал попаданий (не копию: читать в потоке симуляции).
func (r *MemoryRecorder) Attacks() []AttackRecord { return r.attacks }

// History возвращает посмертные записи врагов.
func (r *MemoryRecorder) History() []EnemyRecord { return r.history }

// Totals возвращает накопители по башням.
func (r *MemoryRecorder) Totals() map[types.EntityID]*TowerTotals { return r.totals }

// TopContributors сортирует леджер урона и возвращает largest-first
// не больше config.StatsContributorsTop записей.
func TopContributors(ledger map[string]float64) []Contribution {
	out := make([]Contribution, 0, len(ledger))
	for def, amount := range ledger {
		out = append(out, Contribution{TowerDef: def, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].TowerDef < out[j].TowerDef
	})
	if len(out) > config.StatsContributorsTop {
		out = out[:config.StatsContributorsTop]
	}
	return out
}
