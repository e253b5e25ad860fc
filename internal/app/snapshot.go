// internal/app/snapshot.go
package app

import (
	"sort"

	"glyph-defense/internal/component"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/types"
)

// Snapshot — кадр симуляции по значению: всё, что нужно для отрисовки
// или трансляции, без указателей внутрь ECS.
type Snapshot struct {
	Time          float64 `json:"time"`
	WaveNumber    int     `json:"wave_number"`
	Cycle         int     `json:"cycle"`
	WavePhase     string  `json:"wave_phase"`
	Energy        float64 `json:"energy"`
	Lives         int     `json:"lives"`
	CombatActive  bool    `json:"combat_active"`
	SpeedLevel    int     `json:"speed_level"`
	Defeated      bool    `json:"defeated"`
	Victorious    bool    `json:"victorious"`
	HasCheckpoint bool    `json:"has_checkpoint"`

	Enemies     []EnemySnapshot      `json:"enemies"`
	Towers      []TowerSnapshot      `json:"towers"`
	Thralls     []ThrallSnapshot     `json:"thralls,omitempty"`
	Crystals    []CrystalSnapshot    `json:"crystals,omitempty"`
	Projectiles []ProjectileSnapshot `json:"projectiles,omitempty"`
	Beams       []BeamSnapshot       `json:"beams,omitempty"`
	Mines       []MineSnapshot       `json:"mines,omitempty"`
	Links       []Link               `json:"links,omitempty"`
}

type EnemySnapshot struct {
	ID        types.EntityID `json:"id"`
	DefID     string         `json:"def_id"`
	Symbol    string         `json:"symbol"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Health    float64        `json:"health"`
	MaxHealth float64        `json:"max_health"`
	Progress  float64        `json:"progress"`
	Boss      bool           `json:"boss,omitempty"`
}

type TowerSnapshot struct {
	ID       types.EntityID           `json:"id"`
	DefID    string                   `json:"def_id"`
	Glyph    string                   `json:"glyph"`
	X        float64                  `json:"x"`
	Y        float64                  `json:"y"`
	Range    float64                  `json:"range"`
	Charge   float64                  `json:"charge,omitempty"`
	RingTier int                      `json:"ring_tier,omitempty"`
	Priority component.TargetPriority `json:"priority"`
}

type ThrallSnapshot struct {
	ID        types.EntityID `json:"id"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Remaining float64        `json:"remaining"`
}

type CrystalSnapshot struct {
	ID     types.EntityID `json:"id"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Health float64        `json:"health"`
}

type ProjectileSnapshot struct {
	ID   types.EntityID `json:"id"`
	Kind string         `json:"kind"`
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
}

type BeamSnapshot struct {
	FromX float64 `json:"from_x"`
	FromY float64 `json:"from_y"`
	ToX   float64 `json:"to_x"`
	ToY   float64 `json:"to_y"`
}

type MineSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Snapshot собирает кадр. Срезы отсортированы по идентификаторам, чтобы
// повторный снимок того же состояния был байт в байт тем же.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Time:          g.gameTime,
		WaveNumber:    g.ECS.Wave.Number,
		Cycle:         g.cycle,
		WavePhase:     g.ECS.Wave.Phase.String(),
		Energy:        g.energy,
		Lives:         g.lives,
		CombatActive:  g.combatActive,
		SpeedLevel:    g.speedLevel,
		Defeated:      g.defeated,
		Victorious:    g.victorious,
		HasCheckpoint: g.HasCheckpoint(),
		Links:         g.network.Links(),
	}

	for id, enemy := range g.ECS.Enemies {
		pos, okP := g.ECS.Positions[id]
		health, okH := g.ECS.Healths[id]
		if !okP || !okH {
			continue
		}
		progress := 0.0
		if follow, ok := g.ECS.PathFollow[id]; ok {
			progress = follow.Progress
		}
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID: id, DefID: enemy.DefID, Symbol: enemy.Symbol,
			X: pos.Pos.X, Y: pos.Pos.Y,
			Health: health.Value, MaxHealth: health.Max,
			Progress: progress, Boss: enemy.Boss,
		})
	}

	for id, tower := range g.ECS.Towers {
		pos, ok := g.ECS.Positions[id]
		if !ok {
			continue
		}
		glyph := ""
		if def, ok := defs.TowerDefs[tower.DefID]; ok {
			glyph = def.Glyph
		}
		snap.Towers = append(snap.Towers, TowerSnapshot{
			ID: id, DefID: tower.DefID, Glyph: glyph,
			X: pos.Pos.X, Y: pos.Pos.Y,
			Range: tower.Range, Charge: tower.Charge,
			RingTier: tower.RingTier, Priority: tower.Priority,
		})
	}

	for id, thrall := range g.ECS.Thralls {
		pos, ok := g.ECS.Positions[id]
		if !ok {
			continue
		}
		snap.Thralls = append(snap.Thralls, ThrallSnapshot{
			ID: id, X: pos.Pos.X, Y: pos.Pos.Y, Remaining: thrall.Remaining,
		})
	}

	for id := range g.ECS.Crystals {
		pos, okP := g.ECS.Positions[id]
		health, okH := g.ECS.Healths[id]
		if !okP || !okH {
			continue
		}
		snap.Crystals = append(snap.Crystals, CrystalSnapshot{
			ID: id, X: pos.Pos.X, Y: pos.Pos.Y, Health: health.Value,
		})
	}

	for id, proj := range g.ECS.Projectiles {
		if beam, ok := g.ECS.Beams[id]; ok {
			snap.Beams = append(snap.Beams, BeamSnapshot{
				FromX: beam.From.X, FromY: beam.From.Y,
				ToX: beam.To.X, ToY: beam.To.Y,
			})
			continue
		}
		pos, ok := g.ECS.Positions[id]
		if !ok {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			ID: id, Kind: string(proj.Kind), X: pos.Pos.X, Y: pos.Pos.Y,
		})
	}

	for _, layer := range g.ECS.MineLayers {
		for _, mine := range layer.Mines {
			snap.Mines = append(snap.Mines, MineSnapshot{
				X: mine.Pos.X, Y: mine.Pos.Y, Radius: mine.Radius,
			})
		}
	}

	sort.Slice(snap.Enemies, func(i, j int) bool { return snap.Enemies[i].ID < snap.Enemies[j].ID })
	sort.Slice(snap.Towers, func(i, j int) bool { return snap.Towers[i].ID < snap.Towers[j].ID })
	sort.Slice(snap.Thralls, func(i, j int) bool { return snap.Thralls[i].ID < snap.Thralls[j].ID })
	sort.Slice(snap.Crystals, func(i, j int) bool { return snap.Crystals[i].ID < snap.Crystals[j].ID })
	sort.Slice(snap.Projectiles, func(i, j int) bool { return snap.Projectiles[i].ID < snap.Projectiles[j].ID })

	return snap
}
