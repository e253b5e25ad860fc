// internal/app/tower_management.go
package app

import (
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/event"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// PlaceTower пытается поставить башню указанного типа в точку. Возвращает
// идентификатор и пустую причину при успехе, иначе ноль и причину отказа.
func (g *Game) PlaceTower(defID string, pos geom.Vec2) (types.EntityID, bool, string) {
	def, ok := defs.TowerDefs[defID]
	if !ok {
		return 0, false, "unknown tower type"
	}
	if def.Prestige {
		return 0, false, "prestige tower cannot be built directly"
	}
	if g.energy < def.BaseCost {
		return 0, false, "insufficient energy"
	}
	if reason := g.placementBlocked(pos); reason != "" {
		return 0, false, reason
	}

	g.energy -= def.BaseCost

	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{Pos: pos}
	tower := &component.Tower{
		DefID:        defID,
		BaseDamage:   def.Damage,
		BaseFireRate: def.FireRate,
		BaseRange:    def.Range,
		Damage:       def.Damage,
		FireRate:     def.FireRate,
		Range:        def.Range,
		Priority:     component.TargetPriority(def.DefaultPriority),
		Invested:     []float64{def.BaseCost},
	}
	if tower.Priority == "" {
		tower.Priority = component.PriorityFirst
	}
	if def.Behavior == defs.BehaviorRings {
		tower.RingTier = 1
	}
	g.ECS.Towers[id] = tower

	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: id})
	logger.Log.WithField("def", defID).WithField("id", id).Debug("tower placed")
	return id, true, ""
}

// PlacementReason проверяет точку без постройки: пустая строка — строить
// можно. Нужна превью-подсветке в HUD.
func (g *Game) PlacementReason(pos geom.Vec2) string {
	return g.placementBlocked(pos)
}

// placementBlocked проверяет геометрию точки: в пределах поля и зоны
// строительства, не на маршруте и не вплотную к другой башне.
func (g *Game) placementBlocked(pos geom.Vec2) string {
	if pos.X < 0 || pos.Y < 0 || pos.X > config.ScreenWidth || pos.Y > config.ScreenHeight {
		return "outside the field"
	}

	_, routeDist := g.Path.ClosestProgress(pos)
	if routeDist < config.MinPathClearance {
		return "too close to the route"
	}
	if routeDist > config.BuildRadius {
		return "outside the build area"
	}

	for otherID, otherPos := range g.ECS.Positions {
		if _, isTower := g.ECS.Towers[otherID]; !isTower {
			continue
		}
		if pos.Distance(otherPos.Pos) < config.MinTowerGap {
			return "too close to another tower"
		}
	}
	return ""
}

// SellTower сносит башню и возвращает часть вложенного. Линии снабжения
// башни рвутся в обе стороны.
func (g *Game) SellTower(id types.EntityID) (float64, bool, string) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return 0, false, "no such tower"
	}

	refund := 0.0
	for _, spent := range tower.Invested {
		refund += spent
	}
	refund *= config.SellRefundFactor
	g.addEnergy(refund)

	g.network.Drop(id)
	g.ECS.RemoveEntity(id)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: id})
	logger.Log.WithField("id", id).WithField("refund", refund).Debug("tower sold")
	return refund, true, ""
}

// UpgradeTower поднимает башню на следующую ступень. Башня колец сперва
// добирает кольца до предела и только потом уходит в престиж.
func (g *Game) UpgradeTower(id types.EntityID) (bool, string) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false, "no such tower"
	}
	def, ok := defs.TowerDefs[tower.DefID]
	if !ok {
		return false, "unknown tower type"
	}

	if def.Behavior == defs.BehaviorRings && def.Params != nil && tower.RingTier < def.Params.MaxRings {
		if g.energy < def.BaseCost {
			return false, "insufficient energy"
		}
		g.energy -= def.BaseCost
		tower.RingTier++
		tower.Invested = append(tower.Invested, def.BaseCost)
		logger.Log.WithField("id", id).WithField("rings", tower.RingTier).Debug("ring added")
		return true, ""
	}

	if def.NextTierID == "" {
		return false, "no further tier"
	}
	next, ok := defs.TowerDefs[def.NextTierID]
	if !ok {
		return false, "unknown next tier"
	}
	if g.energy < next.BaseCost {
		return false, "insufficient energy"
	}

	g.energy -= next.BaseCost
	tower.Invested = append(tower.Invested, next.BaseCost)
	g.rekeyTower(id, tower, &next)
	return true, ""
}

// DemoteTower откатывает последнее улучшение с возвратом его стоимости.
// Кольца снимаются раньше ступеней.
func (g *Game) DemoteTower(id types.EntityID) (bool, string) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false, "no such tower"
	}
	def, ok := defs.TowerDefs[tower.DefID]
	if !ok {
		return false, "unknown tower type"
	}
	if len(tower.Invested) <= 1 {
		return false, "already at base tier"
	}

	last := tower.Invested[len(tower.Invested)-1]
	tower.Invested = tower.Invested[:len(tower.Invested)-1]
	g.addEnergy(last * config.SellRefundFactor)

	if def.Behavior == defs.BehaviorRings && tower.RingTier > 1 {
		tower.RingTier--
		return true, ""
	}

	if def.PreviousTierID == "" {
		return false, "no previous tier"
	}
	prev, ok := defs.TowerDefs[def.PreviousTierID]
	if !ok {
		return false, "unknown previous tier"
	}
	g.rekeyTower(id, tower, &prev)
	return true, ""
}

// rekeyTower переводит башню на другое определение: базовые характеристики
// берутся заново, накопленный заряд и приоритет сохраняются.
func (g *Game) rekeyTower(id types.EntityID, tower *component.Tower, def *defs.TowerDefinition) {
	tower.DefID = def.ID
	tower.BaseDamage = def.Damage
	tower.BaseFireRate = def.FireRate
	tower.BaseRange = def.Range
	tower.Damage = def.Damage
	tower.FireRate = def.FireRate
	tower.Range = def.Range
	tower.Cooldown = 0
	if def.Behavior == defs.BehaviorRings && tower.RingTier < 1 {
		tower.RingTier = 1
	}

	// Состояние прежнего архетипа больше не имеет смысла.
	delete(g.ECS.Pendulums, id)
	delete(g.ECS.Orbitals, id)
	delete(g.ECS.BeamSpinners, id)
	delete(g.ECS.RingSpinners, id)
	delete(g.ECS.MineLayers, id)

	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerRekeyed, Data: id})
	logger.Log.WithField("id", id).WithField("def", def.ID).Debug("tower rekeyed")
}

// SetTargetPriority меняет политику выбора цели. Неизвестная политика —
// тихий отказ.
func (g *Game) SetTargetPriority(id types.EntityID, priority component.TargetPriority) bool {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return false
	}
	if priority != component.PriorityFirst && priority != component.PriorityStrongest {
		return false
	}
	tower.Priority = priority
	return true
}

// SetManualTarget приказывает башне бить конкретного врага, пока тот жив
// и в радиусе. Ноль снимает приказ.
func (g *Game) SetManualTarget(towerID, enemyID types.EntityID) bool {
	tower, ok := g.ECS.Towers[towerID]
	if !ok {
		return false
	}
	if enemyID != 0 {
		if _, isEnemy := g.ECS.Enemies[enemyID]; !isEnemy {
			return false
		}
	}
	tower.ManualTarget = enemyID
	return true
}

// FocusCrystalTower наводит башню на кристалл-манекен. Ноль снимает фокус.
func (g *Game) FocusCrystalTower(towerID, crystalID types.EntityID) bool {
	tower, ok := g.ECS.Towers[towerID]
	if !ok {
		return false
	}
	if crystalID != 0 {
		if _, isCrystal := g.ECS.Crystals[crystalID]; !isCrystal {
			return false
		}
	}
	tower.FocusCrystal = crystalID
	return true
}

// ConnectTowers проводит линию снабжения от одной башни к другой.
func (g *Game) ConnectTowers(from, to types.EntityID) (bool, string) {
	fromTower, ok := g.ECS.Towers[from]
	if !ok {
		return false, "no such source tower"
	}
	if _, ok := g.ECS.Towers[to]; !ok {
		return false, "no such receiving tower"
	}
	if from == to {
		return false, "tower cannot feed itself"
	}

	fromPos, okF := g.ECS.Positions[from]
	toPos, okT := g.ECS.Positions[to]
	if !okF || !okT {
		return false, "tower has no position"
	}
	if fromPos.Pos.Distance(toPos.Pos) > config.LinkRange {
		return false, "towers too far apart"
	}
	if g.network.WouldCycle(from, to) {
		return false, "link would close a cycle"
	}

	g.network.Connect(from, to)
	fromTower.IdleTime = 0
	logger.Log.WithField("from", from).WithField("to", to).Debug("supply link set")
	return true, ""
}

// DisconnectTower снимает исходящую линию снабжения башни.
func (g *Game) DisconnectTower(from types.EntityID) {
	g.network.Disconnect(from)
}
