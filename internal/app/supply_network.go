// internal/app/supply_network.go
package app

import (
	"sort"

	"glyph-defense/internal/types"
)

// SupplyNetwork хранит линии снабжения: у башни не больше одной исходящей
// линии, входящих — сколько угодно. Граф обязан оставаться ациклическим,
// иначе сгустки гонялись бы по кругу.
type SupplyNetwork struct {
	forward map[types.EntityID]types.EntityID
	alive   func(types.EntityID) bool
}

func NewSupplyNetwork() *SupplyNetwork {
	return &SupplyNetwork{forward: make(map[types.EntityID]types.EntityID)}
}

// BindAliveCheck задаёт проверку существования башни. Без неё сеть
// полагается только на явные Drop.
func (n *SupplyNetwork) BindAliveCheck(alive func(types.EntityID) bool) {
	n.alive = alive
}

// Target возвращает получателя линии башни. Линия на исчезнувшую башню
// тихо самоустраняется.
func (n *SupplyNetwork) Target(from types.EntityID) types.EntityID {
	to, ok := n.forward[from]
	if !ok {
		return 0
	}
	if n.alive != nil && !n.alive(to) {
		delete(n.forward, from)
		return 0
	}
	return to
}

// Connect ставит или переставляет исходящую линию. Валидация на вызывающем.
func (n *SupplyNetwork) Connect(from, to types.EntityID) {
	n.forward[from] = to
}

// Disconnect снимает исходящую линию башни.
func (n *SupplyNetwork) Disconnect(from types.EntityID) {
	delete(n.forward, from)
}

// Drop вычищает башню из сети целиком: её исходящую линию и все входящие.
func (n *SupplyNetwork) Drop(id types.EntityID) {
	delete(n.forward, id)
	for from, to := range n.forward {
		if to == id {
			delete(n.forward, from)
		}
	}
}

// WouldCycle отвечает, замкнёт ли новая линия цикл: идём по исходящим
// линиям от получателя и смотрим, не вернёмся ли к источнику.
func (n *SupplyNetwork) WouldCycle(from, to types.EntityID) bool {
	visited := map[types.EntityID]bool{}
	for current := to; current != 0; current = n.forward[current] {
		if current == from {
			return true
		}
		if visited[current] {
			return false // чужой цикл невозможен, но защищаемся от зацикливания
		}
		visited[current] = true
	}
	return false
}

// Link — одна линия снабжения для снимков и чекпоинтов.
type Link struct {
	From types.EntityID `json:"from"`
	To   types.EntityID `json:"to"`
}

// Links возвращает все линии в устойчивом порядке.
func (n *SupplyNetwork) Links() []Link {
	out := make([]Link, 0, len(n.forward))
	for from, to := range n.forward {
		out = append(out, Link{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}
