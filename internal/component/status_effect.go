// internal/component/status_effect.go
package component

import "glyph-defense/internal/types"

// SlowInstance — одно наложенное замедление.
type SlowInstance struct {
	Multiplier float64 // множитель скорости, например 0.5
	Remaining  float64 // секунд до истечения
}

// SlowContainer хранит замедления по источникам. Повторное попадание того
// же источника обновляет его запись, а не добавляет новую. Эффективный
// множитель — минимум по контейнеру: сильнейшее замедление побеждает,
// эффекты не перемножаются.
type SlowContainer struct {
	Sources map[types.EntityID]SlowInstance
}

// MinMultiplier возвращает действующий множитель скорости.
func (c *SlowContainer) MinMultiplier() float64 {
	min := 1.0
	for _, s := range c.Sources {
		if s.Multiplier < min {
			min = s.Multiplier
		}
	}
	return min
}

// AmpInstance — один усилитель получаемого урона.
type AmpInstance struct {
	Strength  float64 // прибавка к множителю, 0.2 == +20%
	Remaining float64
}

// AmpContainer хранит усилители по источникам. Складываются аддитивно:
// +20% и +30% дают множитель 1.5.
type AmpContainer struct {
	Sources map[types.EntityID]AmpInstance
}

// Multiplier возвращает действующий множитель входящего урона.
func (c *AmpContainer) Multiplier() float64 {
	total := 1.0
	for _, a := range c.Sources {
		total += a.Strength
	}
	return total
}

// DamageLedger — накопленный по типам башен урон этому врагу.
// После смерти врага из него собираются главные участники убийства.
type DamageLedger struct {
	ByTowerDef map[string]float64
}
