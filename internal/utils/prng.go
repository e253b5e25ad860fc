// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNG — обёртка над стандартным генератором, дающая всей симуляции
// предсказуемый (seeded) рандом. Один генератор на партию: повтор с тем
// же сидом воспроизводит те же броски.
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG создаёт генератор с указанным сидом. Ноль означает сид от
// текущего времени.
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Intn возвращает случайное целое в диапазоне [0, n).
func (p *PRNG) Intn(n int) int {
	return p.rng.Intn(n)
}

// Float64 возвращает случайное число в диапазоне [0.0, 1.0).
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// Chance бросает кость: true с вероятностью chance (0 — никогда,
// 1 и выше — всегда).
func (p *PRNG) Chance(chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	return p.rng.Float64() < chance
}
