// internal/component/tower.go
package component

import "glyph-defense/internal/types"

// TargetPriority — политика выбора цели при сканировании радиуса.
type TargetPriority string

const (
	PriorityFirst     TargetPriority = "first"     // максимальный прогресс по маршруту
	PriorityStrongest TargetPriority = "strongest" // максимум здоровья, прогресс как тай-брейк
)

// Tower — боевое состояние башни. Base* — характеристики из определения
// с учётом слияний; Damage/FireRate/Range пересчитываются из Base* каждый
// раз, когда меняется состав аур, и никогда не умножаются повторно.
type Tower struct {
	DefID string

	BaseDamage   float64
	BaseFireRate float64
	BaseRange    float64

	Damage   float64
	FireRate float64
	Range    float64

	Cooldown float64 // секунд до следующего выстрела

	Priority     TargetPriority
	ManualTarget types.EntityID // ручное перенацеливание, 0 — нет
	FocusCrystal types.EntityID // фокус на кристалле-манекене, 0 — нет

	// Charge — накопленный от сгустков снабжения заряд. Тратится на бонус
	// урона у обычных башен и на залпы у коллектора.
	Charge float64

	// Invested — история трат на башню (постройка и слияния) для возврата
	// при продаже и для чекпоинта.
	Invested []float64

	// RingTier — сколько колец накопила башня колец (слияния фи).
	RingTier int

	IdleTime float64 // секунд без цели, порог подкормки коллектора
}
