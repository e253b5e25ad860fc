// internal/interfaces/game.go
package interfaces

// Session — срез игровых операций для слоёв поверх симуляции: машины
// состояний и HUD. Реализуется app.Game; узкий интерфейс позволяет
// состоянию паузы не знать про игру целиком.
type Session interface {
	StartWave() (int, bool)
	SetCombatActive(active bool)
	CombatActive() bool
	SetSpeedLevel(level int)
	SpeedLevel() int
	Defeated() bool
	Victorious() bool
	HasCheckpoint() bool
	RetryFromCheckpoint() (bool, string)
}
