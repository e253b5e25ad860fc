// internal/event/types.go
package event

import "glyph-defense/internal/types"

const (
	WaveStarted        EventType = "WaveStarted"        // Волна пошла
	WaveEnded          EventType = "WaveEnded"          // Волна зачищена
	EnemyKilled        EventType = "EnemyKilled"        // Враг уничтожен башней
	EnemyBreached      EventType = "EnemyBreached"      // Враг дошёл до выхода
	TowerPlaced        EventType = "TowerPlaced"        // Башня построена
	TowerRemoved       EventType = "TowerRemoved"       // Башня продана
	TowerRekeyed       EventType = "TowerRekeyed"       // Слияние/понижение сменило тип башни
	CheckpointCaptured EventType = "CheckpointCaptured" // Снят чекпоинт цикла
	GameDefeat         EventType = "GameDefeat"
	GameVictory        EventType = "GameVictory"
)

// KillData — полезная нагрузка EnemyKilled.
type KillData struct {
	ID     types.EntityID
	Reward float64
	Killer types.EntityID // башня, нанёсшая последний удар (0 — среда)
}

// BreachData — полезная нагрузка EnemyBreached.
type BreachData struct {
	ID     types.EntityID
	Damage int
}

// WaveData — полезная нагрузка WaveStarted/WaveEnded.
type WaveData struct {
	Number int
	Cycle  int
}
