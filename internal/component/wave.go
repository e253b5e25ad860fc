// internal/component/wave.go
package component

// WavePhase — состояние спавнера волны.
type WavePhase int

const (
	WaveIdle      WavePhase = iota // волна не идёт, ждём команды
	WaveSpawning                   // группы ещё выпускают врагов
	WaveExhausted                  // всё заспавнено, ждём зачистки поля
)

func (p WavePhase) String() string {
	switch p {
	case WaveSpawning:
		return "spawning"
	case WaveExhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// Wave — текущее состояние волны. Живёт одно на игру.
type Wave struct {
	Number int // сквозной номер волны, 1-based
	Index  int // индекс в таблице волн, 0-based
	Cycle  int // номер круга бесконечного режима, 0 — первый проход

	Phase WavePhase

	GroupIndex     int
	SpawnedInGroup int
	BossSpawned    bool
	SpawnTimer     float64

	// Множители цикла, применяются к каждому спавну этой волны.
	HealthFactor float64
	RewardFactor float64
	SpeedFactor  float64
}
