// internal/defs/waves.go
package defs

// Waves — встроенная последовательность волн. Группы внутри волны
// спавнятся в объявленном порядке, босс — строго после всех групп.
// После последней волны бесконечный режим начинает список заново
// с множителями цикла.
var Waves []WaveDefinition

var defaultWaves = []WaveDefinition{
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_MOTE", Count: 6, Interval: 1.5},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_MOTE", Count: 6, Interval: 1.2},
		{EnemyID: "ENEMY_DASH", Count: 4, Interval: 1.5},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_DASH", Count: 8, Interval: 1.1},
		{EnemyID: "ENEMY_RUNNER", Count: 4, Interval: 0.8},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_TANK", Count: 4, Interval: 2.2},
		{EnemyID: "ENEMY_MOTE", Count: 10, Interval: 0.7},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_WISP", Count: 8, Interval: 1.0},
		{EnemyID: "ENEMY_WARD", Count: 5, Interval: 1.6},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_RUNNER", Count: 10, Interval: 0.6},
	}, Boss: &BossSpec{EnemyID: "BOSS_GLYPH"}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_TANK", Count: 6, Interval: 1.8},
		{EnemyID: "ENEMY_WARD", Count: 6, Interval: 1.3},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_SIGIL", Count: 4, Interval: 2.4},
		{EnemyID: "ENEMY_WISP", Count: 10, Interval: 0.8},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_RUNNER", Count: 14, Interval: 0.5, SpeedFactor: 1.15},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_TANK", Count: 8, Interval: 1.5},
		{EnemyID: "ENEMY_SIGIL", Count: 5, Interval: 2.0},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_WARD", Count: 8, Interval: 1.0, HealthFactor: 1.3},
		{EnemyID: "ENEMY_WISP", Count: 12, Interval: 0.6},
	}},
	{Groups: []EnemyGroup{
		{EnemyID: "ENEMY_SIGIL", Count: 8, Interval: 1.6},
	}, Boss: &BossSpec{EnemyID: "BOSS_OBELISK"}},
}
