// internal/defs/enemies.go
package defs

import "image/color"

// EnemyDefs is the library of all enemy definitions, mapped by their ID.
var EnemyDefs map[string]EnemyDefinition

func ptr(v float64) *float64 { return &v }

// defaultEnemyDefs — встроенный бестиарий. Symbol — печатный знак врага
// на поле, Defense вычитается из урона прорыва.
var defaultEnemyDefs = []EnemyDefinition{
	{
		ID: "ENEMY_MOTE", Name: "Mote", Symbol: "·",
		Health: 40, Speed: 70, Reward: 4, MoteFactor: 1,
		Visuals: Visuals{Color: color.RGBA{210, 210, 220, 255}, RadiusFactor: 0.7, StrokeWidth: 1},
	},
	{
		ID: "ENEMY_DASH", Name: "Dash", Symbol: "–",
		Health: 70, Speed: 95, Reward: 6, MoteFactor: 1,
		Visuals: Visuals{Color: color.RGBA{190, 220, 190, 255}, RadiusFactor: 0.8, StrokeWidth: 1},
	},
	{
		ID: "ENEMY_RUNNER", Name: "Runner", Symbol: "»",
		Health: 55, Speed: 150, Reward: 7, MoteFactor: 1,
		Visuals: Visuals{Color: color.RGBA{160, 230, 160, 255}, RadiusFactor: 0.75, StrokeWidth: 1},
	},
	{
		ID: "ENEMY_TANK", Name: "Tank", Symbol: "■",
		Health: 260, Speed: 45, Reward: 14, MoteFactor: 1.5, Defense: ptr(2),
		Visuals: Visuals{Color: color.RGBA{170, 150, 150, 255}, RadiusFactor: 1.1, StrokeWidth: 2},
	},
	{
		ID: "ENEMY_WARD", Name: "Ward", Symbol: "◊",
		Health: 120, Speed: 80, Reward: 10, MoteFactor: 1.2, Defense: ptr(5),
		Visuals: Visuals{Color: color.RGBA{150, 180, 230, 255}, RadiusFactor: 0.9, StrokeWidth: 2},
	},
	{
		ID: "ENEMY_WISP", Name: "Wisp", Symbol: "~",
		Health: 90, Speed: 110, Reward: 9, MoteFactor: 1, Direct: true,
		Visuals: Visuals{Color: color.RGBA{230, 230, 170, 255}, RadiusFactor: 0.8, StrokeWidth: 1},
	},
	{
		ID: "ENEMY_SIGIL", Name: "Sigil", Symbol: "§",
		Health: 400, Speed: 60, Reward: 20, MoteFactor: 2,
		Visuals: Visuals{Color: color.RGBA{220, 170, 220, 255}, RadiusFactor: 1.0, StrokeWidth: 2},
	},
	{
		ID: "BOSS_GLYPH", Name: "Glyph", Symbol: "Ж",
		Health: 2500, Speed: 38, Reward: 120, MoteFactor: 3, Defense: ptr(3), Boss: true,
		Visuals: Visuals{Color: color.RGBA{255, 140, 60, 255}, RadiusFactor: 1.6, StrokeWidth: 3},
	},
	{
		ID: "BOSS_OBELISK", Name: "Obelisk", Symbol: "Ø",
		Health: 6000, Speed: 30, Reward: 300, MoteFactor: 4, Defense: ptr(6), Boss: true,
		Visuals: Visuals{Color: color.RGBA{255, 90, 90, 255}, RadiusFactor: 1.9, StrokeWidth: 3},
	},
}
