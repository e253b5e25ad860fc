// internal/defs/stages.go
package defs

import "glyph-defense/pkg/geom"

// StageDefs — встроенные карты, ключ — ID сцены.
var StageDefs map[string]StageDefinition

// DefaultStageID открывается, если сцена не указана.
const DefaultStageID = "STAGE_SERPENT"

var defaultStageDefs = []StageDefinition{
	{
		ID: "STAGE_SERPENT", Name: "Serpent",
		Waypoints: []geom.Vec2{
			{X: -40, Y: 160},
			{X: 260, Y: 160},
			{X: 420, Y: 320},
			{X: 260, Y: 520},
			{X: 560, Y: 680},
			{X: 900, Y: 560},
			{X: 980, Y: 320},
			{X: 1180, Y: 200},
			{X: 1320, Y: 200},
		},
	},
	{
		ID: "STAGE_LOOP", Name: "Loop",
		Waypoints: []geom.Vec2{
			{X: 640, Y: -40},
			{X: 640, Y: 220},
			{X: 320, Y: 360},
			{X: 400, Y: 640},
			{X: 760, Y: 720},
			{X: 1000, Y: 520},
			{X: 880, Y: 280},
			{X: 640, Y: 220},
			{X: 640, Y: 1000},
		},
	},
}
