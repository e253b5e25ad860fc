// cmd/mapshot/main.go
//
// Утилита для отрисовки сцен в PNG: маршрут, опорные точки и отметки
// прогресса. Удобно проверять новые наборы вейпоинтов без запуска игры.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/fogleman/gg"

	"glyph-defense/internal/assets"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

var (
	stageID = flag.String("stage", "", "stage to render, empty renders all")
	output  = flag.String("o", "", "output png, default <stage>.png")
)

func main() {
	flag.Parse()
	logger.Init()

	ids := make([]string, 0, len(defs.StageDefs))
	for id := range defs.StageDefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if *stageID != "" {
		if _, ok := defs.StageDefs[*stageID]; !ok {
			fmt.Fprintf(os.Stderr, "unknown stage %q, available: %v\n", *stageID, ids)
			os.Exit(1)
		}
		ids = []string{*stageID}
	}

	for _, id := range ids {
		out := *output
		if out == "" || len(ids) > 1 {
			out = id + ".png"
		}
		if err := renderStage(defs.StageDefs[id], out); err != nil {
			logger.Log.WithError(err).WithField("stage", id).Fatal("render failed")
		}
		logger.Log.WithField("file", out).Info("stage rendered")
	}
}

func renderStage(stage defs.StageDefinition, out string) error {
	path := geom.BuildPath(stage.Waypoints, config.PathSubdivisions)

	dc := gg.NewContext(config.ScreenWidth, config.ScreenHeight)
	dc.SetColor(config.BackgroundColor)
	dc.Clear()

	// Сплайн маршрута.
	dc.SetColor(config.PathColor)
	dc.SetLineWidth(4)
	for i := 1; i < len(path.Points); i++ {
		a, b := path.Points[i-1], path.Points[i]
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	}
	dc.Stroke()

	// Опорные точки поверх сплайна.
	dc.SetRGBA(1, 1, 1, 0.35)
	for _, wp := range stage.Waypoints {
		dc.DrawCircle(wp.X, wp.Y, 5)
	}
	dc.Fill()

	// Отметки каждые 10% пути с подписью прогресса.
	dc.SetFontFace(assets.Face(13))
	for tick := 1; tick < 10; tick++ {
		progress := float64(tick) / 10
		pt := path.PointAt(progress)
		dc.SetRGBA(0.5, 0.7, 0.9, 0.9)
		dc.DrawCircle(pt.Pos.X, pt.Pos.Y, 3)
		dc.Fill()
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", tick*10), pt.Pos.X, pt.Pos.Y-12, 0.5, 0.5)
	}

	// Вход и выход.
	start, end := path.Start(), path.End()
	dc.SetRGBA(0.4, 0.9, 0.5, 1)
	dc.DrawCircle(start.X, start.Y, 9)
	dc.Fill()
	dc.SetRGBA(0.9, 0.4, 0.4, 1)
	dc.DrawCircle(end.X, end.Y, 9)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(assets.Face(22))
	dc.DrawStringAnchored(fmt.Sprintf("%s  (%.0f px)", stage.Name, path.TotalLength), float64(config.ScreenWidth)/2, 36, 0.5, 0.5)

	return dc.SavePNG(out)
}
