// cmd/simserver/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"glyph-defense/internal/app"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/server"
	"glyph-defense/internal/stats"
	"glyph-defense/pkg/logger"
)

var (
	stageID = flag.String("stage", defs.DefaultStageID, "stage to run")
	port    = flag.String("port", "8080", "http port")
	endless = flag.Bool("endless", false, "infinite wave cycling with scaling")
	seed    = flag.Int64("seed", 0, "prng seed, 0 means time-based")
)

func main() {
	flag.Parse()
	logger.Init()

	if _, ok := defs.StageDefs[*stageID]; !ok {
		ids := make([]string, 0, len(defs.StageDefs))
		for id := range defs.StageDefs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintf(os.Stderr, "unknown stage %q, available: %v\n", *stageID, ids)
		os.Exit(1)
	}

	game, err := app.NewGame(*stageID, app.Options{Endless: *endless, Seed: *seed})
	if err != nil {
		logger.Log.WithError(err).Fatal("game init failed")
	}

	recorder, _ := game.Recorder.(*stats.MemoryRecorder)
	runner := server.NewRunner(game, recorder)
	go runner.Run()

	logger.Log.WithFields(logrus.Fields{
		"stage":   *stageID,
		"endless": *endless,
	}).Info("headless simulation started")

	if err := server.New(runner, *port).Run(); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
