// internal/server/runner_test.go
package server

import (
	"testing"

	"glyph-defense/internal/app"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/stats"
	"glyph-defense/pkg/geom"
)

const runnerStageID = "STAGE_RUNNERLINE"

// newTestRunner собирает раннер над партией на прямом маршруте,
// без запуска цикла: команды применяются напрямую через apply.
func newTestRunner(t *testing.T) (*Runner, *app.Game) {
	t.Helper()
	defs.StageDefs[runnerStageID] = defs.StageDefinition{
		ID: runnerStageID, Name: "Runnerline",
		Waypoints: []geom.Vec2{{X: -40, Y: 300}, {X: 1320, Y: 300}},
	}
	t.Cleanup(defs.ResetDefaults)

	recorder := stats.NewMemoryRecorder()
	game, err := app.NewGame(runnerStageID, app.Options{Seed: 1, Recorder: recorder})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return NewRunner(game, recorder), game
}

func TestApplyRoutesCommandsToGame(t *testing.T) {
	r, game := newTestRunner(t)

	place := r.apply(Command{Action: "place_tower", Def: "TOWER_ALPHA", X: 640, Y: 360})
	if !place.OK || place.ID == 0 {
		t.Fatalf("place_tower = %+v", place)
	}
	again := r.apply(Command{Action: "place_tower", Def: "TOWER_ALPHA", X: 640, Y: 360})
	if again.OK || again.Reason == "" {
		t.Errorf("second placement on the spot = %+v, want refusal with reason", again)
	}

	if res := r.apply(Command{Action: "set_priority", Tower: place.ID, Priority: "strongest"}); !res.OK {
		t.Errorf("set_priority = %+v", res)
	}
	if res := r.apply(Command{Action: "set_priority", Tower: 9999, Priority: "strongest"}); res.OK {
		t.Error("set_priority accepted an unknown tower")
	}

	wave := r.apply(Command{Action: "start_wave"})
	if !wave.OK || wave.Wave != 1 {
		t.Fatalf("start_wave = %+v", wave)
	}
	if res := r.apply(Command{Action: "start_wave"}); res.OK {
		t.Error("start_wave accepted mid-wave")
	}

	if res := r.apply(Command{Action: "set_speed", Level: 2}); !res.OK || game.SpeedLevel() != 2 {
		t.Errorf("set_speed = %+v, game level = %d", res, game.SpeedLevel())
	}
	if res := r.apply(Command{Action: "set_combat", Active: false}); !res.OK || game.CombatActive() {
		t.Errorf("set_combat = %+v, combat still on", res)
	}

	crystal := r.apply(Command{Action: "spawn_crystal", X: 400, Y: 500})
	if !crystal.OK || crystal.ID == 0 {
		t.Errorf("spawn_crystal = %+v", crystal)
	}

	sell := r.apply(Command{Action: "sell_tower", Tower: place.ID})
	if !sell.OK || sell.Refund != 25 {
		t.Errorf("sell_tower = %+v, want refund 25", sell)
	}

	if res := r.apply(Command{Action: "retry_checkpoint"}); res.OK {
		t.Error("retry_checkpoint accepted without a checkpoint")
	}
	if res := r.apply(Command{Action: "warp_time"}); res.OK || res.Reason != "unknown action" {
		t.Errorf("unknown action result = %+v", res)
	}
}

func TestPublishBroadcastsAndCachesSnapshot(t *testing.T) {
	r, game := newTestRunner(t)
	_, ch := r.hub.Register()

	place := r.apply(Command{Action: "place_tower", Def: "TOWER_ALPHA", X: 640, Y: 360})
	if !place.OK {
		t.Fatalf("place_tower = %+v", place)
	}
	game.Update(0.016)
	r.publish()

	snap := r.LastSnapshot()
	if len(snap.Towers) != 1 || snap.Towers[0].ID != place.ID {
		t.Errorf("cached snapshot towers = %+v, want the placed one", snap.Towers)
	}
	if snap.Energy != 225 {
		t.Errorf("snapshot energy = %f, want 250 - 25", snap.Energy)
	}

	select {
	case frame := <-ch:
		if frame.Type != "snapshot" || frame.Snapshot == nil {
			t.Fatalf("frame = %+v, want a snapshot", frame)
		}
		if len(frame.Snapshot.Towers) != 1 {
			t.Errorf("broadcast towers = %d, want 1", len(frame.Snapshot.Towers))
		}
	default:
		t.Fatal("publish broadcast nothing")
	}

	if view := r.statsSnapshot(); view.Totals == nil {
		t.Error("stats view not refreshed on publish")
	}
}

// Полная очередь не блокирует писателя: лишняя команда тихо падает.
func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	r, _ := newTestRunner(t)
	for i := 0; i < cap(r.commands)+10; i++ {
		r.Enqueue(Command{Action: "start_wave"})
	}
	if got := len(r.commands); got != cap(r.commands) {
		t.Errorf("queued commands = %d, want full buffer %d", got, cap(r.commands))
	}
}
