// pkg/geom/path_test.go
package geom

import (
	"math"
	"testing"
)

func testControl() []Vec2 {
	return []Vec2{
		{X: 0, Y: 0},
		{X: 200, Y: 0},
		{X: 200, Y: 150},
		{X: 420, Y: 150},
		{X: 420, Y: 380},
		{X: 80, Y: 380},
	}
}

func TestBuildPathDeduplicatesClosePoints(t *testing.T) {
	control := []Vec2{{0, 0}, {0.1, 0.1}, {0.2, 0}, {100, 0}, {100.3, 0.2}, {200, 0}}
	p := BuildPath(control, 8)
	for i := 1; i < len(p.Points); i++ {
		if d := p.Points[i-1].Distance(p.Points[i]); d < DedupEpsilon {
			t.Fatalf("points %d and %d are %.4f apart, want >= %.1f", i-1, i, d, DedupEpsilon)
		}
	}
}

func TestBuildPathDegenerateInputs(t *testing.T) {
	for name, control := range map[string][]Vec2{
		"nil":    nil,
		"single": {{X: 42, Y: 17}},
	} {
		p := BuildPath(control, 12)
		if p.TotalLength != 0 {
			t.Errorf("%s: TotalLength = %f, want 0", name, p.TotalLength)
		}
		pt := p.PointAt(0.5)
		if pt.Pos != p.Points[0] {
			t.Errorf("%s: PointAt(0.5) = %v, want %v", name, pt.Pos, p.Points[0])
		}
	}
}

func TestPointAtClampsProgress(t *testing.T) {
	p := BuildPath(testControl(), 12)
	if got := p.PointAt(-0.5).Pos; got != p.Start() {
		t.Errorf("PointAt(-0.5) = %v, want start %v", got, p.Start())
	}
	if got := p.PointAt(1.5).Pos; got != p.End() {
		t.Errorf("PointAt(1.5) = %v, want end %v", got, p.End())
	}
}

// Сумма шагов по равномерной сетке прогресса должна сойтись к полной длине
// маршрута: длина дуги монотонна по прогрессу и нигде не «откатывается».
func TestArcLengthMonotonicInProgress(t *testing.T) {
	p := BuildPath(testControl(), 12)
	const n = 500
	walked := 0.0
	prev := p.PointAt(0).Pos
	for i := 1; i <= n; i++ {
		progress := float64(i) / n
		cur := p.PointAt(progress).Pos
		step := prev.Distance(cur)
		expected := p.TotalLength / n
		if step > expected+1e-6 {
			t.Fatalf("step %d: walked %.6f px, expected at most %.6f (chord can only be shorter)", i, step, expected)
		}
		walked += step
		prev = cur
	}
	if math.Abs(walked-p.TotalLength) > p.TotalLength*0.01 {
		t.Errorf("walked %.3f px over full progress range, want ~%.3f", walked, p.TotalLength)
	}
}

func TestClosestProgressRoundTrip(t *testing.T) {
	p := BuildPath(testControl(), 12)
	for i := 0; i <= 20; i++ {
		progress := float64(i) / 20
		q := p.PointAt(progress).Pos
		got, dist := p.ClosestProgress(q)
		if dist > 1e-6 {
			t.Errorf("progress %.2f: point on path reported %.6f px away", progress, dist)
		}
		back := p.PointAt(got).Pos
		if back.Distance(q) > 1e-6 {
			t.Errorf("progress %.2f: round trip drifted to %v from %v", progress, back, q)
		}
	}
}

func TestClosestProgressOffPathPoint(t *testing.T) {
	p := BuildPath([]Vec2{{0, 0}, {100, 0}}, 1)
	progress, dist := p.ClosestProgress(Vec2{X: 50, Y: 30})
	if math.Abs(progress-0.5) > 1e-9 {
		t.Errorf("progress = %f, want 0.5", progress)
	}
	if math.Abs(dist-30) > 1e-9 {
		t.Errorf("dist = %f, want 30", dist)
	}
}
