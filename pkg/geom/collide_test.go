// pkg/geom/collide_test.go
package geom

import (
	"math"
	"testing"
)

func TestDistancePointToSegment(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 0}
	cases := []struct {
		name string
		p    Vec2
		want float64
	}{
		{"above middle", Vec2{5, 3}, 3},
		{"beyond end", Vec2{14, 0}, 4},
		{"before start", Vec2{-3, 4}, 5},
		{"on segment", Vec2{7, 0}, 0},
	}
	for _, c := range cases {
		if got := DistancePointToSegment(c.p, a, b); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%s: got %f, want %f", c.name, got, c.want)
		}
	}
}

// Снаряд 2000 px/s при кадре 0.1 s проходит 200 px за шаг. Проверка по
// отрезку обязана поймать врага радиусом 10 в середине шага; проверка
// только конечной точки его пропустила бы.
func TestSegmentCircleHitNoTunneling(t *testing.T) {
	start := Vec2{X: 0, Y: 0}
	end := Vec2{X: 2000 * 0.1, Y: 0}
	enemy := Vec2{X: 100, Y: 0}
	const radius = 10.0

	if end.Distance(enemy) <= radius {
		t.Fatal("bad setup: endpoint check would also hit")
	}
	tt, ok := SegmentCircleHit(start, end, enemy, radius)
	if !ok {
		t.Fatal("fast projectile tunneled through enemy")
	}
	hit := start.Lerp(end, tt)
	if math.Abs(hit.X-90) > 1e-6 {
		t.Errorf("entry point X = %f, want 90 (circle edge)", hit.X)
	}
}

func TestSegmentCircleHit(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Vec2
		c      Vec2
		r      float64
		ok     bool
		wantT  float64
		checkT bool
	}{
		{"start inside", Vec2{0, 0}, Vec2{10, 0}, Vec2{2, 0}, 5, true, 0, true},
		{"miss above", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 8}, 5, false, 0, false},
		{"circle behind", Vec2{0, 0}, Vec2{10, 0}, Vec2{-20, 0}, 5, false, 0, false},
		{"circle beyond", Vec2{0, 0}, Vec2{10, 0}, Vec2{30, 0}, 5, false, 0, false},
		{"tangent", Vec2{0, 0}, Vec2{10, 0}, Vec2{5, 5}, 5, true, 0.5, true},
		{"zero length miss", Vec2{3, 3}, Vec2{3, 3}, Vec2{10, 10}, 2, false, 0, false},
	}
	for _, c := range cases {
		tt, ok := SegmentCircleHit(c.a, c.b, c.c, c.r)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if c.checkT && math.Abs(tt-c.wantT) > 1e-6 {
			t.Errorf("%s: t = %f, want %f", c.name, tt, c.wantT)
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}
