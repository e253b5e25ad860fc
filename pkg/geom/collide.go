// pkg/geom/collide.go
package geom

import "math"

// ClosestPointOnSegment возвращает ближайшую к p точку отрезка [a, b]
// и параметр t ∈ [0, 1] этой точки на отрезке.
func ClosestPointOnSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t)), t
}

// DistancePointToSegment — расстояние от точки до отрезка.
func DistancePointToSegment(p, a, b Vec2) float64 {
	cp, _ := ClosestPointOnSegment(p, a, b)
	return cp.Distance(p)
}

// SegmentCircleHit проверяет пересечение отрезка [a, b] с окружностью
// (center, radius) и возвращает наименьший параметр t ∈ [0, 1] входа.
// Если a уже внутри окружности, t == 0. Это основа проверки попаданий
// снарядов: тестируется весь отрезок пути за кадр, а не конечная точка,
// поэтому быстрый снаряд не проскакивает врага между кадрами.
func SegmentCircleHit(a, b, center Vec2, radius float64) (t float64, ok bool) {
	if a.Distance(center) <= radius {
		return 0, true
	}
	d := b.Sub(a)
	f := a.Sub(center)

	A := d.LenSq()
	if A == 0 {
		return 0, false // вырожденный отрезок, старт вне окружности
	}
	B := 2 * f.Dot(d)
	C := f.LenSq() - radius*radius

	disc := B*B - 4*A*C
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-B - sqrtDisc) / (2 * A)
	if t1 >= 0 && t1 <= 1 {
		return t1, true
	}
	t2 := (-B + sqrtDisc) / (2 * A)
	if t2 >= 0 && t2 <= 1 {
		// Старт на границе численно «снаружи», выход внутри отрезка.
		return math.Max(t1, 0), true
	}
	return 0, false
}

// CirclesOverlap — пересечение двух окружностей.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	return c1.Distance(c2) <= r1+r2
}
