// pkg/geom/vec.go
package geom

import "math"

// Vec2 — точка или вектор в мировых координатах (пиксели).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len возвращает длину вектора.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq возвращает квадрат длины (без корня, для сравнений).
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Distance(o Vec2) float64   { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) DistanceSq(o Vec2) float64 { return o.Sub(v).LenSq() }

// Normalize возвращает единичный вектор того же направления.
// Нулевой вектор остаётся нулевым.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Perp возвращает вектор, повёрнутый на 90° против часовой стрелки.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Angle возвращает угол вектора в радианах.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Lerp — линейная интерполяция между v и o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// FromAngle строит вектор длины r под углом a.
func FromAngle(a, r float64) Vec2 {
	return Vec2{math.Cos(a) * r, math.Sin(a) * r}
}

// NormalizeAngle приводит угол к диапазону [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
