// pkg/geom/path.go
package geom

import "sort"

// DedupEpsilon — минимальное расстояние между соседними точками маршрута.
// Более близкие точки после сглаживания схлопываются, чтобы не плодить
// вырожденные сегменты нулевой длины.
const DedupEpsilon = 0.5

// PathPoint — позиция на маршруте вместе с направлением движения в ней.
type PathPoint struct {
	Pos   Vec2
	Angle float64
}

// Path — сглаженный маршрут врагов: ломаная с предрассчитанными
// кумулятивными длинами. Прогресс по маршруту задаётся числом в [0, 1].
type Path struct {
	Points      []Vec2
	TotalLength float64

	cum []float64 // cum[i] — длина маршрута до Points[i]
}

// BuildPath строит маршрут по опорным точкам: сплайн Катмулла-Рома с
// заданным числом подразбиений на сегмент, затем дедупликация точек ближе
// DedupEpsilon. Меньше двух опорных точек — вырожденный маршрут из одной
// точки с нулевой длиной.
func BuildPath(control []Vec2, subdivisions int) *Path {
	if subdivisions < 1 {
		subdivisions = 1
	}
	var raw []Vec2
	switch {
	case len(control) == 0:
		raw = []Vec2{{}}
	case len(control) == 1:
		raw = []Vec2{control[0]}
	default:
		raw = make([]Vec2, 0, (len(control)-1)*subdivisions+1)
		for i := 0; i < len(control)-1; i++ {
			p1 := control[i]
			p2 := control[i+1]
			// Крайние сегменты зажимаются дублированием конечных точек.
			p0 := p1
			if i > 0 {
				p0 = control[i-1]
			}
			p3 := p2
			if i+2 < len(control) {
				p3 = control[i+2]
			}
			for s := 0; s < subdivisions; s++ {
				t := float64(s) / float64(subdivisions)
				raw = append(raw, catmullRom(p0, p1, p2, p3, t))
			}
		}
		raw = append(raw, control[len(control)-1])
	}

	points := make([]Vec2, 0, len(raw))
	for _, p := range raw {
		if len(points) > 0 && points[len(points)-1].Distance(p) < DedupEpsilon {
			continue
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		points = []Vec2{{}}
	}

	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + points[i-1].Distance(points[i])
	}

	return &Path{
		Points:      points,
		TotalLength: cum[len(cum)-1],
		cum:         cum,
	}
}

// catmullRom — стандартный Катмулл-Ром (centripetal упрощать не стали,
// маршруты рисуются руками и самопересечений не имеют).
func catmullRom(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	t2 := t * t
	t3 := t2 * t
	return Vec2{
		X: 0.5 * ((2 * p1.X) + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * ((2 * p1.Y) + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}

// Start возвращает точку входа маршрута.
func (p *Path) Start() Vec2 { return p.Points[0] }

// End возвращает точку выхода маршрута.
func (p *Path) End() Vec2 { return p.Points[len(p.Points)-1] }

// PointAt возвращает позицию и направление на доле progress длины маршрута.
// Прогресс вне [0, 1] зажимается в концы маршрута.
func (p *Path) PointAt(progress float64) PathPoint {
	if len(p.Points) == 1 || p.TotalLength == 0 {
		return PathPoint{Pos: p.Points[0]}
	}
	if progress <= 0 {
		return PathPoint{Pos: p.Points[0], Angle: p.segmentAngle(0)}
	}
	if progress >= 1 {
		last := len(p.Points) - 1
		return PathPoint{Pos: p.Points[last], Angle: p.segmentAngle(last - 1)}
	}

	dist := progress * p.TotalLength
	// Первый индекс с cum[i] >= dist; сегмент [i-1, i].
	i := sort.SearchFloat64s(p.cum, dist)
	if i <= 0 {
		i = 1
	}
	a, b := p.Points[i-1], p.Points[i]
	segLen := p.cum[i] - p.cum[i-1]
	t := 0.0
	if segLen > 0 {
		t = (dist - p.cum[i-1]) / segLen
	}
	return PathPoint{Pos: a.Lerp(b, t), Angle: p.segmentAngle(i - 1)}
}

// ClosestProgress возвращает прогресс ближайшей к q точки маршрута и
// расстояние до неё. Используется для привязки построек и мин к маршруту.
func (p *Path) ClosestProgress(q Vec2) (progress, dist float64) {
	if len(p.Points) == 1 || p.TotalLength == 0 {
		return 0, p.Points[0].Distance(q)
	}
	best := -1.0
	bestProgress := 0.0
	for i := 0; i < len(p.Points)-1; i++ {
		a, b := p.Points[i], p.Points[i+1]
		cp, t := ClosestPointOnSegment(q, a, b)
		d := cp.Distance(q)
		if best < 0 || d < best {
			best = d
			segLen := p.cum[i+1] - p.cum[i]
			bestProgress = (p.cum[i] + t*segLen) / p.TotalLength
		}
	}
	return bestProgress, best
}

func (p *Path) segmentAngle(i int) float64 {
	if i < 0 {
		i = 0
	}
	if i >= len(p.Points)-1 {
		i = len(p.Points) - 2
	}
	if i < 0 {
		return 0
	}
	return p.Points[i+1].Sub(p.Points[i]).Angle()
}
