// internal/component/patterns.go
package component

import (
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// SupplyMote — сгусток энергии на пути к башне-получателю.
type SupplyMote struct {
	Payload float64
}

// OmegaWave — спиральная волна коллектора: точка, раскручивающаяся
// вокруг начала с ростом радиуса. Каждого врага задевает один раз.
type OmegaWave struct {
	Origin     geom.Vec2
	Phase      float64
	AngularVel float64
	RadialVel  float64
	Radius     float64
	Hit        map[types.EntityID]bool
}

// Beam — отрезок для мгновенных эффектов: лазер эты, дуги цепи, рельса.
// Урон уже нанесён при создании, компонент живёт ради затухания в кадре.
type Beam struct {
	From geom.Vec2
	To   geom.Vec2
}

// IotaPulse — расширяющееся кольцо новы.
type IotaPulse struct {
	Origin    geom.Vec2
	Radius    float64
	MaxRadius float64
	GrowRate  float64
	Thickness float64
	Hit       map[types.EntityID]bool
}

// GammaStar — вращающаяся звезда: летит по направлению с синусоидальным
// рысканьем и прошивает всех на пути, каждого один раз.
type GammaStar struct {
	Origin    geom.Vec2
	Heading   geom.Vec2 // единичный вектор
	SweepAmp  float64
	SweepFreq float64
	Spin      float64 // текущий угол собственного вращения, для отрисовки
	Hit       map[types.EntityID]bool
}

// BetaPhase — фаза жизни липучки беты.
type BetaPhase int

const (
	BetaSeek      BetaPhase = iota // летит к цели
	BetaAttached                   // прилипла, тикает уроном
	BetaReturning                  // облетает треугольник домой
)

// BetaTriangle — липучка: догоняет цель, держится на ней фиксированные
// тики, затем возвращается по равностороннему треугольнику, по дороге
// снова сталкиваясь с врагами.
type BetaTriangle struct {
	Phase      BetaPhase
	TickTimer  float64
	TickPeriod float64
	TicksLeft  int
	Corner     int          // текущая вершина треугольника возврата
	Waypoints  [3]geom.Vec2 // вершины, заполняются при отрыве
	Hit        map[types.EntityID]bool
}

// EpsilonNeedle — самонаводящаяся игла с ограниченной угловой скоростью.
// Воткнувшись, тикает по цели: каждый тик считается стеком, урон тика
// равен базовому, умноженному на квадрат номера стека.
type EpsilonNeedle struct {
	Heading      float64 // текущий курс, радианы
	TurnRate     float64 // рад/с
	Embedded     types.EntityID
	Stacks       int
	TicksLeft    int
	RetickTimer  float64
	RetickPeriod float64
	Offset       geom.Vec2 // смещение от центра цели после втыкания
}
