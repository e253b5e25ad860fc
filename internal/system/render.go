// internal/system/render.go
package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"glyph-defense/internal/assets"
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/types"
	"glyph-defense/pkg/geom"
)

// RenderSystem рисует мир: маршрут, башни с глифами, врагов, снаряды и
// линии снабжения. HUD поверх рисует слой состояния.
type RenderSystem struct {
	ecs  *entity.ECS
	path *geom.Path

	// links отдаёт пары башен с линиями снабжения: у отрисовщика нет
	// прямого доступа к сети, её владелец подставляет замыкание.
	links func() [][2]types.EntityID

	highlighted types.EntityID

	glyphFace  font.Face
	symbolFace font.Face
	labelFace  font.Face
}

func NewRenderSystem(ecs *entity.ECS, path *geom.Path) *RenderSystem {
	return &RenderSystem{
		ecs:        ecs,
		path:       path,
		glyphFace:  assets.Face(15),
		symbolFace: assets.Face(11),
		labelFace:  assets.Face(10),
	}
}

// SetLinkSource подключает источник линий снабжения для отрисовки.
func (s *RenderSystem) SetLinkSource(links func() [][2]types.EntityID) {
	s.links = links
}

// SetHighlighted помечает башню, вокруг которой рисовать кольцо радиуса.
// Ноль снимает подсветку.
func (s *RenderSystem) SetHighlighted(id types.EntityID) {
	s.highlighted = id
}

func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	s.drawPath(screen)
	s.drawLinks(screen)
	s.drawMines(screen)
	s.drawTowers(screen)
	s.drawThralls(screen)
	s.drawCrystals(screen)
	s.drawEnemies(screen)
	s.drawProjectiles(screen)
}

func (s *RenderSystem) drawPath(screen *ebiten.Image) {
	points := s.path.Points
	for i := 1; i < len(points); i++ {
		vector.StrokeLine(screen,
			float32(points[i-1].X), float32(points[i-1].Y),
			float32(points[i].X), float32(points[i].Y),
			3.0, config.PathColor, true)
	}
	start := s.path.Start()
	end := s.path.End()
	vector.DrawFilledCircle(screen, float32(start.X), float32(start.Y), 8, config.EntryColor, true)
	vector.DrawFilledCircle(screen, float32(end.X), float32(end.Y), 8, config.ExitColor, true)
}

func (s *RenderSystem) drawLinks(screen *ebiten.Image) {
	if s.links == nil {
		return
	}
	for _, pair := range s.links() {
		from, okFrom := s.ecs.Positions[pair[0]]
		to, okTo := s.ecs.Positions[pair[1]]
		if !okFrom || !okTo {
			continue
		}
		vector.StrokeLine(screen,
			float32(from.Pos.X), float32(from.Pos.Y),
			float32(to.Pos.X), float32(to.Pos.Y),
			1.5, config.LinkLineColor, true)
	}
}

func (s *RenderSystem) drawMines(screen *ebiten.Image) {
	mineColor := color.RGBA{220, 90, 90, 200}
	blastColor := color.RGBA{220, 90, 90, 50}
	for _, layer := range s.ecs.MineLayers {
		for _, mine := range layer.Mines {
			x, y := float32(mine.Pos.X), float32(mine.Pos.Y)
			vector.DrawFilledCircle(screen, x, y, 5, mineColor, true)
			vector.StrokeCircle(screen, x, y, float32(mine.Radius), 1, blastColor, true)
		}
	}
}

func (s *RenderSystem) drawTowers(screen *ebiten.Image) {
	for id, tower := range s.ecs.Towers {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		def, hasDef := defs.TowerDefs[tower.DefID]

		base := color.RGBA{90, 90, 110, 255}
		radius := config.TowerRadius
		if hasDef {
			base = def.Visuals.Color
			if def.Visuals.RadiusFactor > 0 {
				radius *= def.Visuals.RadiusFactor
			}
		}
		x, y := float32(pos.Pos.X), float32(pos.Pos.Y)

		if id == s.highlighted {
			vector.StrokeCircle(screen, x, y, float32(tower.Range), 1, config.RangeRingColor, true)
		}

		vector.DrawFilledCircle(screen, x, y, float32(radius), base, true)
		if hasDef && def.Glyph != "" {
			s.drawCentered(screen, def.Glyph, s.glyphFace, pos.Pos.X, pos.Pos.Y, config.TextLightColor)
		}

		if tower.Charge >= 1 {
			label := fmt.Sprintf("%d", int(tower.Charge))
			text.Draw(screen, label, s.labelFace, int(pos.Pos.X)+int(radius)+2, int(pos.Pos.Y)-int(radius), config.LinkLineColor)
		}

		if hasDef {
			s.drawArchetype(screen, id, tower, &def, pos.Pos)
		}
	}
}

// drawArchetype дорисовывает живую геометрию непрерывных архетипов по их
// текущему состоянию. Геометрия считается теми же формулами, что и урон.
func (s *RenderSystem) drawArchetype(screen *ebiten.Image, id types.EntityID, tower *component.Tower, def *defs.TowerDefinition, base geom.Vec2) {
	switch def.Behavior {
	case defs.BehaviorPendulum:
		p, ok := s.ecs.Pendulums[id]
		if !ok {
			return
		}
		elbow, tip := pendulumArms(base, p)
		armColor := color.RGBA{200, 200, 230, 255}
		vector.StrokeLine(screen, float32(base.X), float32(base.Y), float32(elbow.X), float32(elbow.Y), 3, armColor, true)
		vector.StrokeLine(screen, float32(elbow.X), float32(elbow.Y), float32(tip.X), float32(tip.Y), 3, armColor, true)
		vector.DrawFilledCircle(screen, float32(elbow.X), float32(elbow.Y), 4, armColor, true)
		vector.DrawFilledCircle(screen, float32(tip.X), float32(tip.Y), float32(armHalfWidth), color.RGBA{255, 160, 120, 255}, true)

	case defs.BehaviorOrbital:
		orb, ok := s.ecs.Orbitals[id]
		if !ok {
			return
		}
		vector.StrokeCircle(screen, float32(base.X), float32(base.Y), float32(orb.Radius), 1, color.RGBA{150, 150, 180, 50}, true)
		for i := range orb.Angles {
			p := base.Add(geom.FromAngle(orb.Angles[i], orb.Radius))
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 5, color.RGBA{170, 220, 255, 255}, true)
		}

	case defs.BehaviorBeam:
		spinner, ok := s.ecs.BeamSpinners[id]
		if !ok {
			return
		}
		edgeColor := color.RGBA{255, 230, 150, 70}
		midColor := color.RGBA{255, 230, 150, 200}
		lead := base.Add(geom.FromAngle(spinner.Angle, tower.Range))
		lo := base.Add(geom.FromAngle(spinner.Angle-spinner.Arc/2, tower.Range))
		hi := base.Add(geom.FromAngle(spinner.Angle+spinner.Arc/2, tower.Range))
		vector.StrokeLine(screen, float32(base.X), float32(base.Y), float32(lo.X), float32(lo.Y), 1, edgeColor, true)
		vector.StrokeLine(screen, float32(base.X), float32(base.Y), float32(hi.X), float32(hi.Y), 1, edgeColor, true)
		vector.StrokeLine(screen, float32(base.X), float32(base.Y), float32(lead.X), float32(lead.Y), 2, midColor, true)

	case defs.BehaviorRings:
		ring, ok := s.ecs.RingSpinners[id]
		if !ok {
			return
		}
		orbsPerRing, spacing := ringLayout(def)
		tiers := tower.RingTier
		if tiers < 1 {
			tiers = 1
		}
		orbColor := color.RGBA{190, 160, 255, 255}
		for tier := 1; tier <= tiers; tier++ {
			vector.StrokeCircle(screen, float32(base.X), float32(base.Y), float32(spacing*float64(tier)), 1, color.RGBA{190, 160, 255, 40}, true)
			for k := 0; k < orbsPerRing; k++ {
				p := base.Add(ringOrbOffset(ring.Angle, tier, k, orbsPerRing, spacing))
				vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(ringOrbRadius), orbColor, true)
			}
		}
	}
}

func (s *RenderSystem) drawThralls(screen *ebiten.Image) {
	for id := range s.ecs.Thralls {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		vector.DrawFilledCircle(screen, float32(pos.Pos.X), float32(pos.Pos.Y), 8, config.ThrallColor, true)
	}
}

func (s *RenderSystem) drawCrystals(screen *ebiten.Image) {
	for id := range s.ecs.Crystals {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		vector.DrawFilledCircle(screen, float32(pos.Pos.X), float32(pos.Pos.Y), 10, config.CrystalColor, true)
	}
}

func (s *RenderSystem) drawEnemies(screen *ebiten.Image) {
	hpBack := color.RGBA{60, 60, 60, 200}
	hpFill := color.RGBA{110, 220, 110, 230}
	for id, enemy := range s.ecs.Enemies {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		health, ok := s.ecs.Healths[id]
		if !ok {
			continue
		}

		// Вспышка попадания смещает тело в сторону удара.
		draw := pos.Pos
		if swirl, ok := s.ecs.Swirls[id]; ok {
			draw = draw.Add(swirl.Vec.Scale(6))
		}

		body := config.EnemyColor
		radius := config.EnemyRadius
		if def, ok := defs.EnemyDefs[enemy.DefID]; ok {
			body = def.Visuals.Color
			if def.Visuals.RadiusFactor > 0 {
				radius *= def.Visuals.RadiusFactor
			}
		}
		if enemy.Boss {
			body = config.BossColor
		}
		x, y := float32(draw.X), float32(draw.Y)
		vector.DrawFilledCircle(screen, x, y, float32(radius), body, true)
		if enemy.Symbol != "" {
			s.drawCentered(screen, enemy.Symbol, s.symbolFace, draw.X, draw.Y, color.RGBA{20, 22, 30, 255})
		}

		if health.Max > 0 && health.Value < health.Max {
			frac := health.Value / health.Max
			barW := float32(radius * 2)
			barY := y - float32(radius) - 6
			vector.DrawFilledRect(screen, x-barW/2, barY, barW, 3, hpBack, false)
			vector.DrawFilledRect(screen, x-barW/2, barY, barW*float32(frac), 3, hpFill, false)
		}
	}
}

func (s *RenderSystem) drawProjectiles(screen *ebiten.Image) {
	for id, beam := range s.ecs.Beams {
		proj, ok := s.ecs.Projectiles[id]
		if !ok {
			continue
		}
		alpha := 1.0
		if proj.MaxAge > 0 {
			alpha = 1 - proj.Age/proj.MaxAge
		}
		if alpha < 0 {
			alpha = 0
		}
		col := color.RGBA{200, 230, 255, uint8(220 * alpha)}
		vector.StrokeLine(screen,
			float32(beam.From.X), float32(beam.From.Y),
			float32(beam.To.X), float32(beam.To.Y),
			2.0, col, true)
	}

	boltColor := color.RGBA{240, 240, 200, 255}
	for id, proj := range s.ecs.Projectiles {
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		x, y := float32(pos.Pos.X), float32(pos.Pos.Y)
		switch proj.Kind {
		case component.ProjSupplyMote:
			vector.DrawFilledCircle(screen, x, y, 3, config.LinkLineColor, true)
		case component.ProjIotaPulse:
			if pulse, ok := s.ecs.IotaPulses[id]; ok {
				vector.StrokeCircle(screen, float32(pulse.Origin.X), float32(pulse.Origin.Y), float32(pulse.Radius), float32(pulse.Thickness/3), color.RGBA{140, 200, 255, 160}, true)
			}
		case component.ProjGammaStar:
			if star, ok := s.ecs.GammaStars[id]; ok {
				s.drawStar(screen, pos.Pos, star.Spin)
			}
		case component.ProjOmegaWave:
			vector.DrawFilledCircle(screen, x, y, 4, color.RGBA{160, 240, 220, 230}, true)
		case component.ProjBetaTriangle:
			vector.DrawFilledCircle(screen, x, y, 5, color.RGBA{255, 170, 200, 255}, true)
		case component.ProjEpsilonNeedle:
			if needle, ok := s.ecs.EpsilonNeedles[id]; ok {
				tail := pos.Pos.Sub(geom.FromAngle(needle.Heading, 9))
				vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), x, y, 2, color.RGBA{255, 250, 160, 255}, true)
			}
		default:
			vector.DrawFilledCircle(screen, x, y, float32(config.ProjectileRadius), boltColor, true)
		}
	}
}

// drawStar рисует четыре спицы через центр с текущим углом вращения.
func (s *RenderSystem) drawStar(screen *ebiten.Image, at geom.Vec2, spin float64) {
	const spokes = 4
	starColor := color.RGBA{255, 210, 120, 255}
	for k := 0; k < spokes; k++ {
		a := spin + float64(k)*math.Pi/spokes
		tip := at.Add(geom.FromAngle(a, 8))
		tail := at.Sub(geom.FromAngle(a, 8))
		vector.StrokeLine(screen, float32(tail.X), float32(tail.Y), float32(tip.X), float32(tip.Y), 1.5, starColor, true)
	}
}

func (s *RenderSystem) drawCentered(screen *ebiten.Image, label string, face font.Face, x, y float64, clr color.Color) {
	bounds := text.BoundString(face, label)
	w := bounds.Max.X - bounds.Min.X
	h := bounds.Max.Y - bounds.Min.Y
	text.Draw(screen, label, face, int(x)-w/2, int(y)+h/2, clr)
}
