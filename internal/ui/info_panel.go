// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/entity"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/types"
)

const (
	panelWidth     = 380
	panelHeight    = 168
	panelPadding   = 12
	lineHeight     = 19
	animationSpeed = 10.0

	buttonW = 82
	buttonH = 24
)

// PanelAction — действие, выбранное кликом по кнопке панели.
type PanelAction string

const (
	ActionNone     PanelAction = ""
	ActionUpgrade  PanelAction = "upgrade"
	ActionDemote   PanelAction = "demote"
	ActionSell     PanelAction = "sell"
	ActionPriority PanelAction = "priority"
	ActionLink     PanelAction = "link"
	ActionUnlink   PanelAction = "unlink"
)

type panelButton struct {
	rect   image.Rectangle
	label  string
	action PanelAction
}

// InfoPanel — выезжающая снизу панель выбранной сущности: характеристики
// башни с кнопками управления или здоровье врага.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID

	fontFace      font.Face
	titleFontFace font.Face

	currentY float64
	targetY  float64

	buttons []panelButton
}

func NewInfoPanel(face, titleFace font.Face) *InfoPanel {
	p := &InfoPanel{
		fontFace:      face,
		titleFontFace: titleFace,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
	}
	p.layoutButtons()
	return p
}

func (p *InfoPanel) layoutButtons() {
	labels := []struct {
		label  string
		action PanelAction
	}{
		{"upgrade", ActionUpgrade},
		{"demote", ActionDemote},
		{"sell", ActionSell},
		{"priority", ActionPriority},
		{"link", ActionLink},
		{"unlink", ActionUnlink},
	}
	x := panelPadding
	for i, l := range labels {
		col := i % 3
		row := i / 3
		bx := x + col*(buttonW+8)
		by := panelHeight - 2*(buttonH+8) + row*(buttonH+8)
		p.buttons = append(p.buttons, panelButton{
			rect:   image.Rect(bx, by, bx+buttonW, by+buttonH),
			label:  l.label,
			action: l.action,
		})
	}
}

// SetTarget направляет панель на сущность и выдвигает её.
func (p *InfoPanel) SetTarget(id types.EntityID) {
	p.TargetEntity = id
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

// Hide прячет панель за нижний край.
func (p *InfoPanel) Hide() {
	p.IsVisible = false
	p.TargetEntity = 0
	p.targetY = config.ScreenHeight
}

func (p *InfoPanel) Update(deltaTime float64) {
	step := animationSpeed * deltaTime
	if step > 1 {
		step = 1
	}
	p.currentY += (p.targetY - p.currentY) * step
}

// Contains сообщает, накрывает ли панель точку экрана.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && x < panelWidth && y > int(p.currentY)
}

// Click возвращает действие кнопки под точкой клика.
func (p *InfoPanel) Click(x, y int) PanelAction {
	if !p.IsVisible {
		return ActionNone
	}
	local := image.Pt(x, y-int(p.currentY))
	for _, b := range p.buttons {
		if local.In(b.rect) {
			return b.action
		}
	}
	return ActionNone
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ecs *entity.ECS, totals *stats.TowerTotals, mouseX, mouseY int) {
	if p.currentY >= config.ScreenHeight-1 {
		return
	}
	top := float32(p.currentY)
	vector.DrawFilledRect(screen, 0, top, panelWidth, panelHeight, color.RGBA{28, 30, 42, 235}, false)
	vector.StrokeRect(screen, 0, top, panelWidth, panelHeight, 1, color.RGBA{90, 94, 120, 255}, false)

	if tower, ok := ecs.Towers[p.TargetEntity]; ok {
		p.drawTower(screen, tower.DefID, p.TargetEntity, ecs, totals, mouseX, mouseY)
		return
	}
	if _, ok := ecs.Enemies[p.TargetEntity]; ok {
		p.drawEnemy(screen, p.TargetEntity, ecs)
		return
	}
	// Сущность исчезла: панель сворачивается сама.
	p.Hide()
}

func (p *InfoPanel) drawTower(screen *ebiten.Image, defID string, id types.EntityID, ecs *entity.ECS, totals *stats.TowerTotals, mouseX, mouseY int) {
	tower := ecs.Towers[id]
	y := int(p.currentY) + panelPadding + 8

	title := defID
	if def, ok := defs.TowerDefs[defID]; ok {
		title = fmt.Sprintf("%s %s  tier %d", def.Glyph, def.Name, def.Tier)
	}
	text.Draw(screen, title, p.titleFontFace, panelPadding, y, config.TextLightColor)
	y += lineHeight + 4

	invested := 0.0
	for _, paid := range tower.Invested {
		invested += paid
	}
	rows := []string{
		fmt.Sprintf("damage %.1f   rate %.2f/s   range %.0f", tower.Damage, tower.FireRate, tower.Range),
		fmt.Sprintf("charge %.1f   invested %d   priority %s", tower.Charge, int(invested), tower.Priority),
	}
	if totals != nil {
		rows = append(rows, fmt.Sprintf("dealt %.0f   kills %d   active %.0fs", totals.Damage, totals.Kills, totals.ActiveTime))
	}
	for _, row := range rows {
		text.Draw(screen, row, p.fontFace, panelPadding, y, config.TextLightColor)
		y += lineHeight
	}

	for _, b := range p.buttons {
		rect := b.rect.Add(image.Pt(0, int(p.currentY)))
		bg := color.RGBA{55, 58, 75, 255}
		if image.Pt(mouseX, mouseY).In(rect) {
			bg = color.RGBA{80, 84, 105, 255}
		}
		vector.DrawFilledRect(screen, float32(rect.Min.X), float32(rect.Min.Y), buttonW, buttonH, bg, false)
		vector.StrokeRect(screen, float32(rect.Min.X), float32(rect.Min.Y), buttonW, buttonH, 1, color.RGBA{120, 124, 150, 255}, false)
		bounds := text.BoundString(p.fontFace, b.label)
		tw := bounds.Max.X - bounds.Min.X
		th := bounds.Max.Y - bounds.Min.Y
		text.Draw(screen, b.label, p.fontFace, rect.Min.X+(buttonW-tw)/2, rect.Min.Y+(buttonH+th)/2, config.TextLightColor)
	}
}

func (p *InfoPanel) drawEnemy(screen *ebiten.Image, id types.EntityID, ecs *entity.ECS) {
	enemy := ecs.Enemies[id]
	y := int(p.currentY) + panelPadding + 8

	title := enemy.DefID
	if def, ok := defs.EnemyDefs[enemy.DefID]; ok {
		title = fmt.Sprintf("%s %s", def.Symbol, def.Name)
	}
	text.Draw(screen, title, p.titleFontFace, panelPadding, y, config.TextLightColor)
	y += lineHeight + 4

	if health, ok := ecs.Healths[id]; ok {
		text.Draw(screen, fmt.Sprintf("health %.0f / %.0f", health.Value, health.Max), p.fontFace, panelPadding, y, config.TextLightColor)
		y += lineHeight
	}
	if follow, ok := ecs.PathFollow[id]; ok {
		text.Draw(screen, fmt.Sprintf("progress %.0f%%", follow.Progress*100), p.fontFace, panelPadding, y, config.TextLightColor)
		y += lineHeight
	}
	if slows, ok := ecs.SlowContainers[id]; ok && len(slows.Sources) > 0 {
		text.Draw(screen, fmt.Sprintf("slowed x%.2f", slows.MinMultiplier()), p.fontFace, panelPadding, y, color.RGBA{140, 200, 255, 255})
	}
}
