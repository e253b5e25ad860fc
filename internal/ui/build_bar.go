// internal/ui/build_bar.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
)

const (
	slotSize = 44
	slotGap  = 8
)

type buildSlot struct {
	defID string
	rect  image.Rectangle
}

// BuildBar — нижняя панель выбора типа башни: по ячейке на каждый
// базовый тип каталога. Клик выбирает тип, повторный клик снимает выбор.
type BuildBar struct {
	slots     []buildSlot
	Selected  string // выбранный тип башни, пусто — ничего не строим
	glyphFace font.Face
	labelFace font.Face
}

func NewBuildBar(glyphFace, labelFace font.Face) *BuildBar {
	var ids []string
	for id, def := range defs.TowerDefs {
		if def.Tier == 1 && !def.Prestige {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(a, b int) bool {
		da, db := defs.TowerDefs[ids[a]], defs.TowerDefs[ids[b]]
		if da.BaseCost != db.BaseCost {
			return da.BaseCost < db.BaseCost
		}
		return da.Name < db.Name
	})

	totalW := len(ids)*slotSize + (len(ids)-1)*slotGap
	x0 := (config.ScreenWidth - totalW) / 2
	y0 := config.ScreenHeight - slotSize - 12

	bar := &BuildBar{glyphFace: glyphFace, labelFace: labelFace}
	for i, id := range ids {
		x := x0 + i*(slotSize+slotGap)
		bar.slots = append(bar.slots, buildSlot{
			defID: id,
			rect:  image.Rect(x, y0, x+slotSize, y0+slotSize),
		})
	}
	return bar
}

// Click обрабатывает клик по панели. Возвращает true, если клик пришёлся
// в неё (и не должен дойти до игрового поля).
func (b *BuildBar) Click(x, y int) bool {
	for _, slot := range b.slots {
		if !image.Pt(x, y).In(slot.rect) {
			continue
		}
		if b.Selected == slot.defID {
			b.Selected = ""
		} else {
			b.Selected = slot.defID
		}
		return true
	}
	return false
}

// Contains сообщает, накрывает ли панель точку экрана.
func (b *BuildBar) Contains(x, y int) bool {
	if len(b.slots) == 0 {
		return false
	}
	first := b.slots[0].rect
	last := b.slots[len(b.slots)-1].rect
	return x >= first.Min.X && x <= last.Max.X && y >= first.Min.Y && y <= last.Max.Y
}

func (b *BuildBar) Draw(screen *ebiten.Image, energy float64, mouseX, mouseY int) {
	hovered := ""
	for _, slot := range b.slots {
		def, ok := defs.TowerDefs[slot.defID]
		if !ok {
			continue
		}
		x := float32(slot.rect.Min.X)
		y := float32(slot.rect.Min.Y)

		bg := color.RGBA{45, 48, 62, 230}
		if image.Pt(mouseX, mouseY).In(slot.rect) {
			bg = color.RGBA{70, 74, 95, 230}
			hovered = slot.defID
		}
		vector.DrawFilledRect(screen, x, y, slotSize, slotSize, bg, false)

		border := color.RGBA{100, 104, 130, 255}
		if slot.defID == b.Selected {
			border = color.RGBA{255, 225, 90, 255}
		}
		vector.StrokeRect(screen, x, y, slotSize, slotSize, 2, border, false)

		glyphColor := def.Visuals.Color
		if energy < def.BaseCost {
			glyphColor = color.RGBA{90, 90, 100, 255}
		}
		bounds := text.BoundString(b.glyphFace, def.Glyph)
		gw := bounds.Max.X - bounds.Min.X
		gh := bounds.Max.Y - bounds.Min.Y
		text.Draw(screen, def.Glyph, b.glyphFace,
			slot.rect.Min.X+(slotSize-gw)/2, slot.rect.Min.Y+(slotSize+gh)/2-6, glyphColor)

		cost := fmt.Sprintf("%d", int(def.BaseCost))
		cb := text.BoundString(b.labelFace, cost)
		text.Draw(screen, cost, b.labelFace,
			slot.rect.Min.X+(slotSize-(cb.Max.X-cb.Min.X))/2, slot.rect.Max.Y-4, color.RGBA{180, 180, 190, 255})
	}

	if hovered != "" {
		if def, ok := defs.TowerDefs[hovered]; ok {
			tip := fmt.Sprintf("%s (%s) %d", def.Name, def.Behavior, int(def.BaseCost))
			bounds := text.BoundString(b.labelFace, tip)
			tipY := b.slots[0].rect.Min.Y - 10
			text.Draw(screen, tip, b.labelFace,
				(config.ScreenWidth-(bounds.Max.X-bounds.Min.X))/2, tipY, config.TextLightColor)
		}
	}
}
