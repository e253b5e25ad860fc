// internal/state/menu_state.go
package state

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"glyph-defense/internal/assets"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/ui"
)

// MenuState — выбор карты и режима перед запуском игры.
type MenuState struct {
	sm      *StateMachine
	stages  []string
	buttons []*ui.Button
	endless bool

	titleFace font.Face
	face      font.Face
}

func NewMenuState(sm *StateMachine) *MenuState {
	var ids []string
	for id := range defs.StageDefs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m := &MenuState{
		sm:        sm,
		stages:    ids,
		titleFace: assets.Face(32),
		face:      assets.Face(16),
	}
	rowW, rowH := 360, 44
	x := (config.ScreenWidth - rowW) / 2
	y := 300
	for _, id := range ids {
		rect := image.Rect(x, y, x+rowW, y+rowH)
		m.buttons = append(m.buttons, ui.NewButton(rect, defs.StageDefs[id].Name, m.face))
		y += rowH + 12
	}
	return m
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		m.endless = !m.endless
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && len(m.stages) > 0 {
		m.start(m.stages[0])
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		for i, btn := range m.buttons {
			if btn.Contains(x, y) {
				m.start(m.stages[i])
				return
			}
		}
	}
}

func (m *MenuState) start(stageID string) {
	m.sm.SetState(NewGameState(m.sm, stageID, m.endless))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	title := "GLYPH DEFENSE"
	bounds := text.BoundString(m.titleFace, title)
	text.Draw(screen, title, m.titleFace,
		(config.ScreenWidth-(bounds.Max.X-bounds.Min.X))/2, 200, config.TextLightColor)

	mx, my := ebiten.CursorPosition()
	for _, btn := range m.buttons {
		btn.Draw(screen, mx, my)
	}

	mode := fmt.Sprintf("[E] endless: %v", m.endless)
	mb := text.BoundString(m.face, mode)
	text.Draw(screen, mode, m.face,
		(config.ScreenWidth-(mb.Max.X-mb.Min.X))/2,
		m.buttons[len(m.buttons)-1].Rect.Max.Y+50, color.RGBA{180, 180, 190, 255})
}

func (m *MenuState) Exit() {}
