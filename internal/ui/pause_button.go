// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton — круглая кнопка паузы: две плашки, когда бой идёт,
// треугольник запуска, когда бой заморожен.
type PauseButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	IsPaused       bool
	PauseColor     color.Color
	PlayColor      color.Color
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	size := b.Size * float32(scale)

	if b.IsPaused {
		// Треугольник (запуск).
		p1x, p1y := b.X-size*0.6, b.Y-size*0.8
		p2x, p2y := b.X-size*0.6, b.Y+size*0.8
		p3x, p3y := b.X+size*0.8, b.Y
		vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 3, b.PlayColor, true)
		vector.StrokeLine(screen, p2x, p2y, p3x, p3y, 3, b.PlayColor, true)
		vector.StrokeLine(screen, p3x, p3y, p1x, p1y, 3, b.PlayColor, true)
	} else {
		// Две плашки (пауза).
		width := size * 0.45
		height := size * 1.6
		spacing := size * 0.3
		vector.DrawFilledRect(screen, b.X-width-spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
		vector.DrawFilledRect(screen, b.X+spacing/2, b.Y-height/2, width, height, b.PauseColor, false)
	}
}

func (b *PauseButton) IsClicked(mouseX, mouseY float32) bool {
	dx := mouseX - b.X
	dy := mouseY - b.Y
	hit := b.Size * 1.5
	return dx*dx+dy*dy <= hit*hit
}

func (b *PauseButton) TogglePause() {
	b.IsPaused = !b.IsPaused
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}

func (b *PauseButton) SetPaused(paused bool) {
	b.IsPaused = paused
}
