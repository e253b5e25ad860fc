// internal/ui/speed_button.go
package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// SpeedButton — круглая кнопка, перебирающая уровни скорости x1/x2/x4.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.Color
	CurrentState   int
	fontFace       font.Face
}

func NewSpeedButton(x, y, size float32, stateColors []color.Color, face font.Face) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
		fontFace:    face,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	// Кнопка коротко вспухает после клика.
	elapsed := time.Since(b.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	radius := b.Size * float32(scale)

	vector.DrawFilledCircle(screen, b.X, b.Y, radius, b.StateColors[b.CurrentState], true)
	vector.StrokeCircle(screen, b.X, b.Y, radius, 1, color.White, true)

	label := fmt.Sprintf("x%d", 1<<b.CurrentState)
	bounds := text.BoundString(b.fontFace, label)
	textW := bounds.Max.X - bounds.Min.X
	textH := bounds.Max.Y - bounds.Min.Y
	text.Draw(screen, label, b.fontFace, int(b.X)-textW/2, int(b.Y)+textH/2, color.White)
}

// IsClicked проверяет попадание в кнопку с небольшим запасом вокруг.
func (b *SpeedButton) IsClicked(mouseX, mouseY float32) bool {
	dx := mouseX - b.X
	dy := mouseY - b.Y
	hit := b.Size * 1.5
	return dx*dx+dy*dy <= hit*hit
}

// ToggleState переключает кнопку на следующий уровень скорости.
func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.StateColors)
	b.LastClickTime = time.Now()
	b.LastToggleTime = time.Now()
}
