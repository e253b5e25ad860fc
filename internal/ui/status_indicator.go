// internal/ui/status_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// StatusIndicator показывает энергию и жизни в углу экрана.
type StatusIndicator struct {
	X, Y        int
	EnergyColor color.Color
	LivesColor  color.Color
	AlertColor  color.Color
	fontFace    font.Face
}

func NewStatusIndicator(x, y int, face font.Face) *StatusIndicator {
	return &StatusIndicator{
		X:           x,
		Y:           y,
		EnergyColor: color.RGBA{255, 225, 90, 255},
		LivesColor:  color.RGBA{110, 220, 110, 255},
		AlertColor:  color.RGBA{230, 90, 90, 255},
		fontFace:    face,
	}
}

func (i *StatusIndicator) Draw(screen *ebiten.Image, energy float64, lives int) {
	vector.DrawFilledRect(screen, float32(i.X)-6, float32(i.Y)-16, 132, 44, color.RGBA{0, 0, 0, 110}, false)

	text.Draw(screen, fmt.Sprintf("energy %d", int(energy)), i.fontFace, i.X, i.Y, i.EnergyColor)

	livesColor := i.LivesColor
	if lives <= 5 {
		livesColor = i.AlertColor
	}
	text.Draw(screen, fmt.Sprintf("lives  %d", lives), i.fontFace, i.X, i.Y+20, livesColor)
}
