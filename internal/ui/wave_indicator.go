// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator показывает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y         int
	Color        color.Color
	BossColor    color.Color
	OutlineColor color.Color
	fontFace     font.Face
}

func NewWaveIndicator(x, y int, face font.Face) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Color:        color.RGBA{120, 170, 230, 255},
		BossColor:    color.RGBA{230, 90, 90, 255},
		OutlineColor: color.RGBA{20, 22, 30, 255},
		fontFace:     face,
	}
}

// toRoman конвертирует номер волны в римскую запись.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

func (i *WaveIndicator) Draw(screen *ebiten.Image, waveNumber int, boss bool) {
	if waveNumber <= 0 {
		return
	}
	label := toRoman(waveNumber)

	textColor := i.Color
	if boss {
		textColor = i.BossColor
	}

	bounds := text.BoundString(i.fontFace, label)
	textW := bounds.Max.X - bounds.Min.X
	x := i.X - textW/2
	y := i.Y

	// Однопиксельная обводка вокруг цифр.
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, i.fontFace, x+dx, y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, i.fontFace, x, y, textColor)
}
