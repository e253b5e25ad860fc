// internal/ui/button.go
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button — кликабельная прямоугольная кнопка с подписью.
type Button struct {
	Rect       image.Rectangle
	Text       string
	TextColor  color.Color
	BgColor    color.Color
	HoverColor color.Color
	fontFace   font.Face
}

func NewButton(rect image.Rectangle, label string, face font.Face) *Button {
	return &Button{
		Rect:       rect,
		Text:       label,
		TextColor:  color.RGBA{235, 235, 235, 255},
		BgColor:    color.RGBA{55, 58, 75, 255},
		HoverColor: color.RGBA{80, 84, 105, 255},
		fontFace:   face,
	}
}

// Contains сообщает, попадает ли точка экрана в кнопку.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

func (b *Button) Draw(screen *ebiten.Image, mouseX, mouseY int) {
	bg := b.BgColor
	if b.Contains(mouseX, mouseY) {
		bg = b.HoverColor
	}
	x := float32(b.Rect.Min.X)
	y := float32(b.Rect.Min.Y)
	w := float32(b.Rect.Dx())
	h := float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{120, 124, 150, 255}, false)

	bounds := text.BoundString(b.fontFace, b.Text)
	textW := bounds.Max.X - bounds.Min.X
	textH := bounds.Max.Y - bounds.Min.Y
	textX := b.Rect.Min.X + (b.Rect.Dx()-textW)/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()+textH)/2
	text.Draw(screen, b.Text, b.fontFace, textX, textY, b.TextColor)
}
