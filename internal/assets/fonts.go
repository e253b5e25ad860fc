// internal/assets/fonts.go
package assets

import (
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

var (
	baseFont  *opentype.Font
	faceCache = map[float64]font.Face{}
)

func init() {
	ft, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		panic(err)
	}
	baseFont = ft
}

// Face возвращает шрифт нужного кегля с кэшированием. Основа — встроенный
// M+ 1p: он покрывает греческие глифы башен без внешних файлов.
func Face(size float64) font.Face {
	if face, ok := faceCache[size]; ok {
		return face
	}
	face, err := opentype.NewFace(baseFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	faceCache[size] = face
	return face
}
