package hud

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func theme() *widget.ButtonParams {
	return &widget.ButtonParams{
		Image: &widget.ButtonImage{
			Idle:    solidNineSlice(color.NRGBA{R: 0x3a, G: 0x3f, B: 0x4b, A: 255}),
			Hover:   solidNineSlice(color.NRGBA{R: 0x4a, G: 0x50, B: 0x5e, A: 255}),
			Pressed: solidNineSlice(color.NRGBA{R: 0x2c, G: 0x30, B: 0x39, A: 255}),
		},
	}
}
