package palette_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/joinpreview/pkg/palette"
)

func ExampleExtractImage() {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 34, G: 139, B: 87, A: 255})
		}
	}

	theme := palette.ExtractImage(img)
	fmt.Println(theme.Primary.CSS())
	// Output: rgb(30, 130, 80)
}

func ExampleFallbackTheme() {
	theme := palette.FallbackTheme()
	fmt.Println(theme.Primary.Hex(), theme.Secondary.Hex(), theme.Accent.Hex())
	// Output: #3b82f6 #9333ea #4f46e5
}
