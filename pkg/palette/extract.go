package palette

import (
	"image"
	"image/draw"
)

// PixelImage is a row-major buffer of non-premultiplied 8-bit RGBA samples.
type PixelImage struct {
	Width, Height int
	Pix           []uint8 // len == Width*Height*4
}

// NewPixelImage converts any image into a PixelImage.
func NewPixelImage(img image.Image) PixelImage {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return PixelImage{Width: b.Dx(), Height: b.Dy(), Pix: nrgba.Pix}
}

// Extract computes the theme colors of pixels. It never fails: images with
// no dominant color produce the fallback theme.
func Extract(pixels PixelImage) Theme {
	return themeFrom(Buckets(pixels))
}

// ExtractImage is a convenience wrapper around [Extract].
func ExtractImage(img image.Image) Theme {
	return Extract(NewPixelImage(img))
}

// Buckets returns the dominant color buckets of pixels, most frequent first.
func Buckets(pixels PixelImage) []Bucket {
	b := newBuckets()
	n := len(pixels.Pix) - len(pixels.Pix)%4
	for i := 0; i < n; i += 4 {
		c := RGB{
			R: quantize(pixels.Pix[i]),
			G: quantize(pixels.Pix[i+1]),
			B: quantize(pixels.Pix[i+2]),
		}
		if !usable(c) {
			continue
		}
		b.add(c)
	}
	return b.dominant()
}

func themeFrom(sorted []Bucket) Theme {
	pick := func(i int, fallback RGB) RGB {
		if i < 0 || i >= len(sorted) {
			return fallback
		}
		return sorted[i].Color
	}
	return Theme{
		Primary:   pick(0, FallbackPrimary),
		Secondary: pick(len(sorted)/3, FallbackSecondary),
		Accent:    pick(len(sorted)/2, FallbackAccent),
	}
}
