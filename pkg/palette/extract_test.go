package palette

import (
	"image"
	"image/color"
	"testing"
)

// fillRegions paints consecutive horizontal runs of the given colors into a
// width-wide image; counts are in pixels.
func fillRegions(width int, regions []region) *image.NRGBA {
	total := 0
	for _, r := range regions {
		total += r.count
	}
	height := (total + width - 1) / width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := 0
	for _, r := range regions {
		for n := 0; n < r.count; n++ {
			img.SetNRGBA(i%width, i/width, r.c)
			i++
		}
	}
	for ; i < width*height; i++ {
		img.SetNRGBA(i%width, i/width, color.NRGBA{A: 255})
	}
	return img
}

type region struct {
	c     color.NRGBA
	count int
}

func solid(c color.NRGBA, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestExtract_UniformColor(t *testing.T) {
	img := solid(color.NRGBA{R: 203, G: 64, B: 61, A: 255}, 20, 20)

	theme := ExtractImage(img)

	want := RGB{R: 200, G: 60, B: 60}
	if theme.Primary != want {
		t.Errorf("Primary = %v, want %v", theme.Primary, want)
	}
	if theme.Secondary != want || theme.Accent != want {
		t.Errorf("Secondary/Accent = %v/%v, want both %v", theme.Secondary, theme.Accent, want)
	}
}

func TestExtract_GrayscaleFallsBack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8((x + y) * 2)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	if got := ExtractImage(img); got != FallbackTheme() {
		t.Errorf("ExtractImage(grayscale) = %+v, want fallback %+v", got, FallbackTheme())
	}
}

func TestExtract_ExtremesExcluded(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
	}{
		{"near black", color.NRGBA{R: 20, G: 5, B: 5, A: 255}},
		{"near white", color.NRGBA{R: 250, G: 240, B: 240, A: 255}},
		{"low saturation", color.NRGBA{R: 130, G: 125, B: 125, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractImage(solid(tt.c, 16, 16)); got != FallbackTheme() {
				t.Errorf("ExtractImage(%v) = %+v, want fallback", tt.c, got)
			}
		})
	}
}

func TestExtract_EmptyImage(t *testing.T) {
	if got := Extract(PixelImage{}); got != FallbackTheme() {
		t.Errorf("Extract(empty) = %+v, want fallback", got)
	}
}

func TestExtract_NoiseFloor(t *testing.T) {
	red := color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	blue := color.NRGBA{R: 40, G: 40, B: 200, A: 255}

	t.Run("exactly floor is dropped", func(t *testing.T) {
		img := fillRegions(10, []region{{red, NoiseFloor}})
		if got := ExtractImage(img); got != FallbackTheme() {
			t.Errorf("bucket with %d pixels should be noise, got %+v", NoiseFloor, got)
		}
	})

	t.Run("above floor is kept", func(t *testing.T) {
		img := fillRegions(10, []region{{red, NoiseFloor + 1}, {blue, NoiseFloor}})
		theme := ExtractImage(img)
		want := RGB{R: 200, G: 40, B: 40}
		if theme.Primary != want {
			t.Errorf("Primary = %v, want %v", theme.Primary, want)
		}
	})
}

func TestExtract_SelectionIndices(t *testing.T) {
	c1 := color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	c2 := color.NRGBA{R: 40, G: 200, B: 40, A: 255}
	c3 := color.NRGBA{R: 40, G: 40, B: 200, A: 255}
	c4 := color.NRGBA{R: 200, G: 200, B: 40, A: 255}

	img := fillRegions(20, []region{{c1, 400}, {c2, 300}, {c3, 200}, {c4, 100}})
	theme := ExtractImage(img)

	// sorted = [c1, c2, c3, c4]; secondary = sorted[4/3] = c2, accent = sorted[4/2] = c3
	if theme.Primary != (RGB{200, 40, 40}) {
		t.Errorf("Primary = %v", theme.Primary)
	}
	if theme.Secondary != (RGB{40, 200, 40}) {
		t.Errorf("Secondary = %v", theme.Secondary)
	}
	if theme.Accent != (RGB{40, 40, 200}) {
		t.Errorf("Accent = %v", theme.Accent)
	}
}

func TestBuckets_QuantizationMerges(t *testing.T) {
	img := fillRegions(10, []region{
		{color.NRGBA{R: 201, G: 65, B: 62, A: 255}, 40},
		{color.NRGBA{R: 209, G: 69, B: 60, A: 255}, 40},
	})

	got := Buckets(NewPixelImage(img))
	if len(got) != 1 {
		t.Fatalf("len(Buckets) = %d, want 1", len(got))
	}
	if got[0].Color != (RGB{200, 60, 60}) || got[0].Count != 80 {
		t.Errorf("Bucket = %+v, want {200 60 60} x80", got[0])
	}
}

func TestBuckets_TiesOrderedByKey(t *testing.T) {
	a := color.NRGBA{R: 40, G: 40, B: 200, A: 255}
	b := color.NRGBA{R: 200, G: 40, B: 40, A: 255}

	first := Buckets(NewPixelImage(fillRegions(10, []region{{b, 60}, {a, 60}})))
	second := Buckets(NewPixelImage(fillRegions(10, []region{{a, 60}, {b, 60}})))

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 buckets, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("bucket %d differs by visit order: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].Color != (RGB{40, 40, 200}) {
		t.Errorf("tie should order by key, got %v first", first[0].Color)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	img := fillRegions(16, []region{
		{color.NRGBA{R: 30, G: 150, B: 220, A: 255}, 120},
		{color.NRGBA{R: 220, G: 120, B: 30, A: 255}, 90},
	})
	px := NewPixelImage(img)

	if Extract(px) != Extract(px) {
		t.Error("Extract should be deterministic")
	}
}

func TestNewPixelImage_SubImage(t *testing.T) {
	img := solid(color.NRGBA{R: 10, G: 20, B: 30, A: 255}, 8, 8)
	sub := img.SubImage(image.Rect(2, 2, 6, 5))

	px := NewPixelImage(sub)
	if px.Width != 4 || px.Height != 3 {
		t.Fatalf("size = %dx%d, want 4x3", px.Width, px.Height)
	}
	if len(px.Pix) != 4*3*4 {
		t.Errorf("len(Pix) = %d, want %d", len(px.Pix), 4*3*4)
	}
}
