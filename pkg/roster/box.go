package roster

import "github.com/matzehuels/joinpreview/pkg/fonts"

// Box is the fixed region chips are placed in.
type Box struct {
	Width      float64 // total region width
	Gap        float64 // horizontal gap between chips
	RowGap     float64 // vertical gap between rows
	ChipHeight float64 // height of one chip row
	Reserve    float64 // trailing width kept free for the overflow chip
	MaxRows    int     // rows available before names are hidden
}

// DefaultBox is the chip region shared by all card templates.
var DefaultBox = Box{
	Width:      740,
	Gap:        8,
	RowGap:     10,
	ChipHeight: 40,
	Reserve:    100,
	MaxRows:    2,
}

// EffectiveWidth is the width available to name chips once the overflow
// reservation is taken out.
func (b Box) EffectiveWidth() float64 {
	return b.Width - b.Reserve
}

// Height returns the height of rows stacked rows of chips.
func (b Box) Height(rows int) float64 {
	if rows <= 0 {
		return 0
	}
	return float64(rows)*b.ChipHeight + float64(rows-1)*b.RowGap
}

// MeasureFunc returns the rendered width of the chip for name.
type MeasureFunc func(name string) float64

// Chip text style and padding.
const (
	ChipFontSize = 14
	ChipPaddingX = 16
)

// ChipTextStyle is the font used for chip labels.
var ChipTextStyle = fonts.TextStyle{Size: ChipFontSize, Weight: fonts.Regular}

// OverflowTextStyle is the font of a bold "+N more" label.
var OverflowTextStyle = fonts.TextStyle{Size: ChipFontSize, Weight: fonts.Bold}

// ChipMeasure measures chips as label width plus horizontal padding on
// both sides.
func ChipMeasure(m *fonts.Measurer) MeasureFunc {
	return ChipMeasureStyle(m, ChipTextStyle)
}

// ChipMeasureStyle is [ChipMeasure] for labels drawn in style.
func ChipMeasureStyle(m *fonts.Measurer, style fonts.TextStyle) MeasureFunc {
	return func(label string) float64 {
		return m.Width(label, style) + 2*ChipPaddingX
	}
}
