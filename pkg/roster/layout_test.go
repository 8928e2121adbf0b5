package roster

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/joinpreview/pkg/fonts"
)

func fixed(w float64) MeasureFunc {
	return func(string) float64 { return w }
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Player %d", i+1)
	}
	return out
}

func TestLayout_Empty(t *testing.T) {
	d := Layout(nil, DefaultBox, false, fixed(80))
	if len(d.Visible) != 0 || d.Hidden != 0 {
		t.Errorf("Layout(empty) = %+v, want no visible and no hidden", d)
	}
	if d.Overflow() != "" {
		t.Errorf("Overflow() = %q, want empty", d.Overflow())
	}
}

func TestLayout_ShowAllSkipsMeasurement(t *testing.T) {
	roster := names(50)
	called := false
	d := Layout(roster, DefaultBox, true, func(string) float64 {
		called = true
		return 1000
	})

	if called {
		t.Error("measure should not be called with showAll")
	}
	if !slices.Equal(d.Visible, roster) || d.Hidden != 0 {
		t.Errorf("showAll should keep the full roster, got %d visible, %d hidden", len(d.Visible), d.Hidden)
	}
}

func TestLayout_ShowAllCopiesRoster(t *testing.T) {
	roster := []string{"a", "b"}
	d := Layout(roster, DefaultBox, true, fixed(10))
	d.Visible[0] = "changed"
	if roster[0] != "a" {
		t.Error("Layout should not alias the caller's roster")
	}
}

func TestLayout_ThreePlayersFit(t *testing.T) {
	d := Layout([]string{"Player 1", "Player 2", "Player 3"}, DefaultBox, false, fixed(120))
	if len(d.Visible) != 3 || d.Hidden != 0 {
		t.Errorf("got %d visible, %d hidden; want 3, 0", len(d.Visible), d.Hidden)
	}
}

func TestLayout_ThreePlayersFitMeasured(t *testing.T) {
	m := fonts.NewMeasurer()
	defer m.Close()

	d := Layout([]string{"Player 1", "Player 2", "Player 3"}, DefaultBox, false, ChipMeasure(m))
	if len(d.Visible) != 3 || d.Hidden != 0 {
		t.Errorf("got %d visible, %d hidden; want 3, 0", len(d.Visible), d.Hidden)
	}
}

func TestLayout_ThirtyShortNames(t *testing.T) {
	roster := names(30)
	d := Layout(roster, DefaultBox, false, fixed(80))

	// effective width 640 holds 7 chips of 80 (7*80 + 6*8 = 608) per row
	if len(d.Visible) != 14 {
		t.Errorf("len(Visible) = %d, want 14", len(d.Visible))
	}
	if d.Hidden != 16 {
		t.Errorf("Hidden = %d, want 16", d.Hidden)
	}
	if d.Overflow() != "+16 more" {
		t.Errorf("Overflow() = %q, want %q", d.Overflow(), "+16 more")
	}
	if !slices.Equal(d.Visible, roster[:14]) {
		t.Error("visible names should be a prefix of the roster in order")
	}
}

func TestLayout_SingleOversizedName(t *testing.T) {
	d := Layout([]string{"wide"}, DefaultBox, false, fixed(2000))
	if len(d.Visible) != 1 || d.Hidden != 0 {
		t.Errorf("oversized single name should occupy row 0, got %+v", d)
	}
}

func TestLayout_OversizedNamesFillRows(t *testing.T) {
	d := Layout([]string{"a", "b", "c", "d"}, DefaultBox, false, fixed(2000))
	if !slices.Equal(d.Visible, []string{"a", "b"}) || d.Hidden != 2 {
		t.Errorf("each oversized name takes a row, got %+v", d)
	}
}

func TestLayout_TooNarrowBox(t *testing.T) {
	box := DefaultBox
	box.Width = 50 // effective width is negative
	d := Layout(names(5), box, false, fixed(30))
	if len(d.Visible) != 2 || d.Hidden != 3 {
		t.Errorf("got %d visible, %d hidden; want 2, 3", len(d.Visible), d.Hidden)
	}
}

func TestLayout_CountInvariant(t *testing.T) {
	widths := []float64{10, 55, 80, 120, 333, 700, 900}
	for n := 0; n <= 40; n += 3 {
		for _, w := range widths {
			for _, showAll := range []bool{false, true} {
				d := Layout(names(n), DefaultBox, showAll, fixed(w))
				if d.Total() != n {
					t.Errorf("n=%d w=%v showAll=%v: visible+hidden = %d", n, w, showAll, d.Total())
				}
			}
		}
	}
}

func TestLayout_Idempotent(t *testing.T) {
	m := fonts.NewMeasurer()
	defer m.Close()

	roster := names(25)
	a := Layout(roster, DefaultBox, false, ChipMeasure(m))
	b := Layout(roster, DefaultBox, false, ChipMeasure(m))
	if !slices.Equal(a.Visible, b.Visible) || a.Hidden != b.Hidden {
		t.Errorf("Layout should be idempotent: %+v vs %+v", a, b)
	}
}

func TestLayout_VariableWidths(t *testing.T) {
	widths := map[string]float64{"a": 600, "b": 100, "c": 30, "d": 640, "e": 10}
	measure := func(s string) float64 { return widths[s] }

	// row 0: a (600); b wraps -> row 1: b(100) + c(30+8) = 138; d wraps -> row 2 stop
	d := Layout([]string{"a", "b", "c", "d", "e"}, DefaultBox, false, measure)
	if !slices.Equal(d.Visible, []string{"a", "b", "c"}) || d.Hidden != 2 {
		t.Errorf("got %+v", d)
	}
}

func TestDecision_Overflow(t *testing.T) {
	tests := []struct {
		hidden int
		want   string
	}{
		{0, ""},
		{1, "+1 more"},
		{42, "+42 more"},
	}
	for _, tt := range tests {
		if got := (Decision{Hidden: tt.hidden}).Overflow(); got != tt.want {
			t.Errorf("Overflow(hidden=%d) = %q, want %q", tt.hidden, got, tt.want)
		}
	}
}
