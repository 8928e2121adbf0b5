package roster

import (
	"fmt"
	"slices"
)

// OverflowSuffix follows the hidden count on the overflow chip.
const OverflowSuffix = " more"

// Decision records which names are drawn and how many are not.
// len(Visible) + Hidden always equals the roster length.
type Decision struct {
	Visible []string `json:"visible"`
	Hidden  int      `json:"hidden"`
}

// Overflow returns the overflow chip label, or "" when nothing is hidden.
func (d Decision) Overflow() string {
	if d.Hidden <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d%s", d.Hidden, OverflowSuffix)
}

// Total returns the roster length the decision was made for.
func (d Decision) Total() int {
	return len(d.Visible) + d.Hidden
}

// Layout decides which names fit in box.
//
// With showAll, every name is visible and measure is never called.
// Otherwise names are placed in order within box.EffectiveWidth; the first
// name that would open row box.MaxRows, and every name after it, is hidden.
// A single name wider than the effective width still occupies a row alone.
func Layout(names []string, box Box, showAll bool, measure MeasureFunc) Decision {
	if showAll {
		return Decision{Visible: slices.Clone(names)}
	}

	limit := box.EffectiveWidth()
	visible := make([]string, 0, len(names))
	row, offset := 0, 0.0

	for _, name := range names {
		w := measure(name)
		if offset > 0 && offset+box.Gap+w > limit {
			row++
			offset = w
		} else if offset > 0 {
			offset += box.Gap + w
		} else {
			offset = w
		}
		if row >= box.MaxRows {
			break
		}
		visible = append(visible, name)
	}

	return Decision{
		Visible: visible,
		Hidden:  len(names) - len(visible),
	}
}
