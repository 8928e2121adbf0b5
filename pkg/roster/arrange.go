package roster

// Placement positions one chip within the box.
type Placement struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Row   int     `json:"row"`
}

// Arrangement is the result of flowing a decision into a box.
type Arrangement struct {
	Chips    []Placement `json:"chips"`
	Overflow *Placement  `json:"overflow,omitempty"`
	Rows     int         `json:"rows"`
}

// Height returns the vertical extent of the arrangement.
func (a Arrangement) Height(box Box) float64 {
	return box.Height(a.Rows)
}

// Arrange positions the visible chips of d using the same wrapping rule as
// [Layout]. When names are hidden, the overflow chip is appended after the
// last visible chip, in the space [Box.Reserve] keeps free. Without hidden
// names the full box width is used, so show-all rosters may wrap onto any
// number of rows.
func Arrange(d Decision, box Box, measure MeasureFunc) Arrangement {
	limit := box.Width
	if d.Hidden > 0 {
		limit = box.EffectiveWidth()
	}

	var a Arrangement
	row, offset := 0, 0.0
	for _, name := range d.Visible {
		w := measure(name)
		x := 0.0
		if offset > 0 && offset+box.Gap+w > limit {
			row++
		} else if offset > 0 {
			x = offset + box.Gap
		}
		offset = x + w
		a.Chips = append(a.Chips, Placement{
			Label: name,
			X:     x,
			Y:     float64(row) * (box.ChipHeight + box.RowGap),
			Width: w,
			Row:   row,
		})
	}
	if len(d.Visible) > 0 {
		a.Rows = row + 1
	}

	if label := d.Overflow(); label != "" {
		x := 0.0
		if offset > 0 {
			x = offset + box.Gap
		}
		a.Overflow = &Placement{
			Label: label,
			X:     x,
			Y:     float64(row) * (box.ChipHeight + box.RowGap),
			Width: measure(label),
			Row:   row,
		}
		if a.Rows == 0 {
			a.Rows = 1
		}
	}
	return a
}
