// Package roster decides which player-name chips fit on a card.
//
// # Overview
//
// Chips flow left to right and wrap onto new rows. [Layout] walks the roster
// in order, measuring each chip with a caller-supplied [MeasureFunc], and
// stops accepting names as soon as one would start a row past
// [Box.MaxRows]. Everything from that name on is counted as hidden and
// summarized by a "+N more" overflow chip. Space for that chip is reserved
// at the end of every row ([Box.Reserve]).
//
// With show-all enabled, measurement is skipped: every name is visible and
// the card grows to fit ([Arrange] reports the row count).
//
// Layout is recomputed from scratch for every call; it holds no state
// between calls and identical inputs always give identical decisions.
//
// # Usage
//
//	m := fonts.Default()
//	d := roster.Layout(names, roster.DefaultBox, false, roster.ChipMeasure(m))
//	fmt.Println(len(d.Visible), d.Hidden, d.Overflow())
package roster
