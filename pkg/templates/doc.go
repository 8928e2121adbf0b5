// Package templates composes join preview cards.
//
// A card is one of three visual treatments selected by [Kind]:
//
//   - [Modern]: blurred image backdrop under a light or dark wash, gradient
//     title and a rounded image card with a drop shadow.
//   - [Minimal]: plain background, title in the primary color and a clipped
//     image fading into the primary color at the bottom.
//   - [Bold]: full-bleed image, a blurred and saturated copy on top and a
//     diagonal primary-to-secondary overlay with an accent underline.
//
// Every template implements [Composer] and shares the players header and
// the chip strip, which draws the visible names decided by the roster
// package plus an optional "+N more" chip.
package templates
