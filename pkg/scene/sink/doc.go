// Package sink serializes composed scenes.
//
// Three formats are supported:
//   - SVG: the vector export, with an XML declaration and the card
//     background applied ([RenderSVG]).
//   - PNG: a native rasterization of the same scene ([RenderPNG]). Text is
//     drawn with the embedded fonts used for layout, so chip widths match.
//   - JSON: the scene description itself, for tooling and tests
//     ([RenderJSON]).
//
// # Usage
//
//	svg := sink.RenderSVG(s, sink.WithEmbeddedFonts())
//	png, err := sink.RenderPNG(s, sink.WithScale(2))
//	desc, err := sink.RenderJSON(s)
//
// Raster export failures are reported as EXPORT_FAILED errors; the scene
// and its vector export stay usable.
package sink
