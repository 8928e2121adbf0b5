// Package scene describes a composed join preview card as a small vector
// scene graph.
//
// A [Scene] is produced by a template (see package templates) and consumed
// by the sinks in [sink]: SVG for the vector export, PNG for the raster
// export and JSON for the scene description itself. The node set is limited
// to what the card templates draw: rectangles, circles, paths, text and
// images, grouped and translated, plus gradient, filter and clip
// definitions referenced by id.
//
// Scenes are plain values. Templates build a new scene for every input and
// never mutate one after returning it.
package scene
