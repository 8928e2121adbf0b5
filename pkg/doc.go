// Package pkg provides the libraries behind joinpreview, a renderer for
// the join-preview cards shown when inviting players to a multiplayer
// world.
//
// # Overview
//
// A card shows the world name, a cover image and the roster of players
// already in the world. The card colors come from the cover image and the
// roster is trimmed to the space available, with a "+N more" chip for the
// rest.
//
// # Architecture
//
// The data flow for one card:
//
//	image reference (file, URL or data: URI)
//	         ↓
//	    [source] package (load, decode, auto-orient)
//	         ↓
//	    [palette] package (dominant colors → primary/secondary/accent)
//	         ↓
//	    [roster] package (which names fit, overflow count, chip positions)
//	         ↓
//	    [templates] package (modern, minimal or bold scene)
//	         ↓
//	    [scene/sink] package (SVG, PNG or JSON)
//
// [pipeline] runs these stages with caching and [preview] keeps a card up
// to date while its inputs change.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    WorldName: "Sky Islands",
//	    Image:     "cover.png",
//	    Players:   []string{"alice", "bob", "carol"},
//	    Template:  "bold",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("card.svg", res.Artifacts["svg"], 0o644)
//
// # Main Packages
//
// ## Core
//
// [palette] - Color extraction. Pixels are quantized into buckets and the
// largest saturated buckets become the theme colors. Images without such
// colors use a fixed fallback theme.
//
// [roster] - Chip layout. Names are placed in order into a fixed number of
// rows; whatever does not fit is summarized by an overflow chip.
//
// [templates] - Card composition into a renderer-neutral [scene].
//
// [scene/sink] - Serialization of a scene to SVG, PNG and JSON.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches for image bytes, themes and
// rendered files.
//
// [httputil] - Remote image fetching with retries.
//
// [io] - Input files (TOML or JSON) and atomic output writes.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for metrics and tracing around each stage.
//
// [buildinfo] - Version information set at build time.
package pkg
