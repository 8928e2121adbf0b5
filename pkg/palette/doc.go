// Package palette extracts the theme colors used to style a join preview card.
//
// # Overview
//
// [Extract] walks a decoded pixel buffer once, in raster order, and groups
// pixels into buckets of approximately equal color:
//
//  1. Each channel is floored to a multiple of [QuantizeStep].
//  2. Near-gray, near-black and near-white pixels are skipped
//     (saturation < 10%, lightness < 10% or > 90%).
//  3. Surviving pixels increment the count of their bucket.
//  4. Buckets covering at most [NoiseFloor] pixels are discarded and the
//     rest are sorted by count (ties broken by bucket key).
//
// The most frequent bucket becomes the primary color, the bucket a third of
// the way down the list the secondary color, and the bucket half way down the
// accent color. Missing positions fall back to [FallbackTheme], so extraction
// never fails.
//
// # Usage
//
//	img, _ := imaging.Open("world.png")
//	theme := palette.ExtractImage(img)
//	fmt.Println(theme.Primary.CSS()) // rgb(40, 120, 200)
package palette
