package palette

import (
	"cmp"
	"slices"
)

// QuantizeStep is the per-channel quantization step.
const QuantizeStep = 10

// NoiseFloor is the count a bucket must exceed to be considered dominant.
const NoiseFloor = 50

// Bucket aggregates pixels whose quantized color is equal.
type Bucket struct {
	Color RGB
	Count int
}

func quantize(v uint8) uint8 {
	return v / QuantizeStep * QuantizeStep
}

// key packs a quantized color into a single comparable value.
func (c RGB) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

type buckets struct {
	index map[uint32]int
	list  []Bucket
}

func newBuckets() *buckets {
	return &buckets{index: make(map[uint32]int)}
}

func (b *buckets) add(c RGB) {
	k := c.key()
	if i, ok := b.index[k]; ok {
		b.list[i].Count++
		return
	}
	b.index[k] = len(b.list)
	b.list = append(b.list, Bucket{Color: c, Count: 1})
}

// dominant returns buckets above the noise floor, most frequent first.
// Equal counts are ordered by bucket key so the result does not depend on
// map iteration or pixel visit order.
func (b *buckets) dominant() []Bucket {
	out := make([]Bucket, 0, len(b.list))
	for _, bk := range b.list {
		if bk.Count > NoiseFloor {
			out = append(out, bk)
		}
	}
	slices.SortFunc(out, func(x, y Bucket) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Color.key(), y.Color.key())
	})
	return out
}
