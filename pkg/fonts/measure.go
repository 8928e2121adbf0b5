package fonts

import (
	"sync"

	"golang.org/x/image/font"
)

// Measurer computes rendered text widths. Faces are created lazily and
// reused; a given text and style always measure the same.
//
// A Measurer is safe for concurrent use.
type Measurer struct {
	mu    sync.Mutex
	faces map[TextStyle]font.Face
}

// NewMeasurer returns an empty Measurer.
func NewMeasurer() *Measurer {
	return &Measurer{faces: make(map[TextStyle]font.Face)}
}

var (
	defaultMeasurer     *Measurer
	defaultMeasurerOnce sync.Once
)

// Default returns the process-wide Measurer.
func Default() *Measurer {
	defaultMeasurerOnce.Do(func() { defaultMeasurer = NewMeasurer() })
	return defaultMeasurer
}

// Width returns the advance width of text in style, in pixels.
// If the fonts cannot be loaded, Width falls back to an average character
// width estimate.
func (m *Measurer) Width(text string, style TextStyle) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[style]
	if !ok {
		var err error
		if face, err = NewFace(style); err != nil {
			return estimateWidth(text, style.Size)
		}
		m.faces[style] = face
	}
	return float64(font.MeasureString(face, text)) / 64
}

// Height returns the ascent and descent of style in pixels.
func (m *Measurer) Height(style TextStyle) (ascent, descent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.faces[style]
	if !ok {
		var err error
		if face, err = NewFace(style); err != nil {
			return style.Size * 0.8, style.Size * 0.2
		}
		m.faces[style] = face
	}
	metrics := face.Metrics()
	return float64(metrics.Ascent) / 64, float64(metrics.Descent) / 64
}

// Close releases all cached faces.
func (m *Measurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.faces {
		f.Close()
		delete(m.faces, k)
	}
	return nil
}

const avgCharWidth = 0.55

func estimateWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * avgCharWidth
}
