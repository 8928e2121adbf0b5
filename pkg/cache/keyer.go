package cache

// Keyer derives cache keys for each kind of cached value.
type Keyer interface {
	// ImageKey is the key of the raw bytes fetched for an image reference.
	ImageKey(ref string) string
	// ThemeKey is the key of the colors extracted from image content.
	ThemeKey(contentHash string) string
	// ArtifactKey is the key of a rendered export.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the export settings that change artifact bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale,omitempty"`
	EmbedFonts  bool    `json:"embed_fonts,omitempty"`
	EmbedImages bool    `json:"embed_images,omitempty"`
	IDPrefix    string  `json:"id_prefix,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ImageKey(ref string) string { return hashKey("image", ref) }

func (DefaultKeyer) ThemeKey(contentHash string) string { return "theme:" + contentHash }

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
