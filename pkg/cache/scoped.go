package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several users of a
// shared backend do not see each other's entries.
//
//	k := cache.NewScopedKeyer(nil, "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ImageKey(ref string) string { return k.prefix + k.inner.ImageKey(ref) }

func (k *ScopedKeyer) ThemeKey(contentHash string) string {
	return k.prefix + k.inner.ThemeKey(contentHash)
}

func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
