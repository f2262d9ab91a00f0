package cache

// ScopedKeyer wraps a Keyer with a prefix, isolating the entries of one
// dataset or team inside a shared backend such as Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "olympics-2024:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(recordsHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(recordsHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(graphHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, format)
}
