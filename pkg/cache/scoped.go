package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, so that
// several deployments can share one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "assetgraph:prod:")
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

// VisualizationKey generates a prefixed key for visualization payloads.
func (k *ScopedKeyer) VisualizationKey(graphHash string, opts VisualizationKeyOpts) string {
	return k.prefix + k.inner.VisualizationKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(vizHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(vizHash, opts)
}
