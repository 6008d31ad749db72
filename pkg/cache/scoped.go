package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants (or several
// deployments sharing one Redis) get separate namespaces.
//
// Example usage:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "skyline:api:")
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

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(variant string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(variant, opts)
}

// PlanKey generates a prefixed key for building plan caching.
func (k *ScopedKeyer) PlanKey(specHash string) string {
	return k.prefix + k.inner.PlanKey(specHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
