package cache

// ArtifactKeyOpts are the output options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Background string `json:"background,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<format>:<hash>" where the hash covers the
// scene hash and every option.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, sceneHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so several applications or users
// can share one backend.
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// Prefix returns the namespace prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
