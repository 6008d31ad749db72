package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies one layout pass.
	LayoutKey(variant string, opts LayoutKeyOpts) string
	// PlanKey identifies a building plan by the hash of its spec.
	PlanKey(specHash string) string
	// ArtifactKey identifies a rendered artifact of a layout or plan.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every input of a layout pass besides the variant.
type LayoutKeyOpts struct {
	ConfigHash string  `json:"config_hash"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Depth      float64 `json:"depth"`
	Seed       uint64  `json:"seed"`
}

// ArtifactKeyOpts holds the render inputs of an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	View   string  `json:"view,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(variant string, opts LayoutKeyOpts) string {
	return hashKey("layout:"+variant, opts)
}

// PlanKey implements Keyer.
func (DefaultKeyer) PlanKey(specHash string) string {
	return "plan:" + specHash
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
