package cache

// Key prefixes, one per kind of cached value.
const (
	PrefixVisualization = "viz"
	PrefixArtifact      = "artifact"
)

// VisualizationKeyOpts are the inputs besides graph content that change a
// visualization payload.
type VisualizationKeyOpts struct {
	Seed       uint64  `json:"seed"`
	Iterations int     `json:"iterations"`
	Radius     float64 `json:"radius"`
	Repulsion  float64 `json:"repulsion"`
	Attraction float64 `json:"attraction"`
}

// ArtifactKeyOpts identify a rendered artifact of a visualization.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// VisualizationKey keys a visualization payload by the content hash of
	// the graph it was built from.
	VisualizationKey(graphHash string, opts VisualizationKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its visualization.
	ArtifactKey(vizHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form prefix:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// VisualizationKey implements Keyer.
func (DefaultKeyer) VisualizationKey(graphHash string, opts VisualizationKeyOpts) string {
	return hashKey(PrefixVisualization, graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(vizHash string, opts ArtifactKeyOpts) string {
	return hashKey(PrefixArtifact, vizHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
