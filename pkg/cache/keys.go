package cache

// Keyer generates cache keys for the two cacheable pipeline stages.
// Implementations must be deterministic: the same inputs always produce the
// same key, and any input that changes the output must change the key.
type Keyer interface {
	// PlanKey generates a key for a computed plan document.
	// siteHash is the content hash of the loaded site (panels + name).
	PlanKey(siteHash string, opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	// planHash is the content hash of the plan document being rendered.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// PlanKeyOpts holds every setting that influences plan computation.
// The config values are spelled out as scalars so the key hash covers them
// without this package depending on the planner types.
type PlanKeyOpts struct {
	Mode            string  `json:"mode"`
	PanelWidth      float64 `json:"panel_width"`
	PanelHeight     float64 `json:"panel_height"`
	Spacing         float64 `json:"spacing"`
	FirstRafter     float64 `json:"first_rafter"`
	EdgeClearance   float64 `json:"edge_clearance"`
	MaxSpan         float64 `json:"max_span"`
	CantileverLimit float64 `json:"cantilever_limit"`
	JointTolerance  float64 `json:"joint_tolerance"`
	RowTolerance    float64 `json:"row_tolerance"`
}

// ArtifactKeyOpts holds every setting that influences rendering.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Scale     float64 `json:"scale"`
	Rafters   bool    `json:"rafters"`
	Labels    bool    `json:"labels"`
	Adjacency bool    `json:"adjacency"`
}

// DefaultKeyer generates hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a plan document.
func (k *DefaultKeyer) PlanKey(siteHash string, opts PlanKeyOpts) string {
	return hashKey("plan", siteHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
