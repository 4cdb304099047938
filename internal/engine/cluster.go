package engine

import (
	"github.com/piwi3910/PlanTidy/internal/geometry"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// Signature is the comparison data of one block definition.
type Signature struct {
	Name    string
	Bounds  model.BoundingBox
	Anchors model.AnchorSet
}

// Clusterer partitions block definitions into groups of similar geometry.
type Clusterer struct {
	Settings model.Settings
}

// NewClusterer creates a Clusterer with the given settings.
func NewClusterer(settings model.Settings) *Clusterer {
	return &Clusterer{Settings: settings}
}

// Signature computes the anchor signature of a block definition.
func (c *Clusterer) Signature(def model.BlockDefinition) Signature {
	return Signature{
		Name:    def.Name,
		Bounds:  def.CurveBounds(),
		Anchors: FindBlockAnchors(def, c.Settings.GridDivision, c.Settings.PointTolerance),
	}
}

// HasSimilarAnchors reports whether a is similar to b: all bounding box
// corners lie within the reject distance and more than SimilarityPercentage
// of a's anchors have an anchor of b within AnchorTolerance.
//
// The relation is not symmetric. The anchor count of a is the denominator,
// so a small block covered by a larger one is similar to it but not the
// other way round. A signature without anchors is never similar.
func (c *Clusterer) HasSimilarAnchors(a, b Signature) bool {
	reject := c.Settings.BBoxRejectDistance()
	for _, d := range geometry.CornerDistances(a.Bounds, b.Bounds) {
		if d >= reject {
			return false
		}
	}
	if len(a.Anchors) == 0 {
		return false
	}

	tol := c.Settings.AnchorTolerance
	matched := 0
	for _, pa := range a.Anchors {
		for _, pb := range b.Anchors {
			if geometry.Distance3D(pa, pb) <= tol {
				matched++
				break
			}
		}
	}
	return float64(matched) > float64(len(a.Anchors))*c.Settings.SimilarityPercentage
}

// Cluster groups definitions greedily in input order. Each definition joins
// the first established representative it is similar to, or becomes a new
// representative. First match wins, not best match.
func (c *Clusterer) Cluster(defs []model.BlockDefinition) (model.SimilarityPartition, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyInput
	}
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	if err := checkUnique(names); err != nil {
		return nil, err
	}

	sigs := make([]Signature, len(defs))
	for i, d := range defs {
		sigs[i] = c.Signature(d)
	}
	return c.ClusterSignatures(sigs), nil
}

// ClusterSignatures runs the greedy pass over precomputed signatures.
func (c *Clusterer) ClusterSignatures(sigs []Signature) model.SimilarityPartition {
	partition := model.SimilarityPartition{}
	var reps []Signature

	for _, sig := range sigs {
		joined := false
		for i, rep := range reps {
			if c.HasSimilarAnchors(sig, rep) {
				partition[i].Members = append(partition[i].Members, sig.Name)
				joined = true
				break
			}
		}
		if !joined {
			reps = append(reps, sig)
			partition = append(partition, model.SimilarityGroup{
				Representative: sig.Name,
				Members:        []string{},
			})
		}
	}
	return partition
}
