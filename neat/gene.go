package neat

// Gene is a single directed, weighted, enable-flagged connection between two
// neuron indices, tagged with its innovation number. From and To change only
// when a node mutation renumbers the neurons; Weight and Enabled are changed
// by the mutation operators.
type Gene struct {
	Innovation int
	From       int
	To         int
	Weight     float64
	Enabled    bool
}

// NewGene allocates a fresh innovation number and a uniformly random weight
// in [LinkOffset, LinkOffset+LinkRange] for a new (From, To) connection.
func NewGene(engine *Engine, from, to int, enabled bool) Gene {
	g := Gene{
		Innovation: engine.Innovation.Next(),
		From:       from,
		To:         to,
		Enabled:    enabled,
	}
	g.RandomizeWeight(engine)
	return g
}

// RandomizeWeight draws a fresh uniform weight in the configured range.
func (g *Gene) RandomizeWeight(engine *Engine) {
	w := engine.Settings.Weights
	g.Weight = engine.Random.Float64()*w.LinkRange + w.LinkOffset
}

// DeviateWeight nudges the weight by U(-dev/2, +dev/2) and clamps it back
// into the valid range.
func (g *Gene) DeviateWeight(engine *Engine) {
	w := engine.Settings.Weights
	dev := engine.Settings.Mutation.WeightDeviationRange
	g.Weight += engine.Random.Float64()*dev - dev/2.0
	g.Weight = clamp(g.Weight, w.LinkOffset, w.LinkOffset+w.LinkRange)
}

// SameInnovation reports whether two genes share a historical origin.
// Used for compatibility distance and crossover gene alignment.
func SameInnovation(a, b Gene) bool {
	return a.Innovation == b.Innovation
}

// SameEndpoints reports whether two genes connect the same pair of neurons
// in the same direction. Crossover uses it, through sameGene, to test "is
// this link already present"; link mutation does its own endpoint check,
// which also matches the reversed pair. The reference collapses this and SameInnovation into one overloaded operator==;
// exposing two predicates keeps each call site honest about which relation
// it actually means.
func SameEndpoints(a, b Gene) bool {
	return a.From == b.From && a.To == b.To
}

// sameGene is the disjunction the reference's operator== implements: used
// where crossover needs "is this gene already represented", regardless of
// which relation matched. Compare matches on SameInnovation alone.
func sameGene(a, b Gene) bool {
	return SameInnovation(a, b) || SameEndpoints(a, b)
}
