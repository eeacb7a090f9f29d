package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneWeightWithinRange(t *testing.T) {
	engine := NewSeededEngine(DefaultSettings(), 1)
	w := engine.Settings.Weights
	for i := 0; i < 100; i++ {
		g := NewGene(engine, 0, 1, true)
		require.GreaterOrEqual(t, g.Weight, w.LinkOffset)
		require.LessOrEqual(t, g.Weight, w.LinkOffset+w.LinkRange)
	}
}

func TestInnovationMonotonic(t *testing.T) {
	engine := NewSeededEngine(DefaultSettings(), 2)
	last := -1
	for i := 0; i < 50; i++ {
		g := NewGene(engine, 0, 1, true)
		assert.Greater(t, g.Innovation, last)
		last = g.Innovation
	}
}

func TestSameInnovationAndEndpoints(t *testing.T) {
	engine := NewSeededEngine(DefaultSettings(), 3)
	a := NewGene(engine, 0, 5, true)
	b := a
	b.Weight = a.Weight + 1

	assert.True(t, SameInnovation(a, b))
	assert.True(t, SameEndpoints(a, b))

	c := NewGene(engine, 0, 5, true)
	assert.False(t, SameInnovation(a, c))
	assert.True(t, SameEndpoints(a, c))
}

func TestDeviateWeightClamps(t *testing.T) {
	engine := NewSeededEngine(DefaultSettings(), 4)
	w := engine.Settings.Weights
	g := NewGene(engine, 0, 1, true)
	g.Weight = w.LinkOffset + w.LinkRange
	for i := 0; i < 200; i++ {
		g.DeviateWeight(engine)
		require.GreaterOrEqual(t, g.Weight, w.LinkOffset)
		require.LessOrEqual(t, g.Weight, w.LinkOffset+w.LinkRange)
	}
}
