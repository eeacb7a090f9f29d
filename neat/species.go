package neat

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Species is a cluster of genomes deemed compatible under the compatibility
// distance metric. After a cull it is sorted descending by fitness, so
// element 0 is always the species representative/champion.
type Species struct {
	InstanceID uuid.UUID
	Genomes    []Genome
}

// NewSpecies starts a species from a single founding genome.
func NewSpecies(genome Genome) *Species {
	return &Species{
		InstanceID: uuid.New(),
		Genomes:    []Genome{genome},
	}
}

// FromSpecies reports whether genome is compatible with this species,
// comparing it against the species' representative (element 0).
func (s *Species) FromSpecies(engine *Engine, genome Genome) bool {
	disjoint, weights := s.Genomes[0].Compare(genome)
	sp := engine.Settings.Speciation
	return sp.DeltaDisjoint*disjoint+sp.DeltaWeights*weights < sp.DeltaThreshold
}

// AverageFitness is the arithmetic mean of member fitnesses, 0 if empty.
func (s *Species) AverageFitness() float64 {
	if len(s.Genomes) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range s.Genomes {
		total += g.Fitness
	}
	return total / float64(len(s.Genomes))
}

// BreedCount returns the number of offspring this species is entitled to
// given the population's total average fitness, clamped at 0.
func (s *Species) BreedCount(totalAverageFitness float64, gymPopulation int) int {
	if totalAverageFitness == 0 {
		return 0
	}
	count := int(math.Floor((s.AverageFitness()/totalAverageFitness)*float64(gymPopulation))) - 1
	if count < 0 {
		return 0
	}
	return count
}

// BreedChild always uses element 0 as parent A; with probability
// Crossover.Chance it picks a uniformly random element as parent B and
// crosses them, otherwise it returns a plain clone of A.
func (s *Species) BreedChild(engine *Engine) Genome {
	parentA := s.Genomes[0]
	if engine.Random.Float64() < engine.Settings.Crossover.Chance {
		parentB := s.Genomes[engine.Random.Intn(len(s.Genomes))]
		return parentA.Crossover(engine, parentB)
	}
	return parentA.Clone()
}

// SortDescending orders members by fitness, highest first.
func (s *Species) SortDescending() {
	sort.SliceStable(s.Genomes, func(i, j int) bool {
		return s.Genomes[i].Fitness > s.Genomes[j].Fitness
	})
}
