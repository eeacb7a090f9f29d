package neat

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/Feriguel/Evolutionary-AI-TORCS/history"
)

// Gym owns all species, tracks the currently-evaluated genome, drives the
// generational loop, and preserves the all-time champion.
type Gym struct {
	InstanceID       uuid.UUID
	Engine           *Engine
	AllSpecies       []*Species
	CurrentSpecies   int
	CurrentGenome    int
	Generation       int
	TopFitnessGenome Genome
	Recorder         *history.Recorder
}

// NewGym reads the persisted champion (falling back to the bootstrap genome
// on any read failure), seeds the starting generation from it, and produces
// GymPopulation mutated clones speciated via addGenomeToRespectiveSpecies.
func NewGym(engine *Engine, recorder *history.Recorder) (*Gym, error) {
	dir := engine.Settings.Persistence.GenomesDir
	if err := EnsureGenomesDir(dir); err != nil {
		return nil, err
	}

	instanceID := uuid.New()

	champion, err := LoadChampion(engine, ChampionFinalPath(dir))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("neat: gym %s: could not load champion, bootstrapping fresh genome: %v", instanceID, err)
		}
		champion = NewDefaultGenome(engine)
	}

	gym := &Gym{
		InstanceID:       instanceID,
		Engine:           engine,
		Generation:       champion.Generation,
		TopFitnessGenome: champion,
		Recorder:         recorder,
	}

	for i := 0; i < engine.Settings.Population.GymPopulation; i++ {
		candidate := champion.Clone()
		candidate.Mutate(engine)
		gym.addGenomeToRespectiveSpecies(candidate)
	}
	return gym, nil
}

func (g *Gym) addGenomeToRespectiveSpecies(genome Genome) {
	for _, sp := range g.AllSpecies {
		if sp.FromSpecies(g.Engine, genome) {
			sp.Genomes = append(sp.Genomes, genome)
			return
		}
	}
	g.AllSpecies = append(g.AllSpecies, NewSpecies(genome))
}

// currentGenome returns a pointer to the genome under the evaluation cursor.
func (g *Gym) currentGenome() (*Genome, error) {
	if len(g.AllSpecies) == 0 {
		return nil, ErrGymExhausted
	}
	return &g.AllSpecies[g.CurrentSpecies].Genomes[g.CurrentGenome], nil
}

// EvaluateCurrent runs a forward pass on the genome under the cursor.
func (g *Gym) EvaluateCurrent(inputs []float64) ([]float64, error) {
	genome, err := g.currentGenome()
	if err != nil {
		return nil, err
	}
	return genome.Evaluate(g.Engine, inputs)
}

// AppraiseCurrent writes fitness into the genome under the cursor.
func (g *Gym) AppraiseCurrent(fitness float64) error {
	genome, err := g.currentGenome()
	if err != nil {
		return err
	}
	genome.Fitness = fitness
	return nil
}

// AdvanceInTrain moves the evaluation cursor to the next genome, wrapping
// through species and, once every species has been visited, invoking
// AdvanceGeneration. Calling this on an exhausted gym (no species left) is a
// fail-fast: it returns ErrGymExhausted rather than leaving the cursor in an
// invalid state.
func (g *Gym) AdvanceInTrain() error {
	if len(g.AllSpecies) == 0 {
		return ErrGymExhausted
	}
	g.CurrentGenome++
	if g.CurrentGenome < len(g.AllSpecies[g.CurrentSpecies].Genomes) {
		return nil
	}
	g.CurrentSpecies++
	g.CurrentGenome = 0
	if g.CurrentSpecies < len(g.AllSpecies) {
		return nil
	}
	g.CurrentSpecies = 0
	return g.AdvanceGeneration()
}

// AdvanceGeneration runs the eight-stage generational pipeline in the exact
// order this engine requires: reordering it produces observably different
// populations.
func (g *Gym) AdvanceGeneration() error {
	if len(g.AllSpecies) == 0 {
		return ErrGymExhausted
	}

	g.cullSpecies(true) // 1. half-cull
	g.removeStaleSpecies()

	// 3. snapshot champion. This row is the closing summary of the
	// generation that just finished: its own number, its own population.
	g.TopFitnessGenome = g.AllSpecies[0].Genomes[0].Clone()
	dir := g.Engine.Settings.Persistence.GenomesDir
	snapshotPath := ChampionSnapshotPath(dir, g.Generation, g.TopFitnessGenome.Fitness)
	if err := SaveChampion(dir, snapshotPath, g.TopFitnessGenome); err != nil {
		log.Printf("neat: gym %s: failed to snapshot champion: %v", g.InstanceID, err)
	}
	if err := g.Recorder.Record(g.summaryRow()); err != nil {
		log.Printf("neat: gym %s: failed to record generation history: %v", g.InstanceID, err)
	}

	g.removeWeakSpecies()          // 4.
	children := g.breedChildren() // 5.
	g.cullSpecies(false)          // 6. full-cull

	// 7. re-inject
	for _, child := range children {
		child.Mutate(g.Engine)
		g.addGenomeToRespectiveSpecies(child)
	}

	// 8. increment generation, stamp every genome
	g.Generation++
	for _, sp := range g.AllSpecies {
		for i := range sp.Genomes {
			sp.Genomes[i].Generation = g.Generation
		}
	}

	// Second row: the newly-formed next generation's starting shape, distinct
	// from the stage-3 row above since breeding, culling and re-injection have
	// since changed both the population's membership and its fitness spread,
	// and the generation number has moved on. Every fitness value here is
	// still a parent's carried-over score, since nothing has been evaluated
	// under the new generation number yet, but which parents survived (and in
	// what proportions) is not the same set stage 3 saw.
	if err := g.Recorder.Record(g.summaryRow()); err != nil {
		log.Printf("neat: gym %s: failed to record post-breed generation history: %v", g.InstanceID, err)
	}
	return nil
}

// cullSpecies eliminates either half or every genome but the best in every
// species, sorting each species' genomes descending by fitness first.
//
// The reference returns from the whole function the first time it meets a
// singleton species, silently skipping every species after it. This engine
// treats that as a per-species no-op instead — an explicit resolution of
// that ambiguity, not a silent one.
func (g *Gym) cullSpecies(half bool) {
	for _, sp := range g.AllSpecies {
		if len(sp.Genomes) == 1 {
			continue
		}
		sp.SortDescending()
		remaining := 1
		if half {
			remaining = len(sp.Genomes) / 2
		}
		sp.Genomes = sp.Genomes[:remaining]
	}
}

// removeStaleSpecies sorts species descending by their champion's fitness
// and, from the second species onward, drops any species whose member count
// falls below the stale threshold. The first species is always retained.
func (g *Gym) removeStaleSpecies() {
	if len(g.AllSpecies) == 1 {
		return
	}
	sort.SliceStable(g.AllSpecies, func(i, j int) bool {
		return g.AllSpecies[i].Genomes[0].Fitness > g.AllSpecies[j].Genomes[0].Fitness
	})
	threshold := g.Engine.Settings.Speciation.StaleThreshold
	survivors := g.AllSpecies[:1]
	for _, sp := range g.AllSpecies[1:] {
		if len(sp.Genomes) >= threshold {
			survivors = append(survivors, sp)
		} else {
			log.Printf("neat: gym %s: dropping stale species %s (%d members < threshold %d)", g.InstanceID, sp.InstanceID, len(sp.Genomes), threshold)
		}
	}
	g.AllSpecies = survivors
}

// removeWeakSpecies drops, from the second species onward, any species whose
// proportional breed allocation falls below the breed threshold.
func (g *Gym) removeWeakSpecies() {
	if len(g.AllSpecies) == 1 {
		return
	}
	totalAvg := g.totalAverageFitness()
	pop := g.Engine.Settings.Population.GymPopulation
	threshold := g.Engine.Settings.Speciation.BreedThreshold
	survivors := g.AllSpecies[:1]
	for _, sp := range g.AllSpecies[1:] {
		if sp.BreedCount(totalAvg, pop) >= threshold {
			survivors = append(survivors, sp)
		} else {
			log.Printf("neat: gym %s: dropping weak species %s (breed count below threshold %d)", g.InstanceID, sp.InstanceID, threshold)
		}
	}
	g.AllSpecies = survivors
}

func (g *Gym) totalAverageFitness() float64 {
	total := 0.0
	for _, sp := range g.AllSpecies {
		total += sp.AverageFitness()
	}
	return total
}

func (g *Gym) populationFitnesses() []float64 {
	fitnesses := make([]float64, 0, g.populationSize())
	for _, sp := range g.AllSpecies {
		for _, genome := range sp.Genomes {
			fitnesses = append(fitnesses, genome.Fitness)
		}
	}
	return fitnesses
}

// summaryRow builds one history.Row from the current population's fitness
// spread, feeding Stdev/MaxFloat/MinFloat/Median into the generation
// history alongside the mean AdvanceGeneration already tracks.
func (g *Gym) summaryRow() history.Row {
	fitnesses := g.populationFitnesses()
	return history.Row{
		Generation:     g.Generation,
		SpeciesCount:   len(g.AllSpecies),
		BestFitness:    g.TopFitnessGenome.Fitness,
		AverageFitness: Mean(fitnesses),
		FitnessStdev:   Stdev(fitnesses),
		MaxFitness:     MaxFloat(fitnesses),
		MinFitness:     MinFloat(fitnesses),
		MedianFitness:  Median(fitnesses),
		PopulationSize: len(fitnesses),
	}
}

func (g *Gym) populationSize() int {
	count := 0
	for _, sp := range g.AllSpecies {
		count += len(sp.Genomes)
	}
	return count
}

// breedChildren requests species_breed_count children from each surviving
// species, using a fresh total-average-fitness computed at this point in the
// pipeline, matching the reference's independent recomputation.
func (g *Gym) breedChildren() []Genome {
	var children []Genome
	totalAvg := g.totalAverageFitness()
	pop := g.Engine.Settings.Population.GymPopulation
	for _, sp := range g.AllSpecies {
		count := sp.BreedCount(totalAvg, pop)
		for i := 0; i < count; i++ {
			children = append(children, sp.BreedChild(g.Engine))
		}
	}
	return children
}

// Close persists whichever is higher: the current cursor genome's fitness or
// the stored champion, matching the reference's destructor behaviour.
func (g *Gym) Close() error {
	dir := g.Engine.Settings.Persistence.GenomesDir
	best := g.TopFitnessGenome
	if current, err := g.currentGenome(); err == nil && current.Fitness > best.Fitness {
		best = *current
	}
	if err := SaveChampion(dir, ChampionFinalPath(dir), best); err != nil {
		return fmt.Errorf("neat: failed to persist final champion: %w", err)
	}
	if err := g.Recorder.Close(); err != nil {
		return err
	}
	return nil
}

// GenerationInfo mirrors the reference's getInformation accessor: a single
// call surfacing generation, species count, the current genome's fitness and
// the all-time champion's fitness for status reporting.
type GenerationInfo struct {
	GymInstanceID  uuid.UUID
	Generation     int
	SpeciesCount   int
	CurrentFitness float64
	TopFitness     float64
	TopGenes       int
	TopNeurons     int
}

// GetInformation reports the gym's current status, matching the reference's
// getInformation() accessor used by callers driving the training loop.
func (g *Gym) GetInformation() (GenerationInfo, error) {
	current, err := g.currentGenome()
	fitness := 0.0
	if err == nil {
		fitness = current.Fitness
	} else if !errors.Is(err, ErrGymExhausted) {
		return GenerationInfo{}, err
	}
	return GenerationInfo{
		GymInstanceID:  g.InstanceID,
		Generation:     g.Generation,
		SpeciesCount:   len(g.AllSpecies),
		CurrentFitness: fitness,
		TopFitness:     g.TopFitnessGenome.Fitness,
		TopGenes:       len(g.TopFitnessGenome.Network),
		TopNeurons:     g.TopFitnessGenome.TotalNeurons,
	}, nil
}
