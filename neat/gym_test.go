package neat

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gymSettings(t *testing.T) *Settings {
	s := smallSettings()
	s.Population.GymPopulation = 12
	s.Persistence.GenomesDir = filepath.Join(t.TempDir(), "genomes") + string(filepath.Separator)
	return s
}

func TestNewGymBootstrapsPopulation(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 30)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)
	assert.Equal(t, engine.Settings.Population.GymPopulation, gym.populationSize())
	assert.NotEmpty(t, gym.AllSpecies)
}

// Universal invariant 3: the evaluation cursor visits every genome exactly
// once per generation before AdvanceGeneration runs.
func TestAdvanceInTrainVisitsEveryGenomeOnce(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 31)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)

	visited := 0
	startGeneration := gym.Generation
	for gym.Generation == startGeneration {
		_, err := gym.EvaluateCurrent(make([]float64, engine.Settings.Population.Inputs))
		require.NoError(t, err)
		require.NoError(t, gym.AppraiseCurrent(float64(visited)))
		visited++
		require.NoError(t, gym.AdvanceInTrain())
	}
	assert.Equal(t, engine.Settings.Population.GymPopulation, visited)
}

// S4 — running the generational loop for a bounded number of generations
// terminates without error and keeps the generation counter monotonic.
func TestAdvanceGenerationIsMonotonic(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 32)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)

	last := gym.Generation
	for i := 0; i < 3; i++ {
		for {
			_, err := gym.EvaluateCurrent(make([]float64, engine.Settings.Population.Inputs))
			require.NoError(t, err)
			require.NoError(t, gym.AppraiseCurrent(float64(i)))
			require.NoError(t, gym.AdvanceInTrain())
			if gym.Generation != last {
				break
			}
		}
		assert.Greater(t, gym.Generation, last)
		last = gym.Generation
	}
}

// Universal invariant 4: species membership never leaves a species empty
// (empty species are pruned, never left dangling).
func TestNoSpeciesIsLeftEmptyAfterGeneration(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 33)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)

	for {
		_, err := gym.EvaluateCurrent(make([]float64, engine.Settings.Population.Inputs))
		require.NoError(t, err)
		require.NoError(t, gym.AppraiseCurrent(1.0))
		require.NoError(t, gym.AdvanceInTrain())
		if gym.CurrentSpecies == 0 && gym.CurrentGenome == 0 {
			break
		}
	}
	for _, sp := range gym.AllSpecies {
		assert.NotEmpty(t, sp.Genomes)
	}
}

// S5 — the all-time champion is monotonic non-decreasing across generations.
func TestTopFitnessGenomeNeverRegresses(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 34)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)

	best := gym.TopFitnessGenome.Fitness
	for i := 0; i < 2; i++ {
		for {
			_, err := gym.EvaluateCurrent(make([]float64, engine.Settings.Population.Inputs))
			require.NoError(t, err)
			require.NoError(t, gym.AppraiseCurrent(float64(i+1)))
			require.NoError(t, gym.AdvanceInTrain())
			if gym.CurrentSpecies == 0 && gym.CurrentGenome == 0 {
				break
			}
		}
		assert.GreaterOrEqual(t, gym.TopFitnessGenome.Fitness, best)
		best = gym.TopFitnessGenome.Fitness
	}
}

func TestCloseOnEmptyGymPersistsChampion(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 35)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)
	require.NoError(t, gym.Close())

	path := ChampionFinalPath(engine.Settings.Persistence.GenomesDir)
	restored, err := LoadChampion(engine, path)
	require.NoError(t, err)
	assert.Equal(t, gym.TopFitnessGenome.TotalNeurons, restored.TotalNeurons)
}

func TestGetInformationOnFreshGym(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 36)
	gym, err := NewGym(engine, nil)
	require.NoError(t, err)

	info, err := gym.GetInformation()
	require.NoError(t, err)
	assert.Equal(t, len(gym.AllSpecies), info.SpeciesCount)
	assert.Equal(t, gym.Generation, info.Generation)
	assert.Equal(t, gym.InstanceID, info.GymInstanceID)
	assert.NotEqual(t, uuid.UUID{}, info.GymInstanceID)
}

// Universal invariant 4: half-cull removes exactly floor(n/2) of a
// multi-member species and leaves the retained genomes sorted descending.
func TestCullSpeciesHalvesAndSortsDescending(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 37)
	base := NewDefaultGenome(engine)

	sp := NewSpecies(base.Clone())
	sp.Genomes[0].Fitness = 3.0
	fitnesses := []float64{1.0, 5.0, 2.0, 4.0}
	for _, f := range fitnesses {
		clone := base.Clone()
		clone.Fitness = f
		sp.Genomes = append(sp.Genomes, clone)
	}
	// 5 members total: expect floor(5/2) = 2 survivors after half-cull.
	require.Len(t, sp.Genomes, 5)

	gym := &Gym{Engine: engine, AllSpecies: []*Species{sp}}
	gym.cullSpecies(true)

	require.Len(t, sp.Genomes, 2)
	assert.Equal(t, 5.0, sp.Genomes[0].Fitness)
	assert.Equal(t, 4.0, sp.Genomes[1].Fitness)
}

func TestCullSpeciesSkipsSingletonSpecies(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 38)
	sp := NewSpecies(NewDefaultGenome(engine))
	require.Len(t, sp.Genomes, 1)

	gym := &Gym{Engine: engine, AllSpecies: []*Species{sp}}
	gym.cullSpecies(true)

	assert.Len(t, sp.Genomes, 1)
}

// Universal invariant 7: an exhausted gym (no species left) fails fast with
// ErrGymExhausted rather than panicking or silently no-oping.
func TestExhaustedGymReturnsSentinelErrors(t *testing.T) {
	engine := NewSeededEngine(gymSettings(t), 39)
	gym := &Gym{Engine: engine}
	require.Empty(t, gym.AllSpecies)

	_, err := gym.EvaluateCurrent(make([]float64, engine.Settings.Population.Inputs))
	assert.True(t, errors.Is(err, ErrGymExhausted))

	err = gym.AdvanceInTrain()
	assert.True(t, errors.Is(err, ErrGymExhausted))

	err = gym.AdvanceGeneration()
	assert.True(t, errors.Is(err, ErrGymExhausted))
}
