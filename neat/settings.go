package neat

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Settings collects every tunable of the evolution engine. The zero value is
// not usable; obtain one from DefaultSettings or LoadSettings.
type Settings struct {
	Population  PopulationSettings
	Weights     WeightSettings
	Sigmoid     SigmoidSettings
	Mutation    MutationSettings
	Speciation  SpeciationSettings
	Crossover   CrossoverSettings
	Persistence PersistenceSettings
}

// PopulationSettings controls the size and structural bounds of the gym.
type PopulationSettings struct {
	Inputs        int  `ini:"inputs"`
	Outputs       int  `ini:"outputs"`
	NeuronLimit   int  `ini:"neuron_limit"`
	BasicFullLink bool `ini:"basic_full_link"`
	GymPopulation int  `ini:"gym_population"`
}

// WeightSettings bounds gene connection weights.
type WeightSettings struct {
	LinkRange  float64 `ini:"link_range"`
	LinkOffset float64 `ini:"link_offset"`
}

// SigmoidSettings shapes the neuron activation function.
type SigmoidSettings struct {
	Range      float64 `ini:"sigmoid_range"`
	GrowthRate float64 `ini:"sigmoid_growth_rate"`
	Offset     float64 `ini:"sigmoid_offset"`
}

// MutationSettings controls the four independent mutation classes.
type MutationSettings struct {
	WeightChance             float64 `ini:"mutate_weight_chance"`
	WeightAllChance          float64 `ini:"mutate_weight_all_chance"`
	WeightNewRandomChance    float64 `ini:"mutate_weight_new_random_chance"`
	WeightDeviationRange     float64 `ini:"mutate_weight_deviation_range"`
	NodeChance               float64 `ini:"mutate_node_chance"`
	LinkChance               float64 `ini:"mutate_link_chance"`
	StateChance              float64 `ini:"mutate_state_chance"`
	StateInvertAllNeuronRate float64 `ini:"mutate_state_invert_all_neuron_genes_chance"`
}

// SpeciationSettings drives compatibility distance and species survival.
type SpeciationSettings struct {
	BreedThreshold int     `ini:"species_breed_threshold"`
	StaleThreshold int     `ini:"species_stale_threshold"`
	DeltaDisjoint  float64 `ini:"species_delta_disjoint"`
	DeltaWeights   float64 `ini:"species_delta_weights"`
	DeltaThreshold float64 `ini:"species_delta_threshold"`
}

// CrossoverSettings controls breeding.
type CrossoverSettings struct {
	Chance       float64 `ini:"crossover_chance"`
	GeneAddition float64 `ini:"crossover_gene_addition"`
}

// PersistenceSettings controls where champions and generation history land.
// These are not part of the GLOSSARY constants; they are ambient deployment
// concerns layered on top.
type PersistenceSettings struct {
	GenomesDir  string `ini:"genomes_dir"`
	HistoryPath string `ini:"history_path"`
}

// DefaultSettings returns the GLOSSARY defaults with no file I/O. This is
// what an engine constructed without a config path behaves as, matching the
// "no runtime configuration file" default described for this engine.
func DefaultSettings() *Settings {
	return &Settings{
		Population: PopulationSettings{
			Inputs:        76,
			Outputs:       6,
			NeuronLimit:   1000,
			BasicFullLink: true,
			GymPopulation: 100,
		},
		Weights: WeightSettings{
			LinkRange:  2.0,
			LinkOffset: -1.0,
		},
		Sigmoid: SigmoidSettings{
			Range:      2.0,
			GrowthRate: -4.9,
			Offset:     -1.0,
		},
		Mutation: MutationSettings{
			WeightChance:             0.4,
			WeightAllChance:          0.3,
			WeightNewRandomChance:    0.2,
			WeightDeviationRange:     0.2,
			NodeChance:               0.3,
			LinkChance:               0.3,
			StateChance:              0.5,
			StateInvertAllNeuronRate: 0.0,
		},
		Speciation: SpeciationSettings{
			BreedThreshold: 3,
			StaleThreshold: 5,
			DeltaDisjoint:  0.4,
			DeltaWeights:   0.6,
			DeltaThreshold: 0.5,
		},
		Crossover: CrossoverSettings{
			Chance:       0.75,
			GeneAddition: 0.5,
		},
		Persistence: PersistenceSettings{
			GenomesDir:  "genomes/",
			HistoryPath: "",
		},
	}
}

// LoadSettings reads an INI file overriding the GLOSSARY defaults. Sections
// not present in the file keep their DefaultSettings value.
func LoadSettings(filePath string) (*Settings, error) {
	settings := DefaultSettings()

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("neat: failed to load settings file %q: %w", filePath, err)
	}

	if err := cfg.Section("Population").MapTo(&settings.Population); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Population] section: %w", err)
	}
	if err := cfg.Section("Weights").MapTo(&settings.Weights); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Weights] section: %w", err)
	}
	if err := cfg.Section("Sigmoid").MapTo(&settings.Sigmoid); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Sigmoid] section: %w", err)
	}
	if err := cfg.Section("Mutation").MapTo(&settings.Mutation); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Mutation] section: %w", err)
	}
	if err := cfg.Section("Speciation").MapTo(&settings.Speciation); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Speciation] section: %w", err)
	}
	if err := cfg.Section("Crossover").MapTo(&settings.Crossover); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Crossover] section: %w", err)
	}
	if err := cfg.Section("Persistence").MapTo(&settings.Persistence); err != nil {
		return nil, fmt.Errorf("neat: failed to map [Persistence] section: %w", err)
	}

	settings.Persistence.GenomesDir = strings.TrimSpace(settings.Persistence.GenomesDir)
	if settings.Persistence.GenomesDir == "" {
		settings.Persistence.GenomesDir = "genomes/"
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes s back out as an INI file with one section per settings group,
// the inverse of LoadSettings. Round-tripping DefaultSettings() through
// Save then LoadSettings reproduces it field-for-field.
func (s *Settings) Save(filePath string) error {
	cfg := ini.Empty()
	if err := ini.ReflectFrom(cfg, s); err != nil {
		return fmt.Errorf("neat: failed to reflect settings for %q: %w", filePath, err)
	}
	if err := cfg.SaveTo(filePath); err != nil {
		return fmt.Errorf("neat: failed to write settings file %q: %w", filePath, err)
	}
	return nil
}

// Validate rejects out-of-range values the way the teacher's LoadConfig
// rejects malformed neat-python configs.
func (s *Settings) Validate() error {
	if s.Population.Inputs <= 0 {
		return fmt.Errorf("neat: config error: inputs must be positive")
	}
	if s.Population.Outputs <= 0 {
		return fmt.Errorf("neat: config error: outputs must be positive")
	}
	if s.Population.NeuronLimit <= s.Population.Inputs+s.Population.Outputs {
		return fmt.Errorf("neat: config error: neuron_limit must exceed inputs+outputs")
	}
	if s.Population.GymPopulation <= 0 {
		return fmt.Errorf("neat: config error: gym_population must be positive")
	}
	if s.Weights.LinkRange <= 0 {
		return fmt.Errorf("neat: config error: link_range must be positive")
	}
	if s.Sigmoid.Range <= 0 {
		return fmt.Errorf("neat: config error: sigmoid_range must be positive")
	}
	for name, v := range map[string]float64{
		"mutate_weight_chance":                       s.Mutation.WeightChance,
		"mutate_weight_all_chance":                   s.Mutation.WeightAllChance,
		"mutate_weight_new_random_chance":             s.Mutation.WeightNewRandomChance,
		"mutate_node_chance":                          s.Mutation.NodeChance,
		"mutate_link_chance":                          s.Mutation.LinkChance,
		"mutate_state_chance":                         s.Mutation.StateChance,
		"mutate_state_invert_all_neuron_genes_chance": s.Mutation.StateInvertAllNeuronRate,
		"crossover_chance":                            s.Crossover.Chance,
		"crossover_gene_addition":                     s.Crossover.GeneAddition,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("neat: config error: %s must be between 0 and 1, got %v", name, v)
		}
	}
	if s.Speciation.BreedThreshold < 0 {
		return fmt.Errorf("neat: config error: species_breed_threshold cannot be negative")
	}
	if s.Speciation.StaleThreshold < 0 {
		return fmt.Errorf("neat: config error: species_stale_threshold cannot be negative")
	}
	return nil
}
