package neat

import (
	"fmt"
	"os"
	"path/filepath"
)

// genomesDirPerm matches the reference's S_IRWXU|S_IRWXG|S_IROTH|S_IXOTH
// bootstrap permissions: owner and group full access, others read+execute.
const genomesDirPerm = 0o775

// EnsureGenomesDir creates dir if it does not already exist.
func EnsureGenomesDir(dir string) error {
	if err := os.MkdirAll(dir, genomesDirPerm); err != nil {
		return fmt.Errorf("neat: failed to bootstrap genomes directory %q: %w", dir, err)
	}
	return nil
}

// ChampionFinalPath is the fixed path for the final, shutdown-time champion.
func ChampionFinalPath(dir string) string {
	return filepath.Join(dir, "top_genome_final.txt")
}

// ChampionSnapshotPath names one per-generation snapshot.
func ChampionSnapshotPath(dir string, generation int, fitness float64) string {
	return filepath.Join(dir, fmt.Sprintf("top_genome_generation_%d_fitness_%f.txt", generation, fitness))
}

// SaveChampion writes g to path, bootstrapping dir first.
func SaveChampion(dir, path string, g Genome) error {
	if err := EnsureGenomesDir(dir); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("neat: failed to open %q for writing: %w", path, err)
	}
	defer f.Close()
	if err := g.Serialize(f); err != nil {
		return fmt.Errorf("neat: failed to write champion to %q: %w", path, err)
	}
	return nil
}

// LoadChampion reads a persisted champion from path. Callers should fall
// back to NewDefaultGenome when the returned error satisfies os.IsNotExist,
// per the persistence-I/O-failure error category: recoverable, log and
// continue.
func LoadChampion(engine *Engine, path string) (Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return Genome{}, err
	}
	defer f.Close()
	g, err := DeserializeGenome(engine, f)
	if err != nil {
		return Genome{}, fmt.Errorf("neat: failed to parse champion at %q: %w", path, err)
	}
	return g, nil
}
