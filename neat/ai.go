package neat

import (
	"fmt"

	"github.com/Feriguel/Evolutionary-AI-TORCS/history"
)

// AI is a dual-mode front end: in training mode it forwards evaluation
// requests to the current gym genome, in inference mode to a frozen
// champion loaded from disk. Exactly one of gym/champion is set at a time.
type AI struct {
	engine   *Engine
	gym      *Gym
	champion *Genome
}

// NewTrainingAI constructs an AI backed by a fresh or resumed Gym.
func NewTrainingAI(engine *Engine, recorder *history.Recorder) (*AI, error) {
	gym, err := NewGym(engine, recorder)
	if err != nil {
		return nil, fmt.Errorf("neat: failed to start training AI: %w", err)
	}
	return &AI{engine: engine, gym: gym}, nil
}

// NewInferenceAI constructs an AI backed by a frozen champion loaded from
// disk. A missing champion file falls back to the bootstrap genome, per the
// persistence-I/O-failure error category.
func NewInferenceAI(engine *Engine) (*AI, error) {
	dir := engine.Settings.Persistence.GenomesDir
	champion, err := LoadChampion(engine, ChampionFinalPath(dir))
	if err != nil {
		champion = NewDefaultGenome(engine)
	}
	return &AI{engine: engine, champion: &champion}, nil
}

// Evaluate runs one forward pass through the active genome, gym or frozen.
func (a *AI) Evaluate(inputs []float64) ([]float64, error) {
	if a.gym == nil {
		return a.champion.Evaluate(a.engine, inputs)
	}
	return a.gym.EvaluateCurrent(inputs)
}

// Appraise writes a fitness score for the current training genome. In
// inference mode this is a no-op.
func (a *AI) Appraise(fitness float64) error {
	if a.gym == nil {
		return nil
	}
	return a.gym.AppraiseCurrent(fitness)
}

// AdvanceInTrain moves the training cursor forward. In inference mode this
// is a no-op.
func (a *AI) AdvanceInTrain() error {
	if a.gym == nil {
		return nil
	}
	return a.gym.AdvanceInTrain()
}

// GetInformation reports current training status, or the frozen champion's
// stats in inference mode.
func (a *AI) GetInformation() (GenerationInfo, error) {
	if a.gym == nil {
		return GenerationInfo{
			Generation:     a.champion.Generation,
			TopFitness:     a.champion.Fitness,
			TopGenes:       len(a.champion.Network),
			TopNeurons:     a.champion.TotalNeurons,
			CurrentFitness: a.champion.Fitness,
			SpeciesCount:   0,
		}, nil
	}
	return a.gym.GetInformation()
}

// Close persists training state. In inference mode this is a no-op.
func (a *AI) Close() error {
	if a.gym == nil {
		return nil
	}
	return a.gym.Close()
}

// Training reports whether this façade owns a live gym.
func (a *AI) Training() bool {
	return a.gym != nil
}
