package neat

import "errors"

// ErrEmptySpecies names the invariant violation of a species with zero
// members. Culling never empties a species, and no function in this package
// returns this error.
var ErrEmptySpecies = errors.New("neat: species has no genomes")

// ErrGymExhausted is returned by operations that require at least one
// species when the gym has none left to evaluate.
var ErrGymExhausted = errors.New("neat: gym has no species left")

// ErrInputRange is returned when an evaluation input falls outside [0, 1].
// Evaluate also wraps it when an output falls outside the link-weight range.
var ErrInputRange = errors.New("neat: input value outside [0, 1]")

// ErrNeuronIndex is returned when a gene references a neuron index that does
// not exist in the genome.
var ErrNeuronIndex = errors.New("neat: gene references out-of-range neuron index")
