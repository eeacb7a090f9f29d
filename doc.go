// Package neat implements a NeuroEvolution of Augmenting Topologies engine
// for evolving a fixed-arity sensor-to-actuator network across successive
// evaluation episodes.
//
// Genomes are an ordered gene list rather than a graph of pointers: forward
// evaluation walks neuron indices in strict ascending order, relying on the
// invariant that every enabled gene's source index is lower than its
// destination index. A Gym owns all species, drives the generational loop,
// and persists the all-time champion to a genomes/ directory.
//
// Basic usage:
//
//	engine := neat.NewEngine(neat.DefaultSettings())
//	ai, err := neat.NewTrainingAI(engine, nil)
//	if err != nil {
//		log.Fatalf("failed to start training: %v", err)
//	}
//	defer ai.Close()
//
//	for episode := 0; episode < 1000; episode++ {
//		outputs, err := ai.Evaluate(sensorVector)
//		if err != nil {
//			log.Fatalf("evaluate failed: %v", err)
//		}
//		_ = outputs // drive actuators
//		if err := ai.Appraise(fitnessForEpisode); err != nil {
//			log.Fatalf("appraise failed: %v", err)
//		}
//		if err := ai.AdvanceInTrain(); err != nil {
//			log.Fatalf("advance failed: %v", err)
//		}
//	}
package neat
