// Command train exercises the AI façade end to end against a synthetic
// fitness function. It is a demonstration harness, not the racing simulator
// bridge: the sensor and actuator vectors here are placeholders standing in
// for whatever a real caller would marshal from the track.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Feriguel/Evolutionary-AI-TORCS/history"
	"github.com/Feriguel/Evolutionary-AI-TORCS/neat"
)

func main() {
	configPath := flag.String("config", "", "optional settings INI file (defaults to compiled-in constants)")
	historyPath := flag.String("history", "", "optional SQLite generation-history path (requires building with -tags sqlite)")
	generations := flag.Int("generations", 50, "number of generations to train")
	flag.Parse()

	settings := neat.DefaultSettings()
	if *configPath != "" {
		var err error
		settings, err = neat.LoadSettings(*configPath)
		if err != nil {
			log.Fatalf("failed to load settings: %v", err)
		}
	}
	if *historyPath != "" {
		settings.Persistence.HistoryPath = *historyPath
	}

	recorder, err := history.NewRecorder(settings.Persistence.HistoryPath)
	if err != nil {
		log.Fatalf("failed to open generation history: %v", err)
	}

	engine := neat.NewEngine(settings)
	ai, err := neat.NewTrainingAI(engine, recorder)
	if err != nil {
		log.Fatalf("failed to start training: %v", err)
	}
	defer func() {
		if err := ai.Close(); err != nil {
			log.Printf("WARN: failed to persist final champion: %v", err)
		}
	}()

	sensors := make([]float64, settings.Population.Inputs)
	for i := range sensors {
		sensors[i] = 0.5
	}
	target := make([]float64, settings.Population.Outputs)
	for i := range target {
		target[i] = 0.25
	}

	start := time.Now()

	bootstrapInfo, err := ai.GetInformation()
	if err != nil {
		log.Fatalf("get information failed: %v", err)
	}
	log.Printf("training gym %s for %s generations against a fixed synthetic target",
		bootstrapInfo.GymInstanceID, humanize.Comma(int64(*generations)))

	startGeneration := bootstrapInfo.Generation
	lastGeneration := startGeneration
	for lastGeneration-startGeneration < *generations {
		outputs, err := ai.Evaluate(sensors)
		if err != nil {
			log.Fatalf("evaluate failed: %v", err)
		}
		fitness := scoreAgainstTarget(outputs, target)
		if err := ai.Appraise(fitness); err != nil {
			log.Fatalf("appraise failed: %v", err)
		}
		if err := ai.AdvanceInTrain(); err != nil {
			log.Fatalf("advance failed: %v", err)
		}

		info, err := ai.GetInformation()
		if err != nil {
			log.Fatalf("get information failed: %v", err)
		}
		if info.Generation != lastGeneration {
			lastGeneration = info.Generation
			log.Printf("gym %s generation %d: %s species, top fitness %.4f, %s elapsed",
				info.GymInstanceID, info.Generation, humanize.Comma(int64(info.SpeciesCount)), info.TopFitness, humanize.Time(start))
		}
	}

	log.Println("training complete")
}

// scoreAgainstTarget rewards outputs close to a fixed target vector. This
// stands in for whatever externally-supplied episode fitness a real caller
// would compute from lap time, damage, and track position.
func scoreAgainstTarget(outputs, target []float64) float64 {
	sumSquaredError := 0.0
	for i := range target {
		diff := outputs[i] - target[i]
		sumSquaredError += diff * diff
	}
	fitness := 1.0 - sumSquaredError
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}
