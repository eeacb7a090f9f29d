package neat

// Engine bundles the process-wide mutable state the reference implementation
// hides behind singletons: the innovation counter and the random source.
// Every constructor that needs either takes an *Engine explicitly instead of
// reaching for a package global (see the design note on process-wide
// counters).
type Engine struct {
	Settings   *Settings
	Innovation *Innovation
	Random     *Random
}

// NewEngine wires a fresh, non-deterministically seeded engine from the
// given settings.
func NewEngine(settings *Settings) *Engine {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Engine{
		Settings:   settings,
		Innovation: NewInnovation(),
		Random:     NewRandom(),
	}
}

// NewSeededEngine is the deterministic-testing counterpart of NewEngine.
func NewSeededEngine(settings *Settings, seed int64) *Engine {
	if settings == nil {
		settings = DefaultSettings()
	}
	return &Engine{
		Settings:   settings,
		Innovation: NewInnovation(),
		Random:     NewSeededRandom(seed),
	}
}
