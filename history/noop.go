//go:build !sqlite

package history

// NewRecorder is the default build's stand-in for the SQLite-backed
// recorder: history recording requires building with the "sqlite" tag,
// matching the reference storage layer's own optional SQLite backend.
func NewRecorder(path string) (*Recorder, error) {
	return nil, nil
}
