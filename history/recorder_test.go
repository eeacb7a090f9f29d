package history

import "testing"

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var r *Recorder
	if err := r.Record(Row{Generation: 1}); err != nil {
		t.Fatalf("Record on nil recorder returned error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close on nil recorder returned error: %v", err)
	}
}

func TestNewRecorderWithoutSQLiteTagReturnsNilBackend(t *testing.T) {
	r, err := NewRecorder("ignored.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil recorder without the sqlite build tag, got %+v", r)
	}
}
