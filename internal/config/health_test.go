package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMarkStarting_AddsDirtyEntry(t *testing.T) {
	h := HealthState{}
	MarkStarting(&h)

	if len(h.Shutdowns) != 1 {
		t.Fatalf("Shutdowns length = %d, want 1", len(h.Shutdowns))
	}
	if h.Shutdowns[0] != false {
		t.Error("MarkStarting should add a dirty (false) entry")
	}
}

func TestMarkStarting_CapsHistory(t *testing.T) {
	h := HealthState{Shutdowns: []bool{true, true, true, true, true}}
	MarkStarting(&h)

	if len(h.Shutdowns) != maxShutdownHistory {
		t.Errorf("Shutdowns length = %d, want %d", len(h.Shutdowns), maxShutdownHistory)
	}
	// Oldest should have been trimmed, newest is false
	if h.Shutdowns[len(h.Shutdowns)-1] != false {
		t.Error("Last entry should be dirty (false)")
	}
}

func TestMarkCleanShutdown(t *testing.T) {
	h := HealthState{Shutdowns: []bool{false}}
	MarkCleanShutdown(&h)

	if h.Shutdowns[0] != true {
		t.Error("MarkCleanShutdown should set last entry to true")
	}
}

func TestMarkCleanShutdown_NoEntries(t *testing.T) {
	h := HealthState{}
	MarkCleanShutdown(&h) // should not panic on an empty history
	if len(h.Shutdowns) != 0 {
		t.Errorf("Shutdowns = %v, want empty", h.Shutdowns)
	}
}

func TestHealthState_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health.json")

	original := HealthState{Shutdowns: []bool{true, false, true}}

	data, err := json.MarshalIndent(original, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	readData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var loaded HealthState
	if err := json.Unmarshal(readData, &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(loaded.Shutdowns) != 3 {
		t.Errorf("Shutdowns length = %d, want 3", len(loaded.Shutdowns))
	}
}

func TestFullLifecycle(t *testing.T) {
	h := HealthState{}

	// Session 1: crash
	MarkStarting(&h)
	// No MarkCleanShutdown → dirty

	// Session 2: crash
	MarkStarting(&h)
	// No MarkCleanShutdown → dirty

	// Session 3: starts, then shuts down cleanly
	MarkStarting(&h)
	MarkCleanShutdown(&h)
	if h.Shutdowns[len(h.Shutdowns)-1] != true {
		t.Error("session 3 should be recorded clean")
	}
	if len(h.Shutdowns) != 3 {
		t.Errorf("Shutdowns length = %d, want 3", len(h.Shutdowns))
	}
}
