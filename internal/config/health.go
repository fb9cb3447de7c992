// Package config – health tracking for crash detection.
//
// Tracks the last few shutdown states so a run that starts right after a
// dirty shutdown can be told apart from a normal one.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HealthState tracks shutdown history.
type HealthState struct {
	// Shutdowns records the last few shutdown states (true=clean, false=dirty).
	Shutdowns []bool `json:"shutdowns"`
}

const maxShutdownHistory = 5

// healthPath returns the path to ~/.nodeterm-health.json.
func healthPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nodeterm-health.json")
}

// LoadHealth reads the health state from disk.
// Returns a zero-value HealthState if no file exists.
func LoadHealth() HealthState {
	p := healthPath()
	if p == "" {
		return HealthState{}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return HealthState{}
	}
	var h HealthState
	if err := json.Unmarshal(data, &h); err != nil {
		return HealthState{}
	}
	return h
}

// SaveHealth writes the health state to disk.
func SaveHealth(h HealthState) error {
	p := healthPath()
	if p == "" {
		return nil
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

// MarkStarting adds a dirty (false) entry to the shutdown history.
// Call this at startup before any real work begins.
func MarkStarting(h *HealthState) {
	h.Shutdowns = append(h.Shutdowns, false)
	if len(h.Shutdowns) > maxShutdownHistory {
		h.Shutdowns = h.Shutdowns[len(h.Shutdowns)-maxShutdownHistory:]
	}
}

// MarkCleanShutdown marks the most recent entry as clean (true).
// Call this during orderly shutdown.
func MarkCleanShutdown(h *HealthState) {
	if len(h.Shutdowns) > 0 {
		h.Shutdowns[len(h.Shutdowns)-1] = true
	}
}
