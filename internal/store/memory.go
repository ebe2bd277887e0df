package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/theirongolddev/finquest/internal/model"
)

// Memory keeps state in process. Saved documents are copied through JSON
// so callers never share slices with the store. The zero value is ready
// to use.
type Memory struct {
	mu        sync.Mutex
	state     []byte
	rollovers map[string]float64

	// SaveErr, when set, is returned by SaveState without storing.
	SaveErr error
	// Saves counts successful SaveState calls.
	Saves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{rollovers: make(map[string]float64)}
}

// LoadState returns the last saved state or the default state.
func (m *Memory) LoadState() (model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return model.DefaultState(), nil
	}
	var st model.State
	if err := json.Unmarshal(m.state, &st); err != nil {
		return model.DefaultState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return st.Normalized(), nil
}

// SaveState stores a copy of st.
func (m *Memory) SaveState(st model.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	m.state = data
	m.Saves++
	return nil
}

// SetRaw replaces the stored document with raw bytes.
func (m *Memory) SetRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = raw
}

// Rollover returns the amount deferred into monthKey.
func (m *Memory) Rollover(monthKey string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollovers[monthKey], nil
}

// AddRollover adds amount to the bucket of monthKey.
func (m *Memory) AddRollover(monthKey string, amount float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rollovers == nil {
		m.rollovers = make(map[string]float64)
	}
	m.rollovers[monthKey] += amount
	return m.rollovers[monthKey], nil
}

// Reset forgets everything.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	m.rollovers = make(map[string]float64)
	return nil
}
