package budget

import (
	"fmt"
	"log"
	"sync"
	"time"

	"DebtSentinel/internal/model"
)

// SentKeyRetention is how long a delivered warning key suppresses a repeat.
const SentKeyRetention = 30 * 24 * time.Hour

// Manager holds the persisted planning state with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.PlanState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
// The configured horizon applies on every start. The configured surplus only
// seeds a fresh state, so an amount set through /surplus survives restarts.
func NewManager(filePath string, surplusCash float64, horizonDays int) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	if state.UpdatedAt.IsZero() {
		state.SurplusCash = surplusCash
	} else if state.SurplusCash != surplusCash {
		log.Printf("[INFO] keeping surplus %.2f from %s (config has %.2f)", state.SurplusCash, filePath, surplusCash)
	}
	if state.HorizonDays != 0 && state.HorizonDays != horizonDays {
		log.Printf("[INFO] horizon changed from %d to %d days", state.HorizonDays, horizonDays)
	}
	state.HorizonDays = horizonDays
	if state.SentWarnings == nil {
		state.SentWarnings = make(map[string]time.Time)
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current plan state.
func (m *Manager) GetState() model.PlanState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *m.state
	s.SentWarnings = make(map[string]time.Time, len(m.state.SentWarnings))
	for k, v := range m.state.SentWarnings {
		s.SentWarnings[k] = v
	}
	return s
}

// SurplusCash returns the monthly amount available on top of minimums.
func (m *Manager) SurplusCash() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.SurplusCash
}

// HorizonDays returns the look-ahead window for scoring and warnings.
func (m *Manager) HorizonDays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.HorizonDays
}

// SetSurplus persists a new surplus amount.
func (m *Manager) SetSurplus(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("surplus must not be negative: %.2f", amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state.SurplusCash
	m.state.SurplusCash = amount
	if err := m.save(); err != nil {
		m.state.SurplusCash = prev
		return fmt.Errorf("save plan state: %w", err)
	}
	return nil
}

// ShouldSend reports whether a warning with this key has not been delivered
// within the retention window.
func (m *Manager) ShouldSend(key string, now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.state.SentWarnings[key]
	return !ok || now.Sub(at) >= SentKeyRetention
}

// MarkSent remembers delivered warning keys and drops expired ones.
func (m *Manager) MarkSent(keys []string, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, at := range m.state.SentWarnings {
		if now.Sub(at) >= SentKeyRetention {
			delete(m.state.SentWarnings, k)
		}
	}
	for _, k := range keys {
		m.state.SentWarnings[k] = now
	}

	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save plan state after warnings: %v", err)
	}
}

// MarkPlanned records when the last plan report went out.
func (m *Manager) MarkPlanned(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastPlanAt = now
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save plan state after plan: %v", err)
	}
}

// MarkProjected records when the last projection digest went out.
func (m *Manager) MarkProjected(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastProjectedAt = now
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save plan state after projection: %v", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
