package budget

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_SeedsFreshState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")
	m, err := NewManager(path, 300, 90)
	require.NoError(t, err)

	assert.Equal(t, 300.0, m.SurplusCash())
	assert.Equal(t, 90, m.HorizonDays())
	_, err = os.Stat(path)
	assert.NoError(t, err, "state file should be written on init")
}

func TestSetSurplus_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 300, 90)
	require.NoError(t, err)
	require.NoError(t, m.SetSurplus(650))
	assert.Error(t, m.SetSurplus(-1))

	reloaded, err := NewManager(path, 100, 30)
	require.NoError(t, err)
	assert.Equal(t, 650.0, reloaded.SurplusCash(), "persisted surplus wins over config")
}

func TestNewManager_ConfiguredHorizonAppliesOnRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	_, err := NewManager(path, 300, 90)
	require.NoError(t, err)

	reloaded, err := NewManager(path, 300, 45)
	require.NoError(t, err)
	assert.Equal(t, 45, reloaded.HorizonDays())

	st, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, 45, st.HorizonDays)
}

func TestNewManager_ZeroSurplusIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 300, 90)
	require.NoError(t, err)
	require.NoError(t, m.SetSurplus(0))

	reloaded, err := NewManager(path, 300, 90)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloaded.SurplusCash())
}

func TestWarningDedup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 0, 90)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	key := "rate_switched:visa:2025-03-01"
	assert.True(t, m.ShouldSend(key, now))

	m.MarkSent([]string{key, "high_cost_debt:amex:now"}, now)
	assert.False(t, m.ShouldSend(key, now.Add(24*time.Hour)))
	assert.True(t, m.ShouldSend(key, now.Add(SentKeyRetention)))

	// Expired keys are pruned on the next write.
	later := now.Add(SentKeyRetention + time.Hour)
	m.MarkSent([]string{"never_payoff:car:now"}, later)
	st := m.GetState()
	assert.Len(t, st.SentWarnings, 1)
	assert.Contains(t, st.SentWarnings, "never_payoff:car:now")
}

func TestGetState_ReturnsCopy(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "state.json"), 0, 90)
	require.NoError(t, err)
	m.MarkSent([]string{"a"}, time.Now())

	st := m.GetState()
	st.SentWarnings["b"] = time.Now()
	assert.NotContains(t, m.GetState().SentWarnings, "b")
}

func TestMarkPlannedAndProjected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	m, err := NewManager(path, 0, 90)
	require.NoError(t, err)

	at := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	m.MarkPlanned(at)
	m.MarkProjected(at.Add(time.Hour))

	st, err := LoadState(path)
	require.NoError(t, err)
	assert.True(t, st.LastPlanAt.Equal(at))
	assert.True(t, st.LastProjectedAt.Equal(at.Add(time.Hour)))
}

func TestLoadState_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadState(path)
	assert.Error(t, err)
}
