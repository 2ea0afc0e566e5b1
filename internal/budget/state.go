package budget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"DebtSentinel/internal/model"
)

// LoadState reads the plan state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*model.PlanState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.PlanState{}, nil
		}
		return nil, fmt.Errorf("read plan state: %w", err)
	}
	var state model.PlanState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse plan state: %w", err)
	}
	return &state, nil
}

// SaveState writes the plan state to a JSON file, creating its directory if needed.
func SaveState(filePath string, state *model.PlanState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
