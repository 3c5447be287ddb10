package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"divvy/internal/config"
)

// State is the saved session token, persisted across runs so the client
// can recover an authenticated identity on startup.
type State struct {
	SavedAt time.Time `json:"saved_at"`
	Token   string    `json:"token"`
}

func stateFilePath() (string, error) {
	dir, err := config.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// LoadState reads the saved session token. A missing file is not an
// error; it just means no session was saved.
func LoadState() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return State{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

// SaveState persists the session token, readable by the owner only.
func SaveState(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ClearState removes the saved session token.
func ClearState() error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
