package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	StartProgress   FixtureProgress         `json:"start_progress"`
	Turns           []FixtureTurn           `json:"turns"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
	ExpectedFinal   *FixtureFinal           `json:"expected_final,omitempty"`
}

// FixtureProgress seeds the progress store before the first turn.
type FixtureProgress struct {
	Level int `json:"nivel"`
	XP    int `json:"xp"`
}

// FixtureTurn is one recorded input line.
type FixtureTurn struct {
	TurnID string `json:"turn_id"`
	Input  string `json:"entrada"`
}

// FixtureExpectedResult captures the expected outcome per turn.
type FixtureExpectedResult struct {
	TurnID  string `json:"turn_id"`
	Action  string `json:"accion"`
	Success bool   `json:"exito"`
	Command string `json:"comando,omitempty"`
}

// FixtureFinal pins the session counters after the last turn.
type FixtureFinal struct {
	Level       int `json:"nivel"`
	XP          int `json:"xp"`
	History     int `json:"historial_actas"`
	Activations int `json:"total_activaciones"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToTurns converts fixture turns to domain turns.
func (f *Fixture) ToTurns() []Turn {
	turns := make([]Turn, len(f.Turns))
	for i, ft := range f.Turns {
		turns[i] = Turn{TurnID: ft.TurnID, Input: ft.Input}
	}
	return turns
}

// #endregion fixture-loader
