package replay

import (
	"fmt"
	"time"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
	"github.com/danielpatrickdp/hecatestia/go-controller/internal/progress"
)

// #region types
// Turn is a single recorded input for replay.
type Turn struct {
	TurnID string
	Input  string
}

// ReplayResult captures the outcome of replaying one turn.
type ReplayResult struct {
	TurnID   string
	Input    string
	Response engine.Response
	Level    int
	XP       int
	ActaID   string
}

// Action is the response action as a string.
func (r ReplayResult) Action() string { return string(r.Response.Action) }

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalTurns int
	Successes  int
	Errors     int
	Children   int
	ByAction   map[string]int
	Final      engine.Summary
}

// Mismatch describes one turn whose outcome diverged from the fixture.
type Mismatch struct {
	TurnID   string
	Expected FixtureExpectedResult
	Got      ReplayResult
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s/exito=%t/%q, got %s/exito=%t/%q",
		m.TurnID, m.Expected.Action, m.Expected.Success, m.Expected.Command,
		m.Got.Action(), m.Got.Response.Success, m.Got.Response.Command)
}

// replayEpoch is the fixed clock origin so record ids and hashes are stable
// from run to run.
var replayEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
// #endregion types

// #region replay
// Replay runs turns through a fresh engine seeded with start progress.
// Operates entirely in-memory with a deterministic clock and ids.
func Replay(start FixtureProgress, turns []Turn) ([]ReplayResult, engine.State, error) {
	store := progress.NewMemoryStore()
	defer store.Close()
	if err := store.Save(start.Level, start.XP); err != nil {
		return nil, engine.State{}, fmt.Errorf("seed progress: %w", err)
	}

	tick, seq := 0, 0
	e, err := engine.New(
		engine.WithStore(store),
		engine.WithClock(func() time.Time {
			tick++
			return replayEpoch.Add(time.Duration(tick) * time.Second)
		}),
		engine.WithIDs(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s-%04d", prefix, seq)
		}),
	)
	if err != nil {
		return nil, engine.State{}, fmt.Errorf("new engine: %w", err)
	}

	results := make([]ReplayResult, 0, len(turns))
	for _, turn := range turns {
		resp := e.Execute(turn.Input)
		results = append(results, ReplayResult{
			TurnID:   turn.TurnID,
			Input:    turn.Input,
			Response: resp,
			Level:    e.Level(),
			XP:       e.XP(),
			ActaID:   e.Current().ID,
		})
	}
	return results, e.Snapshot(), nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []ReplayResult, final engine.State) ReplaySummary {
	s := ReplaySummary{
		TotalTurns: len(results),
		ByAction:   map[string]int{},
		Final:      final.Summary(),
	}
	for _, r := range results {
		s.ByAction[r.Action()]++
		if r.Response.Success {
			s.Successes++
		} else {
			s.Errors++
		}
		if r.Response.Action == engine.ActionGenerateChild {
			s.Children++
		}
	}
	return s
}

// Compare matches results against expectations by position. Missing or extra
// turns count as mismatches.
func Compare(results []ReplayResult, expected []FixtureExpectedResult) []Mismatch {
	var out []Mismatch
	n := len(results)
	if len(expected) > n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(results):
			out = append(out, Mismatch{TurnID: expected[i].TurnID, Expected: expected[i]})
		case i >= len(expected):
			out = append(out, Mismatch{TurnID: results[i].TurnID, Got: results[i]})
		default:
			exp, got := expected[i], results[i]
			if exp.Action != got.Action() || exp.Success != got.Response.Success ||
				(exp.Command != "" && exp.Command != got.Response.Command) {
				out = append(out, Mismatch{TurnID: got.TurnID, Expected: exp, Got: got})
			}
		}
	}
	return out
}

// CompareFinal checks the session counters after the last turn against the
// fixture's pinned values. A nil want matches anything.
func CompareFinal(want *FixtureFinal, s ReplaySummary) []string {
	if want == nil {
		return nil
	}
	var out []string
	check := func(name string, exp, got int) {
		if exp != got {
			out = append(out, fmt.Sprintf("%s: expected %d, got %d", name, exp, got))
		}
	}
	check("nivel", want.Level, s.Final.Level)
	check("xp", want.XP, s.Final.XP)
	check("historial_actas", want.History, s.Final.History)
	check("total_activaciones", want.Activations, s.Final.Stats.TotalActivations)
	return out
}
// #endregion replay
