// internal/game/snapshot.go
package game

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/joedrago/clue/internal/models"
)

// Snapshot is the JSON view of a session's board.
type Snapshot struct {
	SessionID   uuid.UUID        `json:"session_id"`
	Players     []PlayerView     `json:"players"`
	Axes        []AxisView       `json:"axes"`
	Suggestions []SuggestionView `json:"suggestions"`
	Solution    []string         `json:"solution"`
	Solved      bool             `json:"solved"`
}

type PlayerView struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	HandKnown   bool   `json:"hand_known,omitempty"`
}

type AxisView struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Cards       []CardView `json:"cards"`
}

type CardView struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	Owner          string   `json:"owner,omitempty"`
	PossibleOwners []string `json:"possible_owners"`
	Trace          []string `json:"trace"`
}

type SuggestionView struct {
	Index      int      `json:"index"`
	Suggester  string   `json:"suggester"`
	Cards      []string `json:"cards"`
	Responders []string `json:"responders"`
}

// Snapshot captures the current state. Trace entries are rendered as plain text.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:   s.ID,
		Players:     []PlayerView{},
		Axes:        []AxisView{},
		Suggestions: []SuggestionView{},
		Solution:    []string{},
		Solved:      s.Solver.Solved(),
	}
	for _, p := range s.Solver.Players() {
		snap.Players = append(snap.Players, PlayerView{Name: p.Name, DisplayName: p.DisplayName, HandKnown: p.HandKnown})
	}
	for _, a := range s.Solver.Axes() {
		av := AxisView{Name: a.Name, DisplayName: a.DisplayName, Cards: []CardView{}}
		for _, c := range a.Cards {
			av.Cards = append(av.Cards, s.cardView(c))
		}
		snap.Axes = append(snap.Axes, av)
	}
	for _, sg := range s.Solver.Suggestions() {
		sv := SuggestionView{
			Index:      sg.Index(),
			Suggester:  sg.Suggester().Name,
			Cards:      cardNames(sg.Cards()),
			Responders: []string{},
		}
		for _, p := range sg.Responders() {
			sv.Responders = append(sv.Responders, p.Name)
		}
		snap.Suggestions = append(snap.Suggestions, sv)
	}
	// one entry per axis, empty while that axis is unsolved
	for _, c := range s.Solver.Solution() {
		name := ""
		if c != nil {
			name = c.Name
		}
		snap.Solution = append(snap.Solution, name)
	}
	return snap
}

func (s *Session) cardView(c *models.Card) CardView {
	cv := CardView{
		Name:           c.Name,
		DisplayName:    c.DisplayName,
		PossibleOwners: []string{},
		Trace:          []string{},
	}
	if c.Owner != nil {
		cv.Owner = c.Owner.Name
	}
	for _, p := range s.Solver.PossibleOwners(c) {
		cv.PossibleOwners = append(cv.PossibleOwners, p.Name)
	}
	for _, n := range c.Trace {
		cv.Trace = append(cv.Trace, s.describe.Note(n))
	}
	return cv
}

func cardNames(cards []*models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func (snap Snapshot) JSON() ([]byte, error) {
	return json.Marshal(snap)
}
