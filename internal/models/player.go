// internal/models/player.go
package models

// AnswerIndex is the index of the pseudo-player holding the hidden solution.
const AnswerIndex = 0

type Player struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Index       int    `json:"index"`

	// HandKnown is set once the player's entire hand has been recorded.
	HandKnown bool `json:"handKnown"`

	// Notes is an append-only list of annotations about this player.
	Notes []Note `json:"-"`
}

// IsAnswer reports whether p is the Answer pseudo-player.
func (p *Player) IsAnswer() bool {
	return p != nil && p.Index == AnswerIndex
}

func (p *Player) AddNote(n Note) {
	p.Notes = append(p.Notes, n)
}
