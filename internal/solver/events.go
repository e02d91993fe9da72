// internal/solver/events.go
package solver

import "github.com/joedrago/clue/internal/models"

type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventHand         EventType = "hand"
	EventSuggestion   EventType = "suggestion"
	EventReveal       EventType = "reveal"
	EventNote         EventType = "note"

	// EventSettled fires once inference after a suggestion has finished.
	EventSettled EventType = "settled"
)

// Event describes one journaled step. Which fields are set depends on Type.
type Event struct {
	Type       EventType
	Player     *models.Player   // joining player, hand owner, suggester or revealer
	Card       *models.Card     // card a note is about, or the revealed card
	Cards      []*models.Card   // hand or suggested cards
	Responders []*models.Player // players who showed a card
	Suggestion *models.Suggestion
	Note       *models.Note

	// AlreadyKnown is set on a reveal that repeats a known ownership.
	AlreadyKnown bool
}

func (s *Solver) emit(ev Event) {
	if s.OnEvent != nil {
		s.OnEvent(ev)
	}
}

// note appends n to the card's trace and journals it.
func (s *Solver) note(c *models.Card, n models.Note) {
	c.AddNote(n)
	s.emit(Event{Type: EventNote, Card: c, Note: &n})
}
