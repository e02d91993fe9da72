// internal/models/suggestion.go
package models

// Suggestion is an immutable record of one observed inquiry: who asked, which card
// from each axis was proposed, and which players (in order) showed something.
type Suggestion struct {
	index      int
	suggester  *Player
	cards      []*Card
	responders []*Player
}

func NewSuggestion(index int, suggester *Player, cards []*Card, responders []*Player) *Suggestion {
	s := &Suggestion{
		index:      index,
		suggester:  suggester,
		cards:      make([]*Card, len(cards)),
		responders: make([]*Player, len(responders)),
	}
	copy(s.cards, cards)
	copy(s.responders, responders)
	return s
}

func (s *Suggestion) Index() int {
	return s.index
}

func (s *Suggestion) Suggester() *Player {
	return s.suggester
}

// Cards returns a copy of the proposed cards.
func (s *Suggestion) Cards() []*Card {
	out := make([]*Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Responders returns a copy of the players who showed a card, in order.
func (s *Suggestion) Responders() []*Player {
	out := make([]*Player, len(s.responders))
	copy(out, s.responders)
	return out
}

// FullyAccounted reports whether one player showed a card for every proposed card,
// which proves none of them is in the Answer.
func (s *Suggestion) FullyAccounted() bool {
	return len(s.responders) == len(s.cards)
}

// Responded reports whether p is among the responders.
func (s *Suggestion) Responded(p *Player) bool {
	for _, r := range s.responders {
		if r == p {
			return true
		}
	}
	return false
}
