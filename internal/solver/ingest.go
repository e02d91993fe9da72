// internal/solver/ingest.go
package solver

import (
	"fmt"

	"github.com/joedrago/clue/internal/models"
	"github.com/sirupsen/logrus"
)

// RecordHand asserts that the player holds exactly these cards and nothing else.
func (s *Solver) RecordHand(playerName string, cardNames []string) error {
	owner, err := s.players.Lookup(playerName)
	if err != nil {
		return err
	}
	cards, err := s.lookupCards(cardNames)
	if err != nil {
		return err
	}

	inHand := make(map[*models.Card]bool, len(cards))
	answerAxes := make(map[*models.Axis]bool)
	for _, c := range cards {
		if err := s.canResolve(c, owner); err != nil {
			return err
		}
		if owner.IsAnswer() {
			if answerAxes[c.Axis] {
				return fmt.Errorf("%w: the answer holds one card per axis, got two from %s", ErrLogicContradiction, c.Axis.DisplayName)
			}
			answerAxes[c.Axis] = true
		}
		inHand[c] = true
	}
	for _, c := range s.cards.All() {
		if c.Owner == owner && !inHand[c] {
			return fmt.Errorf("%w: %s already owns %s, which is not in the hand", ErrLogicContradiction, owner.DisplayName, c.DisplayName)
		}
	}

	s.log.WithFields(logrus.Fields{"player": playerName, "cards": len(cards)}).Debug("recording hand")
	s.emit(Event{Type: EventHand, Player: owner, Cards: cards})

	trig := models.Trigger{Kind: models.TriggerHand, Player: owner}
	for _, c := range cards {
		if c.Owner == owner {
			continue
		}
		if err := s.resolve(c, owner, models.Note{Reason: models.ReasonInHand, Player: owner, Trigger: trig}); err != nil {
			return err
		}
	}

	owner.HandKnown = true
	owner.AddNote(models.Note{Reason: models.ReasonHandKnown, Player: owner, Trigger: trig})
	// every card outside the hand gets a note, even if owner was already ruled out
	for _, c := range s.cards.All() {
		if inHand[c] {
			continue
		}
		n := models.Note{Reason: models.ReasonHandKnown, Player: owner, Trigger: trig}
		if !c.Possible.Has(owner.Index) {
			s.note(c, n)
			continue
		}
		if err := s.eliminate(c, owner, n); err != nil {
			return err
		}
	}

	return s.propagate(trig)
}

// RecordSuggestion records an inquiry. The suggester proposed one card per axis and
// the listed players, in order, each showed one of them. Everybody else showed nothing.
func (s *Solver) RecordSuggestion(suggesterName string, cardNames, playerNames []string) error {
	suggester, err := s.players.Lookup(suggesterName)
	if err != nil {
		return err
	}
	if suggester.IsAnswer() {
		return fmt.Errorf("%w: %s cannot suggest", ErrPseudoPlayer, suggester.DisplayName)
	}
	cards, err := s.lookupCards(cardNames)
	if err != nil {
		return err
	}
	responders := make([]*models.Player, 0, len(playerNames))
	for _, name := range playerNames {
		p, err := s.players.Lookup(name)
		if err != nil {
			return err
		}
		if p.IsAnswer() {
			return fmt.Errorf("%w: %s cannot show a card", ErrPseudoPlayer, p.DisplayName)
		}
		responders = append(responders, p)
	}
	if err := s.checkAxes(cards); err != nil {
		return err
	}

	sg := models.NewSuggestion(len(s.suggestions), suggester, cards, responders)
	s.suggestions = append(s.suggestions, sg)
	s.log.WithFields(logrus.Fields{
		"suggestion": sg.Index(),
		"suggester":  suggesterName,
		"responders": len(responders),
	}).Debug("recording suggestion")
	s.emit(Event{Type: EventSuggestion, Player: suggester, Cards: cards, Responders: responders, Suggestion: sg})

	trig := models.Trigger{Kind: models.TriggerSuggestion, Suggestion: sg}
	answer := s.Answer()
	if sg.FullyAccounted() {
		for _, c := range cards {
			if err := s.eliminate(c, answer, models.Note{Reason: models.ReasonAllShown, Player: answer, Trigger: trig}); err != nil {
				return err
			}
		}
	}

	// The suggester is spared unless every card was accounted for: suggesting cards
	// from one's own hand is common.
	for _, p := range s.players.All() {
		if p.IsAnswer() || sg.Responded(p) {
			continue
		}
		if p == suggester && !sg.FullyAccounted() {
			continue
		}
		for _, c := range cards {
			if err := s.eliminate(c, p, models.Note{Reason: models.ReasonDidNotShow, Player: p, Trigger: trig}); err != nil {
				return err
			}
		}
	}

	if err := s.propagate(trig); err != nil {
		return err
	}
	s.emit(Event{Type: EventSettled, Cards: cards, Suggestion: sg})
	return nil
}

// RecordReveal asserts the player was directly seen holding the card.
func (s *Solver) RecordReveal(ownerName, cardName string) error {
	owner, err := s.players.Lookup(ownerName)
	if err != nil {
		return err
	}
	card, err := s.cards.Lookup(cardName)
	if err != nil {
		return err
	}
	if card.Owner != nil && card.Owner != owner {
		return fmt.Errorf("%w: trying to set owner of %s to %s, but %s already owns it",
			ErrOwnershipConflict, card.Name, owner.Name, card.Owner.Name)
	}

	trig := models.Trigger{Kind: models.TriggerReveal, Player: owner, Card: card}
	if card.Owner == owner {
		s.emit(Event{Type: EventReveal, Player: owner, Card: card, AlreadyKnown: true})
		s.note(card, models.Note{Reason: models.ReasonAlreadyKnown, Player: owner, Trigger: trig})
		return nil
	}
	if err := s.canResolve(card, owner); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"player": ownerName, "card": cardName}).Debug("recording reveal")
	s.emit(Event{Type: EventReveal, Player: owner, Card: card})
	if err := s.resolve(card, owner, models.Note{Reason: models.ReasonShown, Player: owner, Trigger: trig}); err != nil {
		return err
	}
	return s.propagate(trig)
}

func (s *Solver) lookupCards(names []string) ([]*models.Card, error) {
	cards := make([]*models.Card, 0, len(names))
	for _, name := range names {
		c, err := s.cards.Lookup(name)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// checkAxes requires exactly one card from every axis.
func (s *Solver) checkAxes(cards []*models.Card) error {
	seen := make([]bool, s.axes.Len())
	for _, c := range cards {
		if seen[c.Axis.Index] {
			return fmt.Errorf("%w: suggestion contains two cards from the %s axis", ErrDuplicateAxis, c.Axis.DisplayName)
		}
		seen[c.Axis.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: suggestion missing axis %s", ErrMissingAxis, s.axes.At(i).DisplayName)
		}
	}
	return nil
}

// canResolve checks that p may become the owner of c without breaking an invariant.
func (s *Solver) canResolve(c *models.Card, p *models.Player) error {
	if c.Owner == p {
		return nil
	}
	if c.Owner != nil {
		return fmt.Errorf("%w: trying to set owner of %s to %s, but %s already owns it",
			ErrOwnershipConflict, c.Name, p.Name, c.Owner.Name)
	}
	if !c.Possible.Has(p.Index) {
		return fmt.Errorf("%w: %s cannot own %s", ErrLogicContradiction, p.DisplayName, c.DisplayName)
	}
	if p.IsAnswer() {
		if other := c.Axis.AnswerCard(); other != nil {
			return fmt.Errorf("%w: %s and %s cannot both be the answer", ErrLogicContradiction, other.DisplayName, c.DisplayName)
		}
	}
	return nil
}

// resolve makes p the owner of c and collapses its possibilities. Resolving to the
// Answer rules the Answer out for the rest of the axis.
func (s *Solver) resolve(c *models.Card, p *models.Player, n models.Note) error {
	if c.Owner == p {
		return nil
	}
	if err := s.canResolve(c, p); err != nil {
		return err
	}
	c.Owner = p
	c.Possible.Collapse(p.Index)
	s.note(c, n)

	if p.IsAnswer() {
		excluded := models.Note{Reason: models.ReasonAnswerElsewhere, Player: p, Related: c, Trigger: n.Trigger}
		for _, other := range c.Axis.Cards {
			if other == c {
				continue
			}
			if err := s.eliminate(other, p, excluded); err != nil {
				return err
			}
		}
	}
	return nil
}

// eliminate rules p out as an owner of c.
func (s *Solver) eliminate(c *models.Card, p *models.Player, n models.Note) error {
	if !c.Possible.Has(p.Index) {
		return nil
	}
	if c.Owner == p {
		return fmt.Errorf("%w: %s is known to own %s but has been ruled out", ErrLogicContradiction, p.DisplayName, c.DisplayName)
	}
	c.Possible.Remove(p.Index)
	s.note(c, n)
	return nil
}
