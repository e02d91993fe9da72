// internal/solver/infer.go
package solver

import (
	"fmt"

	"github.com/joedrago/clue/internal/models"
	"github.com/sirupsen/logrus"
)

type rule func(trig models.Trigger) (bool, error)

// propagate runs every inference rule until a full pass resolves nothing new.
// Each productive pass resolves at least one card, so the loop ends after at most
// one pass per card plus a final quiet one.
func (s *Solver) propagate(trig models.Trigger) error {
	rules := []rule{s.singleOwner, s.singleAnswer, s.replaySuggestions}
	for pass := 1; ; pass++ {
		progress := false
		for _, r := range rules {
			changed, err := r(trig)
			if err != nil {
				return err
			}
			progress = progress || changed
		}
		s.log.WithFields(logrus.Fields{"pass": pass, "progress": progress}).Debug("inference pass")
		if !progress {
			return nil
		}
	}
}

// singleOwner resolves every card that has exactly one possible owner left.
func (s *Solver) singleOwner(trig models.Trigger) (bool, error) {
	progress := false
	for i := 0; i < s.cards.Len(); i++ {
		c := s.cards.At(i)
		if c.Resolved() {
			continue
		}
		switch c.Possible.Count() {
		case 0:
			return progress, fmt.Errorf("%w: nobody can possibly own %s", ErrLogicContradiction, c.DisplayName)
		case 1:
			idx, _ := c.Possible.Single()
			owner := s.players.At(idx)
			reason := models.ReasonOnlyOwner
			if owner.IsAnswer() {
				reason = models.ReasonAnswerFound
			}
			if err := s.resolve(c, owner, models.Note{Reason: reason, Player: owner, Trigger: trig}); err != nil {
				return progress, err
			}
			progress = true
		}
	}
	return progress, nil
}

// singleAnswer resolves the last card of an axis that could still be the Answer.
func (s *Solver) singleAnswer(trig models.Trigger) (bool, error) {
	progress := false
	answer := s.Answer()
	for i := 0; i < s.axes.Len(); i++ {
		axis := s.axes.At(i)
		if len(axis.Cards) == 0 || axis.AnswerCard() != nil {
			continue
		}
		var candidate *models.Card
		count := 0
		for _, c := range axis.Cards {
			if !c.Resolved() && c.Possible.Has(models.AnswerIndex) {
				candidate = c
				count++
			}
		}
		// none left is not a contradiction: the axis may still be missing cards
		if count != 1 {
			continue
		}
		n := models.Note{Reason: models.ReasonLastAnswer, Player: answer, Axis: axis, Trigger: trig}
		if err := s.resolve(candidate, answer, n); err != nil {
			return progress, err
		}
		progress = true
	}
	return progress, nil
}

// replaySuggestions matches responders to the cards they must have shown. Owners of
// resolved cards are accounted for; if one card and one responder are left over, that
// responder showed that card.
func (s *Solver) replaySuggestions(models.Trigger) (bool, error) {
	progress := false
	for _, sg := range s.suggestions {
		leftover := sg.Responders()
		var unresolved []*models.Card
		for _, c := range sg.Cards() {
			if !c.Resolved() {
				unresolved = append(unresolved, c)
				continue
			}
			leftover = without(leftover, c.Owner)
		}
		if len(unresolved) != 1 || len(leftover) != 1 {
			continue
		}
		owner := leftover[0]
		n := models.Note{
			Reason:  models.ReasonReplay,
			Player:  owner,
			Trigger: models.Trigger{Kind: models.TriggerSuggestion, Suggestion: sg},
		}
		if err := s.resolve(unresolved[0], owner, n); err != nil {
			return progress, err
		}
		progress = true
	}
	return progress, nil
}

func without(players []*models.Player, p *models.Player) []*models.Player {
	out := players[:0]
	for _, q := range players {
		if q != p {
			out = append(out, q)
		}
	}
	return out
}
