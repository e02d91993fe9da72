// internal/solver/solver_test.go
package solver

import (
	"io"
	"testing"

	"github.com/joedrago/clue/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// setupSolver builds a game with the given players and, per axis, the listed cards.
// Axes are named "suspects" and "weapons".
func setupSolver(t *testing.T, players []string, suspects, weapons []string) *Solver {
	t.Helper()
	s := New(Config{Logger: quietLogger()})
	for _, p := range players {
		_, err := s.AddPlayer(p, "Player "+p)
		require.NoError(t, err)
	}
	_, err := s.AddAxis("suspects", "Suspects", "")
	require.NoError(t, err)
	_, err = s.AddAxis("weapons", "Weapons", "with the ")
	require.NoError(t, err)
	for _, c := range suspects {
		_, err := s.AddCard(c, "suspects", c)
		require.NoError(t, err)
	}
	for _, c := range weapons {
		_, err := s.AddCard(c, "weapons", c)
		require.NoError(t, err)
	}
	return s
}

func smallGame(t *testing.T) *Solver {
	return setupSolver(t, []string{"p1", "p2"}, []string{"a", "b"}, []string{"x", "y"})
}

func card(t *testing.T, s *Solver, name string) *models.Card {
	t.Helper()
	c, err := s.Card(name)
	require.NoError(t, err)
	return c
}

func player(t *testing.T, s *Solver, name string) *models.Player {
	t.Helper()
	p, err := s.Player(name)
	require.NoError(t, err)
	return p
}

func lastReason(c *models.Card) models.Reason {
	if len(c.Trace) == 0 {
		return 0
	}
	return c.Trace[len(c.Trace)-1].Reason
}

func hasReason(c *models.Card, r models.Reason) bool {
	for _, n := range c.Trace {
		if n.Reason == r {
			return true
		}
	}
	return false
}

func TestNewCreatesAnswer(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	players := s.Players()
	require.Len(t, players, 1)
	assert.Equal(t, AnswerName, players[0].Name)
	assert.Equal(t, 0, players[0].Index)
	assert.True(t, players[0].IsAnswer())
	assert.Same(t, players[0], s.Answer())
}

func TestAddCardUnknownAxis(t *testing.T) {
	s := smallGame(t)
	before := len(s.Cards())

	_, err := s.AddCard("x2", "unknownAxis", "X")
	require.ErrorIs(t, err, ErrUnknownAxis)

	assert.Len(t, s.Cards(), before)
	assert.Equal(t, RefUnknown, s.Resolve("x2").Kind)
	for _, a := range s.Axes() {
		for _, c := range a.Cards {
			assert.NotEqual(t, "x2", c.Name)
		}
	}
}

func TestDuplicateNames(t *testing.T) {
	s := smallGame(t)

	_, err := s.AddPlayer("a", "Card Named Player")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.AddCard("p1", "suspects", "Player Named Card")
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = s.AddAxis("weapons", "Again", "")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// axes live in their own namespace
	_, err = s.AddAxis("a", "Axis Named Like A Card", "")
	assert.NoError(t, err)
}

func TestPlayerLimit(t *testing.T) {
	s := New(Config{MaxPlayers: 3, Logger: quietLogger()})
	_, err := s.AddPlayer("p1", "")
	require.NoError(t, err)
	_, err = s.AddPlayer("p2", "")
	require.NoError(t, err)

	_, err = s.AddPlayer("p3", "")
	require.ErrorIs(t, err, ErrPlayerLimitExceeded)
	assert.Len(t, s.Players(), 3)
	assert.Equal(t, "p1", player(t, s, "p1").DisplayName, "display name defaults to the name")
}

func TestHandClosesOtherCards(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	p1 := player(t, s, "p1")

	require.NoError(t, s.RecordHand("p1", []string{"a"}))

	a := card(t, s, "a")
	assert.Same(t, p1, a.Owner)
	assert.Equal(t, []bool{false, true, false}, a.Possible.Bools())
	assert.Equal(t, models.ReasonInHand, a.Trace[0].Reason)

	b := card(t, s, "b")
	assert.Nil(t, b.Owner)
	assert.False(t, b.Possible.Has(p1.Index))
	assert.True(t, hasReason(b, models.ReasonHandKnown))
	assert.True(t, p1.HandKnown)

	for _, name := range []string{"x", "y"} {
		assert.False(t, card(t, s, name).Possible.Has(p1.Index))
	}
}

func TestSuggestionNobodyShows(t *testing.T) {
	s := smallGame(t)
	p1 := player(t, s, "p1")
	p2 := player(t, s, "p2")

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, nil))

	for _, name := range []string{"a", "x"} {
		c := card(t, s, name)
		assert.False(t, c.Possible.Has(p2.Index), "non-responder is ruled out of %s", name)
		assert.True(t, c.Possible.Has(p1.Index), "suggester is spared for %s", name)
		assert.True(t, c.Possible.Has(models.AnswerIndex), "%s may still be the answer", name)
		assert.Equal(t, models.ReasonDidNotShow, lastReason(c))
		assert.Nil(t, c.Owner)
	}
	require.Len(t, s.Suggestions(), 1)
	assert.Equal(t, 0, s.Suggestions()[0].Index())
}

func TestFullyAccountedSuggestion(t *testing.T) {
	s := smallGame(t)

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p1", "p2"}))

	for _, name := range []string{"a", "x"} {
		c := card(t, s, name)
		assert.False(t, c.Possible.Has(models.AnswerIndex))
		assert.True(t, hasReason(c, models.ReasonAllShown))
	}

	// with a and x ruled out, the other card on each axis is the only answer left
	assert.True(t, card(t, s, "b").IsAnswer())
	assert.True(t, card(t, s, "y").IsAnswer())
	assert.True(t, s.Solved())
}

func TestRevealConflict(t *testing.T) {
	s := smallGame(t)
	require.NoError(t, s.RecordHand("p1", []string{"y"}))

	before := map[string]string{}
	traces := map[string]int{}
	for _, c := range s.Cards() {
		before[c.Name] = c.Possible.String()
		traces[c.Name] = len(c.Trace)
	}

	err := s.RecordReveal("p2", "y")
	require.ErrorIs(t, err, ErrOwnershipConflict)

	for _, c := range s.Cards() {
		assert.Equal(t, before[c.Name], c.Possible.String())
		assert.Equal(t, traces[c.Name], len(c.Trace))
	}
	assert.Same(t, player(t, s, "p1"), card(t, s, "y").Owner)
}

func TestLastAnswerOnAxis(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2", "p3"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p2", "p3"}))
	require.NoError(t, s.RecordSuggestion("p1", []string{"b", "y"}, []string{"p2", "p3"}))

	c := card(t, s, "c")
	z := card(t, s, "z")
	assert.True(t, c.IsAnswer())
	assert.True(t, z.IsAnswer())
	assert.Equal(t, models.ReasonLastAnswer, c.Trace[len(c.Trace)-1].Reason)
	assert.Equal(t, []bool{true, false, false, false}, c.Possible.Bools())
	assert.Equal(t, []*models.Card{c, z}, s.Solution())
}

func TestReplayResolvesShownCard(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2", "p3"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	p2 := player(t, s, "p2")

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p2"}))
	assert.Nil(t, card(t, s, "x").Owner)

	require.NoError(t, s.RecordReveal("p1", "a"))

	x := card(t, s, "x")
	assert.Same(t, p2, x.Owner)
	assert.Equal(t, models.ReasonReplay, lastReason(x))
	assert.Equal(t, 0, x.Trace[len(x.Trace)-1].Trigger.Suggestion.Index())
}

func TestSingleOwnerAnswerClearsAxis(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	p2 := player(t, s, "p2")

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, nil))
	require.NoError(t, s.RecordHand("p1", []string{"b", "y"}))

	a := card(t, s, "a")
	assert.True(t, a.IsAnswer())
	assert.True(t, hasReason(a, models.ReasonAnswerFound))

	c := card(t, s, "c")
	assert.True(t, hasReason(c, models.ReasonAnswerElsewhere))
	assert.Same(t, p2, c.Owner)
	assert.Equal(t, models.ReasonOnlyOwner, lastReason(c))

	assert.True(t, card(t, s, "x").IsAnswer())
	assert.Same(t, p2, card(t, s, "z").Owner)
	assert.True(t, s.Solved())
}

func TestRevealTwiceIsNoop(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2", "p3"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})

	require.NoError(t, s.RecordReveal("p2", "a"))

	before := map[string]string{}
	traces := map[string]int{}
	for _, c := range s.Cards() {
		before[c.Name] = c.Possible.String()
		traces[c.Name] = len(c.Trace)
	}

	var events []Event
	s.OnEvent = func(ev Event) { events = append(events, ev) }
	require.NoError(t, s.RecordReveal("p2", "a"))

	for _, c := range s.Cards() {
		assert.Equal(t, before[c.Name], c.Possible.String())
		if c.Name == "a" {
			assert.Equal(t, traces[c.Name]+1, len(c.Trace))
			assert.Equal(t, models.ReasonAlreadyKnown, lastReason(c))
		} else {
			assert.Equal(t, traces[c.Name], len(c.Trace))
		}
	}
	require.Len(t, events, 2)
	assert.Equal(t, EventReveal, events[0].Type)
	assert.True(t, events[0].AlreadyKnown)
	assert.Equal(t, EventNote, events[1].Type)
}

func TestContradictionOnResolvedAnswer(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	_, err := s.AddPlayer("p1", "")
	require.NoError(t, err)
	_, err = s.AddPlayer("p2", "")
	require.NoError(t, err)
	_, err = s.AddAxis("suspects", "Suspects", "")
	require.NoError(t, err)
	_, err = s.AddCard("a", "suspects", "")
	require.NoError(t, err)
	_, err = s.AddCard("b", "suspects", "")
	require.NoError(t, err)

	require.NoError(t, s.RecordSuggestion("p1", []string{"a"}, []string{"p2"}))
	assert.True(t, card(t, s, "b").IsAnswer())

	err = s.RecordSuggestion("p2", []string{"b"}, []string{"p1"})
	require.ErrorIs(t, err, ErrLogicContradiction)
}

func TestRevealRuledOutOwner(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2", "p3"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	require.NoError(t, s.RecordHand("p1", []string{"a"}))

	err := s.RecordReveal("p1", "b")
	require.ErrorIs(t, err, ErrLogicContradiction)
	assert.Nil(t, card(t, s, "b").Owner)
}

func TestHandConflicts(t *testing.T) {
	s := smallGame(t)
	require.NoError(t, s.RecordReveal("p2", "a"))

	err := s.RecordHand("p1", []string{"a"})
	require.ErrorIs(t, err, ErrOwnershipConflict)
	assert.False(t, player(t, s, "p1").HandKnown)

	err = s.RecordHand("p2", []string{"x"})
	require.ErrorIs(t, err, ErrLogicContradiction, "p2 already owns a")

	err = s.RecordHand("nobody", []string{"x"})
	require.ErrorIs(t, err, ErrUnknownName)
}

func TestSuggestionValidation(t *testing.T) {
	s := smallGame(t)

	err := s.RecordSuggestion("p1", []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrMissingAxis)

	err = s.RecordSuggestion("p1", []string{"a", "b", "x"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateAxis)
	assert.Contains(t, err.Error(), "Suspects")

	err = s.RecordSuggestion("p1", []string{"a", "nope"}, nil)
	assert.ErrorIs(t, err, ErrUnknownName)

	err = s.RecordSuggestion("p1", []string{"a", "x"}, []string{"ghost"})
	assert.ErrorIs(t, err, ErrUnknownName)

	err = s.RecordSuggestion("p1", []string{"a", "x"}, []string{AnswerName})
	assert.ErrorIs(t, err, ErrPseudoPlayer)

	err = s.RecordSuggestion(AnswerName, []string{"a", "x"}, nil)
	assert.ErrorIs(t, err, ErrPseudoPlayer)

	assert.Empty(t, s.Suggestions())
	for _, c := range s.Cards() {
		assert.Equal(t, 3, c.Possible.Count())
		assert.Empty(t, c.Trace)
	}
}

func TestStateStaysConsistentThroughGame(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2", "p3"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})

	prev := map[*models.Card][]bool{}
	owners := map[*models.Card]*models.Player{}
	check := func() {
		for _, c := range s.Cards() {
			now := c.Possible.Bools()
			assert.GreaterOrEqual(t, c.Possible.Count(), 1, "%s has no owner left", c.Name)
			if old, ok := prev[c]; ok {
				for i := range old {
					if !old[i] {
						assert.False(t, now[i], "%s player %d came back to life", c.Name, i)
					}
				}
			}
			prev[c] = now
			if o, ok := owners[c]; ok {
				assert.Same(t, o, c.Owner, "owner of %s changed", c.Name)
			}
			if c.Owner != nil {
				owners[c] = c.Owner
				idx, single := c.Possible.Single()
				assert.True(t, single)
				assert.Equal(t, c.Owner.Index, idx)
			}
		}
		for _, a := range s.Axes() {
			n := 0
			for _, c := range a.Cards {
				if c.IsAnswer() {
					n++
				}
			}
			assert.LessOrEqual(t, n, 1, "axis %s has more than one answer", a.Name)
		}
	}
	s.OnEvent = func(Event) { check() }

	// answer is a/x, p1 holds c and z, p2 holds b, p3 holds y
	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, nil))
	require.NoError(t, s.RecordSuggestion("p2", []string{"b", "y"}, []string{"p3"}))
	require.NoError(t, s.RecordSuggestion("p3", []string{"c", "y"}, []string{"p1"}))
	require.NoError(t, s.RecordHand("p1", []string{"c", "z"}))
	assert.True(t, card(t, s, "a").IsAnswer())
	assert.True(t, card(t, s, "x").IsAnswer())
	assert.Equal(t, "p3", card(t, s, "y").Owner.Name)
	require.NoError(t, s.RecordReveal("p2", "b"))
	require.NoError(t, s.RecordSuggestion("p3", []string{"a", "y"}, nil))
	check()
}

func TestLateEntities(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	require.NoError(t, s.RecordHand("p1", []string{"a"}))

	// a player joining later is possible for unresolved cards only
	p3, err := s.AddPlayer("p3", "Player 3")
	require.NoError(t, err)
	assert.False(t, card(t, s, "a").Possible.Has(p3.Index))
	assert.True(t, card(t, s, "b").Possible.Has(p3.Index))

	// a card added after p1's hand is closed cannot belong to p1
	d, err := s.AddCard("d", "suspects", "D")
	require.NoError(t, err)
	assert.False(t, d.Possible.Has(player(t, s, "p1").Index))
	assert.True(t, d.Possible.Has(p3.Index))
	assert.Equal(t, models.ReasonHandKnown, lastReason(d))
}

func TestLateCardOnSolvedAxis(t *testing.T) {
	s := smallGame(t)
	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p1", "p2"}))
	require.True(t, card(t, s, "b").IsAnswer())

	c, err := s.AddCard("c", "suspects", "")
	require.NoError(t, err)
	assert.False(t, c.Possible.Has(models.AnswerIndex))
	assert.Equal(t, models.ReasonAnswerElsewhere, lastReason(c))
}

func TestSuggestionEventOrder(t *testing.T) {
	s := smallGame(t)
	var types []EventType
	s.OnEvent = func(ev Event) { types = append(types, ev.Type) }

	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p2"}))

	require.NotEmpty(t, types)
	assert.Equal(t, EventSuggestion, types[0])
	assert.Equal(t, EventSettled, types[len(types)-1])
	for _, tp := range types[1 : len(types)-1] {
		assert.Equal(t, EventNote, tp)
	}
}

func TestResolveName(t *testing.T) {
	s := smallGame(t)

	ref := s.Resolve("a")
	assert.Equal(t, RefCard, ref.Kind)
	assert.Equal(t, "a", ref.Card.Name)

	ref = s.Resolve("p2")
	assert.Equal(t, RefPlayer, ref.Kind)
	assert.Equal(t, "p2", ref.Player.Name)

	assert.Equal(t, RefUnknown, s.Resolve("suspects").Kind)
}

func TestQueries(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	require.NoError(t, s.RecordHand("p1", []string{"a"}))

	owner, err := s.Owner("a")
	require.NoError(t, err)
	assert.Equal(t, "p1", owner.Name)

	owner, err = s.Owner("b")
	require.NoError(t, err)
	assert.Nil(t, owner)

	vec, err := s.Possibilities("b")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, vec)

	names := []string{}
	for _, p := range s.PossibleOwners(card(t, s, "b")) {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{AnswerName, "p2"}, names)

	_, err = s.Possibilities("nope")
	assert.ErrorIs(t, err, ErrUnknownName)
	_, err = s.Axis("nope")
	assert.ErrorIs(t, err, ErrUnknownAxis)
	assert.False(t, s.Solved())
}

func TestNobodyCanOwnCard(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	require.NoError(t, s.RecordHand("p1", []string{"b", "y"}))

	// p1 cannot show a or x with a closed hand, and everyone else is ruled out
	err := s.RecordSuggestion("p1", []string{"a", "x"}, []string{"p1", "p1"})
	require.ErrorIs(t, err, ErrLogicContradiction)
	assert.Contains(t, err.Error(), "nobody can possibly own a")
}

func TestAxisWithoutAnswerWaitsForCards(t *testing.T) {
	s := New(Config{Logger: quietLogger()})
	for _, p := range []string{"p1", "p2"} {
		_, err := s.AddPlayer(p, "")
		require.NoError(t, err)
	}
	_, err := s.AddAxis("suspects", "Suspects", "")
	require.NoError(t, err)
	_, err = s.AddCard("a", "suspects", "")
	require.NoError(t, err)
	_, err = s.AddAxis("weapons", "Weapons", "with the ")
	require.NoError(t, err)
	for _, c := range []string{"x", "y", "z"} {
		_, err = s.AddCard(c, "weapons", "")
		require.NoError(t, err)
	}

	require.NoError(t, s.RecordReveal("p1", "a"), "an axis with no answer left yet is not a contradiction")

	b, err := s.AddCard("b", "suspects", "")
	require.NoError(t, err)
	assert.Nil(t, b.Owner)

	require.NoError(t, s.RecordReveal("p2", "x"))
	assert.True(t, b.IsAnswer())
	assert.Equal(t, models.ReasonLastAnswer, b.Trace[0].Reason)
	assert.Nil(t, card(t, s, "y").Owner)
}

func TestHandNotesCardsAlreadyRuledOut(t *testing.T) {
	s := setupSolver(t, []string{"p1", "p2"}, []string{"a", "b", "c"}, []string{"x", "y", "z"})
	require.NoError(t, s.RecordSuggestion("p1", []string{"a", "x"}, nil))
	a := card(t, s, "a")
	require.False(t, a.Possible.Has(player(t, s, "p2").Index))
	require.False(t, hasReason(a, models.ReasonHandKnown))

	require.NoError(t, s.RecordHand("p2", []string{"b"}))
	assert.True(t, hasReason(a, models.ReasonHandKnown))
	for _, c := range s.Cards() {
		if c.Name != "b" {
			assert.True(t, hasReason(c, models.ReasonHandKnown), "%s is noted", c.Name)
		}
	}
}
