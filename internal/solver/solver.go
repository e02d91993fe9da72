// internal/solver/solver.go
package solver

import (
	"fmt"

	"github.com/joedrago/clue/internal/models"
	"github.com/joedrago/clue/internal/registry"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxPlayers bounds the player count, Answer included.
	DefaultMaxPlayers = 10

	AnswerName        = "answer"
	AnswerDisplayName = "Answer"
)

type Config struct {
	MaxPlayers int
	Logger     logrus.FieldLogger
}

// Solver holds the possibility space of one game and the history of what was observed.
// It is not safe for concurrent use.
type Solver struct {
	names       *registry.Namespace
	players     *registry.Registry[*models.Player]
	cards       *registry.Registry[*models.Card]
	axes        *registry.Registry[*models.Axis]
	suggestions []*models.Suggestion
	log         logrus.FieldLogger

	// OnEvent, when set, receives every journaled step in order.
	OnEvent func(ev Event)
}

// New builds an empty solver. The Answer pseudo-player is created at index 0.
func New(cfg Config) *Solver {
	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	ns := registry.NewNamespace()
	s := &Solver{
		names:   ns,
		players: registry.New[*models.Player]("player", ns).WithLimit(maxPlayers),
		cards:   registry.New[*models.Card]("card", ns),
		axes:    registry.New[*models.Axis]("axis", nil),
		log:     logger,
	}

	answer := &models.Player{Name: AnswerName, DisplayName: AnswerDisplayName}
	idx, _ := s.players.Register(AnswerName, answer)
	answer.Index = idx
	return s
}

// AddPlayer appends a player. An empty displayName falls back to name.
func (s *Solver) AddPlayer(name, displayName string) (*models.Player, error) {
	if displayName == "" {
		displayName = name
	}
	p := &models.Player{Name: name, DisplayName: displayName}
	idx, err := s.players.Register(name, p)
	if err != nil {
		return nil, err
	}
	p.Index = idx

	// cards created before this player learn about the new slot
	for _, c := range s.cards.All() {
		c.Possible.Extend(!c.Resolved())
	}

	p.AddNote(models.Note{Reason: models.ReasonJoined, Player: p})
	s.log.WithFields(logrus.Fields{"player": name, "index": idx}).Debug("player added")
	s.emit(Event{Type: EventPlayerJoined, Player: p})
	return p, nil
}

// AddAxis appends an axis. prefix is printed before cards of this axis in narration.
func (s *Solver) AddAxis(name, displayName, prefix string) (*models.Axis, error) {
	if displayName == "" {
		displayName = name
	}
	a := &models.Axis{Name: name, DisplayName: displayName, Prefix: prefix}
	idx, err := s.axes.Register(name, a)
	if err != nil {
		return nil, err
	}
	a.Index = idx
	s.log.WithFields(logrus.Fields{"axis": name, "index": idx}).Debug("axis added")
	return a, nil
}

// AddCard appends a card to the named axis with every player still possible.
func (s *Solver) AddCard(name, axisName, displayName string) (*models.Card, error) {
	if kind, taken := s.names.Kind(name); taken {
		return nil, fmt.Errorf("%w: %s already exists as a %s", ErrDuplicateName, name, kind)
	}
	axis, err := s.axes.Lookup(axisName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not an axis", ErrUnknownAxis, axisName)
	}
	if displayName == "" {
		displayName = name
	}

	c := &models.Card{
		Name:        name,
		DisplayName: displayName,
		Axis:        axis,
		Possible:    models.NewPossibility(s.players.Len()),
	}
	idx, err := s.cards.Register(name, c)
	if err != nil {
		return nil, err
	}
	c.Index = idx
	answerCard := axis.AnswerCard()
	axis.Cards = append(axis.Cards, c)

	for _, p := range s.players.All() {
		if p.HandKnown && c.Possible.Remove(p.Index) {
			s.note(c, models.Note{Reason: models.ReasonHandKnown, Player: p})
		}
	}
	if answerCard != nil && c.Possible.Remove(models.AnswerIndex) {
		s.note(c, models.Note{Reason: models.ReasonAnswerElsewhere, Player: s.Answer(), Related: answerCard})
	}

	s.log.WithFields(logrus.Fields{"card": name, "axis": axisName, "index": idx}).Debug("card added")
	return c, nil
}

// Answer returns the pseudo-player standing for the hidden solution.
func (s *Solver) Answer() *models.Player {
	return s.players.At(models.AnswerIndex)
}

// Players returns every player in index order, Answer first.
func (s *Solver) Players() []*models.Player {
	return s.players.All()
}

func (s *Solver) Axes() []*models.Axis {
	return s.axes.All()
}

func (s *Solver) Cards() []*models.Card {
	return s.cards.All()
}

// Suggestions returns the ordered suggestion history.
func (s *Solver) Suggestions() []*models.Suggestion {
	out := make([]*models.Suggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

func (s *Solver) Player(name string) (*models.Player, error) {
	return s.players.Lookup(name)
}

func (s *Solver) Card(name string) (*models.Card, error) {
	return s.cards.Lookup(name)
}

func (s *Solver) Axis(name string) (*models.Axis, error) {
	a, err := s.axes.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not an axis", ErrUnknownAxis, name)
	}
	return a, nil
}

// Owner returns the resolved owner of a card, or nil while it is unknown.
func (s *Solver) Owner(cardName string) (*models.Player, error) {
	c, err := s.cards.Lookup(cardName)
	if err != nil {
		return nil, err
	}
	return c.Owner, nil
}

// Possibilities returns a copy of the card's possibility vector, one entry per player index.
func (s *Solver) Possibilities(cardName string) ([]bool, error) {
	c, err := s.cards.Lookup(cardName)
	if err != nil {
		return nil, err
	}
	return c.Possible.Bools(), nil
}

// PossibleOwners lists the players that could still own c.
func (s *Solver) PossibleOwners(c *models.Card) []*models.Player {
	idx := c.Possible.Indices()
	out := make([]*models.Player, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.players.At(i))
	}
	return out
}

// Solution returns, per axis in order, the card known to be the Answer or nil.
func (s *Solver) Solution() []*models.Card {
	axes := s.axes.All()
	out := make([]*models.Card, len(axes))
	for i, a := range axes {
		out[i] = a.AnswerCard()
	}
	return out
}

// Solved reports whether every axis has a known Answer card.
func (s *Solver) Solved() bool {
	if s.axes.Len() == 0 {
		return false
	}
	for _, c := range s.Solution() {
		if c == nil {
			return false
		}
	}
	return true
}

type RefKind int

const (
	RefUnknown RefKind = iota
	RefCard
	RefPlayer
)

// Ref is the result of looking a token up in the shared card/player namespace.
type Ref struct {
	Kind   RefKind
	Card   *models.Card
	Player *models.Player
}

// Resolve tells whether name is a card, a player, or neither.
func (s *Solver) Resolve(name string) Ref {
	if c, err := s.cards.Lookup(name); err == nil {
		return Ref{Kind: RefCard, Card: c}
	}
	if p, err := s.players.Lookup(name); err == nil {
		return Ref{Kind: RefPlayer, Player: p}
	}
	return Ref{Kind: RefUnknown}
}
