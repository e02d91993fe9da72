// internal/models/card.go
package models

// Card is one alternative within an axis.
type Card struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Index       int    `json:"index"`
	Axis        *Axis  `json:"-"`

	// Possible holds one bit per player index. Bits only ever go from set to cleared.
	Possible *Possibility `json:"-"`

	// Owner stays nil until ownership is known; once set it never changes.
	Owner *Player `json:"-"`

	// Trace is the append-only causal log of every deduction about this card.
	Trace []Note `json:"-"`
}

func (c *Card) Resolved() bool {
	return c.Owner != nil
}

// IsAnswer reports whether the card is known to be part of the hidden solution.
func (c *Card) IsAnswer() bool {
	return c.Owner.IsAnswer()
}

func (c *Card) AddNote(n Note) {
	c.Trace = append(c.Trace, n)
}
