// internal/models/axis.go
package models

// Axis is a category of mutually exclusive cards (suspects, weapons, rooms).
// At most one of its cards ever resolves to the Answer.
type Axis struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Prefix      string  `json:"prefix"` // printed before a card when narrating a suggestion
	Index       int     `json:"index"`
	Cards       []*Card `json:"-"`
}

// AnswerCard returns the card on this axis resolved to the Answer, or nil.
func (a *Axis) AnswerCard() *Card {
	for _, c := range a.Cards {
		if c.IsAnswer() {
			return c
		}
	}
	return nil
}
