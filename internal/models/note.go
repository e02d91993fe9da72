// internal/models/note.go
package models

// Reason identifies the rule or fact behind a deduction.
type Reason int

const (
	ReasonInHand         Reason = iota + 1 // owner listed in a recorded hand
	ReasonHandKnown                        // player's full hand is known and excludes this card
	ReasonJoined                           // player entered the game
	ReasonAllShown                         // every proposed card was shown, so none is the Answer
	ReasonDidNotShow                       // player showed nothing for a suggestion
	ReasonShown                            // owner revealed the card directly
	ReasonAlreadyKnown                     // reveal repeated an ownership already known
	ReasonOnlyOwner                        // a single live owner remained
	ReasonAnswerFound                      // the single live owner was the Answer
	ReasonAnswerElsewhere                  // another card on the axis is the Answer
	ReasonLastAnswer                       // only card on its axis that can still be the Answer
	ReasonReplay                           // a suggestion replay accounted for every other shown card
)

func (r Reason) String() string {
	switch r {
	case ReasonInHand:
		return "in_hand"
	case ReasonHandKnown:
		return "hand_known"
	case ReasonJoined:
		return "joined"
	case ReasonAllShown:
		return "all_shown"
	case ReasonDidNotShow:
		return "did_not_show"
	case ReasonShown:
		return "shown"
	case ReasonAlreadyKnown:
		return "already_known"
	case ReasonOnlyOwner:
		return "only_owner"
	case ReasonAnswerFound:
		return "answer_found"
	case ReasonAnswerElsewhere:
		return "answer_elsewhere"
	case ReasonLastAnswer:
		return "last_answer"
	case ReasonReplay:
		return "replay"
	}
	return "unknown"
}

// TriggerKind names the ingested fact that set off a round of inference.
type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerHand
	TriggerSuggestion
	TriggerReveal
)

// Trigger describes the ingested fact a deduction was discovered after.
type Trigger struct {
	Kind       TriggerKind
	Player     *Player     // hand owner or revealing player
	Card       *Card       // revealed card
	Suggestion *Suggestion // suggestion being ingested or replayed
}

// Note is one entry of a causal trace. It only records structure; turning it into
// text is left to the presentation layer.
type Note struct {
	Reason  Reason
	Player  *Player // player the deduction is about
	Related *Card   // for ReasonAnswerElsewhere, the card that is the Answer
	Axis    *Axis   // for ReasonLastAnswer
	Trigger Trigger
}
