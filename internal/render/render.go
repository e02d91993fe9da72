// internal/render/render.go
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joedrago/clue/internal/models"
	"github.com/joedrago/clue/internal/solver"
)

// cardColumn is the width card names are padded to on a board line.
const cardColumn = 20

// Renderer turns solver events and state into journal text.
type Renderer struct {
	w    io.Writer
	mode Mode
	s    *solver.Solver
}

func New(w io.Writer, mode Mode, s *solver.Solver) *Renderer {
	return &Renderer{w: w, mode: mode, s: s}
}

func (r *Renderer) Mode() Mode {
	return r.mode
}

// Begin writes whatever the mode needs before any other output.
func (r *Renderer) Begin() {
	if r.mode == HTML {
		fmt.Fprintln(r.w, "<body bgcolor='black'><pre style='color: white'>")
	}
}

// End closes what Begin opened.
func (r *Renderer) End() {
	if r.mode == HTML {
		fmt.Fprintln(r.w, "</pre></body>")
	}
}

// Event writes the journal lines for ev. It can be installed as solver.OnEvent.
func (r *Renderer) Event(ev solver.Event) {
	for _, line := range r.eventLines(ev) {
		fmt.Fprintln(r.w, line)
	}
}

// Describe returns the journal text of ev on one line.
func (r *Renderer) Describe(ev solver.Event) string {
	lines := r.eventLines(ev)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "; ")
}

// Board writes every axis followed by the state of each of its cards.
func (r *Renderer) Board() {
	fmt.Fprintln(r.w)
	for _, a := range r.s.Axes() {
		fmt.Fprintln(r.w, r.axis(a))
		for _, c := range a.Cards {
			fmt.Fprintln(r.w, r.CardLine(c))
		}
	}
}

// CardLine shows a card with its owner, or every player that could still own it.
func (r *Renderer) CardLine(c *models.Card) string {
	var owner string
	if c.Owner != nil {
		owner = r.player(c.Owner)
	} else {
		names := []string{}
		for _, p := range r.s.PossibleOwners(c) {
			names = append(names, p.DisplayName)
		}
		owner = text(r.mode, strings.Join(names, "/"))
	}
	pad := cardColumn - len(c.DisplayName)
	if pad < 0 {
		pad = 0
	}
	return "      " + paint(r.mode, c.DisplayName, styleCard) + " " + strings.Repeat(" ", pad) + " " + owner
}

func (r *Renderer) eventLines(ev solver.Event) []string {
	switch ev.Type {
	case solver.EventPlayerJoined:
		return []string{r.player(ev.Player) + text(r.mode, " joins the game.")}

	case solver.EventHand:
		names := make([]string, 0, len(ev.Cards))
		for _, c := range ev.Cards {
			names = append(names, r.card(c))
		}
		return []string{r.player(ev.Player) + text(r.mode, "'s hand: ") + strings.Join(names, text(r.mode, ", "))}

	case solver.EventSuggestion:
		pieces := make([]string, 0, len(ev.Cards))
		for _, c := range ev.Cards {
			pieces = append(pieces, text(r.mode, c.Axis.Prefix)+r.card(c))
		}
		var shown string
		switch len(ev.Responders) {
		case 0:
			shown = text(r.mode, "Nobody shows a card.")
		default:
			names := make([]string, 0, len(ev.Responders))
			for _, p := range ev.Responders {
				names = append(names, r.player(p))
			}
			verb := " show a card."
			if len(names) == 1 {
				verb = " shows a card."
			}
			shown = strings.Join(names, text(r.mode, ", ")) + text(r.mode, verb)
		}
		return []string{
			"",
			"[" + r.index(ev.Suggestion.Index(), 3) + "] " + r.player(ev.Player) + text(r.mode, " suggests ") +
				strings.Join(pieces, " ") + ". " + shown,
		}

	case solver.EventReveal:
		already := ""
		if ev.AlreadyKnown {
			already = " (already known)"
		}
		return []string{"", "**    " + r.player(ev.Player) + text(r.mode, " shows ") + r.card(ev.Card) + text(r.mode, already+".")}

	case solver.EventNote:
		return []string{"      " + r.card(ev.Card) + ": " + r.Note(*ev.Note)}

	case solver.EventSettled:
		lines := []string{""}
		for _, c := range ev.Cards {
			lines = append(lines, r.CardLine(c))
		}
		return lines
	}
	return nil
}

// Note renders one causal trace entry as a sentence.
func (r *Renderer) Note(n models.Note) string {
	t := func(s string) string { return text(r.mode, s) }
	p := r.player(n.Player)
	answer := r.player(r.s.Answer())

	switch n.Reason {
	case models.ReasonInHand:
		return t("Owned by ") + p + t(", (in hand)")
	case models.ReasonHandKnown:
		return p + t(" can't own, entire hand is known")
	case models.ReasonJoined:
		return p + t(" joins the game")
	case models.ReasonAllShown:
		return t("Not in answer, everyone showed a card during ") + r.trigger(n.Trigger)
	case models.ReasonDidNotShow:
		return p + t(" can't own, they didn't show a card during ") + r.trigger(n.Trigger)
	case models.ReasonShown:
		return t("Owned by ") + p + t(", card shown")
	case models.ReasonAlreadyKnown:
		return t("Owned by ") + p + t(", card shown (already known)")
	case models.ReasonOnlyOwner:
		return t("Owned by ") + p + t(", only possible owner") + r.after(n.Trigger)
	case models.ReasonAnswerFound:
		return t("Part of the ") + answer + r.after(n.Trigger)
	case models.ReasonAnswerElsewhere:
		return t("Not in answer, since ") + r.card(n.Related) + t(" is the answer") + r.after(n.Trigger)
	case models.ReasonLastAnswer:
		return t("Part of the ") + answer + t(", only possible choice in ") + r.axis(n.Axis) + t(" left") + r.after(n.Trigger)
	case models.ReasonReplay:
		return t("Owned by ") + p + t(", owners of all other shown cards known, discovered by replaying ") + r.trigger(n.Trigger)
	}
	return t(n.Reason.String())
}

func (r *Renderer) after(tr models.Trigger) string {
	if tr.Kind == models.TriggerNone {
		return ""
	}
	return text(r.mode, ", discovered after ") + r.trigger(tr)
}

func (r *Renderer) trigger(tr models.Trigger) string {
	switch tr.Kind {
	case models.TriggerSuggestion:
		return text(r.mode, "Suggestion[") + r.index(tr.Suggestion.Index(), 0) + text(r.mode, "]")
	case models.TriggerReveal:
		return text(r.mode, "being shown ") + r.card(tr.Card) + text(r.mode, " by ") + r.player(tr.Player)
	case models.TriggerHand:
		return text(r.mode, "learning ") + r.player(tr.Player) + text(r.mode, "'s hand")
	}
	return ""
}

func (r *Renderer) player(p *models.Player) string {
	if p == nil {
		return ""
	}
	if p.IsAnswer() {
		return paint(r.mode, p.DisplayName, styleAnswer)
	}
	return paint(r.mode, p.DisplayName, stylePlayer)
}

func (r *Renderer) card(c *models.Card) string {
	if c == nil {
		return ""
	}
	return paint(r.mode, c.DisplayName, axisStyles[c.Axis.Index%len(axisStyles)])
}

func (r *Renderer) axis(a *models.Axis) string {
	if a == nil {
		return ""
	}
	return paint(r.mode, a.DisplayName, axisStyles[a.Index%len(axisStyles)])
}

func (r *Renderer) index(i, width int) string {
	s := strconv.Itoa(i)
	if len(s) < width {
		s = strings.Repeat(" ", width-len(s)) + s
	}
	return paint(r.mode, s, styleIndex)
}
