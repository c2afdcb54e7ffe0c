package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/fightfantasy/internal/core/dice"
	"github.com/louisbranch/fightfantasy/internal/platform/icons"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/roll"
)

// DiceDisplay renders one face icon per die. An empty slice still shows a
// single one-pip die.
func DiceDisplay(values []int, rolling bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.raw("<div")
		out.attr("class", classes("dice-display", rollingClass(rolling)))
		out.raw(" data-dice>")
		faces := values
		if len(faces) == 0 {
			faces = []int{0}
		}
		for _, v := range faces {
			name := icons.LucideNameOrDefault(dice.IconFor(v))
			out.raw("<svg class=\"die\" aria-hidden=\"true\"")
			out.attr("data-value", itoa(v))
			out.raw("><use")
			out.attr("href", "#"+icons.LucideSymbolID(name))
			out.raw("></use></svg>")
		}
		out.raw("</div>")
		return out.err
	})
}

func rollingClass(rolling bool) string {
	if rolling {
		return "is-rolling"
	}
	return ""
}

// DiceRollsSection renders the free roll and attribute test controls.
func DiceRollsSection(state fight.State, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.raw("<section class=\"dice-rolls\" id=\"dice-rolls\"><h2>")
		out.text(loc.T("dice.title"))
		out.raw("</h2><div class=\"actions\">")
		actionButton(out, "dice.roll_die", loc.T("dice.roll_die"), state.Controls.RollDie)
		actionButton(out, "dice.roll_dice", loc.T("dice.roll_dice"), state.Controls.RollDice)
		actionButton(out, "dice.test_skill", loc.T("dice.test_skill"), state.Controls.TestSkill)
		actionButton(out, "dice.test_luck", loc.T("dice.test_luck"), state.Controls.TestLuck)
		out.raw("</div>")
		if out.err != nil {
			return out.err
		}

		rolling := state.Rolling != roll.KindNone
		if err := DiceDisplay(state.Dice, rolling).Render(ctx, w); err != nil {
			return err
		}
		out.raw("<p class=\"dice-status\" aria-live=\"polite\">")
		switch {
		case rolling:
			out.text(loc.T("dice.rolling"))
		case len(state.Dice) > 0:
			sum := 0
			for _, v := range state.Dice {
				sum += v
			}
			out.text(loc.T("dice.total", sum))
		}
		out.raw("</p></section>")
		return out.err
	})
}

func actionButton(out *writer, action, label string, enabled bool) {
	out.raw("<button type=\"button\"")
	out.attr("data-action", action)
	out.flag("disabled", !enabled)
	out.raw(">")
	out.text(label)
	out.raw("</button>")
}
