package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
)

// FightSection renders both stat blocks, the fight controls and the latest
// round. The round is hidden once the fight has an outcome.
func FightSection(state fight.State, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.raw("<section class=\"fight\" id=\"fight\"><h2>")
		out.text(loc.T("fight.title"))
		out.raw("</h2><div class=\"combatants\">")

		out.raw("<div class=\"combatant hero\"><h3>")
		out.text(loc.T("fight.hero"))
		out.raw("</h3><dl>")
		statRow(out, "skill", loc.T("fight.skill"), state.Hero.Skill)
		statRow(out, "health", loc.T("fight.health"), state.Hero.Health)
		statRow(out, "luck", loc.T("fight.luck"), state.Hero.Luck)
		out.raw("</dl></div>")

		out.raw("<form class=\"combatant monster\" data-action=\"fight.set_monster\"><h3>")
		out.text(loc.T("fight.monster"))
		out.raw("</h3>")
		statInput(out, "skill", loc.T("fight.skill"), state.Monster.Skill, state.Controls.Edit)
		statInput(out, "health", loc.T("fight.health"), state.Monster.Health, state.Controls.Edit)
		statInput(out, "luck", loc.T("fight.luck"), state.Monster.Luck, state.Controls.Edit)
		out.raw("<button type=\"submit\"")
		out.flag("disabled", !state.Controls.Edit)
		out.raw(">")
		out.text(loc.T("fight.save_monster"))
		out.raw("</button></form></div>")

		out.raw("<div class=\"actions\">")
		actionButton(out, "fight.attack", loc.T("fight.attack"), state.Controls.Attack)
		actionButton(out, "fight.use_luck", loc.T("fight.use_luck"), state.Controls.UseLuck)
		actionButton(out, "fight.reset", loc.T("fight.reset"), state.Controls.Edit)
		out.raw("</div><div class=\"fight-result\" aria-live=\"polite\">")

		switch state.Outcome {
		case fight.OutcomeWon:
			out.raw("<p class=\"outcome won\">")
			out.text(loc.T("fight.outcome.won"))
			out.raw("</p>")
		case fight.OutcomeLost:
			out.raw("<p class=\"outcome lost\">")
			out.text(loc.T("fight.outcome.lost"))
			out.raw("</p>")
		default:
			if r := state.Round; r != nil {
				out.raw("<p")
				out.attr("class", "round "+string(r.Type))
				out.raw(">")
				out.text(loc.T(r.MessageKey))
				out.raw(" <span class=\"totals\">")
				out.text(loc.T("fight.totals", r.HeroTotal, r.MonsterTotal))
				out.raw("</span></p>")
			}
			if l := state.Luck; l != nil {
				out.raw("<p class=\"luck\">")
				out.text(loc.T(l.MessageKey))
				out.raw("</p>")
			}
		}
		out.raw("</div></section>")
		return out.err
	})
}

func statRow(out *writer, name, label string, value int) {
	out.raw("<dt>")
	out.text(label)
	out.raw("</dt><dd")
	out.attr("data-hero-stat", name)
	out.raw(">")
	out.text(itoa(value))
	out.raw("</dd>")
}

func statInput(out *writer, name, label string, value int, enabled bool) {
	out.raw("<label>")
	out.text(label)
	out.raw(" <input type=\"number\" min=\"1\" required")
	out.attr("name", name)
	out.attr("value", itoa(value))
	out.flag("disabled", !enabled)
	out.raw("></label>")
}
