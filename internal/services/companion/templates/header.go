package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
)

// PaletteOption is one entry of the palette select.
type PaletteOption struct {
	Name   string
	Label  string
	Active bool
}

// HeaderData drives the page header.
type HeaderData struct {
	Mode      string
	Palettes  []PaletteOption
	Languages []i18n.LanguageOption
	ReturnTo  string
}

// Header renders language links, the mode toggle and the palette select.
// Both theme controls are plain forms so they work without the table socket.
func Header(data HeaderData, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.raw("<header class=\"site-header\"><h1>")
		out.text(loc.T("core.app_name"))
		out.raw("</h1><nav class=\"languages\"")
		out.attr("aria-label", loc.T("nav.language"))
		out.raw("><ul>")
		for _, lang := range data.Languages {
			out.raw("<li>")
			if lang.Active {
				out.raw("<strong")
				out.attr("lang", lang.Tag)
				out.raw(">")
				out.text(lang.Label)
				out.raw("</strong>")
			} else {
				out.raw("<a")
				out.attr("href", lang.URL)
				out.attr("lang", lang.Tag)
				out.raw(">")
				out.text(lang.Label)
				out.raw("</a>")
			}
			out.raw("</li>")
		}
		out.raw("</ul></nav>")

		next := "dark"
		label := loc.T("nav.mode.dark")
		if data.Mode == "dark" {
			next = "light"
			label = loc.T("nav.mode.light")
		}
		out.raw("<form method=\"post\" action=\"/theme/mode\" class=\"mode-toggle\" data-action=\"theme.set_mode\">")
		out.raw("<input type=\"hidden\" name=\"return_to\"")
		out.attr("value", data.ReturnTo)
		out.raw("><button type=\"submit\" name=\"mode\"")
		out.attr("value", next)
		out.attr("title", loc.T("nav.mode"))
		out.raw(">")
		out.text(label)
		out.raw("</button></form>")

		out.raw("<form method=\"post\" action=\"/theme/palette\" class=\"palette-select\" data-action=\"theme.set_palette\">")
		out.raw("<input type=\"hidden\" name=\"return_to\"")
		out.attr("value", data.ReturnTo)
		out.raw("><label>")
		out.text(loc.T("nav.palette"))
		out.raw(" <select name=\"palette\">")
		for _, p := range data.Palettes {
			out.raw("<option")
			out.attr("value", p.Name)
			out.flag("selected", p.Active)
			out.raw(">")
			out.text(p.Label)
			out.raw("</option>")
		}
		out.raw("</select></label><button type=\"submit\">")
		out.text(loc.T("nav.apply"))
		out.raw("</button></form></header>")
		return out.err
	})
}
