package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/fightfantasy/internal/platform/icons"
)

// LayoutData is the document shell state.
type LayoutData struct {
	Lang      string
	DataTheme string
	Palette   string
	Header    HeaderData
}

// Layout renders the HTML document. data-theme on <html> selects the palette
// variant and the palette stylesheet is linked from /themes/<name>.css.
func Layout(data LayoutData, loc Localizer, body ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.raw("<!DOCTYPE html>\n<html")
		out.attr("lang", data.Lang)
		out.attr("data-theme", data.DataTheme)
		out.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		out.text(loc.T("core.app_name"))
		out.raw("</title><link rel=\"stylesheet\" href=\"/static/base.css\"><link rel=\"stylesheet\" id=\"palette-stylesheet\"")
		out.attr("href", "/themes/"+data.Palette+".css")
		out.raw("></head><body>")
		out.raw(icons.LucideSprite())
		if out.err != nil {
			return out.err
		}
		if err := Header(data.Header, loc).Render(ctx, w); err != nil {
			return err
		}
		out.raw("<main id=\"table\">")
		if out.err != nil {
			return out.err
		}
		for _, c := range body {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		out.raw("</main><script src=\"/static/app.js\" defer></script></body></html>")
		return out.err
	})
}
