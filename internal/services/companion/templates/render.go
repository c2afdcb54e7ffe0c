// Package templates renders the companion pages.
//
// Components are built on templ's runtime so they compose with
// templ.Handler and other templ components.
package templates

import (
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Localizer translates message keys.
type Localizer interface {
	T(key string, args ...any) string
}

// writer accumulates the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name, value string) {
	w.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (w *writer) flag(name string, on bool) {
	if on {
		w.raw(" ", name)
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}
