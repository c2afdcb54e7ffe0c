package app

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/fightfantasy/internal/services/companion/fight"
	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/platform/httpx"
	"github.com/louisbranch/fightfantasy/internal/services/companion/roll"
	"github.com/louisbranch/fightfantasy/internal/services/companion/static"
	"github.com/louisbranch/fightfantasy/internal/services/companion/templates"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
	"golang.org/x/net/websocket"
	"golang.org/x/text/language"
)

const (
	requestIDPrefix  = "companion"
	paletteKeyPrefix = "theme.palette."
	cssSuffix        = ".css"
)

type handler struct {
	cfg    Config
	theme  *theme.Manager
	loc    *i18n.Localizer
	logger *log.Logger
	tables *tableRegistry
}

func newHandler(cfg Config) *handler {
	return &handler{
		cfg:    cfg,
		theme:  cfg.Theme,
		loc:    cfg.Localizer,
		logger: cfg.Logger,
		tables: newTableRegistry(),
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))
	mux.HandleFunc("GET /themes/{file}", h.handleStylesheet)
	mux.Handle("/theme/mode", httpx.RequireMethod(http.MethodPost, http.HandlerFunc(h.handleSetMode)))
	mux.Handle("/theme/palette", httpx.RequireMethod(http.MethodPost, http.HandlerFunc(h.handleSetPalette)))

	wsHandler := websocket.Handler(h.handleWSConn)
	mux.Handle("/ws", httpx.RequireMethod(http.MethodGet, wsHandler))
	mux.HandleFunc("/{$}", h.handlePage)

	return httpx.Chain(mux,
		httpx.RecoverPanic(h.logger),
		httpx.RequestID(requestIDPrefix),
		httpx.RequestLogger(h.logger),
	)
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tag := h.resolveLanguage(w, r)
	printer := h.loc.Printer(tag)

	table := h.newResolver(h.cfg.Hero, nil)
	defer table.Close()
	state := table.State()

	page := templates.Layout(
		h.layoutData(tag, r),
		printer,
		templates.DiceRollsSection(state, printer),
		templates.FightSection(state, printer),
	)
	templ.Handler(page).ServeHTTP(w, r)
}

func (h *handler) layoutData(tag language.Tag, r *http.Request) templates.LayoutData {
	printer := h.loc.Printer(tag)
	snap := h.theme.Snapshot()
	palettes := make([]templates.PaletteOption, 0, len(h.theme.Palettes()))
	for _, name := range h.theme.Palettes() {
		palettes = append(palettes, templates.PaletteOption{
			Name:   name,
			Label:  printer.T(paletteKeyPrefix + name),
			Active: name == snap.State.Palette,
		})
	}
	return templates.LayoutData{
		Lang:      tag.String(),
		DataTheme: string(snap.State.Mode),
		Palette:   snap.State.Palette,
		Header: templates.HeaderData{
			Mode:      string(snap.State.Mode),
			Palettes:  palettes,
			Languages: h.loc.Options(tag, r.URL.Path, r.URL.RawQuery),
			ReturnTo:  r.URL.RequestURI(),
		},
	}
}

// resolveLanguage picks the request language and persists an explicit
// ?lang= choice.
func (h *handler) resolveLanguage(w http.ResponseWriter, r *http.Request) language.Tag {
	tag, persist := h.loc.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return tag
}

func (h *handler) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), cssSuffix)
	if !ok {
		http.NotFound(w, r)
		return
	}
	css, err := h.theme.Stylesheet(r.Context(), name)
	if err != nil {
		if errors.Is(err, theme.ErrUnknownPalette) {
			http.NotFound(w, r)
			return
		}
		h.logger.Printf("theme stylesheet failed palette=%s request_id=%s err=%v", name, r.Header.Get(httpx.RequestIDHeader), err)
		http.Error(w, "palette unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	_ = httpx.WriteText(w, http.StatusOK, "text/css; charset=utf-8", css)
}

func (h *handler) handleSetMode(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if !h.theme.SetMode(theme.Mode(strings.TrimSpace(r.PostFormValue("mode")))) {
		http.Error(w, "unknown mode", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, httpx.LocalPath(r.PostFormValue("return_to"), "/"), http.StatusSeeOther)
}

func (h *handler) handleSetPalette(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if !h.theme.SetPalette(strings.TrimSpace(r.PostFormValue("palette"))) {
		http.Error(w, "unknown palette", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, httpx.LocalPath(r.PostFormValue("return_to"), "/"), http.StatusSeeOther)
}

// newResolver builds a table's fight and dice pipeline. A nil roller is
// replaced by the configured dice source.
func (h *handler) newResolver(hero fight.Stats, roller fight.Roller) *fight.Resolver {
	opts := []roll.Option{roll.WithScheduler(h.cfg.RollScheduler)}
	if h.cfg.RollDelay > 0 {
		opts = append(opts, roll.WithDelay(h.cfg.RollDelay))
	}
	return fight.NewResolver(fight.New(hero, h.cfg.Monster, h.cfg.Rules), roll.New(opts...), roller)
}
