package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/fightfantasy/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

func newTestLocalizer(t *testing.T) *Localizer {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	l, err := NewLocalizer(bundle)
	if err != nil {
		t.Fatalf("new localizer: %v", err)
	}
	return l
}

func TestNewLocalizerRequiresBundle(t *testing.T) {
	if _, err := NewLocalizer(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolveTag(t *testing.T) {
	l := newTestLocalizer(t)
	tests := []struct {
		name        string
		url         string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{"query", "/?lang=pt-BR", "", "", language.BrazilianPortuguese, true},
		{"query beats cookie", "/?lang=en-US", "pt-BR", "", language.AmericanEnglish, true},
		{"cookie", "/", "pt-BR", "en-US", language.BrazilianPortuguese, false},
		{"accept language", "/", "", "pt-BR,pt;q=0.9", language.BrazilianPortuguese, false},
		{"accept base language", "/", "", "pt", language.BrazilianPortuguese, false},
		{"unknown query falls through", "/?lang=xx-invalid", "", "", language.AmericanEnglish, false},
		{"default", "/", "", "", language.AmericanEnglish, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			tag, persist := l.ResolveTag(req)
			if tag != tt.want {
				t.Fatalf("tag = %v, want %v", tag, tt.want)
			}
			if persist != tt.wantPersist {
				t.Fatalf("persist = %v, want %v", persist, tt.wantPersist)
			}
		})
	}
}

func TestPrinterTranslates(t *testing.T) {
	l := newTestLocalizer(t)
	if got := l.Printer(language.BrazilianPortuguese).T("fight.use_luck"); got != "Usar sorte" {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := l.Printer(language.AmericanEnglish).T("fight.totals", 17, 15); got != "Hero 17 vs monster 15" {
		t.Fatalf("en-US = %q", got)
	}
	if got := l.Printer(language.AmericanEnglish).T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key = %q", got)
	}
}

func TestOptionsMarkActive(t *testing.T) {
	l := newTestLocalizer(t)
	opts := l.Options(language.BrazilianPortuguese, "/", "")
	if len(opts) != 2 {
		t.Fatalf("options = %d, want 2", len(opts))
	}
	if opts[0].Active || !opts[1].Active {
		t.Fatalf("active flags = %v, %v", opts[0].Active, opts[1].Active)
	}
	if opts[0].Label != "English" || opts[1].Label != "Português" {
		t.Fatalf("labels = %q, %q", opts[0].Label, opts[1].Label)
	}
	if opts[1].URL != "/?lang=pt-BR" {
		t.Fatalf("url = %q", opts[1].URL)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.BrazilianPortuguese)
	header := rec.Header().Get("Set-Cookie")
	if !strings.Contains(header, LangCookieName+"=pt-BR") {
		t.Fatalf("Set-Cookie = %q", header)
	}
}

func TestLanguageURL(t *testing.T) {
	got := LanguageURL("/fight", "page=2", "en-US")
	if got != "/fight?lang=en-US&page=2" {
		t.Fatalf("LanguageURL = %q", got)
	}
	if got := LanguageURL("", "", "pt-BR"); got != "/?lang=pt-BR" {
		t.Fatalf("LanguageURL = %q", got)
	}
}

func TestLanguageKey(t *testing.T) {
	if got := LanguageKey(language.BrazilianPortuguese); got != "core.lang.pt_br" {
		t.Fatalf("LanguageKey = %q", got)
	}
}
