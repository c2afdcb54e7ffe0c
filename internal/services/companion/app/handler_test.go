package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/fightfantasy/internal/services/companion/i18n"
	"github.com/louisbranch/fightfantasy/internal/services/companion/storage"
	"github.com/louisbranch/fightfantasy/internal/services/companion/theme"
)

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUpEndpoint(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/up", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("up = %d %q", rr.Code, rr.Body.String())
	}
}

func TestPageRendersTableWithTheme(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("content-type = %q", got)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`<html lang="en-US" data-theme="light">`,
		`href="/themes/default.css"`,
		`data-action="dice.roll_die"`,
		`data-action="fight.attack"`,
		`name="skill" value="8"`,
		`data-hero-stat="health">20</dd>`,
		`<option value="beach">Beach</option>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if !strings.Contains(fx.logs.String(), "path=/ status=200") {
		t.Fatalf("expected request log, got %q", fx.logs.String())
	}
}

func TestPageLanguageQuerySetsCookie(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	body := rr.Body.String()
	if !strings.Contains(body, `<html lang="pt-BR"`) || !strings.Contains(body, "Atacar") {
		t.Fatalf("expected portuguese page")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != i18n.LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestPageLanguageFromCookieAndHeader(t *testing.T) {
	fx := newAppFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "pt-BR"})
	rr := fx.serve(t, req)
	if !strings.Contains(rr.Body.String(), `<html lang="pt-BR"`) {
		t.Fatal("expected cookie language")
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("cookie language should not be re-set")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	rr = fx.serve(t, req)
	if !strings.Contains(rr.Body.String(), `<html lang="pt-BR"`) {
		t.Fatal("expected accept-language match")
	}
}

func TestPageRejectsOtherMethodsAndPaths(t *testing.T) {
	fx := newAppFixture(t)
	if rr := fx.serve(t, httptest.NewRequest(http.MethodPost, "/", nil)); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST / = %d", rr.Code)
	}
	if rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/missing", nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("GET /missing = %d", rr.Code)
	}
}

func TestStylesheetServesPaletteCSS(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/themes/beach.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/css; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	if !strings.Contains(rr.Body.String(), `[data-theme="light"]`) {
		t.Fatalf("css = %q", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), `[data-theme="dark"]`) {
		t.Fatalf("beach has no dark block: %q", rr.Body.String())
	}
}

func TestStylesheetUnknownPalette(t *testing.T) {
	fx := newAppFixture(t)
	for _, path := range []string{"/themes/purple.css", "/themes/..css", "/themes/beach", "/themes/beach.css.map"} {
		if rr := fx.serve(t, httptest.NewRequest(http.MethodGet, path, nil)); rr.Code != http.StatusNotFound {
			t.Fatalf("%s = %d, want 404", path, rr.Code)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	fx := newAppFixture(t)
	for _, path := range []string{"/static/app.js", "/static/base.css"} {
		rr := fx.serve(t, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK || rr.Body.Len() == 0 {
			t.Fatalf("%s = %d (%d bytes)", path, rr.Code, rr.Body.Len())
		}
	}
}

func TestSetModeFormPersistsAndRedirects(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, postForm("/theme/mode", url.Values{"mode": {"dark"}, "return_to": {"/?lang=pt-BR"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/?lang=pt-BR" {
		t.Fatalf("location = %q", loc)
	}
	if fx.cfg.Theme.Mode() != theme.ModeDark {
		t.Fatalf("mode = %q", fx.cfg.Theme.Mode())
	}
	if got, _ := fx.store.LoadPreference(t.Context(), storage.KeyThemeMode); got != "dark" {
		t.Fatalf("persisted mode = %q", got)
	}
}

func TestSetModeFormRejectsInvalidInput(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, postForm("/theme/mode", url.Values{"mode": {"purple"}}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if fx.cfg.Theme.Mode() != theme.ModeLight {
		t.Fatalf("mode changed to %q", fx.cfg.Theme.Mode())
	}
	if rr := fx.serve(t, httptest.NewRequest(http.MethodGet, "/theme/mode", nil)); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /theme/mode = %d", rr.Code)
	}
}

func TestSetPaletteFormSettlesVariant(t *testing.T) {
	fx := newAppFixture(t)
	fx.cfg.Theme.SetMode(theme.ModeDark)

	rr := fx.serve(t, postForm("/theme/palette", url.Values{"palette": {"beach"}, "return_to": {"https://evil.example/"}}))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Fatalf("external return_to should fall back to /, got %q", loc)
	}
	fx.settleTheme(t)
	if fx.cfg.Theme.Palette() != "beach" || fx.cfg.Theme.Mode() != theme.ModeLight {
		t.Fatalf("state = %+v", fx.cfg.Theme.State())
	}

	page := fx.serve(t, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	if !strings.Contains(page, `data-theme="light"`) || !strings.Contains(page, `href="/themes/beach.css"`) {
		t.Fatal("page should reflect the settled palette")
	}
}

func TestSetPaletteFormRejectsUnknown(t *testing.T) {
	fx := newAppFixture(t)
	rr := fx.serve(t, postForm("/theme/palette", url.Values{"palette": {"neon"}}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if fx.cfg.Theme.Palette() != theme.DefaultPalette {
		t.Fatalf("palette = %q", fx.cfg.Theme.Palette())
	}
}
