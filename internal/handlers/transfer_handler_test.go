package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/codec"
)

func TestExport(t *testing.T) {
	router, _ := newTestRouter(nil)
	p := createPortfolio(t, router, "Retirement")
	addAsset(t, router, p.ID, stockAsset("AAPL"))

	w := doJSON(t, router, http.MethodGet, "/api/v1/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "portfolio-export-") {
		t.Errorf("unexpected Content-Disposition %q", disposition)
	}

	var env codec.Envelope
	decodeBody(t, w, &env)
	if env.Version != "1.0" {
		t.Errorf("expected version 1.0, got %s", env.Version)
	}
	if len(env.Portfolios) != 1 || env.Portfolios[0].Name != "Retirement" {
		t.Errorf("unexpected portfolios: %+v", env.Portfolios)
	}
	if len(env.Portfolios[0].Assets) != 1 {
		t.Errorf("expected exported asset, got %+v", env.Portfolios[0].Assets)
	}
}

func TestImport(t *testing.T) {
	t.Run("appends_without_touching_selection", func(t *testing.T) {
		router, _ := newTestRouter(nil)
		selected := createPortfolio(t, router, "Mine")

		raw := `{"version":"1.0","portfolios":[
			{"id":"imported-1","name":"Theirs","assets":[]}
		]}`
		w := postRaw(t, router, "/api/v1/import", raw)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp ImportResponse
		decodeBody(t, w, &resp)
		if resp.Imported != 1 {
			t.Errorf("expected 1 imported, got %d", resp.Imported)
		}

		list := doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
		var collection PortfolioListResponse
		decodeBody(t, list, &collection)
		if len(collection.Portfolios) != 2 {
			t.Errorf("expected 2 portfolios after import, got %d", len(collection.Portfolios))
		}
		if collection.SelectedPortfolioID != selected.ID {
			t.Errorf("expected selection untouched, got %s", collection.SelectedPortfolioID)
		}
	})

	t.Run("duplicate_ids_appended_verbatim", func(t *testing.T) {
		router, _ := newTestRouter(nil)

		raw := `{"portfolios":[{"id":"dup","name":"One","assets":[]}]}`
		postRaw(t, router, "/api/v1/import", raw)
		postRaw(t, router, "/api/v1/import", raw)

		list := doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
		var collection PortfolioListResponse
		decodeBody(t, list, &collection)
		if len(collection.Portfolios) != 2 {
			t.Errorf("expected duplicates kept, got %d portfolios", len(collection.Portfolios))
		}
	})

	t.Run("invalid_envelope_imports_nothing", func(t *testing.T) {
		router, _ := newTestRouter(nil)

		raw := `{"portfolios":[
			{"id":"ok","name":"Good","assets":[]},
			{"name":"missing id","assets":[]}
		]}`
		w := postRaw(t, router, "/api/v1/import", raw)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}

		list := doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
		var collection PortfolioListResponse
		decodeBody(t, list, &collection)
		if len(collection.Portfolios) != 0 {
			t.Errorf("expected nothing imported, got %d", len(collection.Portfolios))
		}
	})

	t.Run("round_trip", func(t *testing.T) {
		router, _ := newTestRouter(nil)
		p := createPortfolio(t, router, "Retirement")
		addAsset(t, router, p.ID, stockAsset("AAPL"))

		exported := doJSON(t, router, http.MethodGet, "/api/v1/export", nil)
		w := postRaw(t, router, "/api/v1/import", exported.Body.String())
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		list := doJSON(t, router, http.MethodGet, "/api/v1/portfolios", nil)
		var collection PortfolioListResponse
		decodeBody(t, list, &collection)
		if len(collection.Portfolios) != 2 {
			t.Fatalf("expected 2 portfolios after round trip, got %d", len(collection.Portfolios))
		}
		if collection.Portfolios[1].Assets[0].Symbol != "AAPL" {
			t.Errorf("asset lost in round trip: %+v", collection.Portfolios[1].Assets)
		}
	})
}

func postRaw(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
