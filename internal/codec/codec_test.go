package codec

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

func samplePortfolio() models.Portfolio {
	return models.Portfolio{
		ID:   "p-1",
		Name: "Retirement",
		Assets: []models.Asset{{
			ID:           "a-1",
			Symbol:       "AAPL",
			Name:         "Apple Inc.",
			Quantity:     10,
			CostBasis:    150,
			PurchaseDate: "2023-01-15",
			Currency:     "USD",
			Type:         models.AssetTypeStock,
		}},
	}
}

func TestExportEnvelope(t *testing.T) {
	data, err := Export([]models.Portfolio{samplePortfolio()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if string(env["version"]) != `"1.0"` {
		t.Errorf("expected version \"1.0\", got %s", env["version"])
	}
	if _, ok := env["exportDate"]; !ok {
		t.Error("expected exportDate field")
	}
	if !strings.HasPrefix(string(data), "{\n  ") {
		t.Error("expected two-space indented output")
	}
}

func TestRoundTrip(t *testing.T) {
	want := samplePortfolio()
	data, err := Export([]models.Portfolio{want})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Import(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 portfolio, got %d", len(got))
	}
	if got[0].ID != want.ID || got[0].Name != want.Name {
		t.Errorf("portfolio fields lost in round trip: %+v", got[0])
	}
	if len(got[0].Assets) != 1 || got[0].Assets[0].Symbol != "AAPL" {
		t.Errorf("assets lost in round trip: %+v", got[0].Assets)
	}
}

func TestImportRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not_json", `{{{`},
		{"top_level_array", `[]`},
		{"missing_portfolios", `{"version":"1.0"}`},
		{"portfolios_not_array", `{"portfolios":{"id":"p"}}`},
		{"portfolios_null", `{"portfolios":null}`},
		{"element_missing_id", `{"portfolios":[{"name":"x","assets":[]}]}`},
		{"element_missing_name", `{"portfolios":[{"id":"p","assets":[]}]}`},
		{"element_missing_assets", `{"portfolios":[{"id":"p","name":"x"}]}`},
		{"assets_not_array", `{"portfolios":[{"id":"p","name":"x","assets":{}}]}`},
		{"element_not_object", `{"portfolios":["p"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import([]byte(tc.raw))
			if !errors.Is(err, apperrors.ErrInvalidImport) {
				t.Errorf("expected ErrInvalidImport, got %v", err)
			}
		})
	}
}

func TestImportAllOrNothing(t *testing.T) {
	// One valid element followed by one invalid: nothing comes back.
	raw := `{"portfolios":[
		{"id":"p-1","name":"Good","assets":[]},
		{"id":"","name":"Bad","assets":[]}
	]}`
	portfolios, err := Import([]byte(raw))
	if !errors.Is(err, apperrors.ErrInvalidImport) {
		t.Errorf("expected ErrInvalidImport, got %v", err)
	}
	if portfolios != nil {
		t.Errorf("expected no partial result, got %+v", portfolios)
	}
}

func TestImportPermissive(t *testing.T) {
	t.Run("unknown_version_accepted", func(t *testing.T) {
		raw := `{"version":"9.9","portfolios":[{"id":"p","name":"x","assets":[]}]}`
		if _, err := Import([]byte(raw)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing_version_accepted", func(t *testing.T) {
		raw := `{"portfolios":[{"id":"p","name":"x","assets":[]}]}`
		if _, err := Import([]byte(raw)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown_fields_ignored", func(t *testing.T) {
		raw := `{"portfolios":[{"id":"p","name":"x","assets":[],"theme":"dark"}],"extra":1}`
		got, err := Import([]byte(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "p" {
			t.Errorf("unexpected result: %+v", got)
		}
	})

	t.Run("empty_portfolio_list_accepted", func(t *testing.T) {
		got, err := Import([]byte(`{"version":"1.0","portfolios":[]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected empty list, got %+v", got)
		}
	})
}
