// Package codec serializes portfolios to the versioned JSON export
// envelope and validates imported envelopes back into portfolio lists.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

// Version is the envelope version stamped on exports. Imports currently
// accept any version value.
const Version = "1.0"

// Envelope is the versioned wrapper written by Export and read by Import.
type Envelope struct {
	Version    string             `json:"version"`
	ExportDate time.Time          `json:"exportDate"`
	Portfolios []models.Portfolio `json:"portfolios"`
}

// Export wraps the portfolios in a v1.0 envelope serialized as indented
// JSON, matching the documented file format.
func Export(portfolios []models.Portfolio) ([]byte, error) {
	env := Envelope{
		Version:    Version,
		ExportDate: time.Now().UTC(),
		Portfolios: portfolios,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("serializing export envelope: %w", err))
	}
	return data, nil
}

// Import parses and validates an export envelope. The whole payload is
// validated before anything is returned: on any parse or validation
// failure, no partial portfolio list escapes. Unknown and extra fields are
// ignored; asset elements are not deep-validated beyond being an array.
func Import(raw []byte) ([]models.Portfolio, error) {
	var probe struct {
		Portfolios json.RawMessage `json:"portfolios"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid file format")
	}
	if !isJSONArray(probe.Portfolios) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid portfolio data format")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(probe.Portfolios, &elements); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid portfolio data format")
	}

	for _, element := range elements {
		var p struct {
			ID     string          `json:"id"`
			Name   string          `json:"name"`
			Assets json.RawMessage `json:"assets"`
		}
		if err := json.Unmarshal(element, &p); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid portfolio structure")
		}
		if p.ID == "" || p.Name == "" || !isJSONArray(p.Assets) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid portfolio structure")
		}
	}

	var portfolios []models.Portfolio
	if err := json.Unmarshal(probe.Portfolios, &portfolios); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidImport, "Invalid portfolio structure")
	}
	return portfolios, nil
}

// isJSONArray reports whether raw is a JSON array value. A missing field
// or JSON null is not.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
