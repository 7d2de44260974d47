package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"folio/internal/codec"
	apperrors "folio/internal/errors"
	"folio/internal/store"
)

// maxImportSize bounds the accepted import payload at 10 MiB.
const maxImportSize = 10 << 20

// TransferHandler handles portfolio export and import.
type TransferHandler struct {
	store *store.Store
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s *store.Store) *TransferHandler {
	return &TransferHandler{store: s}
}

// ImportResponse reports how many portfolios an import appended.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// Export downloads all portfolios as a versioned JSON envelope.
// @Summary     Export portfolios
// @Description Download the full portfolio collection as a versioned JSON file
// @Tags        transfer
// @Produce     json
// @Success     200 {object} codec.Envelope
// @Router      /export [get]
func (h *TransferHandler) Export(c *gin.Context) {
	data, err := codec.Export(h.store.Portfolios())
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("portfolio-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import validates an export envelope and appends its portfolios.
// The operation is all-or-nothing: a malformed envelope imports nothing.
// @Summary     Import portfolios
// @Description Append the portfolios from an export envelope; no partial import on failure
// @Tags        transfer
// @Accept      json
// @Produce     json
// @Success     200 {object} ImportResponse
// @Failure     400 {object} ErrorResponse "Invalid envelope"
// @Router      /import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidImport, err))
		return
	}

	portfolios, err := codec.Import(raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.store.ImportPortfolios(portfolios)
	c.JSON(http.StatusOK, ImportResponse{Imported: len(portfolios)})
}
