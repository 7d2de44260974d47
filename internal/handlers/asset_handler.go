package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/uuid"
)

// AssetHandler handles asset requests within a portfolio.
type AssetHandler struct {
	store *store.Store
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(s *store.Store) *AssetHandler {
	return &AssetHandler{store: s}
}

// AssetRequest represents the request payload for adding or replacing an asset.
type AssetRequest struct {
	Symbol       string           `json:"symbol" binding:"required,symbol"`
	Name         string           `json:"name" binding:"required,min=1,max=100"`
	Quantity     float64          `json:"quantity" binding:"required,gte=0.000001"`
	CostBasis    float64          `json:"costBasis" binding:"required,gte=0.01"`
	PurchaseDate string           `json:"purchaseDate" binding:"required"`
	Currency     string           `json:"currency" binding:"required,folio_currency"`
	Type         models.AssetType `json:"type" binding:"required,asset_type"`
}

// toAsset normalizes the payload into an Asset, validating the purchase
// date. Callers reject the request before it reaches the store on error.
func (r AssetRequest) toAsset(id string) (models.Asset, error) {
	purchased, err := time.Parse("2006-01-02", r.PurchaseDate)
	if err != nil {
		return models.Asset{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchaseDate must be a YYYY-MM-DD date")
	}
	if purchased.After(time.Now().UTC()) {
		return models.Asset{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchaseDate must not be in the future")
	}

	return models.Asset{
		ID:           id,
		Symbol:       strings.ToUpper(strings.TrimSpace(r.Symbol)),
		Name:         strings.TrimSpace(r.Name),
		Quantity:     r.Quantity,
		CostBasis:    r.CostBasis,
		PurchaseDate: r.PurchaseDate,
		Currency:     r.Currency,
		Type:         r.Type,
	}, nil
}

// AddAsset appends an asset to a portfolio.
// @Summary     Add asset
// @Description Add a holding to the portfolio's asset list
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Param       request body AssetRequest true "Asset details"
// @Success     201 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/assets [post]
func (h *AssetHandler) AddAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := req.toAsset(uuid.New())
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, ok := h.store.AddAsset(c.Param("id"), asset)
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	c.JSON(http.StatusCreated, portfolio)
}

// UpdateAsset replaces an asset in a portfolio.
// @Summary     Update asset
// @Description Replace the asset matching the path id with the payload
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Param       assetId path string true "Asset ID"
// @Param       request body AssetRequest true "Asset details"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio or asset not found"
// @Router      /portfolios/{id}/assets/{assetId} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolioID := c.Param("id")
	assetID := c.Param("assetId")

	current, ok := h.store.Portfolio(portfolioID)
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	if !hasAsset(current, assetID) {
		respondWithError(c, apperrors.ErrAssetNotFound)
		return
	}

	asset, err := req.toAsset(assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, ok := h.store.UpdateAsset(portfolioID, asset)
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// RemoveAsset removes an asset from a portfolio.
// @Summary     Remove asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Param       assetId path string true "Asset ID"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio or asset not found"
// @Router      /portfolios/{id}/assets/{assetId} [delete]
func (h *AssetHandler) RemoveAsset(c *gin.Context) {
	portfolioID := c.Param("id")
	assetID := c.Param("assetId")

	current, ok := h.store.Portfolio(portfolioID)
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	if !hasAsset(current, assetID) {
		respondWithError(c, apperrors.ErrAssetNotFound)
		return
	}

	portfolio, _ := h.store.RemoveAsset(portfolioID, assetID)
	c.JSON(http.StatusOK, portfolio)
}

// hasAsset reports whether the portfolio contains an asset with the id.
func hasAsset(p models.Portfolio, assetID string) bool {
	for _, a := range p.Assets {
		if a.ID == assetID {
			return true
		}
	}
	return false
}
