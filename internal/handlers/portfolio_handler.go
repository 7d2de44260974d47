package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/uuid"
)

// PortfolioHandler handles portfolio collection and selection requests.
type PortfolioHandler struct {
	store *store.Store
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(s *store.Store) *PortfolioHandler {
	return &PortfolioHandler{store: s}
}

// CreatePortfolioRequest represents the request payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdatePortfolioRequest represents the request payload for renaming a portfolio.
type UpdatePortfolioRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// SelectPortfolioRequest represents the request payload for changing the selection.
// An empty id clears the selection.
type SelectPortfolioRequest struct {
	PortfolioID string `json:"portfolioId"`
}

// PortfolioListResponse is the portfolio collection plus the current selection.
type PortfolioListResponse struct {
	Portfolios          []models.Portfolio `json:"portfolios"`
	SelectedPortfolioID string             `json:"selectedPortfolioId,omitempty"`
}

// ListPortfolios returns all portfolios and the selected portfolio id.
// @Summary     List portfolios
// @Description List all portfolios with the currently selected portfolio id
// @Tags        portfolios
// @Produce     json
// @Success     200 {object} PortfolioListResponse
// @Router      /portfolios [get]
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	resp := PortfolioListResponse{Portfolios: h.store.Portfolios()}
	if selected, ok := h.store.Selected(); ok {
		resp.SelectedPortfolioID = selected.ID
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePortfolio creates an empty portfolio and selects it.
// @Summary     Create portfolio
// @Description Create a new empty portfolio; it becomes the selected portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	now := time.Now().UTC()
	portfolio := models.Portfolio{
		ID:        uuid.New(),
		Name:      req.Name,
		Assets:    []models.Asset{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.store.AddPortfolio(portfolio)

	c.JSON(http.StatusCreated, portfolio)
}

// GetPortfolio returns one portfolio by id.
// @Summary     Get portfolio
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} models.Portfolio
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, ok := h.store.Portfolio(c.Param("id"))
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// UpdatePortfolio renames a portfolio.
// @Summary     Update portfolio
// @Description Replace the fields present in the payload on the portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Param       request body UpdatePortfolioRequest true "Fields to update"
// @Success     200 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [put]
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, ok := h.store.UpdatePortfolio(c.Param("id"), store.PortfolioUpdate{Name: &req.Name})
	if !ok {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// DeletePortfolio deletes a portfolio. The selection is cleared regardless
// of which portfolio was selected.
// @Summary     Delete portfolio
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	if !h.store.DeletePortfolio(c.Param("id")) {
		respondWithError(c, apperrors.ErrPortfolioNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSelection returns the currently selected portfolio.
// @Summary     Get selection
// @Tags        portfolios
// @Produce     json
// @Success     200 {object} models.Portfolio
// @Failure     404 {object} ErrorResponse "No portfolio selected"
// @Router      /selection [get]
func (h *PortfolioHandler) GetSelection(c *gin.Context) {
	selected, ok := h.store.Selected()
	if !ok {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrPortfolioNotFound, "No portfolio selected"))
		return
	}
	c.JSON(http.StatusOK, selected)
}

// SetSelection changes the selection. An empty or unknown id clears it.
// @Summary     Set selection
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body SelectPortfolioRequest true "Portfolio id to select; empty clears"
// @Success     200 {object} models.Portfolio
// @Success     204 "Selection cleared"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /selection [put]
func (h *PortfolioHandler) SetSelection(c *gin.Context) {
	var req SelectPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	selected, ok := h.store.SelectPortfolio(req.PortfolioID)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, selected)
}
