package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/birikimapp/birikim/internal/domain"
)

// InvestmentService defines the investment and history operations the API exposes.
type InvestmentService interface {
	AddInvestment(ctx context.Context, assetType domain.AssetType, buyPrice, quantity domain.Decimal, buyDate time.Time, notes string) (*domain.Investment, error)
	UpdateInvestment(ctx context.Context, id string, update domain.InvestmentUpdate) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
	GetInvestment(ctx context.Context, id string) (*domain.Investment, error)
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
	ListInvestmentsByType(ctx context.Context, assetType domain.AssetType) ([]domain.Investment, error)
	ListHistory(ctx context.Context) ([]domain.HistoryEntry, error)
	ListHistoryByInvestment(ctx context.Context, investmentID string) ([]domain.HistoryEntry, error)
	ListHistoryByAction(ctx context.Context, action domain.HistoryAction) ([]domain.HistoryEntry, error)
}

// PortfolioService defines the derived portfolio views.
type PortfolioService interface {
	GetPortfolioStats(ctx context.Context) (*domain.PortfolioStats, error)
	GetAssetDistribution(ctx context.Context) ([]domain.AssetDistributionEntry, error)
}

type Handler struct {
	investments InvestmentService
	portfolio   PortfolioService
}

func NewHandler(investments InvestmentService, portfolio PortfolioService) *Handler {
	return &Handler{
		investments: investments,
		portfolio:   portfolio,
	}
}

type AddInvestmentRequest struct {
	Type     domain.AssetType `json:"type" binding:"required"`
	BuyPrice domain.Decimal   `json:"buy_price" binding:"required"`
	Quantity domain.Decimal   `json:"quantity" binding:"required"`
	BuyDate  time.Time        `json:"buy_date" binding:"required"`
	Notes    string           `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain failures onto HTTP statuses; anything unrecognized
// is a generic store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvestmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInvestment), errors.Is(err, domain.ErrInvalidHistoryAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) AddInvestment(c *gin.Context) {
	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.ErrorContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	investment, err := h.investments.AddInvestment(c.Request.Context(), req.Type, req.BuyPrice, req.Quantity, req.BuyDate, req.Notes)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to add investment", "type", req.Type, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, investment)
}

func (h *Handler) ListInvestments(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		investments []domain.Investment
		err         error
	)
	if typeParam := c.Query("type"); typeParam != "" {
		investments, err = h.investments.ListInvestmentsByType(ctx, domain.AssetType(typeParam))
	} else {
		investments, err = h.investments.ListInvestments(ctx)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list investments", "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, investments)
}

func (h *Handler) GetInvestment(c *gin.Context) {
	investmentID := c.Param("id")

	investment, err := h.investments.GetInvestment(c.Request.Context(), investmentID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to get investment", "investment_id", investmentID, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, investment)
}

func (h *Handler) UpdateInvestment(c *gin.Context) {
	investmentID := c.Param("id")

	var update domain.InvestmentUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		slog.ErrorContext(c.Request.Context(), "Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "update must set at least one field"})
		return
	}

	investment, err := h.investments.UpdateInvestment(c.Request.Context(), investmentID, update)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to update investment", "investment_id", investmentID, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, investment)
}

func (h *Handler) DeleteInvestment(c *gin.Context) {
	investmentID := c.Param("id")

	if err := h.investments.DeleteInvestment(c.Request.Context(), investmentID); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to delete investment", "investment_id", investmentID, "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *Handler) GetPortfolioStats(c *gin.Context) {
	stats, err := h.portfolio.GetPortfolioStats(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to compute portfolio stats", "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetAssetDistribution(c *gin.Context) {
	entries, err := h.portfolio.GetAssetDistribution(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to compute asset distribution", "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		entries []domain.HistoryEntry
		err     error
	)
	switch {
	case c.Query("investment_id") != "":
		entries, err = h.investments.ListHistoryByInvestment(ctx, c.Query("investment_id"))
	case c.Query("action") != "":
		entries, err = h.investments.ListHistoryByAction(ctx, domain.HistoryAction(c.Query("action")))
	default:
		entries, err = h.investments.ListHistory(ctx)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list history", "error", err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
