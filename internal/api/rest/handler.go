package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/engine"
	"github.com/chainfolio/price-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetAllPrices returns the latest cached price per token for every chain
	// GET /
	GetAllPrices(c *gin.Context)

	// GetChainPrices returns prices for one chain, either the whole cached
	// table or exactly the requested tokens with live resolution
	// GET /:chainId?tokens=<addr1>,<addr2>&includeHistory=<bool>
	GetChainPrices(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine engine.Engine
	store  store.Store
}

// NewHandler creates a new REST API handler over the pricing engine
func NewHandler(eng engine.Engine, st store.Store) Handler {
	return &handler{
		engine: eng,
		store:  st,
	}
}

// GetAllPrices returns the latest cached price per token for every chain
func (h *handler) GetAllPrices(c *gin.Context) {
	table, err := h.engine.AllPrices(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to read cached prices")
		return
	}

	c.JSON(http.StatusOK, table)
}

// GetChainPrices returns prices for one chain
func (h *handler) GetChainPrices(c *gin.Context) {
	chainID := domain.ChainID(c.Param("chainId"))
	if !chainID.Valid() {
		respondBadRequest(c, "Invalid chain identifier")
		return
	}

	tokensParam, hasTokens := c.GetQuery("tokens")
	if !hasTokens {
		prices, err := h.engine.ChainPrices(c.Request.Context(), chainID)
		if err != nil {
			if errors.Is(err, domain.ErrChainNotSupported) {
				respondBadRequest(c, "Chain not supported")
				return
			}
			respondInternalError(c, err, "Failed to read cached prices",
				zap.String("chain", string(chainID)))
			return
		}

		c.JSON(http.StatusOK, prices)
		return
	}

	addresses := strings.Split(tokensParam, ",")
	includeHistory := c.Query("includeHistory") == "true"

	prices, err := h.engine.ResolvePrices(c.Request.Context(), chainID, addresses, includeHistory)
	if err != nil {
		if errors.Is(err, domain.ErrChainNotSupported) {
			respondBadRequest(c, "Chain not supported")
			return
		}
		respondInternalError(c, err, "Failed to resolve prices",
			zap.String("chain", string(chainID)))
		return
	}

	c.JSON(http.StatusOK, prices)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
