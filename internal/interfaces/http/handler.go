package httpinterface

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sparkle-network/sparkled/internal/core/application"
	"github.com/sparkle-network/sparkled/internal/core/domain"
)

type tradeHandler struct {
	svc       *application.Service
	startTime time.Time
}

type createTradeRequest struct {
	AssetId     string `json:"assetId"`
	SellerNode  string `json:"sellerNode"`
	BuyerNode   string `json:"buyerNode"`
	PriceUnits  uint64 `json:"priceUnits"`
	LockTimeout uint32 `json:"lockTimeout"`
}

type sellerArtifactRequest struct {
	Artifact string `json:"artifact"`
}

type buyerParticipationRequest struct {
	LockHash string `json:"lockHash"`
	Artifact string `json:"artifact"`
}

type settleTradeRequest struct {
	SettlementRef string `json:"settlementRef"`
	Preimage      string `json:"preimage"`
}

func (h *tradeHandler) createTrade(c *gin.Context) {
	var req createTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	trade, err := h.svc.CreateTrade(c.Request.Context(), application.CreateTradeArgs{
		AssetId:     req.AssetId,
		SellerNode:  req.SellerNode,
		BuyerNode:   req.BuyerNode,
		PriceUnits:  req.PriceUnits,
		LockTimeout: req.LockTimeout,
	})
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *tradeHandler) submitSellerArtifact(c *gin.Context) {
	var req sellerArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	trade, err := h.svc.SubmitSellerArtifact(
		c.Request.Context(), c.Param("id"), req.Artifact,
	)
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *tradeHandler) submitBuyerParticipation(c *gin.Context) {
	var req buyerParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	trade, err := h.svc.SubmitBuyerParticipation(
		c.Request.Context(), c.Param("id"), req.LockHash, req.Artifact,
	)
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *tradeHandler) settleTrade(c *gin.Context) {
	var req settleTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	trade, err := h.svc.SettleTrade(
		c.Request.Context(), c.Param("id"), req.SettlementRef, req.Preimage,
	)
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *tradeHandler) getTrade(c *gin.Context) {
	trade, err := h.svc.GetTrade(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

func (h *tradeHandler) listTrades(c *gin.Context) {
	filter := domain.TradeFilter{AssetId: c.Query("asset")}
	if statusName := c.Query("status"); statusName != "" {
		status, err := domain.ParseTradeStatus(statusName)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		filter.Status = &status
	}

	trades, err := h.svc.ListTrades(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, errStatusCode(err), err)
		return
	}

	c.JSON(http.StatusOK, trades)
}

func (h *tradeHandler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}

func (h *tradeHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": int64(time.Since(h.startTime).Seconds()),
	})
}

func abortWithError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func errStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrTradeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgs):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTradeConflict):
		return http.StatusConflict
	}

	var statusErr *domain.InvalidStatusError
	if errors.As(err, &statusErr) {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
