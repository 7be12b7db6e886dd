package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/psbt-apis/internal/api/middleware"
	"github.com/thanhnp/psbt-apis/internal/models"
	"github.com/thanhnp/psbt-apis/internal/storage"
)

// SummaryHandler serves the summary history
type SummaryHandler struct {
	store     *storage.SummaryStore // nil when history is disabled
	listLimit int
}

// NewSummaryHandler creates a new SummaryHandler. store may be nil.
func NewSummaryHandler(store *storage.SummaryStore, listLimit int) *SummaryHandler {
	return &SummaryHandler{store: store, listLimit: listLimit}
}

func (h *SummaryHandler) disabled(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "summary history is disabled"})
		return true
	}
	return false
}

// Get returns a stored summary
// GET /api/v1/:network/summaries/:txid
func (h *SummaryHandler) Get(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	rec, err := h.store.Get(middleware.Network(c).Name, c.Param("txid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Kind: "internal"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "summary not found"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetPsbt returns the PSBT a stored summary was built from
// GET /api/v1/:network/summaries/:txid/psbt
func (h *SummaryHandler) GetPsbt(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	network := middleware.Network(c).Name
	txid := c.Param("txid")

	raw, err := h.store.GetPsbt(network, txid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Kind: "internal"})
		return
	}
	if raw == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "psbt not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"network": network,
		"txid":    txid,
		"psbt":    raw,
	})
}

// List returns stored summaries in txid order
// GET /api/v1/:network/summaries?limit=N
func (h *SummaryHandler) List(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	limit := h.listLimit
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit", Kind: "request"})
			return
		}
		if limit <= 0 || n < limit {
			limit = n
		}
	}

	network := middleware.Network(c).Name
	recs, err := h.store.List(network, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Kind: "internal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"network":   network,
		"count":     len(recs),
		"summaries": recs,
	})
}

// Delete removes a stored summary
// DELETE /api/v1/:network/summaries/:txid
func (h *SummaryHandler) Delete(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	network := middleware.Network(c).Name
	txid := c.Param("txid")

	rec, err := h.store.Get(network, txid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Kind: "internal"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "summary not found"})
		return
	}

	if err := h.store.Delete(network, txid); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Kind: "internal"})
		return
	}
	c.Status(http.StatusNoContent)
}
