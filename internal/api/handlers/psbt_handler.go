package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/thanhnp/psbt-apis/internal/address"
	"github.com/thanhnp/psbt-apis/internal/api/middleware"
	"github.com/thanhnp/psbt-apis/internal/inspect"
	"github.com/thanhnp/psbt-apis/internal/models"
	"github.com/thanhnp/psbt-apis/internal/storage"
)

// PsbtHandler handles PSBT parse requests
type PsbtHandler struct {
	store          *storage.SummaryStore // nil when history is disabled
	defaultNetwork address.Network
	now            func() time.Time
}

// NewPsbtHandler creates a new PsbtHandler. store may be nil.
func NewPsbtHandler(store *storage.SummaryStore, defaultNetwork address.Network) *PsbtHandler {
	return &PsbtHandler{
		store:          store,
		defaultNetwork: defaultNetwork,
		now:            time.Now,
	}
}

// Invoke runs one parse request and returns the HTTP status and response
// body. It backs both the HTTP routes and the single-shot CLI handler.
func (h *PsbtHandler) Invoke(req *models.ParseRequest) (int, any) {
	net := h.defaultNetwork
	if req.Network != "" {
		var err error
		net, err = address.ParseNetwork(req.Network)
		if err != nil {
			return http.StatusBadRequest, errorResponse(&inspect.Error{Stage: inspect.StageNetwork, Err: err})
		}
	}

	summary, err := inspect.Parse(req.Psbt, net)
	if err != nil {
		return http.StatusBadRequest, errorResponse(err)
	}

	if h.store != nil {
		rec := &models.SummaryRecord{
			Network:   net.Name,
			Summary:   summary,
			CreatedAt: h.now().UTC(),
		}
		if err := h.store.Save(rec, req.Psbt); err != nil {
			log.WithFields(log.Fields{
				"component": "api",
				"network":   net.Name,
				"txid":      summary.TxID,
			}).WithError(err).Warn("failed to save summary")
		}
	}

	return http.StatusOK, summary
}

// Parse parses a PSBT; the network comes from the body or the configured default
// POST /parse_psbt
func (h *PsbtHandler) Parse(c *gin.Context) {
	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, invalidRequest(err))
		return
	}

	c.JSON(h.Invoke(&req))
}

// ParseForNetwork parses a PSBT for the network named in the path
// POST /api/v1/:network/psbt
func (h *PsbtHandler) ParseForNetwork(c *gin.Context) {
	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, invalidRequest(err))
		return
	}
	req.Network = middleware.Network(c).Name

	c.JSON(h.Invoke(&req))
}

func errorResponse(err error) models.ErrorResponse {
	var ierr *inspect.Error
	if errors.As(err, &ierr) {
		return models.ErrorResponse{
			Error: ierr.Error(),
			Stage: string(ierr.Stage),
			Kind:  ierr.Kind(),
		}
	}
	return models.ErrorResponse{Error: err.Error(), Kind: "internal"}
}

func invalidRequest(err error) models.ErrorResponse {
	return models.ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Kind:  "request",
	}
}
