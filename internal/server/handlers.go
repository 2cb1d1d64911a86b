package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"arc59-send-receive-go/internal/models"
	"arc59-send-receive-go/internal/wallet"
)

// TransferAPI is the slice of the transfer service the handlers consume.
type TransferAPI interface {
	ListAssets(ctx context.Context, address string) ([]models.AssetDetails, error)
	Send(ctx context.Context, req models.TransferRequest) (models.SubmissionReceipt, error)
}

// Handler adapts the wallet manager and transfer service to HTTP.
type Handler struct {
	transfers TransferAPI
	wallets   *wallet.Manager
}

func NewHandler(transfers TransferAPI, wallets *wallet.Manager) *Handler {
	return &Handler{transfers: transfers, wallets: wallets}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListWallets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"wallets": h.wallets.List()})
}

func (h *Handler) ConnectWallet(c *gin.Context) {
	accounts, err := h.wallets.Connect(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "session": h.wallets.Active()})
}

func (h *Handler) DisconnectWallet(c *gin.Context) {
	if err := h.wallets.Disconnect(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.wallets.Active()})
}

type setActiveRequest struct {
	WalletID string `json:"wallet_id" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

func (h *Handler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := h.wallets.SetActive(req.WalletID, req.Address); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": h.wallets.Active()})
}

func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session": h.wallets.Active()})
}

func (h *Handler) ListAssets(c *gin.Context) {
	assets, err := h.transfers.ListAssets(c.Request.Context(), c.Param("address"))
	if err != nil {
		directoryPassesTotal.WithLabelValues("error").Inc()
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	directoryPassesTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

func (h *Handler) SendAsset(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		transfersTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	receipt, err := h.transfers.Send(c.Request.Context(), req)
	if err != nil {
		transfersTotal.WithLabelValues(outcomeForError(err)).Inc()
		c.JSON(statusForError(err), errorResponse{Error: err.Error()})
		return
	}
	transfersTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

// statusForError maps the error taxonomy onto HTTP statuses: bad input is
// the caller's fault, an in-flight clash is a conflict, and upstream
// chain/indexer failures are bad gateways.
func statusForError(err error) int {
	var validationErr *models.ValidationError
	var indexingErr *models.IndexingServiceError
	var lookupErr *models.AssetLookupError
	var planningErr *models.PlanningError
	var submissionErr *models.SubmissionError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrTransferInFlight):
		return http.StatusConflict
	case errors.As(err, &indexingErr), errors.As(err, &lookupErr),
		errors.As(err, &planningErr), errors.As(err, &submissionErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func outcomeForError(err error) string {
	var validationErr *models.ValidationError
	var planningErr *models.PlanningError
	var submissionErr *models.SubmissionError

	switch {
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.Is(err, models.ErrTransferInFlight):
		return "in_flight"
	case errors.As(err, &planningErr):
		return "planning_failed"
	case errors.As(err, &submissionErr):
		return "submission_failed"
	default:
		return "error"
	}
}
