package handler

import (
	"net/http"

	"coin-wallet-service/internal/usecase/wallet"
	apperrors "coin-wallet-service/pkg/errors"
	"coin-wallet-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Route paths served by WalletHandler
const (
	PathRoot       = "/"
	PathUsers      = "/api/users"
	PathWalletInfo = "/api/wallet-info"
)

// serviceMessage is the name reported by the info endpoint
const serviceMessage = "Coin Wallet API"

// WalletHandler handles HTTP requests for wallet operations
type WalletHandler struct {
	uc  wallet.Usecase
	log *zap.Logger
}

// NewWalletHandler creates a new WalletHandler instance
func NewWalletHandler(uc wallet.Usecase, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents one enriched user in the HTTP response
type UserResponse struct {
	Username   string  `json:"username"`
	CoinAmount float64 `json:"coin_amount"`
	USDValue   float64 `json:"usd_value"`
	IsAdmin    bool    `json:"is_admin"`
}

// WalletInfoResponse represents the HTTP response for the aggregate wallet view
type WalletInfoResponse struct {
	TotalAmount   float64  `json:"total_amount"`
	Price         *float64 `json:"price"`
	TotalUSDValue float64  `json:"total_usd_value"`
}

// InfoResponse represents the HTTP response of the service info endpoint
type InfoResponse struct {
	Message        string            `json:"message"`
	Status         string            `json:"status"`
	DatabaseStatus string            `json:"database_status,omitempty"`
	Endpoints      map[string]string `json:"endpoints,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Info handles GET /
func (h *WalletHandler) Info(c *gin.Context) {
	status := h.uc.Status(c.Request.Context())

	c.JSON(http.StatusOK, InfoResponse{
		Message:        serviceMessage,
		Status:         "running",
		DatabaseStatus: status.DatabaseStatus,
		Endpoints: map[string]string{
			"info":        PathRoot,
			"users":       PathUsers,
			"wallet_info": PathWalletInfo,
		},
	})
}

// ListUsers handles GET /api/users
func (h *WalletHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			Username:   u.Username,
			CoinAmount: u.CoinAmount,
			USDValue:   u.USDValue,
			IsAdmin:    u.IsAdmin,
		}
	}

	c.JSON(http.StatusOK, users)
}

// WalletInfo handles GET /api/wallet-info
func (h *WalletHandler) WalletInfo(c *gin.Context) {
	resp, err := h.uc.WalletInfo(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WalletInfoResponse{
		TotalAmount:   resp.TotalAmount,
		Price:         resp.Price,
		TotalUSDValue: resp.TotalUSDValue,
	})
}

// NotFound handles unknown routes
func (h *WalletHandler) NotFound(c *gin.Context) {
	h.handleError(c, apperrors.ErrRouteNotFound)
}

// handleError converts usecase errors to a JSON error body with the status the error carries
func (h *WalletHandler) handleError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context(), h.log).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}
