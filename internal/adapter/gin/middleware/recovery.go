package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "coin-wallet-service/pkg/errors"
	"coin-wallet-service/pkg/logger"
)

// Recovery turns a panic in a handler into a 500 JSON response.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithContext(c.Request.Context(), log).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(apperrors.StatusOf(apperrors.ErrInternal), gin.H{"error": apperrors.ErrInternal.Error()})
	})
}
