package apiutil

import (
	"net/http"

	"github.com/Aidin1998/marketgw/common/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WriteError maps err onto its problem details and writes it.
//
// Example body:
//
//	{
//	  "type": "https://marketgw.dev/errors/missing-filter",
//	  "title": "Missing Filter",
//	  "status": 400,
//	  "detail": "at least one of 'ids' or 'category' must be provided",
//	  "instance": "/api/v1/coins/markets",
//	  "timestamp": "2024-03-01T12:00:00Z"
//	}
func WriteError(c *gin.Context, logger *zap.Logger, err error) {
	problemDetails := errors.ToProblemDetails(err, c.Request.URL.Path)
	logProblem(c, logger, problemDetails, err)
	RFC7807ErrorResponse(c, problemDetails, errors.RequiresChallenge(err))
}

// logProblem records server faults at error level and client rejections at
// debug level.
func logProblem(c *gin.Context, logger *zap.Logger, problemDetails *errors.ProblemDetails, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", problemDetails.Status),
		zap.Error(err),
	}
	if problemDetails.Status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
		return
	}
	logger.Debug("request rejected", fields...)
}
