package apiutil

import (
	"net/http"

	"github.com/Aidin1998/marketgw/common/errors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ProblemContentType is the media type of every error body
const ProblemContentType = "application/problem+json"

// RFC7807ErrorMiddleware renders the last error attached with c.Error when
// the handler did not write a response itself. Handlers report failures with
// c.Error(err) followed by c.Abort().
func RFC7807ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		if err.Type == gin.ErrorTypeBind {
			problemDetails := ValidationProblem(c, err.Err)
			logProblem(c, logger, problemDetails, err.Err)
			RFC7807ErrorResponse(c, problemDetails, false)
			return
		}
		WriteError(c, logger, err.Err)
	}
}

// GetTraceID returns the active OpenTelemetry trace id, falling back to the
// request id when tracing is off.
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return c.GetString(RequestIDKey)
}

// RFC7807ErrorResponse writes problemDetails and aborts the chain. A 401 or
// an explicit challenge adds WWW-Authenticate: Bearer.
func RFC7807ErrorResponse(c *gin.Context, problemDetails *errors.ProblemDetails, challenge bool) {
	if traceID := GetTraceID(c); traceID != "" {
		problemDetails.WithTraceID(traceID)
	}

	if challenge || problemDetails.Status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(problemDetails.Status, problemDetails)
}
