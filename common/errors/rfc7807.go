package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ProblemDetails represents RFC 7807 compliant error response
type ProblemDetails struct {
	// Type is a URI reference that identifies the problem type
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Status is the HTTP status code
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence of the problem
	Detail string `json:"detail"`
	// Instance is a URI reference that identifies the specific occurrence of the problem
	Instance string `json:"instance,omitempty"`
	// Timestamp when the error occurred
	Timestamp time.Time `json:"timestamp"`
	// TraceID for request tracing and debugging
	TraceID string `json:"traceId,omitempty"`
	// Errors contains field-specific validation errors
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents field-specific validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Standard error types with URIs
const (
	TypeValidationError     = "https://marketgw.dev/errors/validation-error"
	TypeUnauthorized        = "https://marketgw.dev/errors/unauthorized"
	TypeInactiveAccount     = "https://marketgw.dev/errors/inactive-account"
	TypeMissingFilter       = "https://marketgw.dev/errors/missing-filter"
	TypeUpstreamUnavailable = "https://marketgw.dev/errors/upstream-unavailable"
	TypeInternalError       = "https://marketgw.dev/errors/internal-error"
)

// Standard error titles
const (
	TitleValidationError     = "Validation Error"
	TitleUnauthorized        = "Unauthorized"
	TitleInactiveAccount     = "Inactive Account"
	TitleMissingFilter       = "Missing Filter"
	TitleUpstreamUnavailable = "Upstream Unavailable"
	TitleInternalError       = "Internal Server Error"
)

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(problemType, title string, status int, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:      problemType,
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now().UTC(),
	}
}

// WithTraceID adds a trace ID to the problem details
func (p *ProblemDetails) WithTraceID(traceID string) *ProblemDetails {
	p.TraceID = traceID
	return p
}

// AddValidationError adds a single validation error
func (p *ProblemDetails) AddValidationError(field, message, code string) *ProblemDetails {
	p.Errors = append(p.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
	return p
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// Common error constructors

// NewValidationError creates a validation error
func NewValidationError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeValidationError, TitleValidationError, http.StatusBadRequest, detail, instance)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeUnauthorized, TitleUnauthorized, http.StatusUnauthorized, detail, instance)
}

// NewInactiveAccountError creates an inactive account error
func NewInactiveAccountError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeInactiveAccount, TitleInactiveAccount, http.StatusBadRequest, detail, instance)
}

// NewMissingFilterError creates a missing filter error
func NewMissingFilterError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeMissingFilter, TitleMissingFilter, http.StatusBadRequest, detail, instance)
}

// NewUpstreamUnavailableError creates an upstream failure error
func NewUpstreamUnavailableError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeUpstreamUnavailable, TitleUpstreamUnavailable, http.StatusBadGateway, detail, instance)
}

// NewInternalError creates an internal server error
func NewInternalError(detail, instance string) *ProblemDetails {
	return NewProblemDetails(TypeInternalError, TitleInternalError, http.StatusInternalServerError, detail, instance)
}
