package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/stretchr/testify/assert"
)

func TestToProblemDetails_Taxonomy(t *testing.T) {
	tests := []struct {
		err       error
		status    int
		typ       string
		challenge bool
	}{
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, apperrors.TypeUnauthorized, true},
		{apperrors.ErrInvalidToken, http.StatusUnauthorized, apperrors.TypeUnauthorized, true},
		{apperrors.ErrInactiveAccount, http.StatusBadRequest, apperrors.TypeInactiveAccount, false},
		{apperrors.ErrMissingFilter, http.StatusBadRequest, apperrors.TypeMissingFilter, false},
		{apperrors.ErrValidation, http.StatusBadRequest, apperrors.TypeValidationError, false},
		{apperrors.ErrUpstreamUnavailable, http.StatusBadGateway, apperrors.TypeUpstreamUnavailable, false},
		{stderrors.New("boom"), http.StatusInternalServerError, apperrors.TypeInternalError, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("list markets: %w", tt.err)
			pd := apperrors.ToProblemDetails(wrapped, "/api/v1/coins")

			assert.Equal(t, tt.status, pd.Status)
			assert.Equal(t, tt.typ, pd.Type)
			assert.Equal(t, "/api/v1/coins", pd.Instance)
			assert.Equal(t, tt.status, apperrors.StatusCode(wrapped))
			assert.Equal(t, tt.challenge, apperrors.RequiresChallenge(wrapped))
		})
	}
}

func TestToProblemDetails_HidesInternalDetail(t *testing.T) {
	pd := apperrors.ToProblemDetails(stderrors.New("dial tcp 10.0.0.1: refused"), "/x")
	assert.NotContains(t, pd.Detail, "10.0.0.1")
}

func TestToProblemDetails_PassesThroughProblemDetails(t *testing.T) {
	in := apperrors.NewValidationError("per_page too large", "")
	in.AddValidationError("per_page", "must be at most 250", "max")

	pd := apperrors.ToProblemDetails(in, "/api/v1/categories")
	assert.Same(t, in, pd)
	assert.Equal(t, "/api/v1/categories", pd.Instance)
	assert.Len(t, pd.Errors, 1)
}
