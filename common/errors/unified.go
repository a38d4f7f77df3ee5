package errors

import (
	stderrors "errors"
	"net/http"
)

// Error taxonomy shared by all services. Callers wrap these with
// fmt.Errorf("...: %w", ErrX) and match them with errors.Is.
var (
	ErrInvalidCredentials  = stderrors.New("incorrect username or password")
	ErrInvalidToken        = stderrors.New("could not validate credentials")
	ErrInactiveAccount     = stderrors.New("inactive user")
	ErrMissingFilter       = stderrors.New("at least one of 'ids' or 'category' must be provided")
	ErrValidation          = stderrors.New("invalid request parameters")
	ErrUpstreamUnavailable = stderrors.New("upstream market data provider unavailable")
)

// ToProblemDetails maps any error onto its RFC 7807 representation. Unknown
// errors become a generic internal error so internals are never exposed.
func ToProblemDetails(err error, instance string) *ProblemDetails {
	var pd *ProblemDetails
	switch {
	case stderrors.As(err, &pd):
		if pd.Instance == "" {
			pd.Instance = instance
		}
		return pd
	case stderrors.Is(err, ErrInvalidCredentials):
		return NewUnauthorizedError(ErrInvalidCredentials.Error(), instance)
	case stderrors.Is(err, ErrInvalidToken):
		return NewUnauthorizedError(ErrInvalidToken.Error(), instance)
	case stderrors.Is(err, ErrInactiveAccount):
		return NewInactiveAccountError(ErrInactiveAccount.Error(), instance)
	case stderrors.Is(err, ErrMissingFilter):
		return NewMissingFilterError(ErrMissingFilter.Error(), instance)
	case stderrors.Is(err, ErrValidation):
		return NewValidationError(ErrValidation.Error(), instance)
	case stderrors.Is(err, ErrUpstreamUnavailable):
		return NewUpstreamUnavailableError(ErrUpstreamUnavailable.Error(), instance)
	default:
		return NewInternalError("An unexpected error occurred", instance)
	}
}

// RequiresChallenge reports whether the response to err must carry a
// WWW-Authenticate: Bearer header.
func RequiresChallenge(err error) bool {
	return stderrors.Is(err, ErrInvalidCredentials) || stderrors.Is(err, ErrInvalidToken)
}

// StatusCode returns the HTTP status err maps to
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToProblemDetails(err, "").Status
}
