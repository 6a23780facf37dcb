package workflowapi

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/ggh0223/lias-client-sub001/internal/core/domain"
	"github.com/ggh0223/lias-client-sub001/internal/infrastructure/resilience"
)

func classifyEngineError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return resilience.ErrorClassification{
				Retryable:     true,
				RecordFailure: true,
			}
		}
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}

// translateEngineError maps a transport-level failure onto the domain error
// taxonomy the stores and the HTTP adapter react to.
func translateEngineError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return domain.WrapError(domain.ErrValidation, operation, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.WrapError(domain.ErrUnauthorized, operation, err)
		case http.StatusNotFound:
			return domain.WrapError(domain.ErrNotFound, operation, err)
		}
		if isRetryableHTTPStatus(statusErr.StatusCode) {
			return domain.WrapError(domain.ErrTemporary, operation, err)
		}
		return domain.WrapError(domain.ErrRemote, operation, err)
	}

	if resilience.IsCircuitOpen(err) || classifyEngineError(err).Retryable {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.WrapError(domain.ErrRemote, operation, err)
}

func isRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
