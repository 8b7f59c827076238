package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/logger"
)

// ErrorCode is the machine-readable error kind of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeNotFound               ErrorCode = "not_found"
	CodeInvalidArgument        ErrorCode = "invalid_argument"
	CodeUnknownParameter       ErrorCode = "unknown_parameter"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeSemanticUnavailable    ErrorCode = "semantic_unavailable"
	CodeBackendUnavailable     ErrorCode = "backend_unavailable"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	invalidArgumentHandler,
	sentinelHandler(domain.ErrUnknownParameter, http.StatusBadRequest, CodeUnknownParameter),
	sentinelHandler(domain.ErrSemanticUnavailable, http.StatusNotImplemented, CodeSemanticUnavailable),
	sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
	sentinelHandler(domain.ErrBackendUnavailable, http.StatusBadGateway, CodeBackendUnavailable),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// invalidArgumentHandler echoes the offending parameter back to the caller.
func invalidArgumentHandler(w http.ResponseWriter, err error) bool {
	var iae *domain.InvalidArgumentError
	if errors.As(err, &iae) {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, iae.Error())
		return true
	}
	if errors.Is(err, domain.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, domain.ErrInvalidArgument.Error())
		return true
	}
	return false
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Only the sentinel text is exposed; wrapped details stay in the logs.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.FromContext(r.Context()).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
