package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/http/middleware"
	"dubss/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service-layer sentinel errors into the
// standardized envelope. Guard violations carry their message through because
// the typed errors are written to be shown to callers (they name missing
// document types, illegal edges, and so on).
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrAlreadyExists):
		return writeError(c, fiber.StatusConflict, "ALREADY_EXISTS", "postulacion already exists for this estudiante and beca")
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "concurrent update, retry")
	case errors.Is(err, service.ErrInvalidTransition):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, service.ErrIncompleteDocuments):
		return writeError(c, fiber.StatusUnprocessableEntity, "INCOMPLETE_DOCUMENTS", err.Error())
	case errors.Is(err, service.ErrMissingObservacion):
		return writeError(c, fiber.StatusBadRequest, "OBSERVACION_REQUIRED", "observaciones is required for this transition")
	case errors.Is(err, service.ErrDocumentsNotValidated):
		return writeError(c, fiber.StatusUnprocessableEntity, "DOCUMENTS_NOT_VALIDATED", "presented documents are not all validated")
	case errors.Is(err, service.ErrNoArtifacts):
		return writeError(c, fiber.StatusUnprocessableEntity, "NO_ARTIFACTS", "no document artifacts registered yet")
	case errors.Is(err, service.ErrRankingPending):
		return writeError(c, fiber.StatusUnprocessableEntity, "RANKING_PENDING", "ranking has not been computed for this beca")
	case errors.Is(err, service.ErrOutcomeMismatch):
		return writeError(c, fiber.StatusUnprocessableEntity, "OUTCOME_MISMATCH", "requested outcome contradicts the ranking position")
	case errors.Is(err, service.ErrInvalidConfiguration):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_CONFIGURATION", "beca has an invalid cupos configuration")
	case errors.Is(err, service.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "INVALID_STATE", "operation not allowed in the current estado")
	case errors.Is(err, service.ErrInvalidTipoDocumento):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TIPO_DOCUMENTO", "unknown tipo de documento")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
