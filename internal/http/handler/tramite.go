package handler

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dubss/internal/service"
	"dubss/internal/workflow"
)

var validate = validator.New()

// transitionRequest is the body of POST /tramites/:id/transicion.
type transitionRequest struct {
	Estado        string `json:"estado" validate:"required"`
	Observaciones string `json:"observaciones"`
	RevisadoPor   *int64 `json:"revisado_por"`
}

// parseIDParam reads a positive numeric path parameter. On malformed input it
// writes the 400 INVALID_ID response itself and reports false; the caller must
// return nil without touching the service layer.
func parseIDParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return 0, false
	}
	return id, true
}

// GetTramite returns one trámite by id.
func GetTramite(svc service.TramiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// TramiteHistorial returns the full audit trail of a trámite, oldest first.
func TramiteHistorial(svc service.TramiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		entries, err := svc.History(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"id_tramite": id, "historial": entries})
	}
}

// ListTramites returns the work queue filtered by estado. The estado query
// parameter accepts a comma-separated list; empty means every estado.
func ListTramites(svc service.TramiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		var estados []workflow.Estado
		if raw := c.Query("estado"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				e, err := workflow.Parse(strings.TrimSpace(part))
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "INVALID_ESTADO", "unknown estado: "+part)
				}
				estados = append(estados, e)
			}
		}

		res, err := svc.ListByEstado(c.UserContext(), estados, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// TransitionTramite moves a trámite along one edge of the state graph.
func TransitionTramite(svc service.TramiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}

		var req transitionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "estado is required")
		}

		to, err := workflow.Parse(req.Estado)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ESTADO", "unknown estado: "+req.Estado)
		}

		t, err := svc.Transition(c.UserContext(), id, to, req.RevisadoPor, req.Observaciones)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// EstadisticasOperador summarizes how many trámites an operator has processed.
func EstadisticasOperador(svc service.TramiteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		stats, err := svc.EstadisticasOperador(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}
