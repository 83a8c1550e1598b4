package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/service"
)

// rankRequest is the optional body of POST /becas/:id/ranking.
type rankRequest struct {
	EjecutadoPor *int64 `json:"ejecutado_por"`
}

// RankBeca recomputes and persists the ranking of one beca.
func RankBeca(svc service.RankingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idBeca, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}

		var req rankRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
			}
		}

		res, err := svc.Rank(c.UserContext(), idBeca, req.EjecutadoPor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ResumenResultados returns derived outcome statistics, optionally scoped by
// the convocatoria query parameter.
func ResumenResultados(svc service.RankingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var idConvocatoria *int64
		if raw := c.Query("convocatoria"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v <= 0 {
				return writeError(c, fiber.StatusBadRequest, "INVALID_CONVOCATORIA", "convocatoria must be numeric")
			}
			idConvocatoria = &v
		}

		res, err := svc.Resumen(c.UserContext(), idConvocatoria)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
