package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/model"
	"dubss/internal/repository"
)

// ListNotificaciones returns a student's notifications, newest first.
func ListNotificaciones(repo repository.NotificacionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idEstudiante, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := repo.ListByEstudiante(c.UserContext(), idEstudiante, repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if res.Items == nil {
			res.Items = []model.Notificacion{}
		}
		return c.JSON(fiber.Map{"data": res.Items, "total": res.Total})
	}
}

// MarkNotificacionLeida flags one notification as read.
func MarkNotificacionLeida(repo repository.NotificacionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		if err := repo.MarkLeido(c.UserContext(), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
