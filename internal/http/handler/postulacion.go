package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/service"
)

// createPostulacionRequest is the body of POST /postulaciones.
type createPostulacionRequest struct {
	IDEstudiante   int64 `json:"id_estudiante" validate:"required,gt=0"`
	IDBeca         int64 `json:"id_beca" validate:"required,gt=0"`
	IDConvocatoria int64 `json:"id_convocatoria" validate:"required,gt=0"`
	IDFormulario   int64 `json:"id_formulario"`
}

// CreatePostulacion registers an application and opens its trámite.
func CreatePostulacion(svc service.PostulacionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPostulacionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "id_estudiante, id_beca and id_convocatoria are required")
		}

		res, err := svc.Create(c.UserContext(), service.CreatePostulacionInput{
			IDEstudiante:   req.IDEstudiante,
			IDBeca:         req.IDBeca,
			IDConvocatoria: req.IDConvocatoria,
			IDFormulario:   req.IDFormulario,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetPostulacion returns one postulación by id.
func GetPostulacion(svc service.PostulacionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// ListPostulacionesEstudiante returns a student's applications, newest first.
func ListPostulacionesEstudiante(svc service.PostulacionService) fiber.Handler {
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

		res, err := svc.ListByEstudiante(c.UserContext(), idEstudiante, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
