package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/model"
	"dubss/internal/service"
)

// UploadDocumento registers a digitized artifact for a trámite
// (multipart/form-data: file + tipo_documento, optional subido_por).
func UploadDocumento(svc service.DocumentoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idTramite, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		tipo := model.TipoDocumento(c.FormValue("tipo_documento"))
		if !tipo.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TIPO_DOCUMENTO", "unknown tipo de documento")
		}

		var subidoPor *int64
		if raw := c.FormValue("subido_por"); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_SUBIDO_POR", "subido_por must be numeric")
			}
			subidoPor = &v
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Register(c.UserContext(), service.RegisterDocumentoInput{
			IDTramite:      idTramite,
			Tipo:           tipo,
			Reader:         f,
			NombreOriginal: fh.Filename,
			MimeType:       ct,
			Size:           fh.Size,
			SubidoPor:      subidoPor,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// validacionRequest is the body of POST /documentos/:id/validacion.
type validacionRequest struct {
	Validado    *bool  `json:"validado" validate:"required"`
	RevisadoPor *int64 `json:"revisado_por"`
}

// ValidateDocumento records the operator verdict on one presented document.
func ValidateDocumento(svc service.DocumentoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}

		var req validacionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDADO_REQUIRED", "validado is required")
		}

		doc, err := svc.SetValidado(c.UserContext(), id, *req.Validado)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// Expediente returns the digitized case file of a trámite with presigned
// download URLs.
func Expediente(svc service.DocumentoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idTramite, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		res, err := svc.Expediente(c.UserContext(), idTramite)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Completitud reports whether the mandatory document set of a trámite is
// complete, listing the missing tipos when it is not.
func Completitud(svc service.DocumentoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idTramite, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		complete, missing, err := svc.IsComplete(c.UserContext(), idTramite, model.TiposObligatorios)
		if err != nil {
			return writeServiceError(c, err)
		}
		if missing == nil {
			missing = []model.TipoDocumento{}
		}
		return c.JSON(fiber.Map{
			"id_tramite": idTramite,
			"completo":   complete,
			"faltantes":  missing,
		})
	}
}

// DeleteDocumento removes an artifact and its record.
func DeleteDocumento(svc service.DocumentoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
