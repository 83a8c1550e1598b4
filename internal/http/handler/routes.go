package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dubss/internal/repository"
	"dubss/internal/service"
)

// Services groups the application services the HTTP layer exposes.
type Services struct {
	Tramites       service.TramiteService
	Documentos     service.DocumentoService
	Postulaciones  service.PostulacionService
	Ranking        service.RankingService
	Notificaciones repository.NotificacionRepository
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, delegate, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// Serve the OpenAPI document and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/postulaciones", CreatePostulacion(svcs.Postulaciones))
	app.Get("/postulaciones/:id", GetPostulacion(svcs.Postulaciones))
	app.Get("/estudiantes/:id/postulaciones", ListPostulacionesEstudiante(svcs.Postulaciones))

	app.Get("/tramites", ListTramites(svcs.Tramites))
	app.Get("/tramites/:id", GetTramite(svcs.Tramites))
	app.Get("/tramites/:id/historial", TramiteHistorial(svcs.Tramites))
	app.Post("/tramites/:id/transicion", TransitionTramite(svcs.Tramites))

	app.Post("/tramites/:id/documentos", UploadDocumento(svcs.Documentos))
	app.Get("/tramites/:id/expediente", Expediente(svcs.Documentos))
	app.Get("/tramites/:id/completitud", Completitud(svcs.Documentos))
	app.Post("/documentos/:id/validacion", ValidateDocumento(svcs.Documentos))
	app.Delete("/documentos/:id", DeleteDocumento(svcs.Documentos))

	app.Post("/becas/:id/ranking", RankBeca(svcs.Ranking))
	app.Get("/resultados/resumen", ResumenResultados(svcs.Ranking))

	app.Get("/estudiantes/:id/notificaciones", ListNotificaciones(svcs.Notificaciones))
	app.Post("/notificaciones/:id/leido", MarkNotificacionLeida(svcs.Notificaciones))

	app.Get("/operadores/:id/estadisticas", EstadisticasOperador(svcs.Tramites))
}
