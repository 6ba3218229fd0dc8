package handler

import (
	"database/sql"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legalscan/internal/http/middleware"
	"legalscan/internal/model"
	"legalscan/internal/service"
)

// Services bundles the service layer dependencies of the HTTP routes.
type Services struct {
	Auth      service.AuthService
	Documents service.DocumentService
	Analyses  service.AnalysisService
	Compare   service.CompareService
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// API documentation
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", swaggerUI)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Operational endpoints
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Authentication
	app.Post("/auth/register", Register(svcs.Auth))
	app.Post("/auth/login", Login(svcs.Auth))

	auth := middleware.Auth(svcs.Auth)

	// Documents
	docs := app.Group("/documents", auth)
	docs.Get("/", ListDocuments(svcs.Documents))
	docs.Post("/", UploadDocument(svcs.Documents))
	docs.Get("/:id", GetDocument(svcs.Documents))
	docs.Delete("/:id", DeleteDocument(svcs.Documents))
	docs.Get("/:id/download", DownloadDocument(svcs.Documents))
	docs.Post("/:id/analyze", AnalyzeDocument(svcs.Analyses))
	docs.Get("/:id/analysis", GetAnalysis(svcs.Analyses))

	// Manual text analysis
	app.Post("/analyses/text", auth, AnalyzeText(svcs.Analyses))

	// Reports
	reports := app.Group("/reports", auth)
	reports.Get("/", ListReports(svcs.Analyses))
	reports.Get("/risk", RiskReport(svcs.Analyses))
	reports.Delete("/", ClearReports(svcs.Analyses))

	// Comparison
	app.Post("/compare", auth, CompareDocuments(svcs.Compare))

	// Activity log, owner role only
	app.Get("/activity", auth, middleware.RequireRole(model.RoleOwner), RecentActivity(svcs.Auth))
}

// swaggerUI serves a minimal Swagger UI page backed by /openapi.yaml.
func swaggerUI(c *fiber.Ctx) error {
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
}
