package http

import (
	_ "embed"
	"fmt"
	"html"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// apiDoc is the embedded document, parsed on first use.
var apiDoc = sync.OnceValues(func() (*openapi3.T, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("parse openapi.yaml: %w", err)
	}
	return doc, nil
})

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>%s %s - Swagger UI</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '/docs/openapi.json', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`

// SetupDocs serves Swagger UI at /docs and the API description at
// /docs/openapi.yaml (as embedded) and /docs/openapi.json.
func SetupDocs(app *fiber.App) {
	docs := app.Group("/docs")

	docs.Get("/", func(c *fiber.Ctx) error {
		doc, err := apiDoc()
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(fmt.Sprintf(swaggerUIPage,
			html.EscapeString(doc.Info.Title), html.EscapeString(doc.Info.Version)))
	})

	docs.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "application/yaml")
		return c.Send(openAPIDocument)
	})

	docs.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := apiDoc()
		if err != nil {
			return errInternal(c, err.Error())
		}
		data, err := doc.MarshalJSON()
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Content-Type", fiber.MIMEApplicationJSON)
		return c.Send(data)
	})
}
