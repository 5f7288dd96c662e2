package handlers

import (
	_ "embed"
	"net/http"

	"github.com/unrolled/render"
)

//go:embed openapi.json
var openapiSpec []byte

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>uzmarket API</title>
  <meta charset="utf-8"/>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api/docs/openapi.json",
      dom_id: "#swagger-ui"
    });
  </script>
</body>
</html>`

type DocsHandler struct {
	render *render.Render
}

func NewDocsHandler(r *render.Render) *DocsHandler {
	return &DocsHandler{render: r}
}

func (h *DocsHandler) PageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsPage))
}

func (h *DocsHandler) SpecHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openapiSpec)
}

func (h *DocsHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
