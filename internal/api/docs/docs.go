// Package docs embute o documento OpenAPI servido pelo Swagger UI.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
