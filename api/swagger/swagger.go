// Package swagger embeds the OpenAPI document for the HTTP API.
package swagger

import _ "embed"

//go:embed user.swagger.json
var Document []byte
