// Package schemas embeds the JSON Schemas used to validate catalog files and
// qualitative input payloads at the engine boundary.
package schemas

import _ "embed"

//go:embed catalog.schema.json
var CatalogSchemaJSON string

//go:embed qualitative.schema.json
var QualitativeSchemaJSON string
