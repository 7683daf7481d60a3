// pkg/catalog/schema.go
package catalog

// templateCatalogSchema is the JSON schema every loaded catalog document is
// validated against before it is handed to the engine.
const templateCatalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "templates"],
  "properties": {
    "version": {
      "type": "string"
    },
    "templates": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "description", "industries"],
        "properties": {
          "id": {
            "type": "string",
            "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"
          },
          "name": {
            "type": "string",
            "minLength": 1
          },
          "description": {
            "type": "string",
            "minLength": 1
          },
          "icon": {
            "type": "string"
          },
          "type": {
            "type": "string",
            "enum": ["email", "workflow", "scheduled", "triggered", "manual", "custom"]
          },
          "frequency": {
            "type": "string"
          },
          "industries": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "string",
              "enum": ["all", "food", "health", "retail", "service", "technology", "education", "politics"]
            }
          },
          "targetSegment": {
            "type": "string"
          },
          "config": {
            "type": "object"
          }
        }
      }
    }
  }
}`

// Document is the on-disk shape of a catalog file.
type Document struct {
	Version   string     `json:"version"`
	Templates []Template `json:"templates"`
}
