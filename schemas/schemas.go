// Package schemas embeds the JSON Schemas for expert input records.
package schemas

import _ "embed"

// ExpertRatingSchemaJSON is the JSON Schema for an expert rating.
//
//go:embed expert_rating.schema.json
var ExpertRatingSchemaJSON string

// ExtractionValidationSchemaJSON is the JSON Schema for an extraction validation.
//
//go:embed extraction_validation.schema.json
var ExtractionValidationSchemaJSON string
