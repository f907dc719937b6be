package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spboyer/leadval/internal/models"
	"github.com/spboyer/leadval/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

var (
	ratingSchema     *jsonschema.Schema
	extractionSchema *jsonschema.Schema
)

func init() {
	ratingSchema = mustCompileSchema(schemas.ExpertRatingSchemaJSON, "expert_rating.schema.json")
	extractionSchema = mustCompileSchema(schemas.ExtractionValidationSchemaJSON, "extraction_validation.schema.json")
}

// Kind identifies which record schema a document was checked against.
type Kind string

const (
	KindExpertRating         Kind = "expert_rating"
	KindExtractionValidation Kind = "extraction_validation"
)

// ErrUnknownKind is returned when a document is neither a rating nor an
// extraction validation.
var ErrUnknownKind = errors.New("document is neither an expert rating nor an extraction validation")

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateRatingBytes validates a JSON expert rating.
func ValidateRatingBytes(data []byte) []string {
	return validateJSONBytes(ratingSchema, data)
}

// ValidateExtractionBytes validates a JSON extraction validation.
func ValidateExtractionBytes(data []byte) []string {
	return validateJSONBytes(extractionSchema, data)
}

// ValidateRating checks a decoded rating against the rating schema.
func ValidateRating(r *models.ExpertRating) []string {
	return validateRecord(ratingSchema, r)
}

// ValidateExtraction checks a decoded extraction validation against its schema.
func ValidateExtraction(v *models.ExtractionValidation) []string {
	return validateRecord(extractionSchema, v)
}

// FileResult holds the schema errors for every record in a file, keyed by
// record location ("/" for a single object, "/0", "/1", ... for an array).
type FileResult struct {
	Kind   Kind
	Errors map[string][]string
}

// Valid reports whether no record had errors.
func (r *FileResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateFile validates a JSON file holding one record or an array of
// records. The record kind is inferred from the first record's keys.
func ValidateFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	records := map[string]any{"/": doc}
	first := doc
	if list, ok := doc.([]any); ok {
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrUnknownKind)
		}
		records = make(map[string]any, len(list))
		for i, item := range list {
			records[fmt.Sprintf("/%d", i)] = item
		}
		first = list[0]
	}

	kind, err := detectKind(first)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	schema := ratingSchema
	if kind == KindExtractionValidation {
		schema = extractionSchema
	}

	result := &FileResult{Kind: kind, Errors: make(map[string][]string)}
	for loc, rec := range records {
		if errs := validateAgainstSchema(schema, rec); len(errs) > 0 {
			result.Errors[loc] = errs
		}
	}
	return result, nil
}

func detectKind(doc any) (Kind, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", ErrUnknownKind
	}
	if _, ok := obj["analysis_id"]; ok {
		return KindExpertRating, nil
	}
	if _, ok := obj["field_validations"]; ok {
		return KindExtractionValidation, nil
	}
	return "", ErrUnknownKind
}

func validateJSONBytes(schema *jsonschema.Schema, data []byte) []string {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	return validateAgainstSchema(schema, doc)
}

func validateRecord(schema *jsonschema.Schema, record any) []string {
	data, err := json.Marshal(record)
	if err != nil {
		return []string{fmt.Sprintf("encoding record: %v", err)}
	}
	return validateJSONBytes(schema, data)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
