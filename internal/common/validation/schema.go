package validation

import (
	"fmt"
	"strings"

	"deal-pulse/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

// StartupDatasetSchema describes the JSON document accepted by the file source.
const StartupDatasetSchema = `{
  "type": "object",
  "required": ["startups"],
  "properties": {
    "startups": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "sector", "stage"],
        "properties": {
          "id":     {"type": "string", "minLength": 1},
          "name":   {"type": "string", "minLength": 1},
          "sector": {"type": "string", "minLength": 1},
          "stage":  {"type": "string", "minLength": 1},
          "founders": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name":       {"type": "string", "minLength": 1},
                "background": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the errors into a single line for logs and error details.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

var schemaLoader = gojsonschema.NewStringLoader(StartupDatasetSchema)

// ValidateDatasetDocument checks a raw JSON dataset document against StartupDatasetSchema.
func ValidateDatasetDocument(doc []byte) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateStartups applies the struct tags on models.Startup to every record,
// whatever source they came from.
func ValidateStartups(startups []models.Startup) *ValidationResult {
	out := &ValidationResult{Valid: true}
	for i, s := range startups {
		err := structValidator.Struct(s)
		if err == nil {
			continue
		}
		out.Valid = false
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			out.Errors = append(out.Errors, ValidationError{Field: fmt.Sprintf("startups[%d]", i), Message: err.Error()})
			continue
		}
		for _, fe := range verrs {
			out.Errors = append(out.Errors, ValidationError{
				Field:   fmt.Sprintf("startups[%d].%s", i, fe.Field()),
				Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				Code:    "FIELD_" + strings.ToUpper(fe.Tag()),
			})
		}
	}
	return out
}
