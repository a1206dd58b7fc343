package taxonomy

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// validateDatasetSchema checks a raw dataset document against the embedded
// JSON schema before unmarshaling, so malformed files fail with field-level
// detail instead of zero values.
func validateDatasetSchema(schema, document []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &LoadError{Message: "failed to validate taxonomy dataset", Cause: err}
	}

	if !result.Valid() {
		verr := &ValidationError{Subject: "taxonomy dataset"}
		for _, desc := range result.Errors() {
			verr.Issues = append(verr.Issues, FieldIssue{
				Field:       desc.Field(),
				Description: desc.Description(),
			})
		}
		return verr
	}

	return nil
}

// validateStruct runs tag-based validation and converts the result into a
// ValidationError with one issue per failing field.
func validateStruct(subject string, v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &ValidationError{Subject: subject}
		for _, fe := range verrs {
			out.Issues = append(out.Issues, FieldIssue{
				Field:       fe.Namespace(),
				Description: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return out
	}

	return err
}
