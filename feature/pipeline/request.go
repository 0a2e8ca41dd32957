package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"data-extractor/core/fault"

	"github.com/go-playground/validator/v10"
)

// ExtractRequest describes one extraction. Which fields are required depends
// on Source; see Kinds.
type ExtractRequest struct {
	Source     string `json:"source" validate:"required,oneof=postgres mysql sqlite mongodb redis elasticsearch csv"`
	Connection string `json:"connection" validate:"required"`
	// Query is SQL, a MongoDB filter, or an Elasticsearch body depending on Source.
	Query string `json:"query,omitempty" validate:"required_if=Source elasticsearch"`
	// Table reads a whole relational table when Query is empty.
	Table      string `json:"table,omitempty"`
	Database   string `json:"db_name,omitempty" validate:"required_if=Source mongodb"`
	Collection string `json:"collection,omitempty" validate:"required_if=Source mongodb"`
	KeyPattern string `json:"key_pattern,omitempty" validate:"required_if=Source redis"`
	Index      string `json:"index,omitempty" validate:"required_if=Source elasticsearch"`
	// ExpectedHeaders is compared with the discovered headers, ignoring order.
	ExpectedHeaders []string `json:"expected_headers,omitempty"`
	// Output is the .xlsx path written by ExtractToFile.
	Output string `json:"output,omitempty"`
	// Upload stores the workbook in object storage after a successful write.
	Upload bool `json:"upload,omitempty"`
}

// UpdateRequest sets fields on one record of a remote datasheet.
type UpdateRequest struct {
	Target      string         `json:"target" validate:"required,eq=truetabs"`
	DatasheetID string         `json:"datasheet_id" validate:"required"`
	RecordID    string         `json:"record_id" validate:"required"`
	Fields      map[string]any `json:"fields" validate:"required,min=1"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationFault turns validator output into a configuration fault naming every field.
func validationFault(backend string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fault.Configuration(backend, "%v", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required for this source", fe.Field()))
		case "oneof", "eq":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fault.Configuration(backend, "%s", strings.Join(msgs, "; "))
}
