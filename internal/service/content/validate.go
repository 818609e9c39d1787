// internal/service/content/validate.go
package content

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"lingvo-service/internal/domain/lesson"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level schema violation, reported with the JSON
// path of the offending field.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag,omitempty"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

func (e FieldError) String() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: failed %q validation (value: %v)", e.Field, e.Tag, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks content API payloads against the lesson schemas.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report json field names instead of Go struct names in diagnostics.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// ValidateList checks a normalized JSON array against the lesson list
// schema. All failing fields across all items are reported, not just the
// first.
func (sv *Validator) ValidateList(raw json.RawMessage) ([]lesson.LessonSummary, []FieldError) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, []FieldError{{Field: "$", Message: fmt.Sprintf("not a JSON array: %v", err)}}
	}

	var (
		summaries []lesson.LessonSummary
		errs      []FieldError
	)

	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)

		var s lesson.LessonSummary
		if err := json.Unmarshal(item, &s); err != nil {
			errs = append(errs, FieldError{Field: path, Message: err.Error()})
			continue
		}

		errs = append(errs, sv.structErrors(path, s)...)

		// The summary schema does not admit an explicit null progress; only
		// absence or an object. The detail schema differs, see
		// ValidateDetail.
		if s.Progress.Present && s.Progress.Null {
			errs = append(errs, FieldError{
				Field:   path + ".progress",
				Message: "null is not allowed in the list schema",
			})
		}

		summaries = append(summaries, s)
	}

	return summaries, errs
}

// ValidateDetail checks a normalized JSON object against the lesson detail
// schema, including per-variant task payload validation.
func (sv *Validator) ValidateDetail(raw json.RawMessage) (*lesson.LessonDetail, []FieldError) {
	var d lesson.LessonDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, []FieldError{{Field: "$", Message: err.Error()}}
	}

	errs := sv.structErrors("", d)

	for i, task := range d.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)

		if task.Ref == "" {
			errs = append(errs, FieldError{Field: path + ".ref", Tag: "required", Message: "task ref is required"})
		}

		payload := task.Payload()
		if payload == nil {
			errs = append(errs, FieldError{
				Field:   path,
				Message: fmt.Sprintf("missing payload for task type %q", task.Type),
			})
			continue
		}

		errs = append(errs, sv.structErrors(path, payload)...)
	}

	if len(errs) > 0 {
		return &d, errs
	}
	return &d, nil
}

// structErrors runs tag validation and flattens the result into FieldErrors
// prefixed with the given JSON path.
func (sv *Validator) structErrors(path string, value interface{}) []FieldError {
	err := sv.v.Struct(value)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: path, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the struct type name; drop it.
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		if path != "" {
			field = path + "." + field
		}
		out = append(out, FieldError{
			Field: field,
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}
