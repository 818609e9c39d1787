// internal/domain/lesson/entity.go
package lesson

import (
	"encoding/json"
)

// LessonSummary is one entry of the module lesson list as served by the
// content API. Field names follow the upstream contract (camelCase).
type LessonSummary struct {
	LessonRef        string           `json:"lessonRef" validate:"required"`
	ModuleRef        string           `json:"moduleRef" validate:"required"`
	Title            string           `json:"title" validate:"required"`
	Description      string           `json:"description" validate:"required"`
	EstimatedMinutes int              `json:"estimatedMinutes" validate:"required,gt=0"`
	Order            *int             `json:"order" validate:"required,gte=0"`
	Level            string           `json:"level,omitempty"`
	Locked           bool             `json:"locked,omitempty"`
	Progress         OptionalProgress `json:"progress"`
}

// LessonDetail is the full lesson payload, optionally wrapped by the API
// under a "lesson" field.
type LessonDetail struct {
	LessonRef        string           `json:"lessonRef" validate:"required"`
	ModuleRef        string           `json:"moduleRef,omitempty"`
	Title            string           `json:"title" validate:"required"`
	Description      string           `json:"description,omitempty"`
	EstimatedMinutes int              `json:"estimatedMinutes,omitempty"`
	Tasks            []Task           `json:"tasks" validate:"required"`
	Progress         OptionalProgress `json:"progress"`
}

type Progress struct {
	Completed      bool `json:"completed"`
	CompletedTasks int  `json:"completedTasks,omitempty"`
	Score          *int `json:"score,omitempty"`
}

// OptionalProgress distinguishes an absent progress field from an explicit
// JSON null. The detail schema allows null ("no progress record"); the
// summary schema does not.
type OptionalProgress struct {
	Present bool
	Null    bool
	Value   *Progress
}

func (o *OptionalProgress) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o OptionalProgress) MarshalJSON() ([]byte, error) {
	if o.Null || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// MarshalJSON emits progress only when it was present in the source payload,
// so re-serialized summaries still satisfy the list schema (which rejects an
// explicit null).
func (s LessonSummary) MarshalJSON() ([]byte, error) {
	type alias LessonSummary
	aux := struct {
		alias
		Progress *OptionalProgress `json:"progress,omitempty"`
	}{alias: alias(s)}
	if s.Progress.Present {
		aux.Progress = &s.Progress
	}
	return json.Marshal(aux)
}

func (d LessonDetail) MarshalJSON() ([]byte, error) {
	type alias LessonDetail
	aux := struct {
		alias
		Progress *OptionalProgress `json:"progress,omitempty"`
	}{alias: alias(d)}
	if d.Progress.Present {
		aux.Progress = &d.Progress
	}
	return json.Marshal(aux)
}
