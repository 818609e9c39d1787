// internal/domain/lesson/task.go
package lesson

import (
	"encoding/json"
	"fmt"
)

type TaskType string

const (
	TaskFlashcard      TaskType = "flashcard"
	TaskMultipleChoice TaskType = "multiple_choice"
	TaskListening      TaskType = "listening"
	TaskGapFill        TaskType = "gap_fill"
	TaskMatching       TaskType = "matching"
)

// Task is a tagged union over the five exercise kinds. Exactly one payload
// field is non-nil after a successful unmarshal, matching Type. Ref is
// assumed unique within a lesson's task list by consumers.
type Task struct {
	Ref  string   `json:"ref"`
	Type TaskType `json:"type"`

	Flashcard      *FlashcardTask      `json:"-"`
	MultipleChoice *MultipleChoiceTask `json:"-"`
	Listening      *ListeningTask      `json:"-"`
	GapFill        *GapFillTask        `json:"-"`
	Matching       *MatchingTask       `json:"-"`
}

type FlashcardTask struct {
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back" validate:"required"`
	Example  string `json:"example,omitempty"`
	AudioURL string `json:"audioUrl,omitempty" validate:"omitempty,url"`
}

type MultipleChoiceTask struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex *int     `json:"correctIndex" validate:"required,gte=0"`
}

type ListeningTask struct {
	AudioURL   string `json:"audioUrl" validate:"required,url"`
	Transcript string `json:"transcript" validate:"required"`
	Question   string `json:"question,omitempty"`
}

type GapFillTask struct {
	Sentence string   `json:"sentence" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Hints    []string `json:"hints,omitempty"`
}

type MatchingTask struct {
	Pairs []MatchPair `json:"pairs" validate:"required,min=1,dive"`
}

type MatchPair struct {
	Left  string `json:"left" validate:"required"`
	Right string `json:"right" validate:"required"`
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var head struct {
		Ref  string   `json:"ref"`
		Type TaskType `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	t.Ref = head.Ref
	t.Type = head.Type

	switch head.Type {
	case TaskFlashcard:
		t.Flashcard = &FlashcardTask{}
		return json.Unmarshal(b, t.Flashcard)
	case TaskMultipleChoice:
		t.MultipleChoice = &MultipleChoiceTask{}
		return json.Unmarshal(b, t.MultipleChoice)
	case TaskListening:
		t.Listening = &ListeningTask{}
		return json.Unmarshal(b, t.Listening)
	case TaskGapFill:
		t.GapFill = &GapFillTask{}
		return json.Unmarshal(b, t.GapFill)
	case TaskMatching:
		t.Matching = &MatchingTask{}
		return json.Unmarshal(b, t.Matching)
	default:
		return fmt.Errorf("unknown task type %q (ref %q)", head.Type, head.Ref)
	}
}

func (t Task) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch t.Type {
	case TaskFlashcard:
		payload = t.Flashcard
	case TaskMultipleChoice:
		payload = t.MultipleChoice
	case TaskListening:
		payload = t.Listening
	case TaskGapFill:
		payload = t.GapFill
	case TaskMatching:
		payload = t.Matching
	default:
		return nil, fmt.Errorf("unknown task type %q", t.Type)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["ref"] = t.Ref
	m["type"] = t.Type
	return json.Marshal(m)
}

// Payload returns the variant payload for the declared type, or nil when the
// payload is missing or the type is unknown.
func (t *Task) Payload() interface{} {
	switch t.Type {
	case TaskFlashcard:
		if t.Flashcard != nil {
			return t.Flashcard
		}
	case TaskMultipleChoice:
		if t.MultipleChoice != nil {
			return t.MultipleChoice
		}
	case TaskListening:
		if t.Listening != nil {
			return t.Listening
		}
	case TaskGapFill:
		if t.GapFill != nil {
			return t.GapFill
		}
	case TaskMatching:
		if t.Matching != nil {
			return t.Matching
		}
	}
	return nil
}
