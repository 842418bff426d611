package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerType identifies the control that produced a question's answer.
type AnswerType string

const (
	AnswerTypeText    AnswerType = "TEXT"
	AnswerTypeNumber  AnswerType = "NUMBER"
	AnswerTypeDate    AnswerType = "DATE"
	AnswerTypeSelect  AnswerType = "SELECT"
	AnswerTypePhoto   AnswerType = "PHOTO"
	AnswerTypeFile    AnswerType = "FILE"
	AnswerTypeBoolean AnswerType = "BOOLEAN"
)

// Answer holds a question's answer, which upstream encodes as a string,
// an array of strings, a bare number, or null.
type Answer []string

// UnmarshalJSON accepts string, []string, number, bool, or null payloads.
// Scalars become a single-element answer; null becomes an empty one.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = Answer(list)
		return nil
	}

	// Numbers and booleans from loosely-typed form payloads.
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*a = Answer{trimFloat(x)}
	case bool:
		*a = Answer{fmt.Sprintf("%t", x)}
	default:
		*a = nil
	}
	return nil
}

// MarshalJSON emits null for empty answers, a bare string for single
// values, and an array otherwise.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch len(a) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(a[0])
	default:
		return json.Marshal([]string(a))
	}
}

// Text returns the first value, or "" when the answer is empty.
func (a Answer) Text() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// IsEmpty reports whether the answer carries no usable value.
func (a Answer) IsEmpty() bool {
	for _, v := range a {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// trimFloat formats a float without a trailing ".000000" when integral.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// QuestionAnswer is one record from an intake-form question bank.
type QuestionAnswer struct {
	Question   string     `json:"question"`
	Answer     Answer     `json:"answer"`
	AnswerType AnswerType `json:"answerType,omitempty"`
}
