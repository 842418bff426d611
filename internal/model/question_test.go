package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want Answer
	}{
		{"string", `"Acme Widgets"`, Answer{"Acme Widgets"}},
		{"array", `["US","UK"]`, Answer{"US", "UK"}},
		{"null", `null`, nil},
		{"integer", `24000`, Answer{"24000"}},
		{"float", `3.5`, Answer{"3.5"}},
		{"bool", `true`, Answer{"true"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var a Answer
			require.NoError(t, json.Unmarshal([]byte(tt.json), &a))
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestAnswerText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "first", Answer{"first", "second"}.Text())
	assert.Equal(t, "", Answer(nil).Text())
}

func TestAnswerIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, Answer(nil).IsEmpty())
	assert.True(t, Answer{""}.IsEmpty())
	assert.True(t, Answer{"  "}.IsEmpty())
	assert.False(t, Answer{"x"}.IsEmpty())
	assert.False(t, Answer{"", "x"}.IsEmpty())
}

func TestQuestionAnswerRoundTrip(t *testing.T) {
	t.Parallel()

	raw := `{"question":"Business Name","answer":"Acme","answerType":"TEXT"}`
	var qa QuestionAnswer
	require.NoError(t, json.Unmarshal([]byte(raw), &qa))
	assert.Equal(t, "Business Name", qa.Question)
	assert.Equal(t, Answer{"Acme"}, qa.Answer)
	assert.Equal(t, AnswerTypeText, qa.AnswerType)
}
