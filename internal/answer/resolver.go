// Package answer resolves named fields out of loosely-typed
// question/answer banks produced by the intake form.
package answer

import (
	"strings"

	"github.com/exitbase/listing-engine/internal/model"
)

// Resolve returns the first bank entry whose question text contains any
// of the given terms, case-insensitively, in bank order. Entries with
// empty answers are treated as misses.
func Resolve(bank []model.QuestionAnswer, terms ...string) (model.Answer, bool) {
	for _, qa := range bank {
		if qa.Answer.IsEmpty() {
			continue
		}
		q := strings.ToLower(qa.Question)
		for _, term := range terms {
			if term == "" {
				continue
			}
			if strings.Contains(q, strings.ToLower(term)) {
				return qa.Answer, true
			}
		}
	}
	return nil, false
}

// ResolveTiers tries each term set in order and returns the first hit.
// The tier order is load-bearing: callers encode their fallback policy
// as an ordered list of term sets, not as chained expressions.
func ResolveTiers(bank []model.QuestionAnswer, tiers ...[]string) (model.Answer, bool) {
	for _, terms := range tiers {
		if a, ok := Resolve(bank, terms...); ok {
			return a, true
		}
	}
	return nil, false
}

// First returns the first non-empty answer in the bank.
func First(bank []model.QuestionAnswer) (model.Answer, bool) {
	for _, qa := range bank {
		if !qa.Answer.IsEmpty() {
			return qa.Answer, true
		}
	}
	return nil, false
}

// Text resolves the given tiers to a plain string, or "" on a miss.
func Text(bank []model.QuestionAnswer, tiers ...[]string) string {
	a, ok := ResolveTiers(bank, tiers...)
	if !ok {
		return ""
	}
	return a.Text()
}
