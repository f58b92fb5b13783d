package scoring

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/skilleval/internal/assess"
)

// RuleEvaluator grades answers without a model. Multiple choice answers
// must match the expected option, by letter or text. Open answers earn
// points for the share of reference-answer terms they mention.
type RuleEvaluator struct{}

func (RuleEvaluator) Evaluate(_ context.Context, req EvalRequest) (*EvalResult, error) {
	q := req.Question
	full := float64(req.MaxPoints)

	if q.Type == assess.TypeMCQ {
		if mcqMatches(q, req.AnswerText) {
			return &EvalResult{Score: full, Feedback: "Correct."}, nil
		}
		return &EvalResult{Score: 0, Feedback: fmt.Sprintf("Incorrect. The correct answer is %q.", q.ExpectedAnswer)}, nil
	}

	terms := keyTerms(q.ExpectedAnswer)
	if len(terms) == 0 {
		return &EvalResult{Score: 0, Feedback: "No reference answer is available to grade against."}, nil
	}
	answered := make(map[string]bool)
	for _, t := range keyTerms(req.AnswerText) {
		answered[t] = true
	}
	var hit, missing []string
	for _, t := range terms {
		if answered[t] {
			hit = append(hit, t)
		} else {
			missing = append(missing, t)
		}
	}

	res := &EvalResult{
		Score:        full * float64(len(hit)) / float64(len(terms)),
		Strengths:    hit,
		Improvements: missing,
	}
	switch {
	case len(missing) == 0:
		res.Feedback = "Covers all the key points."
	case len(hit) == 0:
		res.Feedback = "Does not address the key points: " + strings.Join(missing, ", ") + "."
	default:
		res.Feedback = fmt.Sprintf("Covers %d of %d key points. Missing: %s.", len(hit), len(terms), strings.Join(missing, ", "))
	}
	return res, nil
}

// mcqMatches accepts the option text or its letter ("b", "B)", "b.").
func mcqMatches(q assess.Question, answer string) bool {
	want := normalize(q.ExpectedAnswer)
	got := normalize(answer)
	if got == "" {
		return false
	}
	if got == want {
		return true
	}
	letter := strings.TrimRight(got, ").:")
	if len(letter) == 1 {
		i := int(letter[0] - 'a')
		if i >= 0 && i < len(q.Options) {
			return normalize(q.Options[i]) == want
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true, "this": true,
	"are": true, "was": true, "its": true, "from": true, "into": true, "than": true,
	"then": true, "when": true, "not": true, "but": true, "can": true, "use": true,
	"uses": true, "should": true, "how": true, "what": true, "why": true, "which": true,
}

// keyTerms returns the distinct lowercase words of s with at least 3
// characters, minus stop words, in first-seen order.
func keyTerms(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		if len(w) < 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
