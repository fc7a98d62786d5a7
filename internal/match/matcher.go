package match

import "strings"

// Method identifies which rule of the cascade produced a result.
type Method string

const (
	// MethodExact is a normalized exact question match.
	MethodExact Method = "exact"
	// MethodSubstring is a normalized substring containment match.
	MethodSubstring Method = "substring"
	// MethodSimilar is a token-overlap match above the threshold.
	MethodSimilar Method = "similar"
	// MethodLLM marks an answer suggested by the LLM fallback.
	MethodLLM Method = "llm"
	// MethodGuess marks a random guess over the visible options.
	MethodGuess Method = "guess"
)

// Pair is a stored question/answer record.
type Pair struct {
	Question string
	Answer   string
}

// Result describes a successful lookup.
type Result struct {
	// Answer is the stored answer text.
	Answer string
	// Option is the visible option the answer resolved to.
	Option string
	Method Method
	Score  float64
}

// Matcher applies the cascading lookup rules.
type Matcher struct {
	// Threshold is the minimum token-overlap similarity for MethodSimilar.
	Threshold float64
}

// NewMatcher returns a matcher with the given similarity threshold.
func NewMatcher(threshold float64) Matcher {
	return Matcher{Threshold: threshold}
}

// Lookup finds the best known answer for a scraped question among the
// visible options. The cascade stops at the first rule that produces a
// stored answer resolvable to a visible option:
//
//  1. exact normalized question match
//  2. substring containment between stored and scraped question
//  3. token-overlap similarity at or above the threshold, best score wins
//
// The LLM fallback and the random guess are the caller's concern.
func (m Matcher) Lookup(question string, options []string, known []Pair) (Result, bool) {
	normalized := Normalize(question)
	if normalized == "" {
		return Result{}, false
	}

	for _, pair := range known {
		if Normalize(pair.Question) != normalized {
			continue
		}
		if option, ok := OptionForAnswer(pair.Answer, options); ok {
			return Result{Answer: pair.Answer, Option: option, Method: MethodExact, Score: 1}, true
		}
	}

	questionWords := strings.Fields(normalized)
	for _, pair := range known {
		stored := strings.Fields(Normalize(pair.Question))
		if len(stored) == 0 {
			continue
		}
		// Word-level containment in either direction. Subsequence rather
		// than contiguous so a stored template with a stripped blank
		// ("the capital of is paris") still contains-matches the concrete
		// scraped question.
		if !containsSequence(questionWords, stored) && !containsSequence(stored, questionWords) {
			continue
		}
		if option, ok := OptionForAnswer(pair.Answer, options); ok {
			return Result{Answer: pair.Answer, Option: option, Method: MethodSubstring, Score: 1}, true
		}
	}

	best := Result{}
	found := false
	for _, pair := range known {
		score := Similarity(question, pair.Question)
		if score < m.Threshold || (found && score <= best.Score) {
			continue
		}
		option, ok := OptionForAnswer(pair.Answer, options)
		if !ok {
			continue
		}
		best = Result{Answer: pair.Answer, Option: option, Method: MethodSimilar, Score: score}
		found = true
	}
	return best, found
}

// containsSequence reports whether inner occurs in outer as an ordered
// subsequence of words.
func containsSequence(outer, inner []string) bool {
	if len(inner) > len(outer) {
		return false
	}
	i := 0
	for _, word := range outer {
		if i < len(inner) && word == inner[i] {
			i++
		}
	}
	return i == len(inner)
}

// OptionForAnswer resolves a stored answer to one of the visible options by
// normalized substring containment in either direction.
func OptionForAnswer(answer string, options []string) (string, bool) {
	normalized := Normalize(answer)
	if normalized == "" {
		return "", false
	}
	for _, option := range options {
		candidate := Normalize(option)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, normalized) || strings.Contains(normalized, candidate) {
			return option, true
		}
	}
	return "", false
}

// MatchOption maps a free-text reply (typically from the LLM) back to one of
// the visible options: exact normalized equality first, then substring
// containment, then best token overlap at or above the threshold.
func (m Matcher) MatchOption(reply string, options []string) (string, bool) {
	normalized := Normalize(reply)
	if normalized == "" {
		return "", false
	}
	for _, option := range options {
		if Normalize(option) == normalized {
			return option, true
		}
	}
	if option, ok := OptionForAnswer(reply, options); ok {
		return option, true
	}
	bestOption := ""
	bestScore := 0.0
	for _, option := range options {
		score := Similarity(reply, option)
		if score > bestScore {
			bestScore = score
			bestOption = option
		}
	}
	if bestScore >= m.Threshold {
		return bestOption, true
	}
	return "", false
}
