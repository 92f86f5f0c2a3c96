// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package sentiment scores free-text customer feedback with a deterministic
// lexicon model. Each clause is scanned for signed sentiment words, negators
// that flip the next hit, and intensifiers that scale it. Clause scores are
// attributed to the betting-domain aspects mentioned in the clause (odds,
// payout speed, app experience, support, promotions).
//
// Scores lie in [-1, 1]. The label is "positive" above 0.1, "negative" below
// -0.1, and "neutral" otherwise, including at the thresholds themselves.
// Analysis is pure string work with no I/O, so it runs synchronously on the
// feedback insert path.
package sentiment

import (
	"strings"
	"unicode"
)

// Sentiment labels stored on feedback rows and aggregated into daily trends.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1

	// negationWindow is how many tokens a negator stays armed for. A hit
	// further out keeps its original sign.
	negationWindow = 3
)

// Result is the outcome of analyzing one piece of feedback text.
type Result struct {
	// Score is the mean signed weight of all sentiment hits, clamped to
	// [-1, 1]. Zero when the text carries no sentiment words.
	Score float64 `json:"score"`
	// Label is positive, negative, or neutral per the 0.1 thresholds.
	Label string `json:"label"`
	// Aspects maps each mentioned aspect to the mean score of the clauses
	// that mention it. Aspects the text never touches are absent.
	Aspects map[string]float64 `json:"aspects"`
}

// Analyzer scores feedback text. It holds no state and is safe for
// concurrent use.
type Analyzer struct{}

// NewAnalyzer returns a ready Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores text and attributes sentiment to mentioned aspects. Empty
// or sentiment-free text yields a zero score, a neutral label, and no
// aspects.
func (a *Analyzer) Analyze(text string) Result {
	var (
		sum          float64
		hits         int
		aspectSums   = make(map[string]float64)
		aspectCounts = make(map[string]int)
	)
	for _, clause := range splitClauses(text) {
		clauseSum, clauseHits := scoreTokens(clause)
		sum += clauseSum
		hits += clauseHits

		var clauseScore float64
		if clauseHits > 0 {
			clauseScore = clamp(clauseSum / float64(clauseHits))
		}
		for aspect := range aspectsIn(clause) {
			aspectSums[aspect] += clauseScore
			aspectCounts[aspect]++
		}
	}

	res := Result{Aspects: make(map[string]float64, len(aspectSums))}
	if hits > 0 {
		res.Score = clamp(sum / float64(hits))
	}
	res.Label = labelFor(res.Score)
	for aspect, total := range aspectSums {
		res.Aspects[aspect] = clamp(total / float64(aspectCounts[aspect]))
	}
	return res
}

// labelFor applies the threshold rules. Scores exactly at a threshold stay
// neutral.
func labelFor(score float64) string {
	switch {
	case score > positiveThreshold:
		return LabelPositive
	case score < negativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// scoreTokens walks one clause and accumulates signed hit weights. Negation
// and intensity never cross clause boundaries because callers pass clauses
// individually.
func scoreTokens(tokens []string) (sum float64, hits int) {
	negateLeft := 0
	intensity := 1.0
	for _, tok := range tokens {
		if negators[tok] {
			negateLeft = negationWindow
			continue
		}
		if mult, ok := intensifiers[tok]; ok {
			intensity *= mult
			continue
		}
		if weight, ok := lexicon[tok]; ok {
			weight *= intensity
			if negateLeft > 0 {
				weight = -weight
			}
			sum += weight
			hits++
			negateLeft = 0
			intensity = 1.0
			continue
		}
		if negateLeft > 0 {
			negateLeft--
		}
		intensity = 1.0
	}
	return sum, hits
}

// aspectsIn returns the set of aspects whose keywords appear in the clause.
func aspectsIn(tokens []string) map[string]struct{} {
	var found map[string]struct{}
	for _, tok := range tokens {
		aspect, ok := keywordAspect[tok]
		if !ok {
			continue
		}
		if found == nil {
			found = make(map[string]struct{})
		}
		found[aspect] = struct{}{}
	}
	return found
}

// splitClauses lowercases the text and cuts it into token slices at sentence
// punctuation, commas, and the contrast word "but". Contrast splitting keeps
// "slow payout but great app" from averaging both halves into one clause.
func splitClauses(text string) [][]string {
	var clauses [][]string
	for _, chunk := range strings.FieldsFunc(strings.ToLower(text), isClauseBreak) {
		tokens := tokenize(chunk)
		start := 0
		for i, tok := range tokens {
			if tok != "but" {
				continue
			}
			if i > start {
				clauses = append(clauses, tokens[start:i])
			}
			start = i + 1
		}
		if start < len(tokens) {
			clauses = append(clauses, tokens[start:])
		}
	}
	return clauses
}

func isClauseBreak(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ',', '\n':
		return true
	}
	return false
}

// tokenize splits a lowercased chunk into words, keeping interior
// apostrophes so contractions like "don't" survive as single tokens.
func tokenize(chunk string) []string {
	fields := strings.FieldsFunc(chunk, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
