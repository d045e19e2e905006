package service

import (
	"sort"
	"strings"
	"unicode/utf8"

	"informativos-backend/models"
)

// DefaultSearchLimit is the number of records a question is answered from
const DefaultSearchLimit = 3

// Field weights of the relevance score
const (
	weightTitulo      = 3
	weightResumo      = 2
	weightMateria     = 1
	weightRamoDireito = 1
)

// minTokenLength is exclusive: tokens must be longer than this many characters
const minTokenLength = 3

// Tokenize splits a query on whitespace, lowercases it and keeps only
// tokens longer than three characters.
func Tokenize(query string) []string {
	var tokens []string
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) > minTokenLength {
			tokens = append(tokens, strings.ToLower(word))
		}
	}
	return tokens
}

// Score sums, over every token, the weight of each field containing it
// as a case-insensitive substring. Null fields contribute nothing.
func Score(rec models.Informativo, tokens []string) int {
	fields := []struct {
		value  *string
		weight int
	}{
		{rec.Titulo, weightTitulo},
		{rec.Resumo, weightResumo},
		{rec.Materia, weightMateria},
		{rec.RamoDireito, weightRamoDireito},
	}

	score := 0
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		text := strings.ToLower(*f.value)
		for _, token := range tokens {
			if strings.Contains(text, token) {
				score += f.weight
			}
		}
	}
	return score
}

// FindRelevant returns up to limit records ordered by descending score.
// Records scoring zero are dropped and ties keep their store order.
// limit <= 0 means DefaultSearchLimit.
func FindRelevant(query string, records []models.Informativo, limit int) []models.ScoredMatch {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return []models.ScoredMatch{}
	}

	matches := make([]models.ScoredMatch, 0)
	for _, rec := range records {
		if score := Score(rec, tokens); score > 0 {
			matches = append(matches, models.ScoredMatch{Score: score, Informativo: rec})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// MatchedInformativos strips the scores off a match list
func MatchedInformativos(matches []models.ScoredMatch) []models.Informativo {
	out := make([]models.Informativo, len(matches))
	for i, m := range matches {
		out[i] = m.Informativo
	}
	return out
}
