// Package match implements the item-matching engine: keyword extraction,
// pairwise similarity scoring, candidate ranking, and match recording.
package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords is the fixed set of common English function words and pronouns
// excluded from keyword sets. Static configuration, not corpus-derived.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {},
	"they": {}, "me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// minKeywordLength is the shortest token length kept as a keyword.
const minKeywordLength = 3

// ExtractKeywords converts free text into a sequence of significant lowercase
// tokens. Every rune that is not a letter, digit, or whitespace becomes a
// space; the result is lowercased and split on whitespace; tokens shorter
// than three characters and stop words are dropped. Pure function; empty
// input yields an empty result.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	var keywords []string
	for _, token := range strings.Fields(b.String()) {
		if utf8.RuneCountInString(token) < minKeywordLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// KeywordText combines an item's title and description into the text the
// keyword set is derived from.
func KeywordText(title, description string) string {
	return title + " " + description
}
