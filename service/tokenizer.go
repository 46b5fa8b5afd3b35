package service

import "strings"

// stopwords is a small fixed set of articles, conjunctions and common
// pronouns that carry no retrieval signal.
var stopwords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "an", "the",
		"and", "or", "but", "if", "then", "else", "nor", "so", "yet",
		"i", "me", "my", "we", "us", "our", "you", "your",
		"he", "him", "his", "she", "her", "it", "its", "they", "them", "their",
		"this", "that", "these", "those", "what", "which", "who", "whom",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"do", "does", "did", "have", "has", "had",
		"of", "in", "on", "at", "to", "for", "by", "with", "from", "as",
		"not", "no", "can", "will", "just",
	}
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
}

// Normalize lower-cases text and splits it into tokens, keeping letters
// and digits plus hyphens and apostrophes that appear inside a word.
// Stop-words and tokens shorter than 2 characters are dropped, and a
// light suffix stem folds plurals and possessives onto their base form
// so "cats" still matches a query for "cat". The result is
// deterministic and locale-independent.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := strings.Trim(b.String(), "-'")
		b.Reset()
		if len(tok) < 2 {
			return
		}
		if _, stop := stopwords[tok]; stop {
			return
		}
		tokens = append(tokens, stem(tok))
	}

	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
		case r == '-' || r == '\'':
			// kept only when internal; leading/trailing are trimmed
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// stem folds possessive and plural suffixes onto the base form so
// "cats" and "cat's" score against a query for "cat". Queries and
// chunks pass through the same fold, so it only has to be consistent,
// not linguistically exact.
func stem(tok string) string {
	tok = strings.TrimSuffix(tok, "'s")
	if len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss") {
		tok = tok[:len(tok)-1]
	}
	return tok
}
