// Package intent turns a free-text shopping request into search constraints.
// It is a best-effort heuristic: nothing here ever fails.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Query is the search constraint derived from one utterance.
type Query struct {
	Text     string
	Terms    []string
	MaxPrice *int64
}

// Parse extracts search terms and an optional price ceiling.
func Parse(text string) Query {
	q := Query{Text: strings.TrimSpace(text), Terms: Terms(text)}
	if p, ok := MaxPrice(text); ok {
		q.MaxPrice = &p
	}
	return q
}

// "до 8000" / "up to 8000" after whitespace removal; 3-7 digits and not followed by another digit.
var maxPriceRe = regexp.MustCompile(`(?:до|upto)(\d{3,7})(?:\D|$)`)

// MaxPrice returns the upper price bound mentioned in text, if any.
func MaxPrice(text string) (int64, bool) {
	norm := strings.ToLower(strings.Join(strings.Fields(text), ""))
	m := maxPriceRe.FindStringSubmatch(norm)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

var stopWords = map[string]bool{
	"хочу": true, "хотел": true, "хотела": true, "нужен": true, "нужна": true, "нужно": true,
	"нужны": true, "надо": true, "ищу": true, "купить": true, "подбери": true, "посоветуй": true,
	"покажи": true, "есть": true, "для": true, "что": true, "какие": true, "какой": true,
	"какая": true, "можно": true, "мне": true, "пожалуйста": true, "руб": true, "рублей": true,
	"want": true, "need": true, "looking": true, "for": true, "the": true, "and": true,
	"show": true, "some": true, "please": true, "buy": true,
}

// Terms returns the lower-cased words worth matching against the catalog. Numbers,
// the price phrase, short words and filler words are dropped. When nothing is left
// the whole trimmed text is used as a single term.
func Terms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		w = strings.Trim(w, "-")
		if utf8.RuneCountInString(w) < 3 || stopWords[w] || isNumber(w) || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	if len(out) == 0 {
		if t := strings.ToLower(strings.TrimSpace(text)); t != "" {
			out = []string{t}
		}
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
