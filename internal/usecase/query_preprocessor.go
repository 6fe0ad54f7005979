package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sustainabuy/backend/internal/domain"
)

// querySpace is the whitespace class queries are split on: ASCII whitespace,
// vertical tab, every Unicode separator and BOM. RE2's \s alone stops at ASCII.
const querySpace = `\s\v\p{Z}\x{FEFF}`

// Compiled regex patterns for query preprocessing
var (
	// Anything that is not an ASCII word character or whitespace
	nonWordPattern = regexp.MustCompile(`[^\w` + querySpace + `]`)

	// Runs of whitespace separating query tokens
	whitespacePattern = regexp.MustCompile(`[` + querySpace + `]+`)
)

// intentRule maps a lower-case trigger string to the intent it implies
type intentRule struct {
	trigger string
	intent  domain.SearchIntent
}

// intentTable is walked in order; later matches overwrite brand/category of earlier ones
var intentTable = []intentRule{
	{
		trigger: "stanley",
		intent: domain.SearchIntent{
			Brand:    "Stanley",
			Category: "Drinkware",
			Keywords: []string{"cup", "tumbler", "bottle"},
		},
	},
	{
		trigger: "sneakers",
		intent: domain.SearchIntent{
			Category: "Footwear",
			Keywords: []string{"shoes", "kicks", "running"},
		},
	},
	{
		trigger: "nike",
		intent: domain.SearchIntent{
			Brand:    "Nike",
			Category: "Footwear",
			Keywords: []string{"shoes", "apparel"},
		},
	},
	{
		trigger: "allbirds",
		intent: domain.SearchIntent{
			Brand:    "Allbirds",
			Category: "Footwear",
			Keywords: []string{"wool", "sustainable shoes"},
		},
	},
	{
		trigger: "patagonia",
		intent: domain.SearchIntent{
			Brand:    "Patagonia",
			Category: "Clothing",
			Keywords: []string{"jacket", "outdoor", "recycled"},
		},
	},
}

// NormalizeQuery lower-cases the query, drops punctuation and trims surrounding whitespace.
// Stripping happens before trimming so the result is a fixed point.
func NormalizeQuery(query string) string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(query), "")
	return strings.TrimFunc(cleaned, isQuerySpace)
}

// isQuerySpace reports whether r belongs to querySpace
func isQuerySpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// ParseSearchIntent extracts a brand, category and keyword set from a raw search string.
// Triggers match by substring of the normalized query, so "nikel" still reads as Nike.
func ParseSearchIntent(query string) domain.SearchIntent {
	normalized := NormalizeQuery(query)

	// An empty query splits into a single "" token
	tokens := whitespacePattern.Split(normalized, -1)

	keywords := newKeywordSet(len(tokens))
	keywords.add(tokens...)

	var intent domain.SearchIntent
	for _, rule := range intentTable {
		if !strings.Contains(normalized, rule.trigger) {
			continue
		}
		if rule.intent.Brand != "" {
			intent.Brand = rule.intent.Brand
		}
		if rule.intent.Category != "" {
			intent.Category = rule.intent.Category
		}
		keywords.add(rule.intent.Keywords...)
	}

	intent.Keywords = keywords.items
	return intent
}

// keywordSet is an insertion-ordered string set
type keywordSet struct {
	seen  map[string]struct{}
	items []string
}

func newKeywordSet(capacity int) *keywordSet {
	return &keywordSet{
		seen:  make(map[string]struct{}, capacity),
		items: make([]string, 0, capacity),
	}
}

func (s *keywordSet) add(words ...string) {
	for _, w := range words {
		if _, ok := s.seen[w]; ok {
			continue
		}
		s.seen[w] = struct{}{}
		s.items = append(s.items, w)
	}
}
