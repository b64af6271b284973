package extractentities

import (
	"sort"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Extractor finds the first sector token in a query. It is immutable after
// construction and safe for concurrent use.
type Extractor struct {
	matcher  *goahocorasick.Machine
	priority map[string]int
}

// NewExtractor builds the automaton over SectorVocabulary.
func NewExtractor() (*Extractor, error) {
	return NewExtractorWithVocabulary(SectorVocabulary)
}

// NewExtractorWithVocabulary builds the automaton over a custom vocabulary.
// Tokens are matched case-insensitively and returned lower-cased.
func NewExtractorWithVocabulary(vocabulary []string) (*Extractor, error) {
	patterns := make([][]rune, 0, len(vocabulary))
	priority := make(map[string]int, len(vocabulary))
	for i, token := range vocabulary {
		token = strings.ToLower(token)
		if _, dup := priority[token]; dup || token == "" {
			continue
		}
		priority[token] = i
		patterns = append(patterns, []rune(token))
	}

	// the double-array trie is built from lexically ordered keys
	sort.Slice(patterns, func(i, j int) bool { return string(patterns[i]) < string(patterns[j]) })

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Extractor{matcher: m, priority: priority}, nil
}

// Extract returns the earliest vocabulary token in the lower-cased query.
// Tokens match anywhere, including inside longer words.
func (e *Extractor) Extract(query string) Entities {
	content := []rune(strings.ToLower(query))
	if len(content) == 0 {
		return Entities{}
	}

	terms := e.matcher.MultiPatternSearch(content, false)
	best := -1
	var sector string
	for _, term := range terms {
		word := string(term.Word)
		switch {
		case best == -1, term.Pos < best:
		case term.Pos == best && e.priority[word] < e.priority[sector]:
		default:
			continue
		}
		best = term.Pos
		sector = word
	}
	return Entities{Sector: sector}
}
