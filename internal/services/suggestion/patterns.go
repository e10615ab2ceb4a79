// File: internal/services/suggestion/patterns.go
package suggestion

import "regexp"

// ContextType is one of seven mutually-exhaustive classification buckets
// used to pick a suggestion prompt and fallback list.
type ContextType string

const (
	ContextTripPurpose ContextType = "seyahat_amaci"
	ContextDestination ContextType = "destinasyon"
	ContextDate        ContextType = "tarih"
	ContextBudget      ContextType = "butce"
	ContextLodging     ContextType = "konaklama"
	ContextTransport   ContextType = "ulasim"
	ContextGeneral     ContextType = "genel"
)

// patternGroup pairs a context type with its match patterns. Groups are
// evaluated in order, first match wins; the general group matches any
// string and must stay last so detection is total.
type patternGroup struct {
	contextType ContextType
	patterns    []*regexp.Regexp
}

func compilePatterns() []patternGroup {
	compile := func(exprs ...string) []*regexp.Regexp {
		compiled := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			compiled = append(compiled, regexp.MustCompile(expr))
		}
		return compiled
	}

	return []patternGroup{
		{ContextTripPurpose, compile(`tatil`, `iş`, `ziyaret`, `gezi`)},
		{ContextDestination, compile(`nere`, `ülke`, `şehir`, `rota`)},
		{ContextDate, compile(`tarih`, `zaman`, `sezon`, `ne zaman`)},
		{ContextBudget, compile(`bütçe`, `fiyat`, `maliyet`, `ücret`)},
		{ContextLodging, compile(`otel`, `konaklama`, `apart`, `pansiyon`)},
		{ContextTransport, compile(`uçuş`, `transfer`, `ulaşım`, `araç`)},
		{ContextGeneral, compile(`.*`)},
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// numberPattern matches numeric tokens after dots (thousands separators)
// have been stripped from the text.
var numberPattern = regexp.MustCompile(`\d+(?:,\d+)*`)
