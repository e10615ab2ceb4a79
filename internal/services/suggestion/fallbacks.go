// File: internal/services/suggestion/fallbacks.go
package suggestion

// fallbackSuggestions are the hand-authored replies served whenever the
// model is unavailable or its output cannot be parsed. Exactly four per
// context type.
var fallbackSuggestions = map[ContextType][]string{
	ContextTripPurpose: {"İş seyahati", "Tatil", "Aile ziyareti", "Kültür turu"},
	ContextDestination: {"Avrupa", "Uzak Doğu", "Amerika", "Orta Doğu"},
	ContextDate:        {"Yaz sezonu", "Kış sezonu", "Bahar ayları", "Sonbahar"},
	ContextBudget:      {"Ekonomik paket", "Orta segment", "Lüks seyahat", "Ultra lüks"},
	ContextLodging:     {"5 yıldızlı otel", "Butik otel", "Apart otel", "Ekonomik otel"},
	ContextTransport:   {"Direkt uçuş", "Aktarmalı uçuş", "VIP transfer", "Toplu taşıma"},
	ContextGeneral:     {"Evet", "Hayır", "Detaylı bilgi alabilir miyim?", "Devam edelim"},
}

// FallbackFor returns the static list for a context type, defaulting to
// the general list for anything unknown.
func FallbackFor(contextType ContextType) []string {
	if list, ok := fallbackSuggestions[contextType]; ok {
		return append([]string(nil), list...)
	}
	return append([]string(nil), fallbackSuggestions[ContextGeneral]...)
}
