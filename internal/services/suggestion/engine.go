// File: internal/services/suggestion/engine.go
package suggestion

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skynavi/travel-assistant/internal/domain"
	"github.com/skynavi/travel-assistant/internal/services/anthropic"
)

const (
	maxSuggestions      = 4
	suggestionMaxTokens = 1000
	suggestionTemp      = 0.7
)

// Logger is the logging interface the suggestion engine depends on.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Context is the ephemeral classification of one exchange.
type Context struct {
	Type            ContextType
	LastUserMessage string
	LastBotMessage  string
	Numbers         []int
}

// Engine derives candidate user replies for the latest assistant message.
// It classifies the exchange into one of seven buckets, asks the model for
// 3-4 short replies, and falls back to a static per-bucket list on any
// failure. It never returns an error and never returns an empty list.
type Engine struct {
	provider anthropic.CompletionProvider
	groups   []patternGroup
	logger   Logger
}

func NewEngine(provider anthropic.CompletionProvider, logger Logger) *Engine {
	return &Engine{
		provider: provider,
		groups:   compilePatterns(),
		logger:   logger,
	}
}

// Suggest returns between 1 and 4 candidate replies for the given
// assistant message.
func (e *Engine) Suggest(ctx context.Context, botMessage string, history []domain.ChatMessage) []string {
	detected := e.DetectContext(botMessage, history)

	prompt := buildPrompt(botMessage, detected)

	response, err := e.provider.Complete(ctx, anthropic.CompletionRequest{
		Messages:    []domain.ChatMessage{{Role: domain.RoleUser, Content: prompt}},
		MaxTokens:   suggestionMaxTokens,
		Temperature: suggestionTemp,
	})
	if err != nil {
		e.logger.Warn("suggestion model call failed, using fallback",
			"context_type", detected.Type, "error", err)
		return FallbackFor(detected.Type)
	}

	suggestions := ParseSuggestions(response)
	if len(suggestions) == 0 {
		e.logger.Debug("no suggestions parsed from response, using fallback",
			"context_type", detected.Type)
		return FallbackFor(detected.Type)
	}
	return suggestions
}

// DetectContext classifies the message against the ordered pattern groups
// and gathers the related exchange info. Detection is total: the general
// group matches unconditionally.
func (e *Engine) DetectContext(message string, history []domain.ChatMessage) Context {
	lowered := strings.ToLower(message)

	detected := Context{Type: ContextGeneral}
	for _, group := range e.groups {
		if matchesAny(group.patterns, lowered) {
			detected.Type = group.contextType
			break
		}
	}

	detected.LastUserMessage = lastMessageByRole(history, domain.RoleUser)
	detected.LastBotMessage = lastMessageByRole(history, domain.RoleAssistant)
	detected.Numbers = ExtractAmounts(lowered + " " + detected.LastUserMessage)

	return detected
}

func lastMessageByRole(history []domain.ChatMessage, role string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == role {
			return history[i].Content
		}
	}
	return ""
}

// ExtractAmounts pulls every numeric token out of the text. Dots are
// treated as thousands separators and stripped before parsing, so
// "1.500" yields 1500.
func ExtractAmounts(text string) []int {
	stripped := strings.ReplaceAll(text, ".", "")

	var amounts []int
	for _, token := range numberPattern.FindAllString(stripped, -1) {
		token = strings.ReplaceAll(token, ",", "")
		value, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		amounts = append(amounts, value)
	}
	return amounts
}

// buildPrompt fills the suggestion template with the latest exchange.
func buildPrompt(message string, detected Context) string {
	return fmt.Sprintf(`Son bot mesajı: %s

Bu mesaja uygun 3-4 muhtemel kullanıcı yanıtı öner.

Önemli kurallar:
1. Her seferinde sadece tek bir soru sor
2. Kısa ve net cevaplar ver (maksimum 2-3 cümle)
3. Seyahat planlamasını adım adım yap
4. Her adımda sadece gerekli bilgiyi iste

Değerler:
- Uçuş fiyatları: 2.000 TL - 50.000 TL arası
- Otel fiyatları: 1.500 TL - 15.000 TL/gece
- Transfer ücretleri: 500 TL - 2.000 TL
- Seyahat süreleri: 2-14 gün arası

Yanıtlar:
- Tek kelime veya kısa ifadeler olmalı
- Her biri yeni satırda ve tire (-) ile başlamalı
- Seyahat bağlamına uygun olmalı

Bağlam bilgileri:
- Tip: %s
- Son kullanıcı mesajı: %s

Öneriler:`, message, detected.Type, detected.LastUserMessage)
}

// ParseSuggestions scans the model output line by line and collects up to
// four dash-prefixed entries in order of appearance.
func ParseSuggestions(response string) []string {
	var suggestions []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		entry := strings.TrimSpace(strings.TrimLeft(line, "-"))
		if entry == "" {
			continue
		}
		suggestions = append(suggestions, entry)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
