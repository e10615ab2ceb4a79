// File: internal/services/markdown/markdown.go
package markdown

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	renderer goldmark.Markdown
	once     sync.Once
)

func md() goldmark.Markdown {
	once.Do(func() {
		renderer = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return renderer
}

// Render converts assistant markdown (fenced code, tables) to HTML for
// history payloads. On a render error the raw text is returned unchanged.
func Render(text string) string {
	var buf bytes.Buffer
	if err := md().Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}
