package generator

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))
	htmlSanitizer    = bluemonday.UGCPolicy()
)

// RenderIntro converts the Markdown intro text shown above the menus into
// sanitized HTML.
func RenderIntro(markdown string) (template.HTML, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render intro markdown: %w", err)
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}
