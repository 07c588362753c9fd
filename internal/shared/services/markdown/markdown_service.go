// Package markdown renders article bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown into safe HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

type Service struct {
	md         goldmark.Markdown
	htmlPolicy *bluemonday.Policy
}

var _ Renderer = (*Service)(nil)

func NewService() *Service {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	htmlPolicy := bluemonday.UGCPolicy()
	htmlPolicy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	htmlPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	return &Service{
		md:         md,
		htmlPolicy: htmlPolicy,
	}
}

// Render converts markdown to HTML and runs it through the UGC policy.
func (s *Service) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return s.htmlPolicy.Sanitize(buf.String()), nil
}
