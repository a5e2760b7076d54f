// Package sanitize cleans user-submitted text before it is stored.
//
// Descriptions keep their formatting as Markdown; review text is reduced to
// plain text.
package sanitize

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

var (
	htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|u|strong|em|a|ul|ol|li|h[1-6]|blockquote|code|pre|script|style)[\s>/]`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// ContainsHTML reports whether s looks like HTML markup.
func ContainsHTML(s string) bool {
	return htmlTagPattern.MatchString(strings.ToLower(s))
}

// Description converts HTML descriptions to Markdown. Input without markup
// is only trimmed.
func Description(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !ContainsHTML(s) {
		return s
	}
	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return PlainText(s)
	}
	return strings.TrimSpace(md)
}

// PlainText strips all markup and collapses whitespace. Script and style
// bodies are dropped.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(whitespace.ReplaceAllString(html.UnescapeString(s), " "))
	}

	var b strings.Builder
	collectText(doc, &b)
	return strings.TrimSpace(whitespace.ReplaceAllString(b.String(), " "))
}

func collectText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "br", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
			b.WriteByte(' ')
			defer b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
