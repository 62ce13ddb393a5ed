package utils

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderText turns user written post or comment text into safe HTML. Raw HTML
// in the source is stripped by the sanitizer.
func RenderText(source string) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return lazyImages(policy.SanitizeBytes(buf.Bytes()))
}

// lazyImages defers loading of inline images and hides the referrer from
// third party hosts.
func lazyImages(sanitized []byte) template.HTML {
	if !bytes.Contains(sanitized, []byte("<img")) {
		return template.HTML(sanitized)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(sanitized))
	if err != nil {
		return template.HTML(sanitized)
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		s.SetAttr("referrerpolicy", "no-referrer")
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return template.HTML(sanitized)
	}
	return template.HTML(out)
}

// Excerpt returns the plain text of the rendered source cut to at most limit
// runes, for post cards in listings.
func Excerpt(source string, limit int) string {
	rendered := RenderText(source)
	if rendered == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(rendered)))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
