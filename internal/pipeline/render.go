package pipeline

import (
	"context"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// Renderer assembles Markdown from the document model and the link map.
type Renderer interface {
	Render(ctx context.Context, doc *Document, links LinkMap) (string, error)
}

// MarkdownRenderer renders the document with CommonMark rules.
// Image references are substituted from the link map when present and
// emitted unchanged otherwise, so disabling image processing leaves the
// original references intact.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the final Markdown string. Output is deterministic for
// identical input: the rule set is fixed and normalization is pure.
// Supports context cancellation via the goroutine + select pattern since
// the conversion library doesn't natively take a context.
func (r *MarkdownRenderer) Render(ctx context.Context, doc *Document, links LinkMap) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan string, 1)

	go func() {
		conv := md.NewConverter("", true, nil)
		// The base rule set has no table handling; without the plugin,
		// cell text concatenates with all structure lost.
		conv.Use(plugin.Table())
		conv.AddRules(imageRule(links))
		done <- normalizeMarkdown(conv.Convert(doc.Root()))
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case out := <-done:
		return out, nil
	}
}

// imageRule overrides img rendering to consult the link map.
func imageRule(links LinkMap) md.Rule {
	return md.Rule{
		Filter: []string{"img"},
		Replacement: func(_ string, selec *goquery.Selection, _ *md.Options) *string {
			src, ok := selec.Attr("src")
			if !ok || strings.TrimSpace(src) == "" {
				return md.String("")
			}
			if relocated, found := links[src]; found {
				src = relocated
			}
			alt := cleanAltText(selec.AttrOr("alt", ""))
			return md.String("![" + alt + "](" + src + ")")
		},
	}
}

// cleanAltText makes alt text safe inside image syntax brackets.
func cleanAltText(alt string) string {
	alt = strings.NewReplacer("[", "", "]", "", "\n", " ", "\r", " ").Replace(alt)
	return strings.TrimSpace(alt)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// normalizeMarkdown collapses redundant blank lines and trims the edges.
// A rendering policy choice, but a deterministic one.
func normalizeMarkdown(s string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n\n"))
}
