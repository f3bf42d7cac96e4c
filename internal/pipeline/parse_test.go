package pipeline

import (
	"context"
	"errors"
	"net/url"
	"testing"
)

func mustParse(t *testing.T, htmlContent string, base *url.URL) *Document {
	t.Helper()
	doc, err := NewGoqueryEngine().Parse(context.Background(), htmlContent, base)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestGoqueryEngineParse(t *testing.T) {
	t.Run("empty input fails ErrParse", func(t *testing.T) {
		for _, input := range []string{"", "   ", "\n\t"} {
			_, err := NewGoqueryEngine().Parse(context.Background(), input, nil)
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) error = %v, want ErrParse", input, err)
			}
		}
	})

	t.Run("malformed markup degrades gracefully", func(t *testing.T) {
		doc := mustParse(t, "<h1>Unclosed<p>still <b>parses", nil)
		if doc == nil {
			t.Fatal("expected a document")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewGoqueryEngine().Parse(ctx, "<p>x</p>", nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("base URL retained", func(t *testing.T) {
		base, _ := url.Parse("https://example.com/articles/post.html")
		doc := mustParse(t, "<p>x</p>", base)
		if doc.Base() != base {
			t.Errorf("Base() = %v, want %v", doc.Base(), base)
		}
	})
}

func TestDocumentImages(t *testing.T) {
	t.Run("document order and attributes", func(t *testing.T) {
		doc := mustParse(t, `
			<body>
				<img src="first.png" alt="First">
				<p>text</p>
				<img src="second.jpg">
				<img alt="no src attribute">
				<img src="">
			</body>`, nil)

		images := doc.Images()
		if len(images) != 2 {
			t.Fatalf("got %d images, want 2", len(images))
		}
		if images[0].OriginalRef != "first.png" || images[0].Alt != "First" {
			t.Errorf("images[0] = %+v", images[0])
		}
		if images[1].OriginalRef != "second.jpg" || images[1].Alt != "" {
			t.Errorf("images[1] = %+v", images[1])
		}
	})

	t.Run("enumeration is deterministic", func(t *testing.T) {
		const content = `<img src="a.png"><img src="b.png"><img src="a.png">`
		first := mustParse(t, content, nil).Images()
		second := mustParse(t, content, nil).Images()
		if len(first) != 3 || len(second) != 3 {
			t.Fatalf("lengths = %d, %d, want 3", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("index %d differs: %+v vs %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("no images", func(t *testing.T) {
		doc := mustParse(t, "<p>plain text</p>", nil)
		if got := doc.Images(); len(got) != 0 {
			t.Errorf("got %d images, want 0", len(got))
		}
	})
}
