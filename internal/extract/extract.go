// Package extract pulls plain text out of uploaded files so it can be
// concatenated into the chatbot's data source. Binary formats without a
// parser yield a descriptive placeholder rather than an error.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Text extracts readable text from the file at path with the declared MIME
// type. Plain text and JSON pass through unchanged; PDF and HTML are parsed;
// anything else gets a placeholder naming the file.
func Text(path, mimeType string) (string, error) {
	switch {
	case strings.HasPrefix(mimeType, "text/html"):
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return HTML(string(data))

	case strings.HasPrefix(mimeType, "text/"), mimeType == "application/json":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), nil

	case mimeType == "application/pdf":
		return PDF(path)

	case strings.HasPrefix(mimeType, "image/"):
		return fmt.Sprintf("[Image: %s]", filepath.Base(path)), nil

	default:
		return fmt.Sprintf("[File: %s, binary content not extractable]", filepath.Base(path)), nil
	}
}

// PDF extracts the plain text of every page in the PDF at path.
func PDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

// HTML strips tags from an HTML document, keeping the visible text. Script
// and style contents are dropped.
func HTML(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return b.String(), nil
}
