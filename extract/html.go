package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the block-level elements treated as paragraphs.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, blockquote, pre"

// fromHTML extracts text from block-level elements, one paragraph per
// element. Documents without block structure fall back to the body text.
func fromHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open html: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var paragraphs []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Skip containers whose text comes from nested blocks, to avoid
		// emitting the same text twice.
		if sel.ChildrenFiltered(blockSelector).Length() > 0 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		return normalize(doc.Find("body").Text()), nil
	}
	return normalize(strings.Join(paragraphs, "\n")), nil
}
