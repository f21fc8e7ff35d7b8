// Package readinglist loads article entries, with optional precomputed
// embeddings, from JSONL export files.
package readinglist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Entry represents one saved article.
type Entry struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	DateAdded time.Time `json:"date_added"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"embedding"`
}

// LoadFromJSONL loads entries from a JSONL file, skipping malformed
// lines. Article content is stripped of any HTML markup.
func LoadFromJSONL(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var entries []Entry
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		entry.Content = StripHTML(entry.Content)
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in %s", path)
	}

	return entries, nil
}

// StripHTML extracts the text content of an HTML fragment. Plain text
// passes through unchanged.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
