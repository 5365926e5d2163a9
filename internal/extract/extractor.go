// Package extract fetches a URL and reduces it to question-answering
// context text.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"askpilot/internal/pkg/pdfextract"
)

// ErrNoContent marks a page that fetched fine but contained no usable
// paragraph text.
var ErrNoContent = errors.New("no extractable content")

// Extractor fetches a URL and returns its readable text: the
// space-joined text of every <p> element in document order for HTML, or
// the plain text of a PDF. Callers treat any error as "skip this URL".
type Extractor struct {
	userAgent  string
	maxBytes   int64
	httpClient *http.Client
}

func NewExtractor(userAgent string, timeout time.Duration, maxBytes int64) *Extractor {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = 4 * 1024 * 1024
	}
	return &Extractor{
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request failed: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s failed: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s returned status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read %s body failed: %w", pageURL, err)
	}

	var text string
	if strings.Contains(resp.Header.Get("Content-Type"), "application/pdf") {
		text, err = pdfextract.Text(bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("extract pdf text from %s failed: %w", pageURL, err)
		}
	} else {
		text, err = paragraphText(bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("parse %s failed: %w", pageURL, err)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

// paragraphText joins the text of all <p> elements with single spaces,
// in document order.
func paragraphText(page io.Reader) (string, error) {
	doc, err := html.Parse(page)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			if text := elementText(n); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(paragraphs, " "), nil
}

func elementText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	// Collapse the markup's own whitespace runs.
	return strings.Join(strings.Fields(b.String()), " ")
}
