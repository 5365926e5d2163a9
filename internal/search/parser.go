package search

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"askpilot/internal/model"
)

// Class names of the engine's result markup: a container div per hit,
// an h3 title, the first link's href, and a description div.
const (
	resultBlockClass = "tF2Cxc"
	descriptionClass = "VwiC3b"
)

// ParseResults walks a results page and collects every complete result
// block in document order. Blocks missing a title, link or description
// are skipped.
func ParseResults(page io.Reader) ([]model.SearchResult, error) {
	doc, err := html.Parse(page)
	if err != nil {
		return nil, err
	}

	var results []model.SearchResult
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, resultBlockClass) {
			if r, ok := parseBlock(n); ok {
				results = append(results, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func parseBlock(block *html.Node) (model.SearchResult, bool) {
	title := nodeText(findElement(block, "h3", ""))
	link := hrefOf(findElement(block, "a", ""))
	description := nodeText(findElement(block, "div", descriptionClass))

	if title == "" || link == "" || description == "" {
		return model.SearchResult{}, false
	}
	return model.SearchResult{Title: title, Link: link, Description: description}, true
}

// findElement returns the first descendant with the given tag, and the
// given class when one is required.
func findElement(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && (class == "" || hasClass(n, class)) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func hrefOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
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
	return strings.TrimSpace(b.String())
}
