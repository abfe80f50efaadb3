package shopify

import (
	"strings"

	"golang.org/x/net/html"
)

var skippedTags = map[string]bool{"script": true, "style": true, "head": true, "noscript": true}

// HTMLToText flattens an HTML fragment to a single line of plain text.
// Input that is not HTML passes through with whitespace collapsed.
func HTMLToText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || !strings.Contains(fragment, "<") {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var parts []string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			traverse(child)
		}
	}
	traverse(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
