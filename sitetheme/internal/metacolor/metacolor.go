// Package metacolor scans a rendered document's HTML for the declarative
// color hints browsers honor outside CSS: the theme-color meta tag, the
// msapplication tile color and the Safari mask-icon color. These are the
// weakest style signal, appended after declared custom properties.
package metacolor

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/hazyhaar/tinge/colorspace"
)

// Scan parses the document and returns any declarative color hints in
// document order. Parse failures yield an empty list; the signal is
// best effort by design.
func Scan(doc []byte) []colorspace.Declared {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	var out []colorspace.Declared
	seen := map[string]bool{}
	add := func(name, value string) {
		value = strings.TrimSpace(value)
		if value == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, colorspace.Declared{Name: name, Value: value})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				name := strings.ToLower(getAttr(n, "name"))
				if name == "theme-color" || name == "msapplication-tilecolor" {
					add(name, getAttr(n, "content"))
				}
			case "link":
				if strings.EqualFold(getAttr(n, "rel"), "mask-icon") {
					add("mask-icon", getAttr(n, "color"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return out
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
