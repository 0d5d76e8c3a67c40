package jwglxt

import (
	"errors"
	"strings"

	"kebiao-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrTokenNotFound = errors.New("csrftoken not found in login page")

// findById matches ids case-insensitively since the portal's templates
// are not consistent about casing. Attribute order inside the tag does
// not matter once the markup is parsed into a document.
func findById(doc *goquery.Document, id string) *html.Node {
	var found *html.Node
	doc.Find("[id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.EqualFold(sel.AttrOr("id", ""), id) {
			found = sel.Nodes[0]
			return false
		}
		return true
	})
	return found
}

func parseDocument(page string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

// ExtractCSRFToken pulls the anti-forgery token out of the login page,
// which must be echoed back on the login submission.
func ExtractCSRFToken(page string) (string, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return "", err
	}

	node := findById(doc, "csrftoken")
	if node == nil {
		return "", ErrTokenNotFound
	}
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, "value") && attr.Val != "" {
			return attr.Val, nil
		}
	}
	return "", ErrTokenNotFound
}

// ExtractTips returns the human-readable status line the portal embeds
// in the page after a form submission, with nested markup stripped, or
// "" when the page carries no tip. This text is the only signal that
// separates a credential rejection from other failures.
func ExtractTips(page string) string {
	doc, err := parseDocument(page)
	if err != nil {
		return ""
	}

	var tip string
	doc.Find("p[id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.EqualFold(sel.AttrOr("id", ""), "tips") {
			return true
		}
		tip = strings.TrimSpace(htmlutil.GetText(sel.Nodes[0]))
		return false
	})
	return tip
}

// HasCaptcha reports whether the login page demands visual
// verification, which this scraper does not attempt to solve.
func HasCaptcha(page string) bool {
	doc, err := parseDocument(page)
	if err != nil {
		return false
	}
	return findById(doc, "yzm") != nil
}
