package freedict

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cleanText strips any HTML the service leaves in a text field and
// collapses whitespace. Entities are decoded.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			doc.Find("script, style").Remove()
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
