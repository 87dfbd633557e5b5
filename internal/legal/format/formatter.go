// Package format reflows raw model output into the HTML fragments the
// chat frontend renders. Formatting is pure and applied exactly once,
// to unformatted synthesis output.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/qanunai/legal-advisor-backend/internal/legal/types"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// A numbered item starts a line with digits, a period and a space,
	// and runs until the next numbered line or the end of the text.
	listMarkerPattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)

	// Sentence boundary: period then a capital letter, with or without
	// whitespace between (models sometimes omit the space). The class
	// covers the Azerbaijani capitals the Latin range misses.
	sentencePattern = regexp.MustCompile(`\.\s*([A-ZƏİÖÜÇŞĞ])`)
)

// Legal reflows a synthesized legal answer and appends its source list.
func Legal(answer types.SynthesizedAnswer) string {
	body := boldPattern.ReplaceAllString(answer.Body, "<strong>$1</strong>")
	body, list := extractNumberedList(body)
	body = sentencePattern.ReplaceAllString(body, ".<br>$1")

	var b strings.Builder
	b.WriteString(`<div class="legal-answer">`)
	b.WriteString(strings.TrimSpace(body))
	b.WriteString(list)
	b.WriteString(`</div>`)

	if len(answer.Citations) > 0 {
		b.WriteString(`<br><div class="legal-sources"><strong>İstinadlar:</strong><ul>`)
		for _, c := range answer.Citations {
			fmt.Fprintf(&b, `<li>[%d] <a href="%s" target="_blank">%s</a></li>`, c.Index, c.URL, c.URL)
		}
		b.WriteString(`</ul></div>`)
	}
	return b.String()
}

// Casual wraps a general-chat reply for frontend styling.
func Casual(text string) string {
	return fmt.Sprintf(`<div class="casual-answer">%s</div>`, strings.TrimSpace(text))
}

// extractNumberedList pulls a run of two or more numbered lines out of
// the body and rebuilds it as an ordered list, renumbered from 1. With
// fewer than two items the body is returned unchanged.
func extractNumberedList(body string) (string, string) {
	markers := listMarkerPattern.FindAllStringIndex(body, -1)
	if len(markers) < 2 {
		return body, ""
	}

	items := make([]string, 0, len(markers))
	for i, marker := range markers {
		end := len(body)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		item := strings.TrimSpace(body[marker[1]:end])
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) < 2 {
		return body, ""
	}

	var list strings.Builder
	list.WriteString("<ol>")
	for _, item := range items {
		list.WriteString("<li>")
		list.WriteString(item)
		list.WriteString("</li>")
	}
	list.WriteString("</ol>")

	return body[:markers[0][0]], list.String()
}
