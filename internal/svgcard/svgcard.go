// Package svgcard rewrites the SVG profile cards in place with freshly
// computed statistics.
package svgcard

import (
	"fmt"
	"os"
	"regexp"

	"github.com/dustin/go-humanize"
	"github.com/gitglance/gitglance/schema"
)

// dotWidths is the column width, in characters, available to each
// labeled value plus its dot leader. The card layout is fixed-width
// (monospace), so justification is plain character arithmetic.
var dotWidths = map[string]int{
	"age_data_dots":    49,
	"star_data_dots":   50,
	"repo_data_dots":   50,
	"commit_data_dots": 48,
	"loc_total_dots":   40,
}

// minusSign is the typographic minus used for deleted lines, matching
// the card's font.
const minusSign = "−"

// UpdateCard rewrites one SVG card file with the given summary.
func UpdateCard(path string, summary schema.Summary) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read card %s: %w", path, err)
	}

	updated, err := Apply(doc, summary)
	if err != nil {
		return fmt.Errorf("cannot update card %s: %w", path, err)
	}

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("cannot write card %s: %w", path, err)
	}
	return nil
}

// Apply substitutes every labeled element of the card document and
// recomputes the dot leaders that right-justify each value.
func Apply(doc []byte, summary schema.Summary) ([]byte, error) {
	locAdd := "+" + humanize.Comma(int64(summary.Additions))
	locDel := minusSign + humanize.Comma(int64(summary.Deletions))
	locTotal := humanize.Comma(int64(summary.NetLOC))

	values := []struct {
		id   string
		text string
		dots bool
	}{
		{"age_data", summary.Age, true},
		{"star_data", humanize.Comma(int64(summary.Stars)), true},
		{"repo_data", humanize.Comma(int64(summary.Repos)), true},
		{"commit_data", humanize.Comma(int64(summary.Commits)), true},
		{"loc_total", locTotal, true},
		{"loc_add", locAdd, false},
		{"loc_del", locDel, false},
	}

	var err error
	for _, v := range values {
		doc, err = setElementText(doc, v.id, v.text)
		if err != nil {
			return nil, err
		}
		if !v.dots {
			continue
		}

		// The loc_total row also carries the +/− values, so its leader
		// shrinks by their combined width.
		measured := v.text
		if v.id == "loc_total" {
			measured = fmt.Sprintf("%s , %s , %s", locTotal, locAdd, locDel)
		}
		doc, err = setElementText(doc, v.id+"_dots", dotLeader(v.id+"_dots", measured))
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// dotLeader builds the padding run for one value, framed by single
// spaces like the original cards.
func dotLeader(dotsID, value string) string {
	width := dotWidths[dotsID] - len([]rune(value))
	if width < 0 {
		width = 0
	}
	dots := make([]rune, width)
	for i := range dots {
		dots[i] = '.'
	}
	return " " + string(dots) + " "
}

// setElementText replaces the text content of the element with the
// given id attribute. The cards are trusted templates with one element
// per id and no nested markup inside labeled elements.
func setElementText(doc []byte, id, text string) ([]byte, error) {
	pattern := regexp.MustCompile(`(<[^>]*\bid="` + regexp.QuoteMeta(id) + `"[^>]*>)([^<]*)(</)`)
	if !pattern.Match(doc) {
		return nil, fmt.Errorf("card has no element with id %q", id)
	}
	replaced := false
	out := pattern.ReplaceAllFunc(doc, func(m []byte) []byte {
		if replaced {
			return m
		}
		replaced = true
		sub := pattern.FindSubmatch(m)
		return append(append(append([]byte{}, sub[1]...), []byte(xmlEscape(text))...), sub[3]...)
	})
	return out, nil
}

// xmlEscape covers the characters that can legally appear in our
// values; full escaping is unnecessary for numbers and date strings.
func xmlEscape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			out = append(out, []byte("&amp;")...)
		case '<':
			out = append(out, []byte("&lt;")...)
		case '>':
			out = append(out, []byte("&gt;")...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
