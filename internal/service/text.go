package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	openingFence = regexp.MustCompile("^```[a-zA-Z0-9]*\\s*")
	closingFence = regexp.MustCompile("\\s*```$")
)

// stripCodeFences removes a Markdown code fence wrapped around model output.
func stripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = openingFence.ReplaceAllString(s, "")
		s = closingFence.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// toHTML wraps plain text in paragraphs. Text that already contains markup
// is returned unchanged.
func toHTML(text string) string {
	if strings.ContainsAny(text, "<>") {
		return text
	}

	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(para, "\n", "<br>"))
		sb.WriteString("</p>")
	}
	if sb.Len() == 0 {
		return "<p></p>"
	}
	return sb.String()
}

// titleCase builds a fresh Caser per call; a Caser holds state and is not
// safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseISOTime accepts ISO-8601 dates and date-times, with or without an
// offset. Values without an offset are taken as UTC.
func parseISOTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised ISO-8601 value %q", s)
}

// parseDateRange parses optional start and end query values.
func parseDateRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		t, err := parseISOTime(start)
		if err != nil {
			return nil, nil, invalid("Invalid start_date format")
		}
		from = &t
	}
	if end != "" {
		t, err := parseISOTime(end)
		if err != nil {
			return nil, nil, invalid("Invalid end_date format")
		}
		// a bare date covers the whole day
		if len(strings.TrimSpace(end)) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	return from, to, nil
}

func clampLimit(v, def, maxLimit int) int {
	if v < 1 {
		return def
	}
	return min(v, maxLimit)
}
