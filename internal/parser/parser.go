// Package parser recognises the line-level markers of slide decks and reads
// frontmatter blocks and course plan documents.
package parser

import (
	"regexp"
	"strings"
)

const practicalPrefix = `<!-- .slide: class="page-tp"`

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	dataLabelRe = regexp.MustCompile(`data-label="([^"]*)"`)
)

// StripTags removes every angle-bracket tag from s, keeping the inner text.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// IsHeadingMarker reports whether line starts a Markdown heading of any depth.
func IsHeadingMarker(line string) bool {
	return strings.HasPrefix(line, "#")
}

// Heading recognises level 1 ("# ") and level 2 ("## ") headings and returns
// their title with tags stripped. Deeper headings are not outline entries.
func Heading(line string) (level int, title string, ok bool) {
	switch {
	case strings.HasPrefix(line, "# "):
		return 1, cleanTitle(line[2:]), true
	case strings.HasPrefix(line, "## "):
		return 2, cleanTitle(line[3:]), true
	}
	return 0, "", false
}

// PracticalLabel recognises a practical-work slide directive such as
//
//	<!-- .slide: class="page-tp" data-label="TP 2 : Concepts" -->
//
// and returns its data-label value with tags stripped.
func PracticalLabel(line string) (string, bool) {
	if !strings.HasPrefix(line, practicalPrefix) {
		return "", false
	}
	m := dataLabelRe.FindStringSubmatch(line[len(practicalPrefix):])
	if m == nil {
		return "", false
	}
	return cleanTitle(m[1]), true
}

func cleanTitle(s string) string {
	return strings.TrimSpace(StripTags(s))
}
