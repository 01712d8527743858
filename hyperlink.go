package roseingrave

import (
	"fmt"
	"regexp"
	"strings"
)

// hyperlinkRe matches the exact two-argument HYPERLINK formula shape this
// package produces. Both arguments must be double-quoted.
var hyperlinkRe = regexp.MustCompile(`^=HYPERLINK\("(.+)", "(.+)"\)`)

// EncodeHyperlink creates a hyperlink formula for a cell that carries both a
// display text and a link. If link is empty, the text is returned unchanged
// (the cell is a plain label). Double quotes in the text are escaped as \".
func EncodeHyperlink(text, link string) string {
	if link == "" {
		return text
	}
	escaped := strings.ReplaceAll(text, `"`, `\"`)
	return fmt.Sprintf(`=HYPERLINK("%s", "%s")`, link, escaped)
}

// DecodeHyperlink extracts the link and display text from a hyperlink
// formula. The third return value reports whether the string matched the
// expected shape; callers must treat false as "not a hyperlink cell" and
// fall back to the raw string where a plain label is acceptable.
func DecodeHyperlink(formula string) (link, text string, ok bool) {
	m := hyperlinkRe.FindStringSubmatch(formula)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.ReplaceAll(m[2], `\"`, `"`), true
}
