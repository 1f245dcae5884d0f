package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Reconstruct rebuilds readable paragraphs from degraded extracted text.
// PDF and OCR extractors often emit one fragment (or one word) per line;
// this joins soft line wraps back into sentences while keeping intentional
// structure: blank-line paragraph breaks and bullet/numbered list items.
//
// The routine is a pure function and total over all inputs: an empty input
// yields an empty output, and already-clean text passes through unchanged.
func Reconstruct(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFKC.String(raw)
	s = strings.ReplaceAll(s, "\r", "")
	s = unwrapSoftHyphens(s)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var out []string
	var para []string
	flush := func() {
		if len(para) > 0 {
			out = append(out, strings.Join(para, " "))
			para = para[:0]
		}
	}

	for i, line := range lines {
		switch classify(line) {
		case lineBlank:
			flush()
			out = append(out, "")
		case lineBullet:
			// A bullet is always its own output unit, regardless of
			// surrounding punctuation.
			flush()
			out = append(out, line)
		default:
			para = append(para, line)
			if endsHard(line) {
				flush()
				continue
			}
			// Join with the next line only when it exists, is non-empty
			// and is not itself a bullet.
			next := ""
			if i+1 < len(lines) {
				next = lines[i+1]
			}
			if next == "" || classify(next) == lineBullet {
				flush()
			}
		}
	}
	flush()

	result := strings.Join(out, "\n")
	result = collapseNewlines.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineBullet
	lineText
)

var (
	softHyphen       = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{L})`)
	bulletMarker     = regexp.MustCompile(`^([-*\x{2022}\x{2023}\x{25AA}\x{25E6}]|\d{1,3}[.)])(\s+|$)`)
	collapseNewlines = regexp.MustCompile(`\n{3,}`)
)

// unwrapSoftHyphens removes a hyphen used purely to wrap a word across a
// line boundary: a letter, "-", newline, letter. Hyphenated compounds that
// merely happen to end a line are false positives the heuristic accepts.
func unwrapSoftHyphens(s string) string {
	return softHyphen.ReplaceAllString(s, "$1$2")
}

func classify(line string) lineKind {
	if line == "" {
		return lineBlank
	}
	if bulletMarker.MatchString(line) {
		return lineBullet
	}
	return lineText
}

// endsHard reports whether a line ending signals an intentional break:
// sentence-terminal punctuation (optionally followed by a closing
// quote/bracket), a colon, a semicolon, or a closing parenthesis.
func endsHard(line string) bool {
	if line == "" {
		return false
	}
	runes := []rune(line)
	last := runes[len(runes)-1]
	switch last {
	case ':', ';', ')':
		return true
	}
	trimmed := strings.TrimRightFunc(line, isClosing)
	if trimmed == "" {
		return false
	}
	runes = []rune(trimmed)
	switch runes[len(runes)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func isClosing(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '»', '’', '”':
		return true
	}
	return unicode.In(r, unicode.Pf)
}
