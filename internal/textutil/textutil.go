// Package textutil holds the small text helpers shared by the extractor and
// the prompt builders.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reSpace    = regexp.MustCompile(`\s+`)
	reSentence = regexp.MustCompile(`[^.?!]*[.?!]+`)
)

// Clean collapses every whitespace run, newlines included, into one space
// and trims the result.
func Clean(s string) string {
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

// SplitSentences splits t after each run of '.', '?' or '!'. Trailing text
// without terminal punctuation is kept as a final sentence.
func SplitSentences(t string) []string {
	var out []string
	end := 0
	for _, loc := range reSentence.FindAllStringIndex(t, -1) {
		if s := strings.TrimSpace(t[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		end = loc[1]
	}
	if rest := strings.TrimSpace(t[end:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Normalize cleans s and re-joins it sentence by sentence.
func Normalize(s string) string {
	return strings.Join(SplitSentences(Clean(s)), " ")
}

// Head returns the first n runes of s.
func Head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Tail returns the last n runes of s.
func Tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := utf8.RuneCountInString(s)
	if count <= n {
		return s
	}
	r := []rune(s)
	return string(r[count-n:])
}

// StripMarkers removes every occurrence of the given markers and cleans the
// remaining text.
func StripMarkers(s string, markers ...string) string {
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}
	return Clean(s)
}
