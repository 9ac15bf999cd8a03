// Package extract finds course identifiers in free text.
package extract

import (
	"regexp"
	"strings"
)

// space is the separator class used between subject and number. It extends
// \s with vertical tab, the Unicode space separators and the byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	// codePattern matches a subject prefix, optional whitespace and a four digit catalog number.
	// Case-sensitive: provider course codes are upper case.
	codePattern = regexp.MustCompile(`(CS|MATH)` + space + `*\d{4}`)

	// loosePattern accepts user input such as "cs2110" or "Math  1920".
	loosePattern = regexp.MustCompile(`(?i)^` + space + `*(CS|MATH)` + space + `*(\d{4})` + space + `*$`)

	whitespace = regexp.MustCompile(space + `+`)
)

// CourseCodes returns every course code mentioned in text, in order of appearance.
// Duplicates are kept and codes are not checked against any catalog.
// Each match is normalized so that "CS2110" and "CS  2110" both become "CS 2110".
func CourseCodes(text string) []string {
	matches := codePattern.FindAllStringSubmatchIndex(text, -1)
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		subject := text[m[2]:m[3]]
		number := text[m[1]-4 : m[1]]
		codes = append(codes, subject+" "+number)
	}
	return codes
}

// UniqueCodes is CourseCodes with repeated codes removed, keeping first appearances.
func UniqueCodes(text string) []string {
	return Dedupe(CourseCodes(text))
}

// Dedupe removes repeated entries while preserving order.
func Dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// NormalizeCode canonicalizes a single user-supplied course code.
// "cs2110" and " CS  2110 " become "CS 2110". The second return value is false
// when the input is not a recognizable CS or MATH code; the input is then
// returned with whitespace collapsed.
func NormalizeCode(code string) (string, bool) {
	m := loosePattern.FindStringSubmatch(code)
	if m == nil {
		return strings.TrimSpace(whitespace.ReplaceAllString(code, " ")), false
	}
	return strings.ToUpper(m[1]) + " " + m[2], true
}

// CompactCode strips the space from a canonical code ("CS 2110" -> "CS2110").
func CompactCode(code string) string {
	return strings.ReplaceAll(code, " ", "")
}
