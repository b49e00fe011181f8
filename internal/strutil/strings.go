package strutil

import (
	"regexp"
	"strings"
	"unicode"
)

var upperCodeRe = regexp.MustCompile(`[A-Z]{2,3}`)

// FirstUpperCode returns the first run of 2-3 uppercase latin letters in the string,
// for example FirstUpperCode("100 USD") return "USD"
func FirstUpperCode(s string) (string, bool) {
	code := upperCodeRe.FindString(s)
	return code, code != ""
}

// Keep removes every rune for which keep returns false
func Keep(s string, keep func(r rune) bool) string {
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}

		return -1
	}, s)
}

// RemoveAll removes all occurrences of the old substrings
func RemoveAll(s string, old ...string) string {
	for _, o := range old {
		if o == "" {
			continue
		}
		s = strings.ReplaceAll(s, o, "")
	}

	return s
}

// RemoveExtraSpaces removes unnecessary spaces in the string
// For example RemoveExtraSpaces("hello  world  ") return "hello world"
func RemoveExtraSpaces(s string) string {
	idx := 0

	return strings.Trim(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			idx++
			if idx > 1 {
				return -1
			}
		} else if idx > 0 {
			idx = 0
		}

		return r
	}, s), " \t")
}
