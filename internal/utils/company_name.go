package utils

import (
	"regexp"
	"strings"
)

// Case-insensitive substring denylist. Deliberately blunt: a handful of
// legitimate names will trip it and contractors can reword.
var vulgarTokens = []string{
	"fuck", "shit", "bitch", "cunt", "pussy", "asshole",
	"bastard", "whore", "slut", "motherf",
}

// Runs of adjacent keys that show up when someone mashes the keyboard.
var keyboardMashTokens = []string{
	"asdf", "sdfg", "dfgh", "fghj", "hjkl",
	"qwer", "wert", "erty", "uiop",
	"zxcv", "xcvb", "cvbn", "vbnm",
}

var longLetterRun = regexp.MustCompile(`[a-z]{8,}`)

// IsLegitimateCompanyName is the first-line filter for the opening text of
// a conversation. It is not a security boundary.
func IsLegitimateCompanyName(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 2 {
		return false
	}
	lower := strings.ToLower(trimmed)

	if !strings.ContainsAny(lower, "aeiou") {
		return false
	}
	if isSingleCharRepeated(lower) {
		return false
	}
	for _, tok := range vulgarTokens {
		if strings.Contains(lower, tok) {
			return false
		}
	}
	for _, tok := range keyboardMashTokens {
		if strings.Contains(lower, tok) {
			return false
		}
	}
	if longLetterRun.MatchString(lower) {
		return false
	}
	return true
}

// isSingleCharRepeated ignores whitespace, so "x x x" counts as repeated.
func isSingleCharRepeated(s string) bool {
	var first rune
	seen := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		if !seen {
			first, seen = r, true
			continue
		}
		if r != first {
			return false
		}
	}
	return seen
}
