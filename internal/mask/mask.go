// Package mask protects bracketed placeholders from the translation
// endpoint. Literal tokens such as color codes or interpolation slots get
// mangled by machine translation; plain numeric tokens like {3} pass
// through verbatim, so each placeholder is swapped for one before the
// request and restored afterwards.
package mask

import (
	"regexp"
	"strconv"
)

// TokenMap maps a synthetic numeric-string key back to the original
// placeholder text, braces included. One map per Mask call.
type TokenMap map[string]string

// placeholder matches a non-nested {...} token, up to the first closing brace.
var placeholder = regexp.MustCompile(`\{[^}]*\}`)

// indexRef matches the numeric references Mask writes.
var indexRef = regexp.MustCompile(`\{(\d+)\}`)

// Mask replaces each {...} placeholder with {i}, i counting from 1 per
// call, and records the original text under the decimal key.
func Mask(text string) (string, TokenMap) {
	tokens := TokenMap{}
	if text == "" {
		return "", tokens
	}
	i := 0
	masked := placeholder.ReplaceAllStringFunc(text, func(match string) string {
		i++
		key := strconv.Itoa(i)
		tokens[key] = match
		return "{" + key + "}"
	})
	return masked, tokens
}

// Unmask substitutes every {i} reference with its recorded placeholder.
// References with no map entry are replaced with an empty string; the
// remote end occasionally drops or invents tokens and there is nothing
// better to restore in that case.
func Unmask(text string, tokens TokenMap) string {
	if text == "" {
		return ""
	}
	return indexRef.ReplaceAllStringFunc(text, func(match string) string {
		key := match[1 : len(match)-1]
		return tokens[key]
	})
}

// Dropped returns the keys in tokens that no longer appear as {i}
// references in text, i.e. placeholders the translation lost.
func Dropped(text string, tokens TokenMap) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := map[string]bool{}
	for _, m := range indexRef.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = true
	}
	var lost []string
	for i := 1; i <= len(tokens); i++ {
		key := strconv.Itoa(i)
		if _, ok := tokens[key]; ok && !seen[key] {
			lost = append(lost, key)
		}
	}
	return lost
}
