package language

import (
	"sort"
	"strings"
)

// codes maps human-readable language names to the short codes the
// translation endpoint expects. Hebrew is "iw" rather than "he" because
// the endpoint still uses the legacy code.
var codes = map[string]string{
	"Afrikaans":      "af",
	"Albanian":       "sq",
	"Arabic":         "ar",
	"Armenian":       "hy",
	"Azerbaijani":    "az",
	"Basque":         "eu",
	"Belarusian":     "be",
	"Bengali":        "bn",
	"Bulgarian":      "bg",
	"Catalan":        "ca",
	"Chinese":        "zh-CN",
	"Croatian":       "hr",
	"Czech":          "cs",
	"Danish":         "da",
	"Dutch":          "nl",
	"English":        "en",
	"Esperanto":      "eo",
	"Estonian":       "et",
	"Filipino":       "tl",
	"Finnish":        "fi",
	"French":         "fr",
	"Galician":       "gl",
	"Georgian":       "ka",
	"German":         "de",
	"Greek":          "el",
	"Gujarati":       "gu",
	"Haitian Creole": "ht",
	"Hebrew":         "iw",
	"Hindi":          "hi",
	"Hungarian":      "hu",
	"Icelandic":      "is",
	"Indonesian":     "id",
	"Irish":          "ga",
	"Italian":        "it",
	"Japanese":       "ja",
	"Kannada":        "kn",
	"Korean":         "ko",
	"Latin":          "la",
	"Latvian":        "lv",
	"Lithuanian":     "lt",
	"Macedonian":     "mk",
	"Malay":          "ms",
	"Maltese":        "mt",
	"Norwegian":      "no",
	"Persian":        "fa",
	"Polish":         "pl",
	"Portuguese":     "pt",
	"Romanian":       "ro",
	"Russian":        "ru",
	"Serbian":        "sr",
	"Slovak":         "sk",
	"Slovenian":      "sl",
	"Spanish":        "es",
	"Swahili":        "sw",
	"Swedish":        "sv",
	"Tamil":          "ta",
	"Telugu":         "te",
	"Thai":           "th",
	"Turkish":        "tr",
	"Ukrainian":      "uk",
	"Urdu":           "ur",
	"Vietnamese":     "vi",
	"Welsh":          "cy",
	"Yiddish":        "yi",
}

// Resolve maps a language name to its endpoint code. Unknown names resolve
// to an empty string; the request is still built, it just degrades at the
// remote end. Matching ignores case and surrounding whitespace.
func Resolve(name string) string {
	if code, ok := codes[name]; ok {
		return code
	}
	needle := strings.ToLower(strings.TrimSpace(name))
	for n, code := range codes {
		if strings.ToLower(n) == needle {
			return code
		}
	}
	return ""
}

// Entry is one supported language for listing.
type Entry struct {
	Name string
	Code string
}

// Supported returns all known languages sorted by name.
func Supported() []Entry {
	entries := make([]Entry, 0, len(codes))
	for name, code := range codes {
		entries = append(entries, Entry{Name: name, Code: code})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
