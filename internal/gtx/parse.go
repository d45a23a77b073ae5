package gtx

import "strings"

// parseBody extracts plain translated text from the endpoint's response
// body. The body is a loosely JSON-shaped nested array text whose exact
// shape is undocumented and shifts between deployments, so this is a
// best-effort scraper kept behind a single function.
//
// The literal substring `,,"<sourceCode>"` (the source-language echo
// marker) separates the translated phrase array from trailing metadata.
// Single-word translations come back without the marker.
func parseBody(body, sourceCode string) string {
	marker := `,,"` + sourceCode + `"`

	idx := strings.Index(body, marker)
	if idx < 0 {
		return firstQuoted(body)
	}

	head := body[:idx]
	head = strings.ReplaceAll(head, "],[", ",")
	head = strings.ReplaceAll(head, "]", "")
	head = strings.ReplaceAll(head, "[", "")
	head = strings.ReplaceAll(head, `","`, `"`)

	var frags []string
	for _, f := range strings.Split(head, `"`) {
		if f != "" {
			frags = append(frags, f)
		}
	}

	// Fragments alternate (translated phrase, source echo), with
	// structural residue (leading comma) interleaved between pairs. A
	// residue fragment occupies a single slot, so the walk advances by
	// one past it to keep the pairing aligned. A lone trailing fragment
	// with no echo partner is metadata such as the language list, not a
	// phrase.
	var kept []string
	for i := 0; i < len(frags); {
		if strings.HasPrefix(frags[i], ",") {
			i++
			continue
		}
		if i+1 >= len(frags) {
			break
		}
		kept = append(kept, frags[i])
		i += 2
	}
	return strings.TrimRight(strings.Join(kept, "  "), " \t")
}

// firstQuoted returns the text between the first and second double quote,
// or an empty string when the body has no quoted content.
func firstQuoted(body string) string {
	start := strings.IndexByte(body, '"')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(body[start+1:], '"')
	if end < 0 {
		return ""
	}
	return body[start+1 : start+1+end]
}
