// Package rowfile reads and writes the delimited key,value files kvlate
// translates. A record is one line split on the FIRST comma only; the
// value may contain commas and may be wrapped in double quotes.
package rowfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oukeidos/kvlate/internal/files"
)

// Row is one parsed record. Immutable once parsed.
type Row struct {
	Key   string
	Value string
}

// ParseLine splits a line into a Row on the first comma. The second
// return is false for lines that do not yield exactly two parts; such
// lines are skipped by callers, never errored.
func ParseLine(line string) (Row, bool) {
	key, value, found := strings.Cut(line, ",")
	if !found {
		return Row{}, false
	}
	return Row{Key: key, Value: stripQuotes(value)}, true
}

// stripQuotes removes one pair of wrapping double quotes, if present.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Load reads a UTF-8 input file and parses its rows. totalLines counts
// every line in the file, including the non-conforming ones that were
// skipped; progress percentages are reported against it.
func Load(path string) (rows []Row, totalLines int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input file: %w", err)
	}
	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return nil, 0, nil
	}
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		totalLines++
		if row, ok := ParseLine(line); ok {
			rows = append(rows, row)
		}
	}
	return rows, totalLines, nil
}

// FormatLine renders one output record. The value is always re-quoted;
// embedded quotes are passed through as-is, matching the input format's
// loose quoting.
func FormatLine(key, value string) string {
	return key + `,"` + value + `"`
}

// Write stores the output lines atomically with a trailing newline.
func Write(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return files.AtomicWrite(path, []byte(b.String()), 0600)
}

// OutputPath derives the output filename from the input path: the
// language suffix goes before the extension, in the same directory.
// strings.csv with suffix "fr" becomes strings-fr.csv.
func OutputPath(inputPath, langSuffix string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s-%s%s", base, langSuffix, ext)
}
