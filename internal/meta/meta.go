// Package meta parses the comment-style metadata block articles carry at the
// top of their markup:
//
//	<!--
//	title: Kreatin richtig dosieren
//	date: 2026-02-10
//	tags: supplemente, kraft
//	-->
//
// A missing block is not an error; callers apply field-level defaults.
package meta

import (
	"regexp"
	"strings"
)

// blockRe matches the first comment whose body spans its own lines. Inline
// comments (<!-- foo -->) are ignored so regular markup comments never get
// misread as metadata.
var blockRe = regexp.MustCompile(`(?s)<!--\s*\n(.*?)\n\s*-->`)

// Parse extracts the metadata block from raw article markup.
// The second return value reports whether a block was found at all.
//
// Each line is split on the first colon only, so values containing colons
// (URLs, times) survive verbatim. Lines without a colon are skipped, keys and
// values are trimmed, and entries whose key or value trims to empty are
// dropped.
func Parse(markup string) (map[string]string, bool) {
	m := blockRe.FindStringSubmatch(markup)
	if m == nil {
		return nil, false
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(m[1], "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}
	return fields, true
}
