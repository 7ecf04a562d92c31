// Package slug derives URL-safe article identifiers and resolves collisions
// deterministically within one build pass.
package slug

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/MarvStuff/Athlete-Wiki/internal/util/sets"
)

// maxLength caps generated slugs; explicit meta slugs are not capped.
const maxLength = 50

var umlauts = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")

// Slugify transliterates free text into a lowercase alphanumeric identifier:
// umlauts are expanded (ä→ae, ö→oe, ü→ue, ß→ss), everything else outside
// [a-z0-9] is dropped, capped at 50 characters. Input is NFC-normalized first
// so decomposed umlauts (u + combining diaeresis) transliterate the same way.
func Slugify(text string) string {
	t := strings.ToLower(norm.NFC.String(text))
	t = umlauts.Replace(t)

	var b strings.Builder
	for _, r := range t {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= maxLength {
			break
		}
	}
	return b.String()
}

// Sanitize cleans an explicitly supplied slug: ASCII letters and digits are
// kept and lowercased, everything else is dropped. Unlike Slugify there is no
// umlaut expansion; an author-chosen slug is taken as close to literally as
// the allowed character set permits.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		}
	}
	return b.String()
}

// Resolver assigns unique slugs in document-enumeration order. It is scoped to
// one build pass and not safe for concurrent use; the orchestrator processes
// documents strictly sequentially, which also keeps suffix assignment
// deterministic.
type Resolver struct {
	used sets.Set[string]
}

// NewResolver creates an empty resolver for one build pass.
func NewResolver() *Resolver {
	return &Resolver{used: sets.New[string]()}
}

// Resolve returns the finalized slug for a candidate. On collision with an
// already-assigned slug an increasing numeric suffix is appended (slug2,
// slug3, ...) until unique. The second return value reports whether the
// candidate had to be renamed.
func (r *Resolver) Resolve(candidate string) (string, bool) {
	final := candidate
	for i := 2; r.used.Has(final); i++ {
		final = candidate + strconv.Itoa(i)
	}
	r.used.Add(final)
	return final, final != candidate
}
