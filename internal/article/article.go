// Package article defines the central record of the publishing pipeline and
// the field-level validation that turns loosely-structured source documents
// into well-formed records. Every malformed field degrades to a documented
// fallback; nothing in here ever rejects a document outright.
package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/MarvStuff/Athlete-Wiki/internal/content"
	"github.com/MarvStuff/Athlete-Wiki/internal/meta"
	"github.com/MarvStuff/Athlete-Wiki/internal/slug"
)

// Category describes a known article category with its display metadata.
type Category struct {
	Label string
	Color string
}

// DefaultCategory is the fallback for unknown or missing categories.
const DefaultCategory = "allgemein"

// Categories is the closed set of known categories. Unknown values in
// metadata fall back to DefaultCategory.
var Categories = map[string]Category{
	"ernaehrung":   {Label: "Ernährung", Color: "#51cf66"},
	"training":     {Label: "Training", Color: "#ffa94d"},
	"regeneration": {Label: "Regeneration", Color: "#74c0fc"},
	"mindset":      {Label: "Mindset", Color: "#cc5de8"},
	"gesundheit":   {Label: "Gesundheit", Color: "#ff6b6b"},
	"wettkampf":    {Label: "Wettkampf", Color: "#ffd43b"},
	"allgemein":    {Label: "Allgemein", Color: "#868e96"},
}

// Article is the finalized, persisted representation of one published
// document. Filename and RawHTML are carried during processing only and are
// never serialized into any output artifact.
type Article struct {
	Slug     string   `json:"slug"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
	Content  string   `json:"content"`

	Filename string `json:"-"`
	RawHTML  string `json:"-"`
}

// PageURL derives the canonical site path for a slug.
func PageURL(s string) string {
	return "/pages/" + s + ".html"
}

// Options controls record construction for one build pass.
type Options struct {
	// IncludeDrafts publishes documents with draft status instead of
	// excluding them.
	IncludeDrafts bool

	// Now supplies the current time for date fallbacks; defaults to time.Now.
	Now func() time.Time
}

// New builds the candidate record for one source document. The returned slug
// is a candidate only; the caller runs it through the collision resolver and
// then seals the record with Finalize.
//
// The warnings list describes every field that was corrected to its fallback.
// published is false when the document has draft status and drafts are not
// enabled; such documents are skipped entirely and never consume a slug.
func New(filename, markup string, opts Options) (a *Article, warnings []string, published bool) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fields, found := meta.Parse(markup)
	if !found {
		warnings = append(warnings, fmt.Sprintf("%s: meta block missing, using defaults", filename))
	}

	title := fields["title"]
	if title == "" {
		title = strings.TrimSuffix(filename, ".html")
	}

	date := fields["date"]
	if date == "" {
		date = now().Format("2006-01-02")
	} else if !IsValidDate(date) {
		warnings = append(warnings, fmt.Sprintf("%s: invalid date %q, using today", filename, date))
		date = now().Format("2006-01-02")
	}

	category := fields["category"]
	if category == "" {
		category = DefaultCategory
	} else if _, known := Categories[category]; !known {
		warnings = append(warnings, fmt.Sprintf("%s: unknown category %q, falling back to %q", filename, category, DefaultCategory))
		category = DefaultCategory
	}

	status := fields["status"]
	if status == "" {
		status = "published"
	}
	if status == "draft" && !opts.IncludeDrafts {
		return nil, warnings, false
	}

	var candidate string
	if raw := fields["slug"]; raw != "" {
		candidate = slug.Sanitize(raw)
		if candidate != raw {
			warnings = append(warnings, fmt.Sprintf("%s: slug %q contained invalid characters, sanitized to %q", filename, raw, candidate))
		}
	} else {
		candidate = slug.Slugify(title)
	}

	summary := fields["summary"]
	if summary == "" {
		summary = content.Summary(markup)
	}

	a = &Article{
		Slug:     candidate,
		Title:    title,
		Date:     date,
		Tags:     splitList(fields["tags"]),
		Category: category,
		Summary:  summary,
		Keywords: splitList(fields["keywords"]),
		Content:  content.Extract(markup),
		Filename: filename,
		RawHTML:  markup,
	}
	return a, warnings, true
}

// Finalize seals the record once the resolver has assigned the unique slug.
// After this point the record is immutable by convention; the HTML pipeline
// only reads from it.
func (a *Article) Finalize(finalSlug string) {
	a.Slug = finalSlug
	a.URL = PageURL(finalSlug)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
