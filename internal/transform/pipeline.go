package transform

import (
	"log/slog"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
	"github.com/MarvStuff/Athlete-Wiki/internal/report"
)

// Pipeline holds the site-level settings the rewrite stages need. One
// instance serves a whole build pass; Apply is called once per article.
type Pipeline struct {
	SiteURL        string
	SiteName       string
	InjectSEOTags  bool
	InjectNav      bool
	AnalyticsToken string
}

// Apply runs the ordered stage chain over one finalized article and returns
// the rewritten markup plus any compliance findings.
//
// Order matters: fonts are localized first, then the compliance scan runs, so
// a replaced font link no longer counts as a violation while the optional
// analytics loader (injected afterwards) is never scanned in build mode.
// Malformed markup does not abort anything; the parser normalizes what it can
// and stages skip silently when their anchor elements are missing.
func (p *Pipeline) Apply(a *article.Article) (string, []report.Issue) {
	root, err := parseDoc(a.RawHTML)
	if err != nil {
		slog.Debug("Markup not parseable, leaving article unmodified", "document", a.Filename, "error", err)
		return a.RawHTML, nil
	}

	LocalizeFonts(root)

	localized, err := renderDoc(root)
	if err != nil {
		return a.RawHTML, nil
	}
	issues := CheckExternalResources(localized, a.Filename)

	if p.InjectSEOTags {
		InjectSEO(root, a, p.SiteURL, p.SiteName)
	}
	if p.InjectNav {
		InjectNavbar(root, p.AnalyticsToken)
	}

	out, err := renderDoc(root)
	if err != nil {
		return localized, issues
	}
	return out, issues
}
