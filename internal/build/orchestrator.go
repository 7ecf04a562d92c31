// Package build sequences a full publishing pass: scan the source directory,
// parse and validate every document, assign unique slugs, extract content,
// sort, rewrite markup through the transform pipeline and persist all site
// artifacts. Document processing is strictly sequential; slug collision
// resolution depends on deterministic enumeration order.
package build

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
	"github.com/MarvStuff/Athlete-Wiki/internal/config"
	"github.com/MarvStuff/Athlete-Wiki/internal/gitinfo"
	"github.com/MarvStuff/Athlete-Wiki/internal/metrics"
	"github.com/MarvStuff/Athlete-Wiki/internal/report"
	"github.com/MarvStuff/Athlete-Wiki/internal/sitegen"
	"github.com/MarvStuff/Athlete-Wiki/internal/slug"
	"github.com/MarvStuff/Athlete-Wiki/internal/transform"
)

// MaxFileSize is the per-document input cap. Larger files are skipped and
// counted as errors.
const MaxFileSize = 2 * 1024 * 1024

// Orchestrator runs build passes for one configuration. It carries no state
// across passes; every Build recomputes the full set from the source
// documents. A pass always runs to completion once started.
type Orchestrator struct {
	cfg      *config.Config
	recorder metrics.Recorder
	now      func() time.Time
}

// New creates an orchestrator with metrics disabled.
func New(cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// SetRecorder injects a metrics recorder (optional).
func (o *Orchestrator) SetRecorder(r metrics.Recorder) {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	o.recorder = r
}

// Build executes one full pass. The returned error is non-nil only for fatal
// defects (missing required templates, output I/O failure); everything
// field- or document-level degrades to fallbacks and warnings on the report.
func (o *Orchestrator) Build() (*report.BuildReport, error) {
	rep := report.New()
	o.stampCommit(rep)

	outDir := o.cfg.Build.OutputDir

	// Templates are checked before the output directory is touched, so a
	// fatal abort never leaves a half-destroyed site behind.
	if err := sitegen.CheckTemplates(o.cfg.Build.TemplatesDir); err != nil {
		o.recorder.RecordBuild("failure", time.Since(rep.StartedAt))
		return rep, err
	}

	if err := o.cleanOutput(outDir); err != nil {
		o.recorder.RecordBuild("failure", time.Since(rep.StartedAt))
		return rep, err
	}

	articles := o.collect(rep)
	sortByDateDesc(articles)

	slog.Info("Source documents processed",
		"scanned", rep.Scanned,
		"published", len(articles),
		"drafts", rep.Drafts,
		"errors", rep.Errors)

	if err := o.writeArticles(outDir, articles, rep); err != nil {
		o.recorder.RecordBuild("failure", time.Since(rep.StartedAt))
		return rep, err
	}
	if err := o.writeSiteArtifacts(outDir, articles, rep); err != nil {
		o.recorder.RecordBuild("failure", time.Since(rep.StartedAt))
		return rep, err
	}

	o.checkConsistency(outDir, len(articles), rep)

	rep.Published = len(articles)
	rep.Finish()
	o.recorder.RecordBuild("success", rep.Duration)
	o.recorder.RecordPublished(rep.Published)
	o.recorder.RecordWarnings(len(rep.Warnings))
	rep.Log()
	return rep, nil
}

// Validate runs the compliance scan over every would-be-published document
// without writing anything. ok is false when at least one document still
// references a disallowed external resource.
func (o *Orchestrator) Validate() (rep *report.BuildReport, ok bool, err error) {
	rep = report.New()
	articles := o.collect(rep)
	sortByDateDesc(articles)

	ok = true
	for _, a := range articles {
		issues := transform.CheckExternalResources(a.RawHTML, a.Filename)
		if len(issues) > 0 {
			ok = false
			rep.AddIssues(issues)
			slog.Info("Validation failed", "document", a.Filename)
			continue
		}
		slog.Info("Validation passed", "document", a.Filename, "title", a.Title, "category", a.Category)
	}
	rep.Finish()
	return rep, ok, nil
}

// collect builds the candidate set from the source directory: one record per
// qualifying document, slugs finalized in enumeration order. os.ReadDir
// returns entries sorted by name, which fixes the deterministic input order
// everything downstream relies on.
func (o *Orchestrator) collect(rep *report.BuildReport) []*article.Article {
	entries, err := os.ReadDir(o.cfg.Build.PagesDir)
	if err != nil {
		// A site without a pages directory yet is an empty, valid site.
		if !os.IsNotExist(err) {
			rep.Warnf("pages directory not readable: %v", err)
		}
		return nil
	}

	resolver := slug.NewResolver()
	var articles []*article.Article

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(name, ".html") {
			rep.Warnf("%s: not an .html file, ignored", name)
			continue
		}
		rep.Scanned++

		path := filepath.Join(o.cfg.Build.PagesDir, name)
		info, err := entry.Info()
		if err != nil {
			rep.Warnf("%s: stat failed (%v), skipped", name, err)
			rep.Errors++
			continue
		}
		if info.Size() == 0 {
			rep.Warnf("%s: file is empty, skipped", name)
			rep.Errors++
			continue
		}
		if info.Size() > MaxFileSize {
			rep.Warnf("%s: file too large (%.1f MB), skipped", name, float64(info.Size())/1024/1024)
			rep.Errors++
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			rep.Warnf("%s: read failed (%v), skipped", name, err)
			rep.Errors++
			continue
		}

		a, warnings, published := article.New(name, string(raw), article.Options{
			IncludeDrafts: o.cfg.Build.Drafts,
			Now:           o.now,
		})
		rep.AddWarnings(warnings)
		if !published {
			rep.Drafts++
			continue
		}

		final, collided := resolver.Resolve(a.Slug)
		if collided {
			rep.Warnf("%s: slug collision with %q, renamed to %q", name, a.Slug, final)
		}
		a.Finalize(final)
		articles = append(articles, a)
	}
	return articles
}

func (o *Orchestrator) cleanOutput(outDir string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("clean output directory: %w", err)
	}
	for _, dir := range []string{filepath.Join(outDir, "pages"), filepath.Join(outDir, "fonts")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) writeArticles(outDir string, articles []*article.Article, rep *report.BuildReport) error {
	pipeline := &transform.Pipeline{
		SiteURL:        o.cfg.Site.URL,
		SiteName:       o.cfg.Site.Name,
		InjectSEOTags:  o.cfg.Build.OGTagsEnabled(),
		InjectNav:      o.cfg.Build.NavbarEnabled(),
		AnalyticsToken: o.cfg.Analytics.Token,
	}

	for _, a := range articles {
		markup, issues := pipeline.Apply(a)
		rep.AddIssues(issues)

		dst := filepath.Join(outDir, "pages", a.Slug+".html")
		if err := os.WriteFile(dst, []byte(markup), 0o644); err != nil {
			return fmt.Errorf("write article %s: %w", a.Slug, err)
		}
	}
	return nil
}

func (o *Orchestrator) writeSiteArtifacts(outDir string, articles []*article.Article, rep *report.BuildReport) error {
	index, err := sitegen.EncodeIndex(articles)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.json"), index, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	slog.Info("Search index written", "entries", len(articles), "bytes", len(index))

	data := sitegen.TemplateData{
		SiteURL:        o.cfg.Site.URL,
		SiteName:       o.cfg.Site.Name,
		ArticleCount:   len(articles),
		LegalName:      o.cfg.Legal.Name,
		LegalAddress:   o.cfg.Legal.Address,
		LegalEmail:     o.cfg.Legal.Email,
		AnalyticsToken: o.cfg.Analytics.Token,
	}
	if err := sitegen.RenderHomepage(o.cfg.Build.TemplatesDir, outDir, data); err != nil {
		return err
	}
	if err := sitegen.CopyUtilityPages(o.cfg.Build.TemplatesDir, outDir, data); err != nil {
		return err
	}
	if err := sitegen.CopyStatic(o.cfg.Build.StaticDir, outDir); err != nil {
		return fmt.Errorf("copy static assets: %w", err)
	}
	sitegen.CopySearchLib(o.cfg.Build.SearchLib, outDir, rep)

	sitemap := sitegen.Sitemap(o.cfg.Site.URL, articles, o.now)
	if err := os.WriteFile(filepath.Join(outDir, "sitemap.xml"), []byte(sitemap), 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	robots := sitegen.RobotsTxt(o.cfg.Site.URL)
	if err := os.WriteFile(filepath.Join(outDir, "robots.txt"), []byte(robots), 0o644); err != nil {
		return fmt.Errorf("write robots.txt: %w", err)
	}
	return nil
}

// checkConsistency compares persisted article files against index entries.
// A mismatch is a warning, never a build failure.
func (o *Orchestrator) checkConsistency(outDir string, indexed int, rep *report.BuildReport) {
	entries, err := os.ReadDir(filepath.Join(outDir, "pages"))
	if err != nil {
		return
	}
	if len(entries) != indexed {
		rep.Warnf("inconsistency: %d files in %s/pages but %d index entries", len(entries), outDir, indexed)
	}
}

// sortByDateDesc orders the published set by date descending; ties keep
// stable input order.
func sortByDateDesc(articles []*article.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
}

func (o *Orchestrator) stampCommit(rep *report.BuildReport) {
	commit, err := gitinfo.HeadCommit(o.cfg.Build.PagesDir)
	if err != nil {
		slog.Debug("No git commit for content directory", "error", err)
		return
	}
	rep.Commit = commit
}
