package sitegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MarvStuff/Athlete-Wiki/internal/transform"
	"golang.org/x/net/html"
)

// RequiredTemplates must exist before a build touches the output directory.
// A missing template is the only fatal defect in the whole pipeline.
var RequiredTemplates = []string{
	"startseite.html",
	"404.html",
	"impressum.html",
	"datenschutz.html",
}

// utilityPages are copied with placeholder substitution but without renaming.
var utilityPages = []string{"404.html", "impressum.html", "datenschutz.html"}

// TemplateData feeds placeholder substitution for the static utility pages.
type TemplateData struct {
	SiteURL        string
	SiteName       string
	ArticleCount   int
	LegalName      string
	LegalAddress   string
	LegalEmail     string
	AnalyticsToken string
}

// CheckTemplates verifies all required templates exist. Callers treat an
// error as fatal and abort before producing any output.
func CheckTemplates(templatesDir string) error {
	for _, name := range RequiredTemplates {
		path := filepath.Join(templatesDir, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("required template missing: %s", path)
		}
	}
	return nil
}

// RenderHomepage turns startseite.html into the published index.html,
// substituting the article count and site identity. With an analytics token
// configured the deferred loader script lands right before the body
// terminator, same as on article pages.
func RenderHomepage(templatesDir, outDir string, data TemplateData) error {
	raw, err := os.ReadFile(filepath.Join(templatesDir, "startseite.html"))
	if err != nil {
		return fmt.Errorf("read homepage template: %w", err)
	}

	page := substitute(string(raw), data)
	page = strings.ReplaceAll(page, "{{count}}", strconv.Itoa(data.ArticleCount))
	if data.AnalyticsToken != "" {
		page = appendAnalytics(page, data.AnalyticsToken)
	}

	return os.WriteFile(filepath.Join(outDir, "index.html"), []byte(page), 0o644)
}

// CopyUtilityPages publishes the 404 and legal pages with site identity and
// legal contact placeholders substituted.
func CopyUtilityPages(templatesDir, outDir string, data TemplateData) error {
	for _, name := range utilityPages {
		raw, err := os.ReadFile(filepath.Join(templatesDir, name))
		if err != nil {
			return fmt.Errorf("read template %s: %w", name, err)
		}
		page := substitute(string(raw), data)
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(page), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func substitute(page string, data TemplateData) string {
	r := strings.NewReplacer(
		"{{siteUrl}}", data.SiteURL,
		"{{siteName}}", data.SiteName,
		"{{legalName}}", data.LegalName,
		"{{legalAddress}}", data.LegalAddress,
		"{{legalEmail}}", data.LegalEmail,
	)
	return r.Replace(page)
}

// appendAnalytics inserts the analytics loader before </body>. Templates are
// trusted site-owned files, so plain string splicing is fine here; articles
// go through the tree-based pipeline instead.
func appendAnalytics(page, token string) string {
	var b strings.Builder
	if err := html.Render(&b, transform.AnalyticsScript(token)); err != nil {
		return page
	}
	script := b.String()
	if idx := strings.LastIndex(page, "</body>"); idx >= 0 {
		return page[:idx] + script + "\n" + page[idx:]
	}
	return page + script
}
