package sitegen

import (
	"strings"
	"time"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Sitemap renders the sitemap document: the site root first (priority 1.0,
// last-modified = newest article date, today when the set is empty), then one
// entry per article (priority 0.8, last-modified = article date). Articles
// are expected in date-descending order.
func Sitemap(siteURL string, articles []*article.Article, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	latest := now().Format("2006-01-02")
	if len(articles) > 0 {
		latest = articles[0].Date
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeURL(&b, siteURL+"/", latest, "1.0")
	for _, a := range articles {
		writeURL(&b, siteURL+a.URL, a.Date, "0.8")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}

func writeURL(b *strings.Builder, loc, lastmod, priority string) {
	b.WriteString("<url>\n")
	b.WriteString("<loc>" + xmlEscaper.Replace(loc) + "</loc>\n")
	b.WriteString("<lastmod>" + xmlEscaper.Replace(lastmod) + "</lastmod>\n")
	b.WriteString("<priority>" + priority + "</priority>\n")
	b.WriteString("</url>\n")
}

// RobotsTxt allows full crawl access except the search index and points
// crawlers at the sitemap's absolute URL.
func RobotsTxt(siteURL string) string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /index.json\n" +
		"\n" +
		"Sitemap: " + siteURL + "/sitemap.xml\n"
}
