package transform

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/MarvStuff/Athlete-Wiki/internal/report"
)

// disallowedHosts are external services a compliant page must not reference.
// The host check is a raw substring scan so references hiding in inline CSS
// or attribute values are caught, not just well-formed tags.
var disallowedHosts = []string{
	"fonts.googleapis.com",
	"fonts.gstatic.com",
	"cdn.jsdelivr.net",
}

// CheckExternalResources scans markup for residual references to disallowed
// external hosts and for script tags whose source is not a local path. Every
// finding names the document and the offending reference. An empty result
// means the document passes.
//
// The scan never rewrites anything; in a normal build findings are warnings,
// in validate mode they flip the document's pass/fail status.
func CheckExternalResources(markup, document string) []report.Issue {
	var issues []report.Issue

	lower := strings.ToLower(markup)
	for _, host := range disallowedHosts {
		if strings.Contains(lower, host) {
			issues = append(issues, report.Issue{
				Document:  document,
				Reference: fmt.Sprintf("still contains %s reference", host),
			})
		}
	}

	root, err := parseDoc(markup)
	if err != nil {
		return issues
	}
	scripts := collectElements(root, func(n *html.Node) bool { return n.Data == "script" })
	for _, s := range scripts {
		src := attrVal(s, "src")
		if src == "" {
			continue
		}
		if !strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "./") {
			issues = append(issues, report.Issue{
				Document:  document,
				Reference: "external script: " + src,
			})
		}
	}
	return issues
}
