// Package sitegen produces the persisted site artifacts from the finalized
// article set: the JSON search index, sitemap and robots directives, the
// templated utility pages and the copied static assets.
package sitegen

import (
	"encoding/json"

	"github.com/MarvStuff/Athlete-Wiki/internal/article"
)

// EncodeIndex serializes the published set as a JSON array. Internal-only
// fields (source filename, raw markup) carry `json:"-"` tags on the record and
// never reach the output; sort order of the input is preserved as-is.
func EncodeIndex(articles []*article.Article) ([]byte, error) {
	if articles == nil {
		articles = []*article.Article{}
	}
	return json.Marshal(articles)
}
