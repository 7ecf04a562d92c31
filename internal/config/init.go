package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# Athlete Wiki configuration
site:
  url: ${SITE_URL}
  name: Athlete Wiki

build:
  pages_dir: pages
  templates_dir: templates
  static_dir: static
  output_dir: public
  search_lib: assets/fuse.min.js
  drafts: false
  inject_navbar: true
  inject_og_tags: true

watch:
  port: 3000
  # metrics_port: 9109
  debounce_ms: 200

# events:
#   nats_url: nats://localhost:4222
#   subject: athletewiki.builds

analytics:
  token: ${CF_ANALYTICS_TOKEN}

legal:
  name: ${LEGAL_NAME}
  address: ${LEGAL_ADDRESS}
  email: ${LEGAL_EMAIL}
`

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	return os.WriteFile(path, []byte(exampleConfig), 0o644)
}
