// Package configs provides the embedded example configuration for
// docsearch-mcp.
//
// docsearch-mcp has no project/user config hierarchy to seed - its schema
// is a flat library list plus server tuning (internal/config.Config) - so
// a single example file is embedded, which `docsearch-mcp init` writes out
// as the starting point of a new deployment's docsearch.yaml.
package configs

import _ "embed"

// ExampleConfig is the template users copy to their own docsearch.yaml.
//
//go:embed docsearch.example.yaml
var ExampleConfig string
