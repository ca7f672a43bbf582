// Package assets embeds the default item catalog and its schema.
package assets

import _ "embed"

// Catalog is the default per-category catalog document.
//
//go:embed catalog.yaml
var Catalog []byte

// CatalogSchema is the JSON schema every catalog document must satisfy.
//
//go:embed catalog.schema.json
var CatalogSchema []byte
