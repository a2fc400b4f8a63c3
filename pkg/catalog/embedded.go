// pkg/catalog/embedded.go
package catalog

import (
	_ "embed"
)

//go:embed catalog.json
var embeddedCatalog []byte

// Embedded parses the catalog compiled into the binary.
func Embedded() []Entry {
	entries, err := Parse(embeddedCatalog)
	if err != nil {
		return nil
	}
	return entries
}

// EmbeddedDocument returns a copy of the raw compiled-in document.
func EmbeddedDocument() []byte {
	return append([]byte(nil), embeddedCatalog...)
}
