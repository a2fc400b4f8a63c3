// pkg/core/listing.go
package core

// Listing is one snapshot of what a tool reports as installed. IDs holds the
// identifiers recovered from structured output; Text is the raw free-text
// listing. Text is matched by id when IDs is empty and by display name for
// items the IDs miss.
type Listing struct {
	IDs  []string
	Text string
}

// Structured reports whether the listing carries parsed identifiers.
func (l Listing) Structured() bool {
	return len(l.IDs) > 0
}
