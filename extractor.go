package campcrawl

// Extractor extracts campaign records from listing-page HTML.
type Extractor interface {
	// Extract parses the document and returns one record per well-formed
	// campaign item block, in document order. Items with missing required
	// markup or a malformed timestamp are silently skipped; one bad item
	// never aborts the batch. A document that cannot be parsed at all
	// returns an EINVALID error and no partial output.
	Extract(html string, site Site) ([]*Campaign, error)
}
