// Package campcrawl extracts structured campaign engagement records from
// shopreview storefront listing pages. It parses raw HTML snapshots (uploaded
// manually or fetched by a session-authenticated retriever), locates the
// repeated campaign item blocks, and normalizes each into a flat record for
// display in a separate client application.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, resty/).
package campcrawl
