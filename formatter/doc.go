// Package formatter builds the external views of lines and realtime
// placements and serializes them.
//
// This package is organized into:
// - wrapper.go: response views built from line and gtfsrt values
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand so element order and omission rules stay explicit.
package formatter
